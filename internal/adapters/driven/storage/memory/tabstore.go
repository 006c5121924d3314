package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
	"github.com/wrenlock-labs/tabsync/internal/core/ports/driven"
)

// Ensure ClientsAndTabsStore implements the interfaces.
var (
	_ driven.ClientsAndTabsStore = (*ClientsAndTabsStore)(nil)
	_ driven.ResettableStore     = (*ClientsAndTabsStore)(nil)
	_ driven.RemoteDevicesStore  = (*ClientsAndTabsStore)(nil)
)

// ClientsAndTabsStore is an in-memory implementation of the tabsync storage
// ports.
type ClientsAndTabsStore struct {
	mu      sync.RWMutex
	clients map[string]domain.Client
	tabs    []domain.Tab
	devices map[string]domain.RemoteDevice
}

// NewClientsAndTabsStore creates a new in-memory clients/tabs store.
func NewClientsAndTabsStore() *ClientsAndTabsStore {
	return &ClientsAndTabsStore{
		clients: make(map[string]domain.Client),
		devices: make(map[string]domain.RemoteDevice),
	}
}

// ReplaceTabs replaces the stored tabs for one client.
func (s *ClientsAndTabsStore) ReplaceTabs(_ context.Context, clientGUID *string, tabs []domain.Tab) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tabs[:0]
	for _, tab := range s.tabs {
		if !sameOwner(tab.ClientGUID, clientGUID) {
			kept = append(kept, tab)
		}
	}
	s.tabs = append(kept, tabs...)
	return len(tabs), nil
}

// UpsertClients stores or updates each client by GUID.
func (s *ClientsAndTabsStore) UpsertClients(_ context.Context, clients []domain.Client) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, client := range clients {
		s.clients[client.GUID] = client
	}
	return len(clients), nil
}

// UpsertClient stores or updates a single client.
func (s *ClientsAndTabsStore) UpsertClient(ctx context.Context, client domain.Client) (int, error) {
	return s.UpsertClients(ctx, []domain.Client{client})
}

// GetClient retrieves a client by GUID.
func (s *ClientsAndTabsStore) GetClient(_ context.Context, guid string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[guid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &client, nil
}

// GetClientByFxADeviceID retrieves a client by its device registry link.
func (s *ClientsAndTabsStore) GetClientByFxADeviceID(_ context.Context, fxaDeviceID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		if client.FxADeviceID != "" && client.FxADeviceID == fxaDeviceID {
			c := client
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetClientGUIDs returns the set of non-empty client GUIDs.
func (s *ClientsAndTabsStore) GetClientGUIDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	guids := make(map[string]struct{}, len(s.clients))
	for guid := range s.clients {
		if guid != "" {
			guids[guid] = struct{}{}
		}
	}
	return guids, nil
}

// GetTabsForClient returns the tabs owned by the given client, or the local
// tabs when clientGUID is nil.
func (s *ClientsAndTabsStore) GetTabsForClient(_ context.Context, clientGUID *string) ([]domain.Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tabs []domain.Tab
	for _, tab := range s.tabs {
		if sameOwner(tab.ClientGUID, clientGUID) {
			tabs = append(tabs, tab)
		}
	}
	return tabs, nil
}

// GetClientsAndTabs reconstructs the client/tab aggregate with the same
// ordering and filtering as the SQLite adapter: registry-known clients by
// modified descending, tabs within a client by last used descending.
func (s *ClientsAndTabsStore) GetClientsAndTabs(_ context.Context) ([]domain.ClientAndTabs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var clients []domain.Client
	for _, client := range s.clients {
		if _, known := s.devices[client.FxADeviceID]; known && client.FxADeviceID != "" {
			clients = append(clients, client)
		}
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].Modified > clients[j].Modified
	})

	tabsByClient := make(map[string][]domain.Tab)
	for _, tab := range s.tabs {
		if tab.ClientGUID == nil {
			continue
		}
		guid := *tab.ClientGUID
		tabsByClient[guid] = append(tabsByClient[guid], tab)
	}

	result := make([]domain.ClientAndTabs, 0, len(clients))
	for _, client := range clients {
		tabs := append([]domain.Tab(nil), tabsByClient[client.GUID]...)
		sort.SliceStable(tabs, func(i, j int) bool {
			return tabs[i].LastUsed > tabs[j].LastUsed
		})
		if tabs == nil {
			tabs = []domain.Tab{}
		}
		result = append(result, domain.ClientAndTabs{Client: client, Tabs: tabs})
	}
	return result, nil
}

// DeleteClient removes the client and all tabs it owns.
func (s *ClientsAndTabsStore) DeleteClient(_ context.Context, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.clients, guid)
	kept := s.tabs[:0]
	for _, tab := range s.tabs {
		if tab.ClientGUID == nil || *tab.ClientGUID != guid {
			kept = append(kept, tab)
		}
	}
	s.tabs = kept
	return nil
}

// WipeRemoteTabs deletes all tabs owned by remote clients.
func (s *ClientsAndTabsStore) WipeRemoteTabs(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tabs[:0]
	for _, tab := range s.tabs {
		if tab.ClientGUID == nil {
			kept = append(kept, tab)
		}
	}
	s.tabs = kept
	return nil
}

// WipeTabs deletes all tabs unconditionally.
func (s *ClientsAndTabsStore) WipeTabs(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = nil
	return nil
}

// Clear deletes all remote tabs and all clients. Local tabs survive.
func (s *ClientsAndTabsStore) Clear(ctx context.Context) error {
	if err := s.WipeRemoteTabs(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = make(map[string]domain.Client)
	return nil
}

// ResetClient discards all remote sync state.
func (s *ClientsAndTabsStore) ResetClient(ctx context.Context) error {
	return s.Clear(ctx)
}

// ReplaceRemoteDevices replaces all non-current registry entries.
func (s *ClientsAndTabsStore) ReplaceRemoteDevices(_ context.Context, devices []domain.RemoteDevice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for guid, device := range s.devices {
		if !device.IsCurrentDevice {
			delete(s.devices, guid)
		}
	}
	for _, device := range devices {
		if device.IsCurrentDevice {
			continue
		}
		s.devices[device.GUID] = device
	}
	return nil
}

// GetRemoteDevices returns all registry entries.
func (s *ClientsAndTabsStore) GetRemoteDevices(_ context.Context) ([]domain.RemoteDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make([]domain.RemoteDevice, 0, len(s.devices))
	for _, device := range s.devices {
		devices = append(devices, device)
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].GUID < devices[j].GUID
	})
	return devices, nil
}

// sameOwner compares two tab owners, treating nil as the local owner.
func sameOwner(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
