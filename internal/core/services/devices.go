package services

import (
	"context"
	"fmt"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
	"github.com/wrenlock-labs/tabsync/internal/core/ports/driven"
	"github.com/wrenlock-labs/tabsync/internal/core/ports/driving"
)

// Ensure DeviceService implements the interface.
var _ driving.DeviceManager = (*DeviceService)(nil)

// DeviceService exposes the synced-device view over the clients/tabs store.
type DeviceService struct {
	store    driven.ClientsAndTabsStore
	resetter driven.ResettableStore
}

// NewDeviceService creates a new device service.
func NewDeviceService(store driven.ClientsAndTabsStore, resetter driven.ResettableStore) *DeviceService {
	return &DeviceService{
		store:    store,
		resetter: resetter,
	}
}

// ListDevices returns every active remote device with its tabs.
func (s *DeviceService) ListDevices(ctx context.Context) ([]domain.ClientAndTabs, error) {
	devices, err := s.store.GetClientsAndTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	return devices, nil
}

// TabsForDevice returns the tabs reported by one device.
func (s *DeviceService) TabsForDevice(ctx context.Context, guid string) ([]domain.Tab, error) {
	if guid == "" {
		return nil, domain.ErrInvalidInput
	}
	tabs, err := s.store.GetTabsForClient(ctx, &guid)
	if err != nil {
		return nil, fmt.Errorf("getting tabs for device %s: %w", guid, err)
	}
	return tabs, nil
}

// LocalTabs returns this device's own tabs.
func (s *DeviceService) LocalTabs(ctx context.Context) ([]domain.Tab, error) {
	tabs, err := s.store.GetTabsForClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("getting local tabs: %w", err)
	}
	return tabs, nil
}

// ReplaceLocalTabs replaces this device's own tabs with the given list.
// Ownership is forced to local regardless of what the caller set.
func (s *DeviceService) ReplaceLocalTabs(ctx context.Context, tabs []domain.Tab) (int, error) {
	local := make([]domain.Tab, len(tabs))
	for i, tab := range tabs {
		tab.ClientGUID = nil
		local[i] = tab
	}
	count, err := s.store.ReplaceTabs(ctx, nil, local)
	if err != nil {
		return 0, fmt.Errorf("replacing local tabs: %w", err)
	}
	return count, nil
}

// ForgetDevice removes a device and all its tabs.
func (s *DeviceService) ForgetDevice(ctx context.Context, guid string) error {
	if guid == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.DeleteClient(ctx, guid); err != nil {
		return fmt.Errorf("forgetting device %s: %w", guid, err)
	}
	return nil
}

// Reset discards all remote sync state, preserving local tabs.
func (s *DeviceService) Reset(ctx context.Context) error {
	if err := s.resetter.ResetClient(ctx); err != nil {
		return fmt.Errorf("resetting sync state: %w", err)
	}
	return nil
}
