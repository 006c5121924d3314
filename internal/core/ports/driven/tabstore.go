package driven

import (
	"context"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

// ClientsAndTabsStore persists, per remote client, the set of open tabs that
// client reported. Backed by SQLite.
//
// All mutating operations run inside a single transaction: they either apply
// fully or leave the store untouched. The store does not enforce referential
// integrity between tabs and clients; a tab whose ClientGUID references a
// nonexistent client is tolerated and only excluded by the joined read's
// existence filter.
type ClientsAndTabsStore interface {
	// ReplaceTabs atomically replaces the stored tabs for one client with
	// the given list. A nil clientGUID scopes the replacement to local tabs
	// (client_guid IS NULL); tabs owned by named clients are untouched.
	// Returns the number of confirmed insertions. The caller is trusted to
	// supply tabs whose ClientGUID matches clientGUID.
	ReplaceTabs(ctx context.Context, clientGUID *string, tabs []domain.Tab) (int, error)

	// UpsertClients updates each client by GUID, inserting those that do not
	// exist yet, all in one transaction. Returns the number of clients
	// processed, without distinguishing updates from inserts.
	UpsertClients(ctx context.Context, clients []domain.Client) (int, error)

	// UpsertClient is a convenience wrapper around UpsertClients with a
	// single client.
	UpsertClient(ctx context.Context, client domain.Client) (int, error)

	// GetClient retrieves a client by GUID.
	// Returns domain.ErrNotFound if no client matches.
	GetClient(ctx context.Context, guid string) (*domain.Client, error)

	// GetClientByFxADeviceID retrieves a client by its device registry link.
	// Returns domain.ErrNotFound if no client matches.
	GetClientByFxADeviceID(ctx context.Context, fxaDeviceID string) (*domain.Client, error)

	// GetClientGUIDs returns the set of non-null client GUIDs.
	GetClientGUIDs(ctx context.Context) (map[string]struct{}, error)

	// GetTabsForClient returns the tabs owned by the given client, or the
	// local tabs when clientGUID is nil. No ordering guarantee.
	GetTabsForClient(ctx context.Context, clientGUID *string) ([]domain.Tab, error)

	// GetClientsAndTabs returns every client known to the remote device
	// registry together with its tabs. Clients are ordered most recently
	// modified first; within a client, tabs are ordered most recently used
	// first. Local tabs are excluded.
	GetClientsAndTabs(ctx context.Context) ([]domain.ClientAndTabs, error)

	// DeleteClient removes the client row and all tabs it owns, atomically.
	DeleteClient(ctx context.Context, guid string) error

	// WipeRemoteTabs deletes all tabs owned by remote clients. Local tabs
	// are untouched.
	WipeRemoteTabs(ctx context.Context) error

	// WipeTabs deletes all tabs unconditionally, local ones included.
	WipeTabs(ctx context.Context) error
}

// ResettableStore discards all remote sync state. Purely local data (tabs
// with no owning client) always survives a reset.
type ResettableStore interface {
	// Clear atomically deletes all remote tabs and all client rows.
	Clear(ctx context.Context) error

	// ResetClient discards all remote sync state ahead of a fresh sync.
	// Semantically equivalent to Clear.
	ResetClient(ctx context.Context) error
}
