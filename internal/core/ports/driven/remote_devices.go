package driven

import (
	"context"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

// RemoteDevicesStore persists the active-device registry. The clients/tabs
// joined read consults the registry as an existence filter; this interface is
// how the registry gets populated when the account's device list changes.
type RemoteDevicesStore interface {
	// ReplaceRemoteDevices atomically replaces all non-current registry rows
	// with the given devices. Devices marked as the current device are
	// skipped: the local row is owned elsewhere and never synced in.
	ReplaceRemoteDevices(ctx context.Context, devices []domain.RemoteDevice) error

	// GetRemoteDevices returns all registry rows.
	GetRemoteDevices(ctx context.Context) ([]domain.RemoteDevice, error)
}
