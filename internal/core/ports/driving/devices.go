package driving

import (
	"context"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

// DeviceManager exposes the synced-device view to outer surfaces.
type DeviceManager interface {
	// ListDevices returns every active remote device with its tabs, most
	// recently modified device first.
	ListDevices(ctx context.Context) ([]domain.ClientAndTabs, error)

	// TabsForDevice returns the tabs reported by one device.
	TabsForDevice(ctx context.Context, guid string) ([]domain.Tab, error)

	// LocalTabs returns this device's own tabs.
	LocalTabs(ctx context.Context) ([]domain.Tab, error)

	// ReplaceLocalTabs replaces this device's own tabs with the given list
	// and returns the number of tabs stored.
	ReplaceLocalTabs(ctx context.Context, tabs []domain.Tab) (int, error)

	// ForgetDevice removes a device and all its tabs.
	ForgetDevice(ctx context.Context, guid string) error

	// Reset discards all remote sync state, preserving local tabs.
	Reset(ctx context.Context) error
}
