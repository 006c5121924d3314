package domain

// Client represents a remote device participating in tab sync.
// It mirrors the client record another device uploads about itself.
type Client struct {
	// GUID is the sync identifier for the client. Empty only transiently,
	// before the sync server has assigned one; persisted as NULL in that case.
	GUID string

	// Name is the human-readable device name.
	Name string

	// Modified is the client record's last modification time, in
	// milliseconds since the epoch.
	Modified uint64

	// Type is the device class reported by the client ("desktop", "mobile").
	// Empty means unknown.
	Type string

	// FormFactor is the hardware form factor ("phone", "tablet", ...).
	FormFactor string

	// OS is the operating system reported by the client.
	OS string

	// Version is the application version running on the client.
	Version string

	// FxADeviceID links the client to its entry in the remote device
	// registry. The joined read only returns clients whose FxADeviceID has
	// a registry entry.
	FxADeviceID string
}

// ClientAndTabs pairs a client with the tabs it reported. It is never
// persisted; the store reconstructs it at read time.
type ClientAndTabs struct {
	Client Client

	// Tabs holds the client's tabs, most recently used first. Never nil.
	Tabs []Tab
}

// ApproximateLastSyncTime returns the most recent LastUsed across the
// client's tabs, or the client's own Modified time when it has none.
func (c ClientAndTabs) ApproximateLastSyncTime() uint64 {
	latest := c.Client.Modified
	for _, tab := range c.Tabs {
		if tab.LastUsed > latest {
			latest = tab.LastUsed
		}
	}
	return latest
}
