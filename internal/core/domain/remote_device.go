package domain

// RemoteDevice is an entry in the active-device registry. The registry is
// the source of truth for which devices are currently attached to the sync
// account; the clients/tabs join consults it as an existence filter.
type RemoteDevice struct {
	// GUID is the registry identifier. Clients link to it via FxADeviceID.
	GUID string

	// Name is the device's display name.
	Name string

	// Type is the device class ("desktop", "mobile").
	Type string

	// IsCurrentDevice marks the device this process runs on. The current
	// device's registry row is never replaced by registry updates.
	IsCurrentDevice bool

	// LastAccessTime is when the device last talked to the sync server,
	// in milliseconds since the epoch.
	LastAccessTime uint64
}
