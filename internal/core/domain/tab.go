package domain

// Tab represents a single browser tab's url/title/history/last-used-time,
// owned by a remote client or marked local.
type Tab struct {
	// ClientGUID identifies the owning client. Nil marks a local tab: one
	// reported by this device rather than a remote one. Local tabs are never
	// returned by remote-scoped queries and survive remote wipes.
	ClientGUID *string

	// URL is the tab's current location. Required, absolute.
	URL string

	// Title is the tab's page title. Required.
	Title string

	// History holds previously visited URLs, most recent first. May be empty.
	History []string

	// LastUsed is when the tab was last active, in milliseconds since the
	// epoch.
	LastUsed uint64

	// Icon is the favicon location. Transient: never persisted.
	Icon string
}

// IsLocal reports whether the tab has no owning remote client.
func (t Tab) IsLocal() bool {
	return t.ClientGUID == nil
}
