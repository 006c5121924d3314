// Package domain defines the core entities for tabsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Client: A remote device participating in tab sync
//   - Tab: A single browser tab reported by a client
//   - ClientAndTabs: A client paired with its tabs, built at read time
//   - RemoteDevice: An entry in the active-device registry
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
