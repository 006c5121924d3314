// Package sqlite provides the SQLite-backed implementation of the tabsync
// storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements the store
// interfaces through a single database connection:
//
//   - ClientsAndTabsStore: remote client and tab persistence
//   - ResettableStore: full discard of remote sync state
//   - RemoteDevicesStore: active-device registry persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. The tabs table deliberately carries no foreign key to clients: a tab
// whose client_guid references a missing client is tolerated by storage and
// only filtered out by the joined read.
//
// # Data Location
//
// By default, the database is stored at ~/.tabsync/data/tabs.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode; SQLite serializes write transactions, so
// concurrent callers never observe a partial replace or upsert.
package sqlite
