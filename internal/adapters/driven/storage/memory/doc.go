// Package memory provides in-memory implementations of the tabsync storage
// ports. They mirror the SQLite adapter's observable semantics (null scoping,
// ordering, the registry existence filter) and back service tests without a
// database file.
package memory
