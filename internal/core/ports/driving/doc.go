// Package driving defines the interfaces through which outer surfaces (CLI)
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; adapters call them.
package driving
