// Package services implements the driving ports on top of the driven ports.
//
// Services contain the thin orchestration between outer surfaces and
// storage. Sync conflict resolution happens upstream in the sync engine;
// services here never resolve conflicts, they only read and apply state.
package services
