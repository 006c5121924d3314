// Package cli provides the cobra command surface for tabsync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wrenlock-labs/tabsync/internal/core/ports/driving"
)

// version is the application version, injected at build time.
var version = "dev"

// deviceManager is the driving port the commands act through.
// It is injected via Setup before Execute runs.
var deviceManager driving.DeviceManager

var rootCmd = &cobra.Command{
	Use:   "tabsync",
	Short: "Inspect and manage synced browser tabs",
	Long: `tabsync is the persistence layer for multi-device browser tab sync.

It stores, per remote device, the set of open tabs that device reported,
and lets you inspect, replace, and discard that data.`,
	SilenceUsage: true,
}

// Setup injects the services the commands depend on.
func Setup(dm driving.DeviceManager, appVersion string) {
	deviceManager = dm
	if appVersion != "" {
		version = appVersion
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
