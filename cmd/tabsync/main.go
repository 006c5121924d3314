// Command tabsync wires the tabsync storage, services, and CLI together.
package main

import (
	"fmt"
	"os"

	fileconfig "github.com/wrenlock-labs/tabsync/internal/adapters/driven/config/file"
	"github.com/wrenlock-labs/tabsync/internal/adapters/driven/storage/sqlite"
	"github.com/wrenlock-labs/tabsync/internal/adapters/driving/cli"
	"github.com/wrenlock-labs/tabsync/internal/core/services"
	"github.com/wrenlock-labs/tabsync/internal/logging"
)

// appVersion is overridden at build time via -ldflags.
var appVersion = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tabsync:", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := fileconfig.NewConfigStore(os.Getenv("TABSYNC_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(logging.Options{
		Level:  config.GetString("log.level"),
		Format: config.GetString("log.format"),
		File:   config.GetString("log.file"),
	})

	store, err := sqlite.NewStore(config.GetString("storage.data_dir"), logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	deviceService := services.NewDeviceService(store.ClientsAndTabsStore(), store.ResettableStore())

	cli.Setup(deviceService, appVersion)
	return cli.Execute()
}
