package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wrenlock-labs/tabsync/internal/core/domain"
)

var tabsCmd = &cobra.Command{
	Use:   "tabs [device-guid]",
	Short: "List tabs for a device",
	Long: `Lists the tabs reported by a device. With no argument, lists this
device's own (local) tabs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTabs,
}

func init() {
	rootCmd.AddCommand(tabsCmd)
}

func runTabs(cmd *cobra.Command, args []string) error {
	if deviceManager == nil {
		return errors.New("device service not configured")
	}

	ctx := context.Background()

	tabs, err := listTabs(ctx, args)
	if err != nil {
		return err
	}

	if len(tabs) == 0 {
		cmd.Println("No tabs.")
		return nil
	}

	for _, tab := range tabs {
		cmd.Printf("%s\n  %s  (last used %s)\n",
			tab.Title, tab.URL, formatTimestamp(tab.LastUsed))
	}
	return nil
}

func listTabs(ctx context.Context, args []string) ([]domain.Tab, error) {
	if len(args) > 0 {
		tabs, err := deviceManager.TabsForDevice(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("getting tabs for device: %w", err)
		}
		return tabs, nil
	}
	tabs, err := deviceManager.LocalTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting local tabs: %w", err)
	}
	return tabs, nil
}
