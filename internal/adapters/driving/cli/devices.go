package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List synced devices and their tabs",
	Long: `Lists every remote device currently attached to the sync account,
most recently active first, together with the tabs it reported.`,
	RunE: runDevices,
}

var forgetCmd = &cobra.Command{
	Use:   "forget <device-guid>",
	Short: "Remove a device and all its tabs",
	Args:  cobra.ExactArgs(1),
	RunE:  runForget,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(forgetCmd)
}

func runDevices(cmd *cobra.Command, _ []string) error {
	if deviceManager == nil {
		return errors.New("device service not configured")
	}

	devices, err := deviceManager.ListDevices(context.Background())
	if err != nil {
		return fmt.Errorf("listing devices: %w", err)
	}

	if len(devices) == 0 {
		cmd.Println("No synced devices.")
		return nil
	}

	for _, device := range devices {
		cmd.Printf("%s (%s) - %d tab(s), modified %s\n",
			device.Client.Name, device.Client.GUID, len(device.Tabs),
			formatTimestamp(device.Client.Modified))
		for _, tab := range device.Tabs {
			cmd.Printf("  %s  %s\n", tab.Title, tab.URL)
		}
	}
	return nil
}

func runForget(cmd *cobra.Command, args []string) error {
	if deviceManager == nil {
		return errors.New("device service not configured")
	}

	guid := args[0]
	if err := deviceManager.ForgetDevice(context.Background(), guid); err != nil {
		return fmt.Errorf("forgetting device: %w", err)
	}

	cmd.Printf("Device %s forgotten.\n", guid)
	return nil
}

// formatTimestamp renders a millisecond epoch timestamp for display.
func formatTimestamp(ms uint64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339)
}
