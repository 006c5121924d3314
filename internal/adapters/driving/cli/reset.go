package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all remote sync state",
	Long: `Deletes every remote device record and every remote tab.
Local tabs are preserved. Remote state is rebuilt on the next sync.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if deviceManager == nil {
		return errors.New("device service not configured")
	}

	if !resetYes && !confirm(cmd, "Discard all remote sync state? [y/N] ") {
		cmd.Println("Aborted.")
		return nil
	}

	if err := deviceManager.Reset(context.Background()); err != nil {
		return fmt.Errorf("resetting sync state: %w", err)
	}

	cmd.Println("Remote sync state discarded. Local tabs preserved.")
	return nil
}

// confirm asks for interactive confirmation on stdin.
func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
