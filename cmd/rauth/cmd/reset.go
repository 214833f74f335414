package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the master key and all accounts",
	Long: `Delete the master key from every keyring tier and remove the vault file.

This cannot be undone. By default you will be asked to confirm; use --yes to
skip the prompt.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetForce, "yes", "y", false, "Skip confirmation prompt")
}

func runReset(_ *cobra.Command, _ []string) error {
	if !resetForce {
		Warning("This will delete all accounts and the master key.")
		if !PromptConfirm("This action cannot be undone. Are you sure?") {
			Info("Reset cancelled")
			return nil
		}
	}

	// Reset works on whatever state exists; no load required.
	v, _, err := newVault()
	if err != nil {
		return err
	}

	if err := v.Reset(); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}

	Success("Reset complete - all data has been cleared")
	return nil
}
