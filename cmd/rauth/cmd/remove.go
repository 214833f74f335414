package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Short:   "Remove an account",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(_ *cobra.Command, args []string) error {
	v, _, err := openVault()
	if err != nil {
		return err
	}

	if err := v.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove account: %w", err)
	}

	Success("Account %q removed", args[0])
	return nil
}
