package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ervan0707/r-auth/internal/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the master key and an empty vault",
	Long: `Create the master encryption key and an empty vault.

The key is stored in your system keyring when one is reachable, or in a
permission-restricted file next to the vault otherwise. The vault file never
contains the key.

Examples:
  rauth init
  rauth init --dir ~/my-vault`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	v, _, err := newVault()
	if err != nil {
		return err
	}

	tier, err := v.Init()
	if err != nil {
		if errors.Is(err, vault.ErrAlreadyInitialized) {
			return fmt.Errorf("vault already exists at %s", v.Path())
		}
		return fmt.Errorf("failed to initialize vault: %w", err)
	}

	Success("Vault created at %s", v.Path())
	Info("Master key stored in %s", tier)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Next steps:")
	fmt.Fprintln(os.Stderr, "  rauth add NAME           Add an account")
	fmt.Fprintln(os.Stderr, "  rauth code NAME          Print the current code")
	fmt.Fprintln(os.Stderr, "  rauth show               Live view of all codes")

	return nil
}
