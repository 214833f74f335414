package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var codeCmd = &cobra.Command{
	Use:   "code <name>",
	Short: "Print the current code for an account",
	Long: `Print the current one-time password for an account, together with the
number of seconds it stays valid.

Examples:
  rauth code github
  rauth code github --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCode,
}

func init() {
	rootCmd.AddCommand(codeCmd)
}

func runCode(_ *cobra.Command, args []string) error {
	v, _, err := openVault()
	if err != nil {
		return err
	}

	code, err := v.CodeFor(args[0], time.Now())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(code)
	}

	fmt.Printf("%s %s\n", Bold(code.Value), Dim("(valid for %ds)", code.RemainingSeconds))
	return nil
}
