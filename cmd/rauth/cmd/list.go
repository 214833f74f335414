package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Long: `List all accounts and their parameters, in the order they were added.

Secrets are never printed. Use 'rauth code <name>' for a code.`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	v, _, err := openVault()
	if err != nil {
		return err
	}

	accounts, err := v.List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(accounts)
	}

	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "No accounts registered.")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Add one with: rauth add NAME")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, Bold("NAME")+"\t"+Bold("ALGORITHM")+"\t"+Bold("DIGITS")+"\t"+Bold("PERIOD")+"\t"+Bold("CREATED"))
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%d\t%ds\t%s\n",
			a.Label, a.Algorithm, a.Digits, a.Period, a.CreatedAt.Local().Format("2006-01-02"))
	}
	return w.Flush()
}
