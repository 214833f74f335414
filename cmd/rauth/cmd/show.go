package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show live codes for all accounts",
	Long: `Show a live view of the codes for every account, refreshed exactly when
they roll over. Press Ctrl+C to exit.

The view only reads the vault; it never writes.`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("show requires a terminal; use 'rauth code <name>' in scripts")
	}

	v, _, err := openVault()
	if err != nil {
		return err
	}

	accounts, err := v.List()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "No accounts registered.")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		now := time.Now()

		// Clear screen and move the cursor home.
		fmt.Print("\033[2J\033[H")
		fmt.Println(Bold("Current TOTP codes"))
		fmt.Println("------------------")

		// Sleep until the soonest rollover so the display updates exactly
		// at the period boundary. A failure here aborts the loop; a stale
		// code must never stay on screen.
		next := 0
		for _, a := range accounts {
			code, err := v.CodeFor(a.Label, now)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", a.Label, Bold(code.Value))
			if next == 0 || code.RemainingSeconds < next {
				next = code.RemainingSeconds
			}
		}

		fmt.Println()
		fmt.Println(Dim("Refreshing in %ds... (Ctrl+C to exit)", next))

		if next < 1 {
			next = 1
		}
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-time.After(time.Duration(next) * time.Second):
		}
	}
}
