// Package cmd provides the CLI commands for rauth.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ervan0707/r-auth/internal/logging"
)

var (
	dirFlag    string
	jsonOutput bool
	verbose    bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "rauth",
	Short: "Encrypted TOTP authenticator for the command line",
	Long: `rauth stores TOTP secrets in a local vault encrypted with a master key
held in your system keyring, and generates authentication codes on demand.

Get started:
  rauth init               Create the master key and an empty vault
  rauth add NAME           Add an account with a generated secret
  rauth code NAME          Print the current code for an account

Examples:
  rauth init
  rauth add github
  rauth add work JBSWY3DPEHPK3PXP --digits 8
  rauth code github
  rauth show`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing any failure on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		Error("%v", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "vault directory (default OS config dir + /r-auth)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("RAUTH")
	viper.AutomaticEnv()

	logging.Setup(isVerbose())
}

// isVerbose returns whether verbose mode is enabled.
func isVerbose() bool {
	if verbose {
		return true
	}
	return viper.GetBool("verbose")
}
