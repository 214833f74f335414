package cmd

import (
	"fmt"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/ervan0707/r-auth/internal/crypto"
	"github.com/ervan0707/r-auth/internal/secret"
	"github.com/ervan0707/r-auth/internal/totp"
)

var (
	addDigits    int
	addPeriod    int
	addAlgorithm string
	addIssuer    string
	addNoQR      bool
)

var addCmd = &cobra.Command{
	Use:   "add <name> [secret]",
	Short: "Add a new account",
	Long: `Add a new account to the vault.

When no secret is given, a fresh 20-byte random secret is generated. The
Base32 secret, an otpauth:// provisioning URI, and a QR code are printed so
the account can be enrolled in an authenticator app.

Examples:
  rauth add github
  rauth add work JBSWY3DPEHPK3PXP
  rauth add bank --digits 8 --algorithm SHA256 --period 60`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().IntVar(&addDigits, "digits", 0, "code length (6-8)")
	addCmd.Flags().IntVar(&addPeriod, "period", 0, "code validity window in seconds")
	addCmd.Flags().StringVar(&addAlgorithm, "algorithm", "", "HMAC hash (SHA1, SHA256, SHA512)")
	addCmd.Flags().StringVar(&addIssuer, "issuer", "", "issuer name for the provisioning URI")
	addCmd.Flags().BoolVar(&addNoQR, "no-qr", false, "skip the QR code")
}

func runAdd(_ *cobra.Command, args []string) error {
	v, cfg, err := openVault()
	if err != nil {
		return err
	}

	label := args[0]
	secretText := ""
	if len(args) == 2 {
		secretText = args[1]
	}

	digits := addDigits
	if digits == 0 {
		digits = cfg.Digits
	}
	period := addPeriod
	if period == 0 {
		period = cfg.Period
	}
	algName := addAlgorithm
	if algName == "" {
		algName = cfg.Algorithm
	}
	alg, err := totp.ParseAlgorithm(algName)
	if err != nil {
		return err
	}
	issuer := addIssuer
	if issuer == "" {
		issuer = cfg.Issuer
	}

	account, err := v.Add(label, secretText, alg, digits, period)
	if err != nil {
		return fmt.Errorf("failed to add account: %w", err)
	}

	raw, err := secret.Decode(account.Secret)
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(raw)

	uri := totp.ProvisioningURI(account.Label, issuer, raw, account.Digits, account.Period, account.Algorithm)

	PrintKeyValue("Secret", account.Secret)
	PrintKeyValue("URI", uri)

	if !addNoQR {
		qr, err := qrcode.New(uri, qrcode.Medium)
		if err != nil {
			Warning("could not render QR code: %v", err)
		} else {
			fmt.Fprint(os.Stdout, qr.ToSmallString(false))
		}
	}

	Success("Account %q added", account.Label)
	return nil
}
