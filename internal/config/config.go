// Package config provides application configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ervan0707/r-auth/internal/totp"
)

// Config holds the settings the CLI layers on top of the core defaults.
type Config struct {
	// Dir is the vault directory. Empty means the platform config dir.
	Dir string

	// Issuer is the name embedded in provisioning URIs.
	Issuer string

	// Defaults for new accounts.
	Digits    int
	Period    int
	Algorithm string
}

// Load reads configuration from the environment with RAUTH_ prefixed keys.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RAUTH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Dir:       v.GetString("dir"),
		Issuer:    v.GetString("issuer"),
		Digits:    v.GetInt("digits"),
		Period:    v.GetInt("period"),
		Algorithm: v.GetString("algorithm"),
	}

	if cfg.Dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine config directory: %w", err)
		}
		cfg.Dir = filepath.Join(base, "r-auth")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dir", "")
	v.SetDefault("issuer", "r-auth")
	v.SetDefault("digits", totp.DefaultDigits)
	v.SetDefault("period", totp.DefaultPeriod)
	v.SetDefault("algorithm", string(totp.SHA1))
}

// Validate checks that the configured defaults are usable.
func (c *Config) Validate() error {
	if c.Digits < totp.MinDigits || c.Digits > totp.MaxDigits {
		return fmt.Errorf("digits must be between %d and %d, got %d", totp.MinDigits, totp.MaxDigits, c.Digits)
	}
	if c.Period <= 0 {
		return fmt.Errorf("period must be positive, got %d", c.Period)
	}
	if _, err := totp.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}
	return nil
}
