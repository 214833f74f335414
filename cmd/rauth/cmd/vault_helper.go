package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ervan0707/r-auth/internal/config"
	"github.com/ervan0707/r-auth/internal/keyring"
	"github.com/ervan0707/r-auth/internal/vault"
)

// loadConfig resolves the effective configuration, with the --dir flag taking
// priority over the RAUTH_DIR environment variable and the platform default.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dirFlag != "" {
		cfg.Dir = dirFlag
	}
	return cfg, nil
}

// newVault builds the vault for the configured directory without loading it.
func newVault() (*vault.Vault, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("using vault directory", "dir", cfg.Dir)
	return vault.New(cfg.Dir, keyring.New(cfg.Dir)), cfg, nil
}

// openVault builds the vault and loads it into memory.
func openVault() (*vault.Vault, *config.Config, error) {
	v, cfg, err := newVault()
	if err != nil {
		return nil, nil, err
	}

	if err := v.Load(); err != nil {
		if errors.Is(err, vault.ErrNotInitialized) {
			return nil, nil, fmt.Errorf("vault not initialized, run 'rauth init' first")
		}
		return nil, nil, err
	}
	return v, cfg, nil
}
