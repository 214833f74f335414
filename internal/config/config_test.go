package config

import (
	"path/filepath"
	"testing"

	"github.com/ervan0707/r-auth/internal/totp"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Dir == "" {
		t.Error("Dir is empty, want platform config dir")
	}
	if filepath.Base(cfg.Dir) != "r-auth" {
		t.Errorf("Dir = %q, want a path ending in r-auth", cfg.Dir)
	}
	if cfg.Issuer != "r-auth" {
		t.Errorf("Issuer = %q, want r-auth", cfg.Issuer)
	}
	if cfg.Digits != totp.DefaultDigits {
		t.Errorf("Digits = %d, want %d", cfg.Digits, totp.DefaultDigits)
	}
	if cfg.Period != totp.DefaultPeriod {
		t.Errorf("Period = %d, want %d", cfg.Period, totp.DefaultPeriod)
	}
	if cfg.Algorithm != string(totp.SHA1) {
		t.Errorf("Algorithm = %q, want SHA1", cfg.Algorithm)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RAUTH_DIR", dir)
	t.Setenv("RAUTH_DIGITS", "8")
	t.Setenv("RAUTH_ALGORITHM", "SHA256")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if cfg.Digits != 8 {
		t.Errorf("Digits = %d, want 8", cfg.Digits)
	}
	if cfg.Algorithm != "SHA256" {
		t.Errorf("Algorithm = %q, want SHA256", cfg.Algorithm)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"RAUTH_DIGITS", "9"},
		{"RAUTH_DIGITS", "5"},
		{"RAUTH_PERIOD", "0"},
		{"RAUTH_PERIOD", "-30"},
		{"RAUTH_ALGORITHM", "MD5"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}
