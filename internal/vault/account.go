package vault

import (
	"fmt"
	"time"

	"github.com/ervan0707/r-auth/internal/secret"
	"github.com/ervan0707/r-auth/internal/totp"
)

// Account is a stored TOTP credential. The secret is kept as padded Base32,
// the same form it is typed and displayed in.
type Account struct {
	Label     string         `json:"label"`
	Secret    string         `json:"secret"`
	Algorithm totp.Algorithm `json:"algorithm"`
	Digits    int            `json:"digits"`
	Period    int            `json:"period"`
	CreatedAt time.Time      `json:"created_at"`
}

// Summary is the listing view of an account. It never carries the secret.
type Summary struct {
	Label     string         `json:"label"`
	Algorithm totp.Algorithm `json:"algorithm"`
	Digits    int            `json:"digits"`
	Period    int            `json:"period"`
	CreatedAt time.Time      `json:"created_at"`
}

// Code is a generated one-time password together with the number of seconds
// it stays valid.
type Code struct {
	Value            string `json:"value"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

func (a Account) summary() Summary {
	return Summary{
		Label:     a.Label,
		Algorithm: a.Algorithm,
		Digits:    a.Digits,
		Period:    a.Period,
		CreatedAt: a.CreatedAt,
	}
}

func (a Account) validate() error {
	if a.Label == "" {
		return ErrInvalidLabel
	}
	raw, err := secret.Decode(a.Secret)
	if err != nil {
		return err
	}
	if len(raw) < secret.MinLength {
		return fmt.Errorf("%w: secret must be at least %d bytes, got %d",
			secret.ErrInvalidSecret, secret.MinLength, len(raw))
	}
	if a.Digits < totp.MinDigits || a.Digits > totp.MaxDigits {
		return fmt.Errorf("digits must be between %d and %d, got %d",
			totp.MinDigits, totp.MaxDigits, a.Digits)
	}
	if a.Period <= 0 {
		return fmt.Errorf("period must be positive, got %d", a.Period)
	}
	if _, err := totp.ParseAlgorithm(string(a.Algorithm)); err != nil {
		return err
	}
	return nil
}
