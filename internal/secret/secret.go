// Package secret handles the Base32 representation of shared TOTP secrets
// as specified in RFC 4648, and generation of fresh random secrets.
package secret

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
)

const (
	// MinLength is the smallest acceptable secret size in bytes.
	MinLength = 10

	// DefaultLength is the size of generated secrets in bytes.
	DefaultLength = 20
)

// ErrInvalidSecret is returned when a secret cannot be decoded or is too short.
var ErrInvalidSecret = errors.New("invalid secret")

// Decode parses a Base32 secret. Padded and unpadded input is accepted in any
// case; surrounding whitespace is ignored.
func Decode(text string) ([]byte, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	s = strings.TrimRight(s, "=")
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidSecret)
	}

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	return raw, nil
}

// Encode renders raw secret bytes as padded Base32, the form authenticator
// apps expect in provisioning URIs.
func Encode(raw []byte) string {
	return base32.StdEncoding.EncodeToString(raw)
}

// Generate produces length cryptographically secure random bytes.
// Requests below MinLength are rejected.
func Generate(length int) ([]byte, error) {
	if length < MinLength {
		return nil, fmt.Errorf("%w: secret must be at least %d bytes, got %d", ErrInvalidSecret, MinLength, length)
	}

	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return raw, nil
}
