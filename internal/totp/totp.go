// Package totp implements time-based one-time passwords.
//
// The code generation follows:
//   - RFC 6238 - TOTP: Time-Based One-Time Password Algorithm
//   - RFC 4226 - HOTP: An HMAC-Based One-Time Password Algorithm
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"
	"net/url"
	"strconv"
	"strings"

	"github.com/ervan0707/r-auth/internal/secret"
)

const (
	// DefaultDigits is the code length used when an account does not
	// specify one.
	DefaultDigits = 6

	// DefaultPeriod is the code validity window in seconds.
	DefaultPeriod = 30

	// MinDigits and MaxDigits bound the supported code lengths.
	MinDigits = 6
	MaxDigits = 8
)

// Algorithm selects the HMAC hash function used for code generation.
type Algorithm string

const (
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA512 Algorithm = "SHA512"
)

// ParseAlgorithm parses a case-insensitive algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToUpper(strings.TrimSpace(s))) {
	case SHA1:
		return SHA1, nil
	case SHA256:
		return SHA256, nil
	case SHA512:
		return SHA512, nil
	default:
		return "", fmt.Errorf("unsupported algorithm %q (want SHA1, SHA256, or SHA512)", s)
	}
}

func (a Algorithm) newHash() (func() hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", string(a))
	}
}

// Compute generates the code for the given Unix timestamp. It is a pure
// function: identical inputs always produce the identical code.
//
// The counter is the timestamp divided by the period, encoded as an 8-byte
// big-endian integer and fed through HMAC with the selected hash. The digest
// is reduced to a decimal code via the RFC 4226 dynamic truncation.
func Compute(rawSecret []byte, timestamp int64, period, digits int, alg Algorithm) (string, error) {
	if period <= 0 {
		return "", fmt.Errorf("period must be positive, got %d", period)
	}
	if digits < MinDigits || digits > MaxDigits {
		return "", fmt.Errorf("digits must be between %d and %d, got %d", MinDigits, MaxDigits, digits)
	}
	newHash, err := alg.newHash()
	if err != nil {
		return "", err
	}

	counter := uint64(timestamp / int64(period))
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(newHash, rawSecret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation, RFC 4226 section 5.4.
	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	code := value % pow10(digits)
	return fmt.Sprintf("%0*d", digits, code), nil
}

// RemainingValidity returns how many seconds the code for the given timestamp
// stays valid before the next period boundary.
func RemainingValidity(timestamp int64, period int) int {
	return period - int(timestamp%int64(period))
}

// ProvisioningURI builds an otpauth:// URI in the Google Authenticator
// key-URI format, suitable for QR code enrollment.
func ProvisioningURI(label, issuer string, rawSecret []byte, digits, period int, alg Algorithm) string {
	u := url.URL{
		Scheme: "otpauth",
		Host:   "totp",
		Path:   "/" + label,
	}

	q := url.Values{}
	q.Set("secret", secret.Encode(rawSecret))
	q.Set("digits", strconv.Itoa(digits))
	q.Set("period", strconv.Itoa(period))
	q.Set("algorithm", string(alg))
	if issuer != "" {
		q.Set("issuer", issuer)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func pow10(n int) uint32 {
	p := uint32(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
