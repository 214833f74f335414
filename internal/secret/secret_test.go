package secret

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"unpadded", "JBSWY3DPEHPK3PXP", []byte("Hello!\xDE\xAD\xBE\xEF")},
		{"short", "JBSWY3DP", []byte("Hello")},
		{"explicit_padding", "JBSWY3DPEB3W64TMMQ======", []byte("Hello world")},
		{"lowercase", "jbswy3dpehpk3pxp", []byte("Hello!\xDE\xAD\xBE\xEF")},
		{"surrounding_whitespace", "  JBSWY3DP \n", []byte("Hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.input, err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"padding_only", "===="},
		{"invalid_alphabet", "0189!!"},
		{"interior_padding", "JBSW=Y3DP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if !errors.Is(err, ErrInvalidSecret) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidSecret", tt.input, err)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, n := range []int{1, 5, 10, 16, 20, 33, 64} {
		raw := make([]byte, n)
		if _, err := rand.Read(raw); err != nil {
			t.Fatalf("rand.Read: %v", err)
		}

		decoded, err := Decode(Encode(raw))
		if err != nil {
			t.Fatalf("Decode(Encode(%d bytes)) error = %v", n, err)
		}
		if !bytes.Equal(decoded, raw) {
			t.Errorf("round trip of %d bytes: got %v, want %v", n, decoded, raw)
		}
	}
}

func TestGenerate(t *testing.T) {
	raw, err := Generate(DefaultLength)
	if err != nil {
		t.Fatalf("Generate(%d) error = %v", DefaultLength, err)
	}
	if len(raw) != DefaultLength {
		t.Errorf("Generate(%d) returned %d bytes", DefaultLength, len(raw))
	}

	// Verify secrets are random (generate two and compare)
	raw2, err := Generate(DefaultLength)
	if err != nil {
		t.Fatalf("Generate(%d) second call error = %v", DefaultLength, err)
	}
	if bytes.Equal(raw, raw2) {
		t.Error("Generate() returned identical secrets")
	}
}

func TestGenerate_TooShort(t *testing.T) {
	for _, n := range []int{0, 1, MinLength - 1} {
		if _, err := Generate(n); !errors.Is(err, ErrInvalidSecret) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidSecret", n, err)
		}
	}
}
