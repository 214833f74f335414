package keyring

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"
)

// nativeStore stores the master key in the platform secret store (Keychain,
// Credential Manager, or Secret Service) via zalando/go-keyring. The raw key
// bytes are base64-encoded because the underlying stores hold strings.
type nativeStore struct{}

func (nativeStore) Name() string { return "system keyring" }

func (nativeStore) Get() ([]byte, error) {
	encoded, err := gokeyring.Get(Service, Account)
	if err != nil {
		return nil, classify(err)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("stored key is not valid base64: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("stored key has wrong size %d", len(key))
	}
	return key, nil
}

func (nativeStore) Set(key []byte) error {
	if err := gokeyring.Set(Service, Account, base64.StdEncoding.EncodeToString(key)); err != nil {
		return classify(err)
	}
	return nil
}

func (nativeStore) Delete() error {
	err := gokeyring.Delete(Service, Account)
	if err == nil || errors.Is(err, gokeyring.ErrNotFound) {
		return nil
	}
	return classify(err)
}

// classify maps go-keyring errors onto the package error taxonomy. A denied
// or dismissed OS prompt is an access failure; anything else means the store
// could not be reached.
func classify(err error) error {
	if errors.Is(err, gokeyring.ErrNotFound) {
		return ErrNotFound
	}

	msg := strings.ToLower(err.Error())
	for _, s := range []string{"denied", "dismissed", "cancel", "locked"} {
		if strings.Contains(msg, s) {
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
