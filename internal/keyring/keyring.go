// Package keyring manages the vault master key. The key lives either in the
// native OS secret store or, when no native store is reachable, in a
// permission-restricted file next to the vault. The key is never written into
// the vault file itself.
package keyring

import (
	"errors"
	"fmt"

	"github.com/ervan0707/r-auth/internal/crypto"
)

const (
	// Service is the logical service name under which the key is stored.
	Service = "r-auth"

	// Account is the entry name for the master key.
	Account = "master-key"

	// KeySize is the master key length in bytes.
	KeySize = crypto.KeySize
)

var (
	// ErrUnavailable is returned when no key store can be reached.
	ErrUnavailable = errors.New("keyring unavailable")

	// ErrAccessDenied is returned when a store is reachable but denies access.
	ErrAccessDenied = errors.New("keyring access denied")

	// ErrNotFound is returned when no master key exists in any store.
	ErrNotFound = errors.New("master key not found")
)

// Store is a single master-key storage tier.
type Store interface {
	// Name identifies the tier in user-facing output.
	Name() string

	// Get returns the stored key, or ErrNotFound when the tier holds none.
	Get() ([]byte, error)

	// Set stores the key, replacing any previous value.
	Set(key []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete() error
}

// Adapter selects between storage tiers, preferring the first one listed.
type Adapter struct {
	tiers []Store
}

// New returns an adapter over the native OS secret store with a file-based
// fallback in dir.
func New(dir string) *Adapter {
	return &Adapter{tiers: []Store{&nativeStore{}, NewFileStore(dir)}}
}

// NewWithStores returns an adapter over an explicit list of tiers.
func NewWithStores(tiers ...Store) *Adapter {
	return &Adapter{tiers: tiers}
}

// Get fetches the master key from the first tier holding one, reporting which
// tier it came from. It returns ErrNotFound when every reachable tier is
// empty, and the first tier failure otherwise.
func (a *Adapter) Get() ([]byte, string, error) {
	var firstErr error
	for _, s := range a.tiers {
		key, err := s.Get()
		if err == nil {
			return key, s.Name(), nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	if firstErr != nil {
		return nil, "", firstErr
	}
	return nil, "", ErrNotFound
}

// Create generates a fresh random master key and stores it in the first tier
// that accepts it, reporting which tier was used. The caller owns the
// returned key and must zero it when done.
func (a *Adapter) Create() ([]byte, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", err
	}

	var firstErr error
	for _, s := range a.tiers {
		if err := s.Set(key); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", s.Name(), err)
			}
			continue
		}
		return key, s.Name(), nil
	}

	crypto.ZeroBytes(key)
	if firstErr != nil {
		return nil, "", firstErr
	}
	return nil, "", ErrUnavailable
}

// Delete removes the master key from every tier. Tiers without a key are
// skipped, so Delete is idempotent.
func (a *Adapter) Delete() error {
	var firstErr error
	for _, s := range a.tiers {
		if err := s.Delete(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", s.Name(), err)
		}
	}
	return firstErr
}
