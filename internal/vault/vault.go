// Package vault implements the encrypted account store. Accounts live in a
// single JSON file encrypted with the master key held by the keyring; the
// file is replaced atomically on every mutation so an interrupted write never
// corrupts the previous vault.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ervan0707/r-auth/internal/crypto"
	"github.com/ervan0707/r-auth/internal/keyring"
	"github.com/ervan0707/r-auth/internal/secret"
	"github.com/ervan0707/r-auth/internal/totp"
)

const (
	// FormatVersion is the on-disk envelope version.
	FormatVersion = 1

	vaultFilename = "vault.json"
)

// envelope is the on-disk representation of the encrypted vault.
// Ciphertext carries nonce + ciphertext + tag as produced by the cipher.
type envelope struct {
	FormatVersion int    `json:"format_version"`
	VaultID       string `json:"vault_id"`
	Ciphertext    []byte `json:"ciphertext"`
}

// payload is the plaintext serialized inside the envelope. The account slice
// preserves insertion order.
type payload struct {
	Accounts []Account `json:"accounts"`
}

// Vault is the in-memory account store for one process invocation.
type Vault struct {
	dir      string
	keys     *keyring.Adapter
	id       string
	accounts []Account
	loaded   bool
}

// New returns a vault rooted at dir, with keys supplying the master key.
// The vault starts unloaded; call Init or Load before anything else.
func New(dir string, keys *keyring.Adapter) *Vault {
	return &Vault{dir: dir, keys: keys}
}

// Path returns the vault file location.
func (v *Vault) Path() string {
	return filepath.Join(v.dir, vaultFilename)
}

// formatAAD is the associated data bound into the authentication tag.
func formatAAD(version int) []byte {
	return fmt.Appendf(nil, "r-auth/vault/v%d", version)
}

// Init ensures a master key exists (creating one if needed), then writes a
// fresh empty vault. It reports which keyring tier holds the key and fails
// with ErrAlreadyInitialized when a vault file is already present.
func (v *Vault) Init() (string, error) {
	if _, err := os.Stat(v.Path()); err == nil {
		return "", ErrAlreadyInitialized
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %v", ErrVaultIO, err)
	}

	key, tier, err := v.keys.Get()
	switch {
	case errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrUnavailable):
		// No key anywhere, or the native store is unreachable and the
		// fallback holds none. No vault file exists yet, so a fresh key
		// in the first writable tier is safe. An access denial is not a
		// license to mint a second key; that still aborts.
		key, tier, err = v.keys.Create()
	}
	if err != nil {
		return "", err
	}
	crypto.ZeroBytes(key)

	v.id = uuid.New().String()
	v.accounts = nil
	v.loaded = true

	if err := v.Save(); err != nil {
		v.loaded = false
		return "", err
	}

	slog.Debug("vault initialized", "path", v.Path(), "tier", tier)
	return tier, nil
}

// Load reads and decrypts the vault file into memory. Keyring and decryption
// failures propagate unchanged.
func (v *Vault) Load() error {
	data, err := os.ReadFile(v.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("%w: %v", ErrVaultIO, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: malformed vault file: %v", crypto.ErrDecryptionFailed, err)
	}
	if env.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: unsupported format version %d", crypto.ErrDecryptionFailed, env.FormatVersion)
	}

	key, tier, err := v.keys.Get()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(key)

	plain, err := crypto.Decrypt(key, env.Ciphertext, formatAAD(env.FormatVersion))
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(plain)

	var p payload
	if err := json.Unmarshal(plain, &p); err != nil {
		return fmt.Errorf("%w: malformed vault payload: %v", crypto.ErrDecryptionFailed, err)
	}

	v.id = env.VaultID
	v.accounts = p.Accounts
	v.loaded = true

	slog.Debug("vault loaded", "path", v.Path(), "tier", tier, "accounts", len(v.accounts))
	return nil
}

// requireLoaded guards accessors against use before Init or Load.
func (v *Vault) requireLoaded() error {
	if !v.loaded {
		return ErrNotInitialized
	}
	return nil
}

// Add validates and appends a new account, then persists the vault. When
// secretText is empty a fresh random secret is generated. Zero digits,
// period, or algorithm take the defaults.
func (v *Vault) Add(label, secretText string, alg totp.Algorithm, digits, period int) (Account, error) {
	if err := v.requireLoaded(); err != nil {
		return Account{}, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return Account{}, ErrInvalidLabel
	}
	if v.indexOf(label) >= 0 {
		return Account{}, fmt.Errorf("%w: %q", ErrDuplicateAccount, label)
	}

	var raw []byte
	var err error
	if secretText == "" {
		raw, err = secret.Generate(secret.DefaultLength)
	} else {
		raw, err = secret.Decode(secretText)
	}
	if err != nil {
		return Account{}, err
	}
	defer crypto.ZeroBytes(raw)

	if alg == "" {
		alg = totp.SHA1
	}
	if digits == 0 {
		digits = totp.DefaultDigits
	}
	if period == 0 {
		period = totp.DefaultPeriod
	}

	account := Account{
		Label:     label,
		Secret:    secret.Encode(raw),
		Algorithm: alg,
		Digits:    digits,
		Period:    period,
		CreatedAt: time.Now().UTC(),
	}
	if err := account.validate(); err != nil {
		return Account{}, err
	}

	v.accounts = append(v.accounts, account)
	if err := v.Save(); err != nil {
		v.accounts = v.accounts[:len(v.accounts)-1]
		return Account{}, err
	}
	return account, nil
}

// Remove deletes the account with the given label and persists the vault.
func (v *Vault) Remove(label string) error {
	if err := v.requireLoaded(); err != nil {
		return err
	}

	i := v.indexOf(label)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrAccountNotFound, label)
	}

	removed := v.accounts[i]
	v.accounts = slices.Delete(v.accounts, i, i+1)
	if err := v.Save(); err != nil {
		v.accounts = slices.Insert(v.accounts, i, removed)
		return err
	}
	return nil
}

// List returns account metadata in insertion order. Secrets are never
// included.
func (v *Vault) List() ([]Summary, error) {
	if err := v.requireLoaded(); err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(v.accounts))
	for i, a := range v.accounts {
		summaries[i] = a.summary()
	}
	return summaries, nil
}

// GetSecret returns the decoded secret for the given label. The caller must
// zero the returned bytes when done.
func (v *Vault) GetSecret(label string) ([]byte, error) {
	if err := v.requireLoaded(); err != nil {
		return nil, err
	}

	i := v.indexOf(label)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, label)
	}
	return secret.Decode(v.accounts[i].Secret)
}

// CodeFor computes the one-time password for the given label at time now.
func (v *Vault) CodeFor(label string, now time.Time) (Code, error) {
	if err := v.requireLoaded(); err != nil {
		return Code{}, err
	}

	i := v.indexOf(label)
	if i < 0 {
		return Code{}, fmt.Errorf("%w: %q", ErrAccountNotFound, label)
	}
	a := v.accounts[i]

	raw, err := secret.Decode(a.Secret)
	if err != nil {
		return Code{}, err
	}
	defer crypto.ZeroBytes(raw)

	value, err := totp.Compute(raw, now.Unix(), a.Period, a.Digits, a.Algorithm)
	if err != nil {
		return Code{}, err
	}

	return Code{
		Value:            value,
		RemainingSeconds: totp.RemainingValidity(now.Unix(), a.Period),
	}, nil
}

// indexOf returns the position of the account with the given label, or -1.
// Labels match case-sensitively.
func (v *Vault) indexOf(label string) int {
	for i, a := range v.accounts {
		if a.Label == label {
			return i
		}
	}
	return -1
}

// Save serializes, encrypts, and writes the vault. The file is written to a
// temporary path in the same directory, synced, then renamed over the target,
// so a reader always observes either the previous or the new blob.
func (v *Vault) Save() error {
	if err := v.requireLoaded(); err != nil {
		return err
	}

	plain, err := json.Marshal(payload{Accounts: v.accounts})
	if err != nil {
		return fmt.Errorf("serialize vault: %w", err)
	}
	defer crypto.ZeroBytes(plain)

	key, _, err := v.keys.Get()
	if err != nil {
		return err
	}
	defer crypto.ZeroBytes(key)

	blob, err := crypto.Encrypt(key, plain, formatAAD(FormatVersion))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(envelope{
		FormatVersion: FormatVersion,
		VaultID:       v.id,
		Ciphertext:    blob,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize envelope: %w", err)
	}

	return v.writeAtomic(data)
}

func (v *Vault) writeAtomic(data []byte) error {
	if err := os.MkdirAll(v.dir, 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrVaultIO, err)
	}

	tmp, err := os.CreateTemp(v.dir, vaultFilename+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVaultIO, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(0600)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, v.Path())
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrVaultIO, err)
	}
	return nil
}

// Reset deletes the master key from every keyring tier and removes the vault
// file. Missing key or file are not errors, so Reset is idempotent.
func (v *Vault) Reset() error {
	if err := v.keys.Delete(); err != nil {
		return err
	}

	if err := os.Remove(v.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrVaultIO, err)
	}

	v.id = ""
	v.accounts = nil
	v.loaded = false
	return nil
}
