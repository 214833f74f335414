package keyring

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keyFilename = "master.key"

// fileStore is the fallback tier used when no native secret store is
// reachable. The key is kept base64-encoded in a file readable only by the
// owning user.
type fileStore struct {
	path string
}

// NewFileStore returns the file-based key tier rooted at dir.
func NewFileStore(dir string) Store {
	return &fileStore{path: filepath.Join(dir, keyFilename)}
}

func (s *fileStore) Name() string { return "key file" }

func (s *fileStore) Get() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, ErrNotFound
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %v", ErrAccessDenied, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("stored key is not valid base64: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("stored key has wrong size %d", len(key))
	}
	return key, nil
}

func (s *fileStore) Set(key []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	encoded := base64.StdEncoding.EncodeToString(key) + "\n"
	if err := os.WriteFile(s.path, []byte(encoded), 0600); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *fileStore) Delete() error {
	err := os.Remove(s.path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
