package keyring

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ervan0707/r-auth/internal/crypto"
)

// brokenStore simulates a native tier that cannot be reached.
type brokenStore struct{}

func (brokenStore) Name() string         { return "broken store" }
func (brokenStore) Get() ([]byte, error) { return nil, ErrUnavailable }
func (brokenStore) Set(key []byte) error { return ErrUnavailable }
func (brokenStore) Delete() error        { return nil }

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return key
}

func TestFileStore_SetGet(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	key := testKey(t)

	if err := s.Set(key); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Errorf("Get = %v, want %v", got, key)
	}
}

func TestFileStore_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := s.Set(testKey(t)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "master.key"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("key file mode = %o, want 0600", perm)
	}
}

func TestFileStore_GetAbsent(t *testing.T) {
	s := NewFileStore(t.TempDir())
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty dir error = %v, want ErrNotFound", err)
	}
}

func TestFileStore_DeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	// Deleting before any key exists must not fail.
	if err := s.Delete(); err != nil {
		t.Fatalf("Delete on absent key: %v", err)
	}

	if err := s.Set(testKey(t)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestAdapter_CreateFallsBackToFile(t *testing.T) {
	dir := t.TempDir()
	a := NewWithStores(brokenStore{}, NewFileStore(dir))

	key, tier, err := a.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer crypto.ZeroBytes(key)

	if tier != "key file" {
		t.Errorf("Create used tier %q, want key file", tier)
	}
	if len(key) != KeySize {
		t.Errorf("Create returned %d-byte key, want %d", len(key), KeySize)
	}

	got, gotTier, err := a.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotTier != "key file" {
		t.Errorf("Get used tier %q, want key file", gotTier)
	}
	if !bytes.Equal(got, key) {
		t.Error("Get returned a different key than Create")
	}
}

func TestAdapter_GetNoKey(t *testing.T) {
	a := NewWithStores(NewFileStore(t.TempDir()))
	if _, _, err := a.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestAdapter_GetAllTiersUnreachable(t *testing.T) {
	a := NewWithStores(brokenStore{})
	if _, _, err := a.Get(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get error = %v, want ErrUnavailable", err)
	}
}

func TestAdapter_CreateNoWritableTier(t *testing.T) {
	a := NewWithStores(brokenStore{})
	if _, _, err := a.Create(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Create error = %v, want ErrUnavailable", err)
	}
}

func TestAdapter_DeleteIdempotent(t *testing.T) {
	dir := t.TempDir()
	a := NewWithStores(NewFileStore(dir))

	key, _, err := a.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	crypto.ZeroBytes(key)

	if err := a.Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := a.Delete(); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}
