package vault

import "errors"

var (
	// ErrAlreadyInitialized is returned when init finds an existing vault file.
	ErrAlreadyInitialized = errors.New("vault already initialized")

	// ErrNotInitialized is returned when no vault file exists, or when an
	// operation runs before the vault is loaded into memory.
	ErrNotInitialized = errors.New("vault not initialized")

	// ErrDuplicateAccount is returned when adding a label that already exists.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrAccountNotFound is returned when a label cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidLabel is returned when an account label is empty.
	ErrInvalidLabel = errors.New("account label cannot be empty")

	// ErrVaultIO wraps filesystem failures on the vault file.
	ErrVaultIO = errors.New("vault file error")
)
