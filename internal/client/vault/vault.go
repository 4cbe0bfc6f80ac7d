// Package vault provides secure storage for small secrets addressed by a
// (service, account) pair.
//
// Backends:
//   - keyring: the OS credential vault (macOS Keychain, Windows Credential
//     Manager, Secret Service on Linux) via zalando/go-keyring.
//   - sqlite: an AES-GCM sealed entry in a local SQLite database, for
//     headless hosts without a keyring. The key is derived from a
//     passphrase with Argon2id.
//   - memory: a process-local map for tests and demos.
package vault

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when no entry exists.
	ErrNotFound = errors.New("vault entry not found")

	ErrUnknownBackend    = errors.New("unknown vault backend")
	ErrMissingPassphrase = errors.New("vault passphrase is required")
	ErrCorruptSalt       = errors.New("vault salt is missing or malformed")
)

// Vault stores one opaque value per (service, account).
//
// Set overwrites any existing value. Delete of a missing entry is not an
// error.
type Vault interface {
	Get(ctx context.Context, service, account string) ([]byte, error)
	Set(ctx context.Context, service, account string, value []byte) error
	Delete(ctx context.Context, service, account string) error
	Close() error
}

type Backend string

const (
	BackendKeyring Backend = "keyring"
	BackendSQLite  Backend = "sqlite"
	BackendMemory  Backend = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend Backend
	// DSN is the SQLite database path (sqlite backend only).
	DSN string
	// Passphrase seeds the sealing key (sqlite backend only).
	Passphrase string
}

// Open returns the backend selected by opts.
func Open(ctx context.Context, opts Options) (Vault, error) {
	switch opts.Backend {
	case BackendKeyring, "":
		return NewKeyringVault(), nil
	case BackendSQLite:
		return OpenSQLiteVault(ctx, opts.DSN, []byte(opts.Passphrase))
	case BackendMemory:
		return NewMemoryVault(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

func entryKey(service, account string) string {
	return "vault:" + service + "/" + account
}
