// Package session persists the credentials of the last successful login so
// the client can restore the session on its next start.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shoppal/internal/client/models"
	"github.com/dmitrijs2005/shoppal/internal/client/vault"
	"github.com/dmitrijs2005/shoppal/internal/common"
	"github.com/dmitrijs2005/shoppal/internal/logging"
)

// ErrStorage wraps every failure to persist or remove the stored session.
var ErrStorage = errors.New("session storage error")

// Store holds at most one set of credentials.
//
// Load never fails: a missing, unreadable or undecodable entry is reported
// as absent (ok == false). Clear is idempotent.
type Store interface {
	Save(ctx context.Context, creds models.Credentials) error
	Load(ctx context.Context) (creds models.Credentials, ok bool)
	Clear(ctx context.Context) error
}

// VaultStore keeps the credentials JSON-encoded in a single vault entry.
type VaultStore struct {
	vault   vault.Vault
	service string
	account string
	logger  logging.Logger
}

// NewVaultStore returns a Store using the fixed ShopPal service/account pair.
func NewVaultStore(v vault.Vault, logger logging.Logger) *VaultStore {
	return &VaultStore{
		vault:   v,
		service: common.VaultService,
		account: common.VaultAccount,
		logger:  logger,
	}
}

func (s *VaultStore) Save(ctx context.Context, creds models.Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorage, err)
	}
	defer common.WipeByteArray(payload)

	if err := s.vault.Set(ctx, s.service, s.account, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

func (s *VaultStore) Load(ctx context.Context) (models.Credentials, bool) {
	payload, err := s.vault.Get(ctx, s.service, s.account)
	if errors.Is(err, vault.ErrNotFound) {
		return models.Credentials{}, false
	}
	if err != nil {
		s.logger.Warn(ctx, "stored session unreadable", "error", err)
		return models.Credentials{}, false
	}
	defer common.WipeByteArray(payload)

	var creds models.Credentials
	if err := json.Unmarshal(payload, &creds); err != nil {
		s.logger.Warn(ctx, "stored session undecodable", "error", err)
		return models.Credentials{}, false
	}
	if creds.IsZero() {
		s.logger.Warn(ctx, "stored session has no email")
		return models.Credentials{}, false
	}

	return models.NewCredentials(creds.Email, creds.Password), true
}

func (s *VaultStore) Clear(ctx context.Context) error {
	if err := s.vault.Delete(ctx, s.service, s.account); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	creds *models.Credentials
	// SaveErr, when set, is returned by Save without storing anything.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, creds models.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return fmt.Errorf("%w: %w", ErrStorage, m.SaveErr)
	}
	m.creds = &creds
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (models.Credentials, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.creds == nil {
		return models.Credentials{}, false
	}
	return *m.creds, true
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = nil
	return nil
}
