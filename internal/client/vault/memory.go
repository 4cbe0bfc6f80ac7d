package vault

import (
	"context"
	"sync"
)

// MemoryVault keeps entries in process memory. Safe for concurrent use.
type MemoryVault struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{entries: make(map[string][]byte)}
}

func (m *MemoryVault) Get(_ context.Context, service, account string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[entryKey(service, account)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryVault) Set(_ context.Context, service, account string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entryKey(service, account)] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryVault) Delete(_ context.Context, service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, entryKey(service, account))
	return nil
}

// Len reports the number of stored entries.
func (m *MemoryVault) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryVault) Close() error {
	return nil
}
