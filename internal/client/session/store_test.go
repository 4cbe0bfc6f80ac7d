package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/shoppal/internal/client/models"
	"github.com/dmitrijs2005/shoppal/internal/client/vault"
	"github.com/dmitrijs2005/shoppal/internal/common"
	"github.com/dmitrijs2005/shoppal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingVault returns the configured errors from every call.
type failingVault struct {
	getErr, setErr, deleteErr error
}

func (f *failingVault) Get(context.Context, string, string) ([]byte, error) { return nil, f.getErr }
func (f *failingVault) Set(context.Context, string, string, []byte) error   { return f.setErr }
func (f *failingVault) Delete(context.Context, string, string) error        { return f.deleteErr }
func (f *failingVault) Close() error                                        { return nil }

func newStore(t *testing.T) (*VaultStore, *vault.MemoryVault, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	v := vault.NewMemoryVault()
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewVaultStore(v, l), v, &buf
}

func TestVaultStore_SaveLoadClear(t *testing.T) {
	s, v, _ := newStore(t)
	ctx := context.Background()

	_, ok := s.Load(ctx)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, models.NewCredentials("a@b.com", "pw1")))

	raw, err := v.Get(ctx, common.VaultService, common.VaultAccount)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com","password":"pw1"}`, string(raw))

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, models.Credentials{Email: "a@b.com", Password: "pw1"}, got)

	require.NoError(t, s.Save(ctx, models.NewCredentials("c@d.com", "pw2")))
	got, ok = s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "c@d.com", got.Email, "save must overwrite")
	assert.Equal(t, 1, v.Len())

	require.NoError(t, s.Clear(ctx))
	_, ok = s.Load(ctx)
	require.False(t, ok)
	require.NoError(t, s.Clear(ctx), "clear must be idempotent")
}

func TestVaultStore_LoadTreatsGarbageAsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: "not json"},
		{name: "wrong shape", payload: `["a@b.com","pw"]`},
		{name: "missing email", payload: `{"password":"pw"}`},
		{name: "wrong types", payload: `{"email":1,"password":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, v, buf := newStore(t)
			ctx := context.Background()
			require.NoError(t, v.Set(ctx, common.VaultService, common.VaultAccount, []byte(tt.payload)))

			got, ok := s.Load(ctx)
			assert.False(t, ok)
			assert.True(t, got.IsZero())
			assert.Contains(t, buf.String(), "level=WARN")
			assert.NotContains(t, buf.String(), `"pw"`)
		})
	}
}

func TestVaultStore_LoadNormalizesEmail(t *testing.T) {
	s, v, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, v.Set(ctx, common.VaultService, common.VaultAccount, []byte(`{"email":"USER@Example.com","password":"pw"}`)))

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", got.Email)
}

func TestVaultStore_VaultErrors(t *testing.T) {
	boom := errors.New("keychain locked")
	s := NewVaultStore(&failingVault{getErr: boom, setErr: boom, deleteErr: boom}, logging.Discard())
	ctx := context.Background()

	err := s.Save(ctx, models.NewCredentials("a@b.com", "pw"))
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, boom)

	_, ok := s.Load(ctx)
	require.False(t, ok, "read failures are reported as absent")

	err = s.Clear(ctx)
	require.ErrorIs(t, err, ErrStorage)
	require.ErrorIs(t, err, boom)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok := s.Load(ctx)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, models.NewCredentials("a@b.com", "pw1")))
	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, models.Credentials{Email: "a@b.com", Password: "pw1"}, got)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	_, ok = s.Load(ctx)
	require.False(t, ok)

	s.SaveErr = errors.New("disk full")
	require.ErrorIs(t, s.Save(ctx, models.NewCredentials("a@b.com", "pw1")), ErrStorage)
	_, ok = s.Load(ctx)
	require.False(t, ok)
}
