package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected key of %d bytes, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))
	plaintext := []byte(`{"email":"a@b.com","password":"pw1"}`)

	sealed, err := Seal(key, plaintext)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "pw1")

	got, err := Open(key, sealed)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSeal_FreshNonceEachTime(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))

	a, err := Seal(key, []byte("same"))
	require.NoError(t, err)
	b, err := Seal(key, []byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_Failures(t *testing.T) {
	key := DeriveKey([]byte("pass"), []byte("salt"))
	other := DeriveKey([]byte("other"), []byte("salt"))

	sealed, err := Seal(key, []byte("payload"))
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := Open(other, sealed)
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("tampered", func(t *testing.T) {
		bad := append([]byte(nil), sealed...)
		bad[len(bad)-1] ^= 0xFF
		_, err := Open(key, bad)
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Open(key, sealed[:4])
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := Open([]byte("short"), sealed)
		require.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded := HashPassword([]byte("pw1"))
	assert.NotContains(t, encoded, "pw1")

	ok, err := VerifyPassword(encoded, []byte("pw1"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(encoded, []byte("wrong"))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NotEqual(t, encoded, HashPassword([]byte("pw1")), "salts must differ")
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, encoded := range []string{"", "plain", "bcrypt$aa$bb", "argon2id$zz$00", "argon2id$00$zz"} {
		_, err := VerifyPassword(encoded, []byte("pw"))
		require.ErrorIs(t, err, ErrMalformedHash, encoded)
	}
}
