// Package cryptox contains the cryptographic primitives used by ShopPal:
// Argon2id key derivation and password hashing, and AES-GCM sealing of
// values kept in the local vault.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shoppal/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of derived keys (AES-256).
	KeySize = 32
	// SaltSize is the length of salts generated by this package.
	SaltSize = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4

	hashPrefix = "argon2id"
)

var (
	ErrDecrypt       = errors.New("decryption failed")
	ErrInvalidKey    = errors.New("invalid key size")
	ErrMalformedHash = errors.New("malformed password hash")
)

// DeriveKey derives a KeySize-byte key from password and salt with Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// Seal encrypts plaintext with AES-GCM under key. The random nonce is
// prepended to the returned ciphertext.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal. Any tampering, truncation or a wrong key yields ErrDecrypt.
func Open(key, sealed []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < aead.NonceSize() {
		return nil, ErrDecrypt
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// HashPassword returns an encoded Argon2id hash of password with a fresh
// random salt, in the form "argon2id$<salt-hex>$<key-hex>".
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(password, salt)
	return strings.Join([]string{hashPrefix, hex.EncodeToString(salt), hex.EncodeToString(key)}, "$")
}

// VerifyPassword reports whether password matches an encoded hash produced
// by HashPassword. The comparison runs in constant time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashPrefix {
		return false, ErrMalformedHash
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}

	got := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
