package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringVault stores entries in the operating system's credential vault.
// Values are stored as the keyring "password" of the (service, account)
// generic item.
type KeyringVault struct{}

func NewKeyringVault() *KeyringVault {
	return &KeyringVault{}
}

func (k *KeyringVault) Get(ctx context.Context, service, account string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	secret, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("keyring get %s/%s: %w", service, account, err)
	}
	return []byte(secret), nil
}

func (k *KeyringVault) Set(ctx context.Context, service, account string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := keyring.Set(service, account, string(value)); err != nil {
		return fmt.Errorf("keyring set %s/%s: %w", service, account, err)
	}
	return nil
}

func (k *KeyringVault) Delete(ctx context.Context, service, account string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := keyring.Delete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s/%s: %w", service, account, err)
	}
	return nil
}

func (k *KeyringVault) Close() error {
	return nil
}
