package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

// SetToken stores token for account, replacing any previous value.
func (k *KeyringStore) SetToken(account string, token string) error {
	key := NormalizeAccount(account)
	return keyring.Set(k.serviceName, key, token)
}

func (k *KeyringStore) GetToken(account string) (string, error) {
	key := NormalizeAccount(account)
	token, err := keyring.Get(k.serviceName, key)
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteToken(account string) error {
	key := NormalizeAccount(account)
	err := keyring.Delete(k.serviceName, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}
