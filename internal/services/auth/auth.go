// Package auth stores platform API tokens in the OS keychain. Tokens are
// keyed by platform host so one machine can talk to several platforms.
package auth

import (
	"errors"
	"net/url"

	"nathanbeddoewebdev/dcm/internal/util"
)

const ServiceName = "dcm"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(account string, token string) error
	GetToken(account string) (string, error)
	DeleteToken(account string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeAccount normalizes an account name for consistent key lookup.
func NormalizeAccount(account string) string {
	return util.NormalizeKey(account)
}

// AccountForURL returns the keychain account for a platform base URL: its
// host (with port, if any). Unparseable input is used as is.
func AccountForURL(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return NormalizeAccount(apiURL)
	}
	return NormalizeAccount(u.Host)
}
