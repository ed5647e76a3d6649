package domain

import "errors"

// Sentinel errors for API and lifecycle failures. Wrap them with %w so
// callers can classify with errors.Is.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates an invalid, expired, or missing API token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the platform throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict.
	ErrConflict = errors.New("conflict")

	// ErrProviderNotFound indicates no on-prem provider is configured.
	ErrProviderNotFound = errors.New("no on-prem provider configured")

	// ErrProviderInUse indicates a universe is still deployed on the provider.
	ErrProviderInUse = errors.New("provider is in use by a universe")
)
