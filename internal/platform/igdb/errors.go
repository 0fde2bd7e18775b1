package igdb

import "errors"

var (
	// ErrAuthFailure means the identity provider rejected the client
	// credentials, could not be reached, or the catalog rejected a freshly
	// issued token.
	ErrAuthFailure = errors.New("catalog auth failure")
	// ErrRateLimited means the catalog provider answered 429.
	ErrRateLimited = errors.New("catalog rate limited")
	// ErrCatalogUnavailable covers transport errors, unexpected statuses and
	// undecodable payloads.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
