package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the search API is unreachable
	ErrServerOffline = errors.New("search server is unreachable")

	// ErrBadResponse indicates the search API returned an undecodable body
	ErrBadResponse = errors.New("malformed search response")
)
