package domain

import "context"

// BookSearcher provides network book search.
type BookSearcher interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}

// ParamStore persists search parameters the way a browser query string
// would: flat string keys, merged rather than replaced, blank values
// dropped. Implementations must preserve keys they do not understand.
type ParamStore interface {
	// Read returns the current parameter set. A missing or unreadable
	// backing store reads as empty.
	Read() map[string]string

	// Merge overlays partial onto the stored set. Keys whose merged value
	// is empty are removed; unrelated keys are kept.
	Merge(partial map[string]string) error
}

// Store handles the local cache (BoltDB + LRU memory layer): fetched result
// pages and the recent-query history.
type Store interface {
	GetResult(key string) (*SearchResult, bool)
	SaveResult(key string, result *SearchResult) error

	RecentQueries() ([]string, bool)
	SaveRecentQueries(queries []string) error

	InvalidateResults()

	Close() error
}
