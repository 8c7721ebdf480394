package domain

import (
	"fmt"
	"strings"
)

// CoverSize selects a cover image size on the covers server.
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// coverBaseURL is the Open Library covers server.
const coverBaseURL = "https://covers.openlibrary.org/b/olid"

// BookSummary is a single search hit: enough to render one result row.
type BookSummary struct {
	Title           string   `json:"title"`
	AuthorNames     []string `json:"author_names,omitempty"`
	CoverEditionKey string   `json:"cover_edition_key,omitempty"`
	WorkKey         string   `json:"work_key,omitempty"`
	FirstPublished  int      `json:"first_published,omitempty"`
}

// Authors returns the author names joined for display.
func (b BookSummary) Authors() string {
	return strings.Join(b.AuthorNames, ", ")
}

// CoverURL returns the cover image URL for the given size, or "" when the
// book has no cover edition key.
func (b BookSummary) CoverURL(size CoverSize) string {
	if b.CoverEditionKey == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s-%s.jpg", coverBaseURL, b.CoverEditionKey, size)
}

// SearchResult is one page of search results.
type SearchResult struct {
	TotalFound int           `json:"total_found"`
	Items      []BookSummary `json:"items,omitempty"`
}

// TotalPages returns the number of pages at the given page size.
func (r SearchResult) TotalPages(pageSize int) int {
	if pageSize < 1 || r.TotalFound <= 0 {
		return 0
	}
	return (r.TotalFound + pageSize - 1) / pageSize
}

// SearchParams is a committed search: the immutable value published once per
// user-triggered change. Page and PageSize are always >= 1.
type SearchParams struct {
	Text     string
	Page     int
	PageSize int
}

// NewSearchParams builds a committed search value. Text is trimmed; page and
// pageSize below 1 are clamped to 1 rather than passed through to the API.
func NewSearchParams(text string, page, pageSize int) SearchParams {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return SearchParams{
		Text:     strings.TrimSpace(text),
		Page:     page,
		PageSize: pageSize,
	}
}

// NormalizedQuery returns the query text as sent to the search API:
// lower-cased with internal whitespace collapsed to single spaces.
func (p SearchParams) NormalizedQuery() string {
	return strings.Join(strings.Fields(strings.ToLower(p.Text)), " ")
}

// IsEmpty reports whether the search text is blank.
func (p SearchParams) IsEmpty() bool {
	return p.NormalizedQuery() == ""
}

// CacheKey identifies this parameter set in the result cache.
func (p SearchParams) CacheKey() string {
	return fmt.Sprintf("%s|%d|%d", p.NormalizedQuery(), p.Page, p.PageSize)
}

// Commit is one value on the committed-search feed. A nil Params is the
// "no search" marker published when the search text is cleared.
type Commit struct {
	Params *SearchParams
}

// IsNone reports whether this commit carries no searchable parameters.
func (c Commit) IsNone() bool {
	return c.Params == nil || c.Params.IsEmpty()
}

// Persisted query-parameter keys (the browser query string analog).
const (
	ParamQuery = "q"
	ParamPage  = "page"
	ParamLimit = "limit"
)

// DefaultPageSize is the fallback page size when none is configured.
const DefaultPageSize = 10
