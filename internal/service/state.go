package service

import (
	"log/slog"
	"strconv"

	"github.com/mmcdole/biblio/internal/domain"
)

// SearchState owns the pending search text, page, and page size, and
// publishes committed parameter sets on a replay-of-one feed. It is the
// single writer of the persisted query parameters.
type SearchState struct {
	params          domain.ParamStore
	feed            *Feed[domain.Commit]
	logger          *slog.Logger
	defaultPageSize int

	// Pending edit state. The bubbletea event loop is the only caller, so
	// no lock guards these; the feed handles cross-goroutine delivery.
	text     string
	page     int
	pageSize int
}

// NewSearchState creates the state holder, seeding it from the param store.
// A stored non-blank query triggers one synchronous initial commit, so a
// later subscriber still observes it through the feed's replay.
func NewSearchState(params domain.ParamStore, defaultPageSize int, logger *slog.Logger) *SearchState {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultPageSize < 1 {
		defaultPageSize = domain.DefaultPageSize
	}

	s := &SearchState{
		params:          params,
		feed:            NewFeed[domain.Commit](),
		logger:          logger,
		defaultPageSize: defaultPageSize,
		page:            1,
		pageSize:        defaultPageSize,
	}

	stored := params.Read()
	if v, ok := stored[domain.ParamPage]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			s.page = n
		}
	}
	if v, ok := stored[domain.ParamLimit]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			s.pageSize = n
		}
	}

	initial := domain.NewSearchParams(stored[domain.ParamQuery], s.page, s.pageSize)
	s.text = initial.Text
	if !initial.IsEmpty() {
		s.logger.Debug("restoring persisted search", "query", s.text, "page", s.page, "limit", s.pageSize)
		s.commit()
	}

	return s
}

// SetSearchText stores the trimmed text and resets the page to 1. Non-empty
// text commits immediately; empty text publishes the no-search marker,
// clears the displayed results, and strips the persisted parameters without
// issuing a fetch.
func (s *SearchState) SetSearchText(text string) {
	p := domain.NewSearchParams(text, 1, s.pageSize)
	s.text = p.Text
	s.page = 1

	if p.IsEmpty() {
		s.clear()
		return
	}
	s.commit()
}

// SetPage stores the page (clamped to >= 1) and commits with the current
// text and page size. A page change with no search text is a no-op.
func (s *SearchState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page

	if domain.NewSearchParams(s.text, s.page, s.pageSize).IsEmpty() {
		return
	}
	s.commit()
}

// SetPageSize stores the size (clamped to >= 1), resets the page to 1, and
// commits immediately.
func (s *SearchState) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	s.pageSize = size
	s.page = 1

	if domain.NewSearchParams(s.text, s.page, s.pageSize).IsEmpty() {
		return
	}
	s.commit()
}

// Text returns the pending search text.
func (s *SearchState) Text() string { return s.text }

// Page returns the pending page number.
func (s *SearchState) Page() int { return s.page }

// PageSize returns the pending page size.
func (s *SearchState) PageSize() int { return s.pageSize }

// Committed returns a replay-of-one subscription to the committed-search
// feed: the latest commit is delivered immediately.
func (s *SearchState) Committed() *Subscription[domain.Commit] {
	return s.feed.Subscribe()
}

// Close completes the feed. No commits are observable afterwards.
func (s *SearchState) Close() {
	s.feed.Close()
}

// commit publishes the current parameter set and persists it. Persisting
// never feeds back into this state holder.
func (s *SearchState) commit() {
	p := domain.NewSearchParams(s.text, s.page, s.pageSize)
	s.feed.Publish(domain.Commit{Params: &p})

	err := s.params.Merge(map[string]string{
		domain.ParamQuery: p.Text,
		domain.ParamPage:  strconv.Itoa(p.Page),
		domain.ParamLimit: strconv.Itoa(p.PageSize),
	})
	if err != nil {
		s.logger.Warn("persisting search params failed", "error", err)
	}
}

// clear publishes the no-search marker and strips persisted parameters.
func (s *SearchState) clear() {
	s.feed.Publish(domain.Commit{})

	err := s.params.Merge(map[string]string{
		domain.ParamQuery: "",
		domain.ParamPage:  "",
		domain.ParamLimit: "",
	})
	if err != nil {
		s.logger.Warn("clearing search params failed", "error", err)
	}
}
