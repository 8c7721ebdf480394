package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/biblio/internal/domain"
	"github.com/mmcdole/biblio/internal/search"
)

// defaultHistorySize bounds the recent-query list when no limit is configured.
const defaultHistorySize = 50

// Suggestion is a history entry matched against the pending input.
type Suggestion struct {
	Query          string
	MatchedIndexes []int // Rune positions for highlighting (may be empty)
	Score          int   // Lower is better
}

// HistoryService records committed queries and suggests them back while the
// user types.
type HistoryService struct {
	store  domain.Store
	logger *slog.Logger
	max    int

	mu     sync.Mutex
	recent []string // most recent first
}

// NewHistoryService loads the persisted history. store may be nil for a
// session-only history.
func NewHistoryService(store domain.Store, max int, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	if max < 1 {
		max = defaultHistorySize
	}

	h := &HistoryService{store: store, logger: logger, max: max}
	if store != nil {
		if recent, ok := store.RecentQueries(); ok {
			if len(recent) > max {
				recent = recent[:max]
			}
			h.recent = recent
		}
	}
	return h
}

// Record moves query to the front of the history, deduplicating
// case-insensitively, and persists the updated list.
func (h *HistoryService) Record(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]string, 0, len(h.recent)+1)
	next = append(next, query)
	for _, q := range h.recent {
		if strings.EqualFold(q, query) {
			continue
		}
		next = append(next, q)
	}
	if len(next) > h.max {
		next = next[:h.max]
	}
	h.recent = next

	if h.store != nil {
		if err := h.store.SaveRecentQueries(next); err != nil {
			h.logger.Warn("persisting query history failed", "error", err)
		}
	}
}

// Recent returns the history, most recent first.
func (h *HistoryService) Recent() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.recent))
	copy(out, h.recent)
	return out
}

// Suggest matches text against the history. Blank text returns the most
// recent queries unranked. Token matching runs first (with highlight
// indexes); when it finds nothing, a looser fold-insensitive ranking is
// tried before giving up.
func (h *HistoryService) Suggest(text string, limit int) []Suggestion {
	recent := h.Recent()
	if limit < 1 || len(recent) == 0 {
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		if len(recent) > limit {
			recent = recent[:limit]
		}
		out := make([]Suggestion, len(recent))
		for i, q := range recent {
			out[i] = Suggestion{Query: q}
		}
		return out
	}

	matches := search.FuzzySearch(text, recent)
	if len(matches) > 0 {
		if len(matches) > limit {
			matches = matches[:limit]
		}
		out := make([]Suggestion, len(matches))
		for i, m := range matches {
			out[i] = Suggestion{
				Query:          recent[m.Index],
				MatchedIndexes: m.MatchedIndexes,
				Score:          m.Score,
			}
		}
		return out
	}

	ranks := fuzzy.RankFindFold(text, recent)
	sort.Sort(ranks)
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := make([]Suggestion, len(ranks))
	for i, r := range ranks {
		out[i] = Suggestion{Query: r.Target, Score: r.Distance}
	}
	return out
}
