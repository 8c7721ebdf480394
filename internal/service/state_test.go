package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/biblio/internal/domain"
)

// memParamStore is an in-memory domain.ParamStore with file-store merge
// semantics: blank values delete, unrelated keys survive.
type memParamStore struct {
	mu     sync.Mutex
	params map[string]string
}

func newMemParamStore(init map[string]string) *memParamStore {
	s := &memParamStore{params: make(map[string]string)}
	for k, v := range init {
		s.params[k] = v
	}
	return s
}

func (s *memParamStore) Read() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.params))
	for k, v := range s.params {
		out[k] = v
	}
	return out
}

func (s *memParamStore) Merge(partial map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range partial {
		if v == "" {
			delete(s.params, k)
			continue
		}
		s.params[k] = v
	}
	return nil
}

// drainCommits empties the buffered subscription without blocking.
func drainCommits(sub *Subscription[domain.Commit]) []domain.Commit {
	var out []domain.Commit
	for {
		select {
		case c := <-sub.C:
			out = append(out, c)
		default:
			return out
		}
	}
}

func TestSearchStateSeedsFromStoredParams(t *testing.T) {
	store := newMemParamStore(map[string]string{
		"q": "hobbit", "page": "2", "limit": "5",
	})
	s := NewSearchState(store, 10, nil)
	defer s.Close()

	assert.Equal(t, "hobbit", s.Text())
	assert.Equal(t, 2, s.Page())
	assert.Equal(t, 5, s.PageSize())

	// The restore commit replays to late subscribers.
	sub := s.Committed()
	c := recv(t, sub.C)
	require.False(t, c.IsNone())
	assert.Equal(t, "hobbit", c.Params.Text)
	assert.Equal(t, 2, c.Params.Page)
	assert.Equal(t, 5, c.Params.PageSize)
}

func TestSearchStateDefaultsWithoutStoredParams(t *testing.T) {
	s := NewSearchState(newMemParamStore(nil), 10, nil)
	defer s.Close()

	assert.Equal(t, "", s.Text())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 10, s.PageSize())

	// No stored query means no initial commit.
	sub := s.Committed()
	assert.Empty(t, drainCommits(sub))
}

func TestSearchStateIgnoresBadStoredNumbers(t *testing.T) {
	store := newMemParamStore(map[string]string{
		"q": "dune", "page": "zero", "limit": "-3",
	})
	s := NewSearchState(store, 10, nil)
	defer s.Close()

	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 10, s.PageSize())
}

func TestSetSearchTextCommitsAndPersists(t *testing.T) {
	store := newMemParamStore(map[string]string{"theme": "dark"})
	s := NewSearchState(store, 10, nil)
	defer s.Close()
	sub := s.Committed()

	s.SetSearchText("  Dune  ")

	commits := drainCommits(sub)
	require.Len(t, commits, 1)
	assert.Equal(t, "Dune", commits[0].Params.Text)
	assert.Equal(t, 1, commits[0].Params.Page)
	assert.Equal(t, 10, commits[0].Params.PageSize)

	assert.Equal(t, map[string]string{
		"theme": "dark", "q": "Dune", "page": "1", "limit": "10",
	}, store.Read())
}

func TestSetSearchTextResetsPage(t *testing.T) {
	s := NewSearchState(newMemParamStore(nil), 10, nil)
	defer s.Close()

	s.SetSearchText("dune")
	s.SetPage(3)
	require.Equal(t, 3, s.Page())

	s.SetSearchText("dune messiah")
	assert.Equal(t, 1, s.Page())
}

func TestSetSearchTextEmptyClearsParams(t *testing.T) {
	store := newMemParamStore(map[string]string{
		"q": "hobbit", "page": "2", "limit": "5", "theme": "dark",
	})
	s := NewSearchState(store, 10, nil)
	defer s.Close()
	sub := s.Committed()
	drainCommits(sub) // restore commit

	s.SetSearchText("   ")

	commits := drainCommits(sub)
	require.Len(t, commits, 1)
	assert.True(t, commits[0].IsNone())

	// Search params stripped, unrelated keys kept.
	assert.Equal(t, map[string]string{"theme": "dark"}, store.Read())
}

func TestSetPageWithoutTextIsNoOp(t *testing.T) {
	store := newMemParamStore(nil)
	s := NewSearchState(store, 10, nil)
	defer s.Close()
	sub := s.Committed()

	s.SetPage(4)

	assert.Empty(t, drainCommits(sub))
	assert.Empty(t, store.Read())
}

func TestSetPageClampsToOne(t *testing.T) {
	s := NewSearchState(newMemParamStore(nil), 10, nil)
	defer s.Close()

	s.SetSearchText("dune")
	s.SetPage(0)
	assert.Equal(t, 1, s.Page())

	s.SetPage(-7)
	assert.Equal(t, 1, s.Page())
}

func TestSetPageSizeResetsPageAndCommitsOnce(t *testing.T) {
	store := newMemParamStore(nil)
	s := NewSearchState(store, 10, nil)
	defer s.Close()

	s.SetSearchText("dune")
	s.SetPage(4)

	sub := s.Committed()
	drainCommits(sub) // replayed latest

	s.SetPageSize(25)

	commits := drainCommits(sub)
	require.Len(t, commits, 1)
	assert.Equal(t, 1, commits[0].Params.Page)
	assert.Equal(t, 25, commits[0].Params.PageSize)
	assert.Equal(t, "25", store.Read()["limit"])
	assert.Equal(t, "1", store.Read()["page"])
}
