package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecordMostRecentFirst(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)

	h.Record("dune")
	h.Record("the hobbit")
	h.Record("neuromancer")

	assert.Equal(t, []string{"neuromancer", "the hobbit", "dune"}, h.Recent())
}

func TestHistoryRecordDeduplicatesCaseInsensitively(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)

	h.Record("Dune")
	h.Record("the hobbit")
	h.Record("DUNE")

	assert.Equal(t, []string{"DUNE", "the hobbit"}, h.Recent())
}

func TestHistoryRecordIgnoresBlank(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)

	h.Record("   ")
	assert.Empty(t, h.Recent())
}

func TestHistoryBounded(t *testing.T) {
	h := NewHistoryService(nil, 2, nil)

	h.Record("one")
	h.Record("two")
	h.Record("three")

	assert.Equal(t, []string{"three", "two"}, h.Recent())
}

func TestHistoryLoadsAndPersistsThroughStore(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveRecentQueries([]string{"dune", "the hobbit"}))

	h := NewHistoryService(store, 10, nil)
	assert.Equal(t, []string{"dune", "the hobbit"}, h.Recent())

	h.Record("neuromancer")

	persisted, ok := store.RecentQueries()
	require.True(t, ok)
	assert.Equal(t, []string{"neuromancer", "dune", "the hobbit"}, persisted)
}

func TestSuggestBlankReturnsRecent(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)
	h.Record("dune")
	h.Record("the hobbit")

	got := h.Suggest("", 5)
	require.Len(t, got, 2)
	assert.Equal(t, "the hobbit", got[0].Query)
	assert.Equal(t, "dune", got[1].Query)
	assert.Empty(t, got[0].MatchedIndexes)
}

func TestSuggestRespectsLimit(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)
	h.Record("one")
	h.Record("two")
	h.Record("three")

	assert.Len(t, h.Suggest("", 2), 2)
	assert.Empty(t, h.Suggest("one", 0))
}

func TestSuggestPrefixMatchCarriesHighlightIndexes(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)
	h.Record("dune")
	h.Record("the hobbit")

	got := h.Suggest("hob", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "the hobbit", got[0].Query)
	// "hob" matches the prefix of "hobbit", which starts at rune 4.
	assert.Equal(t, []int{4, 5, 6}, got[0].MatchedIndexes)
}

func TestSuggestToleratesTypos(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)
	h.Record("the hobbit")

	got := h.Suggest("hobit", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "the hobbit", got[0].Query)
}

func TestSuggestFallsBackToSubsequenceRanking(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)
	h.Record("the hobbit")
	h.Record("dune")

	// No token of "the hobbit" matches "thbt", but it is a subsequence.
	got := h.Suggest("thbt", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "the hobbit", got[0].Query)
	assert.Empty(t, got[0].MatchedIndexes)
}

func TestSuggestNoMatch(t *testing.T) {
	h := NewHistoryService(nil, 10, nil)
	h.Record("dune")

	assert.Empty(t, h.Suggest("zzzz", 5))
}
