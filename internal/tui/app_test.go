package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/biblio/internal/domain"
)

func TestNextPageSize(t *testing.T) {
	tests := []struct {
		current int
		dir     int
		want    int
		ok      bool
	}{
		{10, 1, 25, true},
		{25, 1, 50, true},
		{100, 1, 0, false},
		{25, -1, 10, true},
		{10, -1, 0, false},
		// Sizes restored from persisted state may sit between cycle stops.
		{15, 1, 25, true},
		{15, -1, 10, true},
		{200, -1, 100, true},
	}

	for _, tt := range tests {
		got, ok := nextPageSize(tt.current, tt.dir)
		assert.Equal(t, tt.ok, ok, "size %d dir %d", tt.current, tt.dir)
		if tt.ok {
			assert.Equal(t, tt.want, got, "size %d dir %d", tt.current, tt.dir)
		}
	}
}

func filterModel() Model {
	return Model{
		filterInput: textinput.New(),
		result: domain.SearchResult{
			TotalFound: 3,
			Items: []domain.BookSummary{
				{Title: "The Hobbit", AuthorNames: []string{"J.R.R. Tolkien"}},
				{Title: "The Silmarillion", AuthorNames: []string{"J.R.R. Tolkien"}},
				{Title: "Dune", AuthorNames: []string{"Frank Herbert"}},
			},
		},
	}
}

func TestApplyFilterNarrowsByTitleAndAuthor(t *testing.T) {
	m := filterModel()

	m.filterInput.SetValue("hobbit")
	m.applyFilter()
	assert.Equal(t, []int{0}, m.filteredIdx)
	assert.Equal(t, 1, m.visibleCount())

	// Author names are searchable too.
	m.filterInput.SetValue("tolkien")
	m.applyFilter()
	assert.ElementsMatch(t, []int{0, 1}, m.filteredIdx)

	m.filterInput.SetValue("zzzz")
	m.applyFilter()
	assert.Empty(t, m.filteredIdx)
	assert.Equal(t, 0, m.visibleCount())
}

func TestClearFilterRestoresFullPage(t *testing.T) {
	m := filterModel()
	m.filterActive = true
	m.filterInput.SetValue("dune")
	m.applyFilter()
	assert.Equal(t, 1, m.visibleCount())

	m.clearFilter()
	assert.False(t, m.filterActive)
	assert.Nil(t, m.filteredIdx)
	assert.Equal(t, 3, m.visibleCount())
	assert.Equal(t, []int{0, 1, 2}, m.visibleIndexes())
}
