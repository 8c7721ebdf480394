package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/biblio/internal/domain"
	"github.com/mmcdole/biblio/internal/service"
	"github.com/mmcdole/biblio/internal/tui/styles"
)

// Pane identifies which part of the view has focus
type Pane int

const (
	PaneInput Pane = iota
	PaneResults
)

// pageSizes are the sizes the +/- keys cycle through.
var pageSizes = []int{10, 25, 50, 100}

const (
	tickInterval   = 100 * time.Millisecond
	maxSuggestions = 5
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	State   *service.SearchState
	Fetcher *service.Fetcher
	History *service.HistoryService

	// Result feed subscription
	resultsSub *service.Subscription[domain.SearchResult]

	// UI components
	input       textinput.Model
	filterInput textinput.Model

	// Data
	result    domain.SearchResult
	hasResult bool

	// UI state
	focus        Pane
	cursor       int
	filterActive bool
	filteredIdx  []int // nil means unfiltered
	suggestions  []service.Suggestion
	sugCursor    int
	loading      bool
	spinnerFrame int
	width        int
	height       int
}

// NewModel creates the application model, prefilled from any restored
// search state.
func NewModel(state *service.SearchState, fetcher *service.Fetcher, history *service.HistoryService) Model {
	ti := textinput.New()
	ti.Placeholder = "Search books..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = styles.TitleStyle
	ti.PlaceholderStyle = styles.DimStyle
	ti.SetValue(state.Text())
	ti.Focus()

	fi := textinput.New()
	fi.Placeholder = "Filter this page..."
	fi.CharLimit = 50
	fi.Width = 30
	fi.Prompt = "/ "
	fi.PromptStyle = styles.AccentStyle
	fi.TextStyle = styles.TitleStyle
	fi.PlaceholderStyle = styles.DimStyle

	return Model{
		State:       state,
		Fetcher:     fetcher,
		History:     history,
		resultsSub:  fetcher.Results(),
		input:       ti,
		filterInput: fi,
		focus:       PaneInput,
		sugCursor:   -1,
		loading:     state.Text() != "",
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		WaitForResultCmd(m.resultsSub),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		return m, nil

	case SearchResultMsg:
		m.result = msg.Result
		m.hasResult = true
		m.loading = false
		m.cursor = 0
		m.clearFilter()
		return m, WaitForResultCmd(m.resultsSub)

	case ResultsClosedMsg:
		return m, nil

	case TickMsg:
		if m.loading {
			m.spinnerFrame++
		}
		return m, TickCmd(tickInterval)

	case tea.KeyMsg:
		if key.Matches(msg, Keys.Quit) &&
			(msg.String() == "ctrl+c" || (m.focus == PaneResults && !m.filterTyping())) {
			return m, tea.Quit
		}
		if m.focus == PaneInput {
			return m.updateInput(msg)
		}
		return m.updateResults(msg)
	}

	return m, nil
}

// updateInput handles keys while the query input has focus
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		if m.sugCursor >= 0 && m.sugCursor < len(m.suggestions) {
			m.input.SetValue(m.suggestions[m.sugCursor].Query)
		}
		return m.submit()

	case key.Matches(msg, Keys.Clear):
		if m.input.Value() == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m.submit()

	case key.Matches(msg, Keys.Down):
		if m.sugCursor < len(m.suggestions)-1 {
			m.sugCursor++
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.sugCursor >= 0 {
			m.sugCursor--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggestions = m.History.Suggest(m.input.Value(), maxSuggestions)
	m.sugCursor = -1
	return m, cmd
}

// updateResults handles keys while the result list has focus
func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filterTyping() {
		return m.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, Keys.Focus):
		m.focus = PaneInput
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, Keys.Clear):
		if m.filterActive {
			m.clearFilter()
			return m, nil
		}
		m.focus = PaneInput
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, Keys.Filter):
		if len(m.result.Items) > 0 {
			m.filterActive = true
			m.filterInput.Focus()
		}
		return m, textinput.Blink

	case key.Matches(msg, Keys.Refresh):
		if m.State.Text() != "" {
			// Drop cached pages, then re-commit the current parameters so
			// the fetcher goes back to the network.
			m.Fetcher.InvalidateCache()
			m.State.SetPage(m.State.Page())
			m.loading = true
		}
		return m, nil

	case key.Matches(msg, Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, Keys.Down):
		if m.cursor < m.visibleCount()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		if m.State.Page() > 1 {
			m.State.SetPage(m.State.Page() - 1)
			m.loading = true
		}
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		if m.State.Page() < m.maxPage() {
			m.State.SetPage(m.State.Page() + 1)
			m.loading = true
		}
		return m, nil

	case key.Matches(msg, Keys.GrowPage):
		if size, ok := nextPageSize(m.State.PageSize(), 1); ok {
			m.State.SetPageSize(size)
			m.loading = true
		}
		return m, nil

	case key.Matches(msg, Keys.ShrinkPage):
		if size, ok := nextPageSize(m.State.PageSize(), -1); ok {
			m.State.SetPageSize(size)
			m.loading = true
		}
		return m, nil
	}

	return m, nil
}

// updateFilter handles keys while the page filter input has focus
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		// Keep the filter applied, return keys to list navigation.
		m.filterInput.Blur()
		return m, nil

	case key.Matches(msg, Keys.Clear):
		m.clearFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// filterTyping reports whether keystrokes belong to the page filter input.
func (m Model) filterTyping() bool {
	return m.filterActive && m.filterInput.Focused()
}

// clearFilter drops the page filter and shows the full result page again.
func (m *Model) clearFilter() {
	m.filterActive = false
	m.filteredIdx = nil
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.cursor = 0
}

// applyFilter narrows the visible rows to fuzzy matches of the filter text
// against title and authors.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.filteredIdx = nil
		m.cursor = 0
		return
	}

	haystack := make([]string, len(m.result.Items))
	for i, book := range m.result.Items {
		haystack[i] = strings.ToLower(book.Title + " " + book.Authors())
	}

	matches := fuzzy.Find(strings.ToLower(query), haystack)
	m.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		m.filteredIdx[i] = match.Index
	}
	m.cursor = 0
}

// visibleIndexes returns the item indexes currently shown, in display order.
func (m Model) visibleIndexes() []int {
	if m.filteredIdx != nil {
		return m.filteredIdx
	}
	idx := make([]int, len(m.result.Items))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (m Model) visibleCount() int {
	if m.filteredIdx != nil {
		return len(m.filteredIdx)
	}
	return len(m.result.Items)
}

// submit commits the pending input text
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	m.State.SetSearchText(text)
	m.suggestions = nil
	m.sugCursor = -1
	m.clearFilter()

	if m.State.Text() != "" {
		m.History.Record(m.State.Text())
		m.loading = true
		m.focus = PaneResults
		m.input.Blur()
	} else {
		m.loading = false
		m.result = domain.SearchResult{}
		m.hasResult = false
	}
	return m, nil
}

// maxPage returns the last reachable page for the current result set
func (m Model) maxPage() int {
	if !m.hasResult {
		return 1
	}
	pages := m.result.TotalPages(m.State.PageSize())
	if pages < 1 {
		return 1
	}
	return pages
}

// nextPageSize steps through the page size cycle. ok is false at either end.
func nextPageSize(current, dir int) (int, bool) {
	if dir > 0 {
		for _, s := range pageSizes {
			if s > current {
				return s, true
			}
		}
		return 0, false
	}
	for i := len(pageSizes) - 1; i >= 0; i-- {
		if pageSizes[i] < current {
			return pageSizes[i], true
		}
	}
	return 0, false
}
