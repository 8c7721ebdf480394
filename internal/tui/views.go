package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/biblio/internal/domain"
	"github.com/mmcdole/biblio/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("biblio"))
	b.WriteString(styles.DimStyle.Render("  Open Library search"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.focus == PaneInput && len(m.suggestions) > 0 {
		m.renderSuggestions(&b)
	}

	b.WriteString("\n")
	m.renderResults(&b)

	b.WriteString("\n")
	m.renderFooter(&b)

	return b.String()
}

// renderSuggestions renders the history dropdown under the input
func (m Model) renderSuggestions(b *strings.Builder) {
	for i, s := range m.suggestions {
		selected := i == m.sugCursor
		line := highlightMatches(s.Query, s.MatchedIndexes, selected)
		b.WriteString("   ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// renderResults renders the result rows or an empty-state hint
func (m Model) renderResults(b *strings.Builder) {
	if !m.hasResult || len(m.result.Items) == 0 {
		switch {
		case m.loading:
			// Footer shows the spinner; keep the body quiet.
		case m.hasResult && m.State.Text() != "":
			b.WriteString(styles.DimStyle.Render("  No books found"))
			b.WriteString("\n")
		default:
			b.WriteString(styles.DimStyle.Render("  Type a query and press enter"))
			b.WriteString("\n")
		}
		return
	}

	if m.filterActive {
		b.WriteString("  ")
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	visible := m.visibleIndexes()
	if len(visible) == 0 {
		b.WriteString(styles.DimStyle.Render("  No rows match the filter"))
		b.WriteString("\n")
		return
	}

	maxTitle := m.width - 30
	if maxTitle < 20 {
		maxTitle = 20
	}

	for pos, i := range visible {
		book := m.result.Items[i]
		selected := pos == m.cursor && m.focus == PaneResults && !m.filterTyping()

		var line strings.Builder
		line.WriteString(coverBadge(book))
		line.WriteString(" ")

		title := styles.Truncate(book.Title, maxTitle)
		if book.FirstPublished > 0 {
			title = fmt.Sprintf("%s (%d)", title, book.FirstPublished)
		}
		if selected {
			line.WriteString(styles.SelectedItemStyle.Render(title))
		} else {
			line.WriteString(styles.NormalItemStyle.Render(title))
		}

		if authors := book.Authors(); authors != "" {
			line.WriteString(styles.DimStyle.Render(" " + styles.Truncate(authors, 40)))
		}

		b.WriteString(line.String())
		b.WriteString("\n")
	}
}

// coverBadge renders the cover edition key, or a placeholder when the book
// has no cover
func coverBadge(book domain.BookSummary) string {
	if book.CoverEditionKey == "" {
		return styles.DimBadgeStyle.Render("   no cover   ")
	}
	return styles.DimBadgeStyle.Render(fmt.Sprintf("%-14s", book.CoverEditionKey))
}

// renderFooter renders the status line and key help
func (m Model) renderFooter(b *strings.Builder) {
	if m.loading {
		frame := styles.SpinnerFrames[m.spinnerFrame%len(styles.SpinnerFrames)]
		b.WriteString(styles.SpinnerStyle.Render(frame + " Searching..."))
	} else if m.hasResult && m.State.Text() != "" {
		status := fmt.Sprintf("%d found • page %d/%d • %d per page",
			m.result.TotalFound, m.State.Page(), m.maxPage(), m.State.PageSize())
		if m.filterActive {
			status += fmt.Sprintf(" • %d/%d filtered", m.visibleCount(), len(m.result.Items))
		}
		b.WriteString(styles.SubtitleStyle.Render(status))
	}
	b.WriteString("\n")

	help := []string{
		helpEntry(Keys.Submit), helpEntry(Keys.Focus), helpEntry(Keys.Filter),
		helpEntry(Keys.Refresh),
		helpEntry(Keys.PrevPage), helpEntry(Keys.NextPage),
		helpEntry(Keys.GrowPage), helpEntry(Keys.ShrinkPage),
		helpEntry(Keys.Quit),
	}
	b.WriteString(strings.Join(help, styles.DimStyle.Render("  ")))
}

func helpEntry(binding key.Binding) string {
	h := binding.Help()
	return styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
}

// highlightMatches renders a suggestion with matched characters highlighted
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	normal := styles.DimStyle
	match := styles.MatchHighlightStyle
	if selected {
		normal = styles.SelectedItemStyle
		match = styles.MatchHighlightSelectedStyle
	}

	var out strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matchSet[i]
		start := i
		for i < len(runes) && matchSet[i] == isMatch {
			i++
		}
		segment := string(runes[start:i])
		if isMatch {
			out.WriteString(match.Render(segment))
		} else {
			out.WriteString(normal.Render(segment))
		}
	}
	return out.String()
}
