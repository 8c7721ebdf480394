package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/biblio/internal/domain"
	"github.com/mmcdole/biblio/internal/service"
)

// Command factories for async operations

// WaitForResultCmd blocks on the result subscription and forwards the next
// page into the event loop. Re-issued after every delivery.
func WaitForResultCmd(sub *service.Subscription[domain.SearchResult]) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-sub.C
		if !ok {
			return ResultsClosedMsg{}
		}
		return SearchResultMsg{Result: result}
	}
}

// TickCmd schedules the next animation tick
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
