package tui

import "github.com/mmcdole/biblio/internal/domain"

// Message types for the TUI

// SearchResultMsg signals that a result page arrived on the result feed
type SearchResultMsg struct {
	Result domain.SearchResult
}

// ResultsClosedMsg signals that the result feed was torn down
type ResultsClosedMsg struct{}

// TickMsg drives the spinner animation
type TickMsg struct{}
