package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/biblio/internal/adapter"
	"github.com/mmcdole/biblio/internal/adapter/source/openlibrary"
	"github.com/mmcdole/biblio/internal/service"
	"github.com/mmcdole/biblio/internal/store"
	"github.com/mmcdole/biblio/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("biblio %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("biblio is interactive; run it in a terminal")
	}

	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting biblio", "version", Version)

	// Open the result cache / history store
	searchStore, err := store.NewSearchStore(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.MemoryEntries)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer searchStore.Close()

	// Create adapters
	client := openlibrary.NewClient(cfg.Search.Endpoint, logger)
	paramStore := adapter.NewFileParamStore(cfg.State.File, logger)

	// Create services. The state holder seeds itself from the persisted
	// parameters and may commit an initial search during construction;
	// the fetcher still observes it through the feed's replay.
	state := service.NewSearchState(paramStore, cfg.Search.DefaultPageSize, logger)
	defer state.Close()

	fetcher := service.NewFetcher(client, searchStore, cfg.Search.Timeout, logger)
	fetcher.Attach(state.Committed())
	defer fetcher.Close()

	history := service.NewHistoryService(searchStore, cfg.History.MaxEntries, logger)

	// Create TUI model
	model := tui.NewModel(state, fetcher, history)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
