package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/biblio/internal/domain"
)

// Fetcher turns the committed-search feed into a result feed with switch
// semantics: each commit supersedes any fetch still in flight, and a
// superseded fetch's outcome never reaches the result feed, regardless of
// completion order. Fetch failures surface as an empty result page, never
// as a dead stream.
type Fetcher struct {
	searcher domain.BookSearcher
	cache    domain.Store
	logger   *slog.Logger
	timeout  time.Duration

	results *Feed[domain.SearchResult]

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool

	commits *Subscription[domain.Commit]
	done    chan struct{}
}

// NewFetcher creates a fetcher. cache may be nil to disable result caching.
func NewFetcher(searcher domain.BookSearcher, cache domain.Store, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		searcher: searcher,
		cache:    cache,
		logger:   logger,
		timeout:  timeout,
		results:  NewFeed[domain.SearchResult](),
		done:     make(chan struct{}),
	}
}

// Attach starts consuming the committed-search subscription. Call once.
func (f *Fetcher) Attach(commits *Subscription[domain.Commit]) {
	f.commits = commits
	go func() {
		defer close(f.done)
		for c := range commits.C {
			f.dispatch(c)
		}
	}()
}

// Results returns a replay-of-one subscription to the result feed.
func (f *Fetcher) Results() *Subscription[domain.SearchResult] {
	return f.results.Subscribe()
}

// InvalidateCache drops every cached result page, so the next commit for any
// parameter set goes back to the network.
func (f *Fetcher) InvalidateCache() {
	if f.cache == nil {
		return
	}
	f.logger.Debug("invalidating result cache")
	f.cache.InvalidateResults()
}

// Close cancels any in-flight fetch and completes the result feed. An
// already-resolved but unpublished fetch is discarded.
func (f *Fetcher) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.mu.Unlock()

	if f.commits != nil {
		f.commits.Cancel()
		<-f.done
	}
	f.results.Close()
}

// dispatch handles one committed value: supersede whatever is in flight,
// then either clear, serve from cache, or fetch.
func (f *Fetcher) dispatch(c domain.Commit) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.gen++
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}

	if c.IsNone() {
		f.results.Publish(domain.SearchResult{})
		return
	}
	params := *c.Params

	if f.cache != nil {
		if cached, ok := f.cache.GetResult(params.CacheKey()); ok {
			f.logger.Debug("search cache hit", "key", params.CacheKey())
			f.results.Publish(*cached)
			return
		}
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), f.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	f.cancel = cancel

	go f.fetch(ctx, cancel, params, f.gen)
}

// fetch performs the network search and publishes the outcome unless a
// newer commit has superseded this generation.
func (f *Fetcher) fetch(ctx context.Context, cancel context.CancelFunc, params domain.SearchParams, myGen uint64) {
	defer cancel()

	result, err := f.searcher.Search(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || myGen != f.gen {
		// Superseded: this outcome must not reach the display layer.
		return
	}
	f.cancel = nil

	if err != nil {
		f.logger.Warn("search failed", "query", params.NormalizedQuery(), "page", params.Page, "error", err)
		f.results.Publish(domain.SearchResult{})
		return
	}

	if f.cache != nil {
		if cerr := f.cache.SaveResult(params.CacheKey(), result); cerr != nil {
			f.logger.Warn("caching search result failed", "error", cerr)
		}
	}

	f.logger.Debug("search resolved", "query", params.NormalizedQuery(), "page", params.Page, "found", result.TotalFound)
	f.results.Publish(*result)
}
