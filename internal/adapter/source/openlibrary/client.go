// Package openlibrary implements domain.BookSearcher against the Open
// Library search API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/biblio/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "biblio/1.0"
)

// Client implements domain.BookSearcher for Open Library
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Open Library search client. endpoint is the full
// search URL, e.g. https://openlibrary.org/search.json.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// Search issues one GET against the search endpoint. The query is the
// normalized (lower-cased, whitespace-collapsed) search text; url encoding
// renders the internal spaces as '+'.
func (c *Client) Search(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	query := url.Values{}
	query.Set("q", params.NormalizedQuery())
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.PageSize))

	reqURL := c.endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("openlibrary request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("openlibrary request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("openlibrary request error", "status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrBadResponse, err)
	}

	return MapSearchResult(&sr), nil
}
