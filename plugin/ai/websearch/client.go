// Package websearch is the client for the web-search provider
// (Tavily-compatible JSON API). It returns ordered hits; shaping them into
// the markdown response is the formatter's job.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hrygo/cricketsense/plugin/ai/cricket"
)

const (
	// DefaultTimeout bounds every search call.
	DefaultTimeout = 12 * time.Second

	// DefaultMaxResults mirrors what the assistant can usefully render.
	DefaultMaxResults = 6

	searchPath = "/search"
)

// Config configures the web-search client.
type Config struct {
	APIKey     string
	BaseURL    string
	Depth      string // "basic" or "advanced"
	MaxResults int
	Timeout    time.Duration
}

// Client calls the web-search provider. Safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	depth      string
	maxResults int
	httpClient *http.Client
}

// NewClient creates a web-search client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	depth := cfg.Depth
	if depth == "" {
		depth = "advanced"
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		depth:      depth,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type searchResponse struct {
	Results []cricket.SearchHit `json:"results"`
}

// Search runs the query and returns the provider's ordered hits. An empty
// slice is a valid answer; the caller renders the no-information message.
func (c *Client) Search(ctx context.Context, query string) ([]cricket.SearchHit, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   c.depth,
		MaxResults:    c.maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		slog.Warn("web-search request failed",
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("web-search provider returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode web-search response: %w", err)
	}

	slog.Debug("web-search request succeeded",
		slog.Int("results", len(parsed.Results)),
		slog.Duration("duration", time.Since(start)))

	return parsed.Results, nil
}
