package livescore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/hrygo/cricketsense/plugin/ai/cricket"
)

const (
	// DefaultTimeout bounds every provider call. Exceeding it is a normal
	// recoverable failure, not a retry trigger.
	DefaultTimeout = 12 * time.Second

	category = "cricket"

	byDatePath = "/matches/v2/list-by-date"
	livePath   = "/matches/v2/list-live"
)

// StatusError reports a non-success HTTP status from the provider. Callers
// degrade it to a descriptive message instead of propagating it.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("live-score provider returned status %d", e.Code)
}

// Config configures the live-score client.
type Config struct {
	BaseURL string
	APIKey  string
	Host    string
	Timeout time.Duration
}

// Client calls the live-score provider. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a live-score client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		host:       cfg.Host,
		httpClient: &http.Client{Timeout: timeout},
		// The provider meters by the second; stay politely under it.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 2),
	}
}

// ListByDate returns all stages for the given day.
func (c *Client) ListByDate(ctx context.Context, day time.Time) ([]cricket.Stage, error) {
	params := url.Values{}
	params.Set("Category", category)
	params.Set("Date", day.Format("20060102"))
	return c.list(ctx, byDatePath, params)
}

// ListLive returns only the currently live stages.
func (c *Client) ListLive(ctx context.Context) ([]cricket.Stage, error) {
	params := url.Values{}
	params.Set("Category", category)
	return c.list(ctx, livePath, params)
}

func (c *Client) list(ctx context.Context, path string, params url.Values) ([]cricket.Stage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		slog.Warn("live-score request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var parsed listResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode live-score response: %w", err)
	}

	stages := parsed.toStages()
	slog.Debug("live-score request succeeded",
		slog.String("path", path),
		slog.Int("stages", len(stages)),
		slog.Duration("duration", time.Since(start)))

	return stages, nil
}
