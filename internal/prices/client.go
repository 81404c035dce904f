package prices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 5 * time.Minute
	defaultRetry    = 15 * time.Second
	maxPayload      = 1 << 20
)

// ErrUnexpectedStatus is returned for non-2xx webhook responses.
var ErrUnexpectedStatus = errors.New("prices: unexpected status")

// Client fetches the price table and caches it in memory.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
	ttl    time.Duration
	retry  time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	cached   Table
	loaded   bool
	expires  time.Time
	failedAt time.Time
	lastErr  error
}

// NewClient builds a client. With an empty URL every lookup returns an empty
// table, so every card shows "Consultar".
func NewClient(url string, timeout, ttl time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:    strings.TrimSpace(url),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
		ttl:    ttl,
		retry:  defaultRetry,
		now:    time.Now,
	}
}

// SetRetryAfter sets how long a failed fetch is remembered before the webhook
// is tried again.
func (c *Client) SetRetryAfter(d time.Duration) {
	c.mu.Lock()
	c.retry = d
	c.mu.Unlock()
}

// Get returns the cached table while fresh, otherwise refetches. When the
// webhook fails the last good table is served and the error returned with it.
// Within the retry window after a failure the webhook is not called again.
func (c *Client) Get(ctx context.Context) (Table, error) {
	if c == nil || c.url == "" {
		return Table{}, nil
	}
	now := c.now()
	c.mu.RLock()
	cached, loaded, expires := c.cached, c.loaded, c.expires
	failedAt, lastErr, retry := c.failedAt, c.lastErr, c.retry
	c.mu.RUnlock()
	if loaded && now.Before(expires) {
		return cached, nil
	}
	if lastErr != nil && now.Sub(failedAt) < retry {
		return cached, lastErr
	}

	t, err := c.fetch(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.WarnContext(ctx, "price list fetch failed", slog.Any("error", err))
		c.failedAt, c.lastErr = c.now(), err
		return c.cached, err
	}
	c.cached, c.loaded, c.expires = t, true, c.now().Add(c.ttl)
	c.failedAt, c.lastErr = time.Time{}, nil
	return t, nil
}

func (c *Client) fetch(ctx context.Context) (Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Table{}, fmt.Errorf("prices: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Table{}, fmt.Errorf("prices: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Table{}, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return Table{}, fmt.Errorf("prices: read body: %w", err)
	}
	t := Decode(body)
	c.logger.DebugContext(ctx, "price list loaded", slog.Int("types", t.Len()))
	return t, nil
}
