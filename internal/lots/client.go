package lots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout = 8 * time.Second
	// maxPayload bounds the webhook response we are willing to buffer.
	maxPayload = 4 << 20
)

// ErrUnexpectedStatus is returned when the webhook answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("lots: unexpected status")

// Client reads the lot list from the remote webhook.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// NewClient constructs a Client. An empty URL makes Fetch return an empty registry.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:    strings.TrimSpace(url),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch downloads and normalizes the lot list. Transport failures and non-2xx
// statuses are errors; an unexpected payload layout is not, it yields an empty
// registry.
func (c *Client) Fetch(ctx context.Context) (*Registry, error) {
	if c == nil || c.url == "" {
		return NewRegistry(nil), nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("lots: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lots: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("lots: read body: %w", err)
	}
	payload := Decode(body)
	reg := FromPayload(payload)
	c.logger.LogAttrs(ctx, slog.LevelInfo, "lots loaded",
		slog.String("shape", payload.Shape.String()),
		slog.Int("rows", len(payload.Rows)),
		slog.Int("lots", reg.Len()),
	)
	return reg, nil
}
