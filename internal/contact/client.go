package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout    = 10 * time.Second
	idempotencyHeader = "Idempotency-Key"
	maxResponse       = 64 << 10
)

// ErrSubmitFailed covers every outcome other than a 2xx answer with a JSON body.
var ErrSubmitFailed = errors.New("contact: submission failed")

// Client posts submissions to the mail sending endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient constructs a Client. With an empty endpoint submissions are only
// logged, which keeps local development usable.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Configured reports whether submissions reach an endpoint.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

// Send delivers a submission. idempotencyKey may be empty, a fresh one is
// generated then.
func (c *Client) Send(ctx context.Context, sub Submission, idempotencyKey string) error {
	if c == nil {
		return ErrSubmitFailed
	}
	if c.endpoint == "" {
		c.logger.InfoContext(ctx, "contact endpoint not configured, submission dropped",
			slog.String("email", sub.Email), slog.String("lote", sub.LoteInteres))
		return nil
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrSubmitFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyHeader, ensureIdempotencyKey(idempotencyKey))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrSubmitFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrSubmitFailed, resp.StatusCode, apiMessage(body))
	}
	if !json.Valid(body) {
		return fmt.Errorf("%w: response is not JSON", ErrSubmitFailed)
	}
	return nil
}

// apiMessage extracts {"error":{"message":...}} when present.
func apiMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if len(body) > 256 {
		body = body[:256]
	}
	return strings.TrimSpace(string(body))
}

func ensureIdempotencyKey(key string) string {
	key = strings.TrimSpace(key)
	if key != "" {
		return key
	}
	return uuid.NewString()
}
