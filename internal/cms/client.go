package cms

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// DefaultLang is the language content falls back to.
const DefaultLang = "es"

// Client provides read-only access to site content: a remote CMS when a base
// URL is configured, local markdown otherwise.
type Client struct {
	baseURL    string
	contentDir string
	http       *http.Client

	// rendered pages, keyed by dir|kind|lang|slug
	mu       sync.RWMutex
	cache    map[string]contentCacheEntry
	cacheTTL time.Duration
	now      func() time.Time
}

// NewClient constructs a Client with the provided base URL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 5 * time.Second},
		cache:    map[string]contentCacheEntry{},
		cacheTTL: defaultContentTTL,
		now:      time.Now,
	}
}

// SetCacheTTL overrides how long rendered pages are kept. Zero disables the
// cache.
func (c *Client) SetCacheTTL(d time.Duration) {
	if c == nil || d < 0 {
		return
	}
	c.mu.Lock()
	c.cacheTTL = d
	c.mu.Unlock()
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return DefaultLang
	}
	return lang
}
