package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ContentPage represents a localized static page sourced from the CMS or local markdown.
type ContentPage struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Tagline   string
	Hero      string
	BackLink  Link
	Body      string
	Format    string // "markdown" (default) or "html"
	HTML      string // sanitized body
	UpdatedAt time.Time
	Features  []FeatureGroup
	Panoramas []Panorama
	Gallery   []Image
}

// Link is a labelled destination.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// FeatureGroup is a titled list of amenities.
type FeatureGroup struct {
	Title string   `yaml:"title" json:"title"`
	Items []string `yaml:"items" json:"items"`
}

// Panorama is an equirectangular 360° image.
type Panorama struct {
	Src    string `yaml:"src" json:"src"`
	Label  string `yaml:"label" json:"label"`
	Mirror bool   `yaml:"mirror" json:"mirror"`
}

// Image is a gallery picture.
type Image struct {
	Src string `yaml:"src" json:"src"`
	Alt string `yaml:"alt" json:"alt"`
}

type contentFrontMatter struct {
	Title     string         `yaml:"title"`
	Summary   string         `yaml:"summary"`
	Tagline   string         `yaml:"tagline"`
	Hero      string         `yaml:"hero"`
	BackLink  Link           `yaml:"back_link"`
	Lang      string         `yaml:"lang"`
	Format    string         `yaml:"format"`
	UpdatedAt string         `yaml:"updated_at"`
	Features  []FeatureGroup `yaml:"features"`
	Panoramas []Panorama     `yaml:"panoramas"`
	Gallery   []Image        `yaml:"gallery"`
}

const (
	defaultContentFormat = "markdown"
	defaultContentDir    = "content"
	defaultContentTTL    = 5 * time.Minute
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = newContentHTMLPolicy()
)

type contentCacheEntry struct {
	page    ContentPage
	expires time.Time
}

// SetContentDir configures the fallback directory for markdown pages.
func (c *Client) SetContentDir(dir string) {
	if c == nil {
		return
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	c.contentDir = dir
}

// ContentDir returns the configured fallback directory.
func (c *Client) ContentDir() string {
	if c == nil || strings.TrimSpace(c.contentDir) == "" {
		return defaultContentDir
	}
	return c.contentDir
}

// GetContentPage fetches a localized static page, consulting the remote CMS when configured,
// otherwise falling back to local markdown. The body is rendered and sanitized.
func (c *Client) GetContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = "content"
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	cacheKey := strings.Join([]string{c.ContentDir(), kind, lang, slug}, "|")
	if page, ok := c.cached(cacheKey); ok {
		return page, nil
	}

	page, err := c.fetchContentPage(ctx, kind, slug, lang)
	if err != nil {
		return ContentPage{}, err
	}
	html, err := renderBody(page.Body, page.Format)
	if err != nil {
		return ContentPage{}, fmt.Errorf("cms: render %s/%s: %w", kind, slug, err)
	}
	page.HTML = html
	c.store(cacheKey, page)
	return cloneContentPage(page), nil
}

func (c *Client) fetchContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	if c != nil && c.baseURL != "" {
		page, err := c.fetchContentPageRemote(ctx, kind, slug, lang)
		if err == nil {
			return page, nil
		}
		// Remote misses and outages both fall through to the local copy.
	}
	return fallbackContentPage(c.ContentDir(), kind, slug, lang)
}

func (c *Client) fetchContentPageRemote(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", kind, slug)
	if err != nil {
		return ContentPage{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ContentPage{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return ContentPage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ContentPage{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return ContentPage{}, fmt.Errorf("cms: content remote status %d", resp.StatusCode)
	}

	var payload struct {
		Title     string         `json:"title"`
		Summary   string         `json:"summary"`
		Tagline   string         `json:"tagline"`
		Hero      string         `json:"hero"`
		BackLink  Link           `json:"back_link"`
		Lang      string         `json:"lang"`
		Body      string         `json:"body"`
		Format    string         `json:"format"`
		UpdatedAt time.Time      `json:"updated_at"`
		Features  []FeatureGroup `json:"features"`
		Panoramas []Panorama     `json:"panoramas"`
		Gallery   []Image        `json:"gallery"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ContentPage{}, err
	}
	if strings.TrimSpace(payload.Body) == "" {
		return ContentPage{}, fmt.Errorf("cms: empty body for %s/%s", kind, slug)
	}
	return ContentPage{
		Kind:      kind,
		Slug:      slug,
		Lang:      firstNonEmpty(payload.Lang, lang),
		Title:     firstNonEmpty(payload.Title, prettifySlug(slug)),
		Summary:   payload.Summary,
		Tagline:   payload.Tagline,
		Hero:      payload.Hero,
		BackLink:  payload.BackLink,
		Body:      payload.Body,
		Format:    firstNonEmpty(payload.Format, defaultContentFormat),
		UpdatedAt: payload.UpdatedAt,
		Features:  payload.Features,
		Panoramas: payload.Panoramas,
		Gallery:   payload.Gallery,
	}, nil
}

func fallbackContentPage(contentDir, kind, slug, lang string) (ContentPage, error) {
	priority := []string{lang}
	if lang != DefaultLang {
		priority = append(priority, DefaultLang)
	}
	for _, candidate := range priority {
		page, err := readContentMarkdown(contentDir, kind, slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		// Parse problems stop the search.
		return ContentPage{}, err
	}
	return ContentPage{}, ErrNotFound
}

func readContentMarkdown(contentDir, kind, slug, lang string) (ContentPage, error) {
	file := filepath.Join(contentDir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentPage{}, ErrNotFound
		}
		return ContentPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := ContentPage{
		Kind:      kind,
		Slug:      slug,
		Lang:      firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:     strings.TrimSpace(front.Title),
		Summary:   strings.TrimSpace(front.Summary),
		Tagline:   strings.TrimSpace(front.Tagline),
		Hero:      strings.TrimSpace(front.Hero),
		BackLink:  front.BackLink,
		Body:      body,
		Format:    firstNonEmpty(strings.TrimSpace(front.Format), defaultContentFormat),
		UpdatedAt: parseContentDate(front.UpdatedAt),
		Features:  front.Features,
		Panoramas: front.Panoramas,
		Gallery:   front.Gallery,
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

// renderBody converts markdown (or raw HTML) into sanitized HTML.
func renderBody(body, format string) (string, error) {
	if strings.EqualFold(format, "html") {
		return policy.Sanitize(body), nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

func newContentHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "ul", "li")
	p.AllowAttrs("loading").OnElements("img")
	p.RequireNoFollowOnLinks(true)
	return p
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// prettifySlug turns "casa-club" into "Casa Club".
func prettifySlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	return cases.Title(language.Spanish).String(strings.Join(words, " "))
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func (c *Client) cached(key string) (ContentPage, bool) {
	if c == nil {
		return ContentPage{}, false
	}
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return ContentPage{}, false
	}
	return cloneContentPage(entry.page), true
}

func (c *Client) store(key string, page ContentPage) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cacheTTL <= 0 {
		return
	}
	c.cache[key] = contentCacheEntry{
		page:    cloneContentPage(page),
		expires: c.now().Add(c.cacheTTL),
	}
}

func cloneContentPage(src ContentPage) ContentPage {
	cp := src
	cp.Features = make([]FeatureGroup, len(src.Features))
	for i, g := range src.Features {
		cp.Features[i] = FeatureGroup{Title: g.Title, Items: append([]string(nil), g.Items...)}
	}
	cp.Panoramas = append([]Panorama(nil), src.Panoramas...)
	cp.Gallery = append([]Image(nil), src.Gallery...)
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

