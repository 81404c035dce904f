package lotmap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
)

// maxGraphic bounds the site plan markup we are willing to buffer.
const maxGraphic = 16 << 20

// GraphicSource provides the raw site plan markup.
type GraphicSource interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// LotSource provides the lot registry. *lots.Client implements it.
type LotSource interface {
	Fetch(ctx context.Context) (*lots.Registry, error)
}

// FileGraphic reads the site plan from disk.
type FileGraphic string

// Open implements GraphicSource.
func (f FileGraphic) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(string(f))
}

// URLGraphic downloads the site plan over HTTP.
type URLGraphic struct {
	URL    string
	Client *http.Client
}

// Open implements GraphicSource.
func (u URLGraphic) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return nil, err
	}
	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("lotmap: graphic status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// GraphicFromString serves fixed markup, mostly for tests.
type GraphicFromString string

// Open implements GraphicSource.
func (s GraphicFromString) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

// Generation is an immutable snapshot of a bind: the registry it used and the
// rendered, bound markup. Sessions compare Number to notice rebinds.
type Generation struct {
	Number   uint64
	Registry *lots.Registry
	Markup   string
	Bound    []string
	LoadedAt time.Time
}

// Options tunes a Service.
type Options struct {
	// TTL is how long a generation is served before Ensure refreshes it.
	TTL time.Duration
	// Timeout bounds each source fetch.
	Timeout time.Duration
	// RetryAfter throttles refresh attempts after a failure.
	RetryAfter time.Duration
	Bind       BindOptions
	Logger     *slog.Logger
}

// ErrNotReady is returned while one of the sources has never loaded.
var ErrNotReady = errors.New("lotmap: graphic or lots not loaded")

// Service loads the graphic and the lots independently and binds them once
// both are present. A source that fails keeps serving its last good copy.
type Service struct {
	graphics GraphicSource
	lots     LotSource
	opts     Options
	now      func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	graphic     *Graphic
	registry    *lots.Registry
	dispose     Disposer
	current     *Generation
	number      uint64
	lastAttempt time.Time
}

// NewService wires the two sources.
func NewService(graphics GraphicSource, lotSource LotSource, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{graphics: graphics, lots: lotSource, opts: opts, now: time.Now}
}

// Current returns the latest generation, or nil before the first bind.
func (s *Service) Current() *Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Ensure returns a generation, refreshing first when none exists or the
// current one is older than the TTL. Refresh failures are logged and the
// previous generation (possibly nil) is returned.
func (s *Service) Ensure(ctx context.Context) *Generation {
	s.mu.RLock()
	cur, last := s.current, s.lastAttempt
	s.mu.RUnlock()

	now := s.now()
	stale := cur == nil || now.Sub(cur.LoadedAt) > s.opts.TTL
	if !stale || now.Sub(last) < s.opts.RetryAfter {
		return cur
	}
	gen, err := s.Refresh(ctx)
	if err != nil {
		s.opts.Logger.WarnContext(ctx, "lot map refresh failed", slog.Any("error", err))
		return s.Current()
	}
	return gen
}

// Refresh reloads both sources concurrently and rebinds. Concurrent callers
// share one reload. The reload is detached from the caller's cancellation and
// bounded by the configured timeout instead.
func (s *Service) Refresh(ctx context.Context) (*Generation, error) {
	ch := s.group.DoChan("refresh", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		gen, _ := res.Val.(*Generation)
		return gen, res.Err
	case <-ctx.Done():
		return s.Current(), ctx.Err()
	}
}

func (s *Service) refresh(ctx context.Context) (*Generation, error) {
	s.mu.Lock()
	s.lastAttempt = s.now()
	s.mu.Unlock()

	var (
		graphic    *Graphic
		registry   *lots.Registry
		graphicErr error
		lotErr     error
		g          errgroup.Group
	)
	g.Go(func() error {
		graphic, graphicErr = s.loadGraphic(ctx)
		return graphicErr
	})
	g.Go(func() error {
		registry, lotErr = s.loadLots(ctx)
		return lotErr
	})
	_ = g.Wait()

	if graphicErr != nil {
		s.opts.Logger.WarnContext(ctx, "site plan load failed", slog.Any("error", graphicErr))
	}
	if lotErr != nil {
		s.opts.Logger.WarnContext(ctx, "lot list load failed", slog.Any("error", lotErr))
	}
	loadErr := errors.Join(graphicErr, lotErr)

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if graphic != nil {
		if s.dispose != nil {
			s.dispose()
			s.dispose = nil
		}
		s.graphic = graphic
		changed = true
	}
	if registry != nil {
		s.registry = registry
		changed = true
	}
	if s.graphic == nil || s.registry == nil {
		if loadErr == nil {
			loadErr = ErrNotReady
		}
		return nil, loadErr
	}
	if !changed {
		return s.current, loadErr
	}

	if s.dispose != nil {
		s.dispose()
	}
	bindings, dispose := Bind(s.graphic, s.registry, s.opts.Bind)
	s.dispose = dispose
	markup, err := s.graphic.Markup()
	if err != nil {
		return s.current, errors.Join(loadErr, err)
	}

	s.number++
	s.current = &Generation{
		Number:   s.number,
		Registry: s.registry,
		Markup:   markup,
		Bound:    bindings.Keys(),
		LoadedAt: s.now(),
	}
	s.opts.Logger.InfoContext(ctx, "lot map bound",
		slog.Uint64("generation", s.current.Number),
		slog.Int("lots", s.registry.Len()),
		slog.Int("bound", len(bindings)),
	)
	return s.current, loadErr
}

func (s *Service) loadGraphic(ctx context.Context) (*Graphic, error) {
	if s.graphics == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	rc, err := s.graphics.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("lotmap: open graphic: %w", err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(io.LimitReader(rc, maxGraphic))
	if err != nil {
		return nil, fmt.Errorf("lotmap: read graphic: %w", err)
	}
	return ParseGraphic(bytes.NewReader(raw))
}

func (s *Service) loadLots(ctx context.Context) (*lots.Registry, error) {
	if s.lots == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()
	return s.lots.Fetch(ctx)
}
