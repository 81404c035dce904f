package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/config"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/contact"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/i18n"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/logging"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lotmap"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/lots"
	mw "github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/middleware"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/prices"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/status"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates on every request.
	devMode   bool
	tmplCache *templateSet

	logger      = slog.Default()
	i18nBundle  *i18n.Bundle
	site        = cms.DefaultSite()
	corsOrigins []string

	cmsClient     *cms.Client
	mapService    *lotmap.Service
	mapSessions   *lotmap.Sessions
	priceClient   *prices.Client
	contactClient *contact.Client
	statusMonitor *status.Monitor
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	flag.StringVar(&addr, "addr", cfg.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.PublicDir, "public assets directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = cfg.Dev
	corsOrigins = cfg.CORSOrigins

	logger = logging.New(logging.Options{Level: cfg.LogLevel, Dev: devMode})
	slog.SetDefault(logger)
	mw.ConfigureSessions(cfg.SessionKey, cfg.Prod())

	i18nBundle, err = i18n.Load(cfg.LocalesDir, "es", []string{"es", "en"})
	if err != nil {
		logger.Error("load locales", slog.Any("error", err))
		os.Exit(1)
	}
	if s, err := cms.LoadSite(cfg.SiteFile); err != nil {
		logger.Warn("site file unreadable, using built-in copy", slog.Any("error", err))
	} else {
		site = s
	}

	cmsClient = cms.NewClient(cfg.CMSBaseURL)
	cmsClient.SetContentDir(cfg.ContentDir)
	priceClient = prices.NewClient(cfg.PricesURL, cfg.FetchTimeout, cfg.PriceTTL, logger)
	contactClient = contact.NewClient(cfg.ContactURL, cfg.ContactTimeout, logger)
	mapService = lotmap.NewService(
		graphicSource(cfg),
		lots.NewClient(cfg.LotsURL, cfg.FetchTimeout, logger),
		lotmap.Options{TTL: cfg.MapTTL, Timeout: cfg.FetchTimeout, Logger: logger},
	)
	mapSessions = lotmap.NewSessions(cfg.SessionTTL, "#"+mapElementID)
	statusMonitor = newStatusMonitor(30 * time.Second)

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Error("parse templates", slog.Any("error", err))
			os.Exit(1)
		}
		tmplCache = tc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// warm the map so the first visitor does not wait on both webhooks
	go func() {
		if _, err := mapService.Refresh(ctx); err != nil {
			logger.Warn("initial map load failed", slog.Any("error", err))
		}
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("web listening", slog.String("addr", addr), slog.Bool("devMode", devMode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("listen", slog.Any("error", err))
		os.Exit(1)
	}
}

// newRouter wires middleware and routes. Package state (clients, bundle,
// template dirs) must be initialised first.
func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", StatusHandler)

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), 7*24*time.Hour))
	r.Handle("/assets/*", assets)

	// JSON API for external landing pages: no session, no CSRF, CORS instead.
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "Idempotency-Key"},
			MaxAge:         300,
		}))
		r.Get("/lotes", APILotsHandler)
		r.Post("/contacto", APIContactHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.HTMX)
		r.Use(mw.Session)
		r.Use(mw.Locale(i18nBundle))
		r.Use(mw.CSRF)
		r.Use(mw.VaryLocale)

		r.Get("/", HomeHandler)
		r.Get("/precios", PricesHandler)
		r.Get("/contacto", ContactHandler)
		r.Post("/contacto", ContactSubmitHandler)
		r.Get("/amenidades/{slug}", AmenityHandler)

		r.Route("/mapa", func(r chi.Router) {
			r.Get("/", MapFrag)
			r.Get("/panel", MapPanelFrag)
			r.Post("/descartar", MapDismissHandler)
			r.Post("/otro", MapResetHandler)
			r.Post("/lotes/{key}/{action}", MapLotEventHandler)
		})
	})
	return r
}

func graphicSource(cfg config.Config) lotmap.GraphicSource {
	if cfg.MapIsURL() {
		return lotmap.URLGraphic{URL: cfg.MapSVG, Client: &http.Client{Timeout: cfg.FetchTimeout}}
	}
	return lotmap.FileGraphic(filepath.Join(publicDir, filepath.FromSlash(strings.TrimPrefix(cfg.MapSVG, "/"))))
}
