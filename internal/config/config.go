package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Prefix is prepended to every variable the site reads.
const Prefix = "GRANADOS_WEB_"

const (
	DefaultLotsURL    = "https://n8n.srv894483.hstgr.cloud/webhook/lotes-json"
	DefaultPricesURL  = "https://n8n.srv894483.hstgr.cloud/webhook/dc83e669-fc96-4384-9a3a-f463a9df64c1"
	DefaultContactURL = "https://granadosdelmediterraneo.com/api/email/send-form"
)

// Config holds the runtime settings of the web server.
type Config struct {
	Port     string
	Dev      bool
	Env      string
	LogLevel slog.Level

	TemplatesDir string
	PublicDir    string
	ContentDir   string
	LocalesDir   string
	SiteFile     string

	// Map graphic: a path under PublicDir or an absolute http(s) URL.
	MapSVG     string
	LotsURL    string
	PricesURL  string
	ContactURL string
	CMSBaseURL string

	FetchTimeout   time.Duration
	ContactTimeout time.Duration
	MapTTL         time.Duration
	PriceTTL       time.Duration
	SessionTTL     time.Duration

	SessionKey  string
	CORSOrigins []string
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string { return ":" + c.Port }

// Prod reports whether the server runs with production settings.
func (c Config) Prod() bool { return c.Env == "prod" }

// Load reads an optional .env file (the first path given, or ./.env) and then
// the environment. A missing .env file is not an error.
func Load(envPath ...string) (Config, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	port := getEnv("PORT", "")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	cfg := Config{
		Port:     port,
		Dev:      getEnvAsBool("DEV", false) || os.Getenv("DEV") != "",
		Env:      strings.ToLower(getEnv("ENV", "dev")),
		LogLevel: getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),

		TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),
		PublicDir:    getEnv("PUBLIC_DIR", "public"),
		ContentDir:   getEnv("CONTENT_DIR", "content"),
		LocalesDir:   getEnv("LOCALES_DIR", "locales"),
		SiteFile:     getEnv("SITE_FILE", ""),

		MapSVG:     getEnv("MAP_SVG", "assets/mapa.svg"),
		LotsURL:    getEnv("LOTS_URL", DefaultLotsURL),
		PricesURL:  getEnv("PRICES_URL", DefaultPricesURL),
		ContactURL: getEnv("CONTACT_URL", DefaultContactURL),
		CMSBaseURL: getEnv("CMS_BASE_URL", ""),

		FetchTimeout:   getEnvAsDuration("FETCH_TIMEOUT", 8*time.Second),
		ContactTimeout: getEnvAsDuration("CONTACT_TIMEOUT", 10*time.Second),
		MapTTL:         getEnvAsDuration("MAP_TTL", 5*time.Minute),
		PriceTTL:       getEnvAsDuration("PRICE_TTL", 10*time.Minute),
		SessionTTL:     getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		SessionKey:  getEnv("SESSION_SIGNING_KEY", ""),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"https://granadosdelmediterraneo.com"}),
	}
	if cfg.Prod() && cfg.SessionKey == "" {
		return cfg, fmt.Errorf("config: %sSESSION_SIGNING_KEY is required when %sENV=prod", Prefix, Prefix)
	}
	return cfg, nil
}

// MapIsURL reports whether MapSVG points at a remote graphic.
func (c Config) MapIsURL() bool {
	return strings.HasPrefix(c.MapSVG, "http://") || strings.HasPrefix(c.MapSVG, "https://")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(Prefix + key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(Prefix + key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(strings.TrimSpace(valStr))
	if err != nil {
		// any non-empty value enables a flag, matching DEV=yes style usage
		return strings.TrimSpace(valStr) != ""
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(Prefix + key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(valStr))
	if err != nil || d <= 0 {
		slog.Warn("config: invalid duration, using default", "key", Prefix+key, "value", valStr, "default", defaultValue)
		return defaultValue
	}
	return d
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	valStr, exists := os.LookupEnv(Prefix + key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(valStr))); err != nil {
		slog.Warn("config: invalid log level, using default", "key", Prefix+key, "value", valStr)
		return defaultValue
	}
	return lvl
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(Prefix + key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
