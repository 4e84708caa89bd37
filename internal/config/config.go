package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort       = "8080"
	defaultEnvFile    = ".env"
	defaultTemplates  = "templates"
	defaultPublic     = "public"
	defaultContent    = "content"
	defaultCatalog    = "data/products.json"
	defaultEnquiryDB  = "data/enquiries.db"
	defaultLogLevel   = "info"
	defaultFetchLimit = 10 * time.Second
)

// Config captures runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	Enquiry   EnquiryConfig   `yaml:"enquiry"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Site      SiteConfig      `yaml:"site"`
}

// ServerConfig configures the HTTP server and its asset directories.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	TemplatesDir string `yaml:"templates_dir"`
	PublicDir    string `yaml:"public_dir"`
	ContentDir   string `yaml:"content_dir"`
	// DevMode reparses templates on every request.
	DevMode bool `yaml:"dev"`
	// Env is "prod" in production; cookies are marked secure there.
	Env string `yaml:"env"`
}

// CatalogConfig points at the product data resource.
type CatalogConfig struct {
	Path         string        `yaml:"path"`
	URL          string        `yaml:"url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// SessionConfig configures the signed session cookie.
type SessionConfig struct {
	SigningKey string `yaml:"signing_key"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// File enables a rotated JSON log file next to stdout.
	File string `yaml:"file"`
}

// EnquiryConfig configures the quote enquiry store.
type EnquiryConfig struct {
	DBPath string `yaml:"db_path"`
}

// AnalyticsConfig holds client instrumentation ids surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string `yaml:"ga4_measurement_id"`
	GTMContainerID   string `yaml:"gtm_container_id"`
	Debug            bool   `yaml:"debug"`
}

// SiteConfig holds brand details rendered in the layout.
type SiteConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	Phone   string `yaml:"phone"`
	Email   string `yaml:"email"`
	GSTIN   string `yaml:"gstin"`
	City    string `yaml:"city"`
}

// Prod reports whether the server runs in production.
func (c Config) Prod() bool { return strings.EqualFold(c.Server.Env, "prod") }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":" + defaultPort,
			TemplatesDir: defaultTemplates,
			PublicDir:    defaultPublic,
			ContentDir:   defaultContent,
		},
		Catalog: CatalogConfig{
			Path:         defaultCatalog,
			FetchTimeout: defaultFetchLimit,
		},
		Log:     LogConfig{Level: defaultLogLevel},
		Enquiry: EnquiryConfig{DBPath: defaultEnquiryDB},
		Site: SiteConfig{
			Name:  "Shreekara Traders",
			Phone: "6361673634",
			Email: "info@shreekaratraders.com",
			GSTIN: "29AFSFS4060F1ZK",
			City:  "Bangalore, Karnataka",
		},
	}
}

// Load resolves configuration from defaults, an optional YAML file named by
// SITE_CONFIG_FILE, and environment variables (a .env file is read first).
// Environment variables win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", defaultEnvFile, err)
	}
	cfg := Default()
	if path := getEnv("SITE_CONFIG_FILE", ""); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	// port resolution: SITE_PORT, then PORT (Cloud Run)
	if port := getEnv("SITE_PORT", getEnv("PORT", "")); port != "" {
		cfg.Server.Addr = ":" + port
	}
	cfg.Server.Addr = getEnv("SITE_ADDR", cfg.Server.Addr)
	cfg.Server.TemplatesDir = getEnv("SITE_TEMPLATES_DIR", cfg.Server.TemplatesDir)
	cfg.Server.PublicDir = getEnv("SITE_PUBLIC_DIR", cfg.Server.PublicDir)
	cfg.Server.ContentDir = getEnv("SITE_CONTENT_DIR", cfg.Server.ContentDir)
	cfg.Server.DevMode = getEnvBool("SITE_DEV", cfg.Server.DevMode)
	cfg.Server.Env = strings.ToLower(getEnv("SITE_ENV", cfg.Server.Env))

	cfg.Catalog.Path = getEnv("SITE_CATALOG_PATH", cfg.Catalog.Path)
	cfg.Catalog.URL = getEnv("SITE_CATALOG_URL", cfg.Catalog.URL)
	cfg.Catalog.FetchTimeout = time.Duration(getEnvInt("SITE_CATALOG_FETCH_TIMEOUT_SECONDS", int(cfg.Catalog.FetchTimeout/time.Second))) * time.Second

	cfg.Session.SigningKey = getEnv("SITE_SESSION_SIGNING_KEY", cfg.Session.SigningKey)

	cfg.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", cfg.Log.Level))
	cfg.Log.File = getEnv("SITE_LOG_FILE", cfg.Log.File)

	cfg.Enquiry.DBPath = getEnv("SITE_ENQUIRY_DB", cfg.Enquiry.DBPath)

	cfg.Analytics.GA4MeasurementID = getEnv("SITE_GA_MEASUREMENT_ID", cfg.Analytics.GA4MeasurementID)
	cfg.Analytics.GTMContainerID = getEnv("SITE_GTM_CONTAINER_ID", cfg.Analytics.GTMContainerID)
	cfg.Analytics.Debug = getEnvBool("SITE_ANALYTICS_DEBUG", cfg.Analytics.Debug)

	cfg.Site.BaseURL = getEnv("SITE_BASE_URL", cfg.Site.BaseURL)
}

func (c Config) validate() error {
	if c.Prod() && strings.TrimSpace(c.Session.SigningKey) == "" {
		return errors.New("config: SITE_SESSION_SIGNING_KEY is required in prod")
	}
	if c.Catalog.FetchTimeout <= 0 {
		return errors.New("config: catalog fetch timeout must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
