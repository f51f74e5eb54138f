package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 2 * time.Minute
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 20 * time.Second
	defaultAdviceModel     = "gemini-3-flash-preview"
	defaultSceneModel      = "gemini-2.5-flash-image"
	defaultTemperature     = 0.7
	defaultAITimeout       = 90 * time.Second
	defaultFetchTimeout    = 15 * time.Second
	defaultMaxDimension    = 1024
	defaultImageQuality    = 85
	defaultSessionCookie   = "ms_session"
	defaultSessionTTL      = 2 * time.Hour
)

// Catalog sources
const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env      string
	Server   ServerConfig
	Log      LogConfig
	Catalog  CatalogConfig
	AI       AIConfig
	Images   ImageConfig
	Session  SessionConfig
	Lookbook LookbookConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port            string
	BaseURL         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address on all interfaces.
func (s ServerConfig) Addr() string {
	return "0.0.0.0:" + s.Port
}

// LogConfig configures zap.
type LogConfig struct {
	Level    string
	Encoding string
}

// CatalogConfig selects where the static catalog is loaded from.
type CatalogConfig struct {
	Source      string
	DatabaseURL string
}

// AIConfig holds the generative AI credentials and model choices.
type AIConfig struct {
	APIKey      string
	AdviceModel string
	SceneModel  string
	Temperature float64
	Timeout     time.Duration
}

// Enabled reports whether an API key was supplied.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// ImageConfig controls how source images are fetched and normalised.
type ImageConfig struct {
	FetchTimeout         time.Duration
	MaxDimension         int
	Quality              int
	DriveCredentialsFile string
	DriveCredentialsJSON string
}

// SessionConfig controls the in-memory storefront sessions.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// LookbookConfig configures the headless browser used for PDF export.
type LookbookConfig struct {
	ChromePath string
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			Port:            strings.TrimPrefix(getEnv("PORT", defaultPort), ":"),
			BaseURL:         strings.TrimRight(getEnv("BASE_URL", ""), "/"),
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", defaultReadTimeout, &errs),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", defaultWriteTimeout, &errs),
			IdleTimeout:     getDuration("SERVER_IDLE_TIMEOUT", defaultIdleTimeout, &errs),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout, &errs),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "json"),
		},
		Catalog: CatalogConfig{
			Source:      strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceStatic)),
			DatabaseURL: databaseURL(),
		},
		AI: AIConfig{
			APIKey:      firstEnv("GEMINI_API_KEY", "API_KEY"),
			AdviceModel: getEnv("AI_ADVICE_MODEL", defaultAdviceModel),
			SceneModel:  getEnv("AI_SCENE_MODEL", defaultSceneModel),
			Temperature: getFloat("AI_TEMPERATURE", defaultTemperature, &errs),
			Timeout:     getDuration("AI_TIMEOUT", defaultAITimeout, &errs),
		},
		Images: ImageConfig{
			FetchTimeout:         getDuration("IMAGE_FETCH_TIMEOUT", defaultFetchTimeout, &errs),
			MaxDimension:         getInt("IMAGE_MAX_DIMENSION", defaultMaxDimension, &errs),
			Quality:              getInt("IMAGE_QUALITY", defaultImageQuality, &errs),
			DriveCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			DriveCredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", defaultSessionCookie),
			TTL:        getDuration("SESSION_TTL", defaultSessionTTL, &errs),
		},
		Lookbook: LookbookConfig{
			ChromePath: os.Getenv("CHROME_PATH"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:" + cfg.Server.Port
	}

	switch cfg.Catalog.Source {
	case CatalogSourceStatic:
	case CatalogSourcePostgres:
		if cfg.Catalog.DatabaseURL == "" {
			errs = append(errs, errors.New("CATALOG_SOURCE=postgres requires DATABASE_URL or DB_HOST, DB_USER, DB_NAME"))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogSourceStatic, CatalogSourcePostgres, cfg.Catalog.Source))
	}

	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		errs = append(errs, fmt.Errorf("AI_TEMPERATURE must be between 0 and 2, got %v", cfg.AI.Temperature))
	}
	if cfg.Images.Quality < 1 || cfg.Images.Quality > 100 {
		errs = append(errs, fmt.Errorf("IMAGE_QUALITY must be between 1 and 100, got %d", cfg.Images.Quality))
	}
	if cfg.Images.MaxDimension <= 0 {
		errs = append(errs, fmt.Errorf("IMAGE_MAX_DIMENSION must be positive, got %d", cfg.Images.MaxDimension))
	}
	if cfg.Session.TTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// IsProduction reports whether ENV=production.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// databaseURL builds the connection string from DATABASE_URL or the individual DB_* variables.
func databaseURL() string {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}
	port := getEnv("DB_PORT", "5432")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getInt(key string, def int, errs *[]error) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getFloat(key string, def float64, errs *[]error) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
