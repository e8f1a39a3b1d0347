package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds everything the portal reads from the environment.
// Command-line flags in cmd/portal may override any field after Load.
type Config struct {
	Address       string        `envconfig:"RUN_ADDRESS" default:":8080"`
	APIBaseURL    string        `envconfig:"API_BASE_URL"`
	RefreshPath   string        `envconfig:"AUTH_REFRESH_PATH" default:"/api/refresh"`
	RefreshSkew   time.Duration `envconfig:"TOKEN_REFRESH_SKEW" default:"30s"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	RateRPS       float64       `envconfig:"API_RATE_RPS" default:"10"`
	RateBurst     int           `envconfig:"API_RATE_BURST" default:"20"`
	DBDriver      string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN         string        `envconfig:"DB_DSN" default:"file:portal.db?cache=shared"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string        `envconfig:"LOG_FORMAT" default:"json"`
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"portal_session"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
	AllowedOrigin string        `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:5173"`
	BannerTTL     time.Duration `envconfig:"BANNER_TTL" default:"5s"`
	SessionMaxAge time.Duration `envconfig:"SESSION_MAX_AGE" default:"168h"`
	PruneInterval time.Duration `envconfig:"PRUNE_INTERVAL" default:"1h"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// 1. --- Load .env ---
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded, relying on system environment variables")
	}

	// 2. --- Parse environment ---
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return &cfg, nil
}

// Validate checks the fields that have no usable default.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL must be set")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("API_BASE_URL %q is not an absolute URL", c.APIBaseURL)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return errors.Errorf("DB_DRIVER must be mysql or sqlite, got %q", c.DBDriver)
	}
	if c.RateRPS <= 0 || c.RateBurst <= 0 {
		return errors.New("API_RATE_RPS and API_RATE_BURST must be positive")
	}
	if c.BannerTTL <= 0 {
		return errors.New("BANNER_TTL must be positive")
	}
	if c.SessionMaxAge <= 0 || c.PruneInterval <= 0 {
		return errors.New("SESSION_MAX_AGE and PRUNE_INTERVAL must be positive")
	}
	return nil
}
