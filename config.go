package mentorhub

import (
	"os"
	"strconv"

	"github.com/goliatone/go-errors"
)

const (
	// EnvProduction tightens cookie attributes
	EnvProduction = "production"

	defaultTokenExpiration = 72
	defaultHTTPAddr        = ":3000"
	defaultDSN             = "file:mentorhub.db?cache=shared&_pragma=foreign_keys(1)"
	defaultMaxUploadBytes  = 8 << 20
)

// Config holds explicit service configuration. It is built once at startup
// and handed to constructors; nothing reads the environment after that.
type Config struct {
	Env             string
	HTTPAddr        string
	DSN             string
	SigningKey      string
	TokenExpiration int // hours
	CookieName      string
	MaxUploadBytes  int64
}

// LoadConfig reads configuration from the environment. The signing secret is
// required and a zero token expiration is rejected so the service can never
// mint unbounded tokens.
func LoadConfig() (Config, error) {
	cfg := Config{
		Env:             envOr("ENV", "development"),
		HTTPAddr:        envOr("HTTP_ADDR", defaultHTTPAddr),
		DSN:             envOr("DATABASE_DSN", defaultDSN),
		SigningKey:      os.Getenv("JWT_SECRET"),
		TokenExpiration: defaultTokenExpiration,
		CookieName:      envOr("TOKEN_COOKIE", "token"),
		MaxUploadBytes:  defaultMaxUploadBytes,
	}

	if cfg.SigningKey == "" {
		return cfg, errors.New("JWT_SECRET is required", errors.CategoryValidation)
	}

	if v := os.Getenv("TOKEN_EXPIRATION_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrap(err, errors.CategoryValidation, "invalid TOKEN_EXPIRATION_HOURS")
		}
		if hours <= 0 {
			return cfg, errors.New("TOKEN_EXPIRATION_HOURS must be positive", errors.CategoryValidation)
		}
		cfg.TokenExpiration = hours
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		max, err := strconv.ParseInt(v, 10, 64)
		if err != nil || max <= 0 {
			return cfg, errors.New("invalid MAX_UPLOAD_BYTES", errors.CategoryValidation)
		}
		cfg.MaxUploadBytes = max
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
