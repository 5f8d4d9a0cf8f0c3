// Package jwtware is the fiber middleware guarding authenticated routes. It
// extracts the session token from the request, validates it through the
// configured validator and stashes the claims in request locals.
package jwtware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrJWTMissingOrMalformed is returned when no token can be extracted
var ErrJWTMissingOrMalformed = errors.New("missing or malformed JWT")

// AuthClaims mirrors the claims interface of the root package so the
// middleware has no import cycle.
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
}

// TokenValidatorFunc validates a raw token and returns its claims
type TokenValidatorFunc func(raw string) (AuthClaims, error)

// Config holds the middleware options
type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool
	// SuccessHandler runs after validation; defaults to Next
	SuccessHandler fiber.Handler
	// ErrorHandler maps extraction/validation failures; defaults to 401
	ErrorHandler fiber.ErrorHandler
	// TokenValidator is required
	TokenValidator TokenValidatorFunc
	// ContextKey is the locals key the claims are stored under
	ContextKey string
	// TokenLookup is a comma-separated list of "<source>:<name>" entries,
	// tried in order. Supported sources: cookie, header, query.
	TokenLookup string
	// AuthScheme strips the scheme prefix from header tokens
	AuthScheme string
}

// DefaultContextKey is where validated claims land in request locals
const DefaultContextKey = "session"

func defaults(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("jwtware: TokenValidator is required")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = "cookie:token,header:" + fiber.HeaderAuthorization
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Authentication required"})
		}
	}

	return cfg
}

// New builds the middleware handler
func New(config ...Config) fiber.Handler {
	cfg := defaults(config...)
	extractors := cfg.getExtractors()

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := extractToken(c, extractors)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, claims)

		return cfg.SuccessHandler(c)
	}
}

type extractor func(c *fiber.Ctx) string

func (cfg Config) getExtractors() []extractor {
	var out []extractor

	for _, lookup := range strings.Split(cfg.TokenLookup, ",") {
		parts := strings.SplitN(strings.TrimSpace(lookup), ":", 2)
		if len(parts) != 2 {
			continue
		}

		source, name := parts[0], parts[1]
		switch source {
		case "cookie":
			out = append(out, func(c *fiber.Ctx) string {
				return c.Cookies(name)
			})
		case "header":
			scheme := cfg.AuthScheme
			out = append(out, func(c *fiber.Ctx) string {
				value := c.Get(name)
				if scheme != "" && strings.HasPrefix(value, scheme+" ") {
					return strings.TrimSpace(value[len(scheme)+1:])
				}
				return value
			})
		case "query":
			out = append(out, func(c *fiber.Ctx) string {
				return c.Query(name)
			})
		}
	}

	return out
}

func extractToken(c *fiber.Ctx, extractors []extractor) (string, error) {
	for _, extract := range extractors {
		if raw := extract(c); raw != "" {
			return raw, nil
		}
	}
	return "", ErrJWTMissingOrMalformed
}
