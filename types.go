package mentorhub

import (
	"context"
	"log/slog"
	"time"
)

// Logger is the minimal structured logger the package needs. Arguments are
// key-value pairs, e.g. log.Info("user created", "email", email).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() string
}

// Session holds attributes that are part of an auth session
type Session interface {
	GetUserID() string
	GetRole() string
	GetIssuedAt() *time.Time
	GetExpirationDate() *time.Time
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*User, string, error)
	Register(ctx context.Context, msg RegisterUserMessage) (*User, string, error)
	SessionFromToken(token string) (Session, error)
	IdentityFromSession(ctx context.Context, session Session) (*User, error)
}

// TokenService signs and validates session tokens
type TokenService interface {
	Generate(identity Identity) (string, error)
	Validate(raw string) (AuthClaims, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type slogLogger struct {
	l *slog.Logger
}

// NewLogger wraps a slog.Logger in the package Logger interface. A nil
// argument falls back to slog.Default().
func NewLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

type defLogger struct{}

func (defLogger) Debug(msg string, args ...any) { slog.Debug(msg, args...) }
func (defLogger) Info(msg string, args ...any)  { slog.Info(msg, args...) }
func (defLogger) Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func (defLogger) Error(msg string, args ...any) { slog.Error(msg, args...) }
