package mentorhub

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

// SessionObject is the decoded, trusted view of a session token
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Role           string     `json:"role,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetRole() string {
	return s.Role
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpirationDate() *time.Time {
	return s.ExpirationDate
}

// SessionFromClaims converts validated token claims into a session
func SessionFromClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		UserID:         claims.UserID(),
		Role:           claims.Role(),
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}

// GetSession pulls the session stashed in request locals by the jwtware
// middleware. Requests that did not pass the middleware have no session.
func GetSession(c *fiber.Ctx, key string) (*SessionObject, error) {
	local := c.Locals(key)
	if local == nil {
		return nil, ErrUnauthenticated
	}

	claims, ok := local.(AuthClaims)
	if claims == nil || !ok {
		return nil, ErrUnauthenticated
	}

	return SessionFromClaims(claims)
}
