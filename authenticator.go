package mentorhub

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// RegisterUserMessage carries the validated registration input. The plaintext
// password lives only for the duration of the workflow.
type RegisterUserMessage struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Auther orchestrates registration and sign-in over the identity store,
// the credential hasher and the token issuer.
type Auther struct {
	users        Users
	tokenService TokenService
	logger       Logger
	timeout      time.Duration
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(users Users, tokenService TokenService) *Auther {
	return &Auther{
		users:        users,
		tokenService: tokenService,
		logger:       defLogger{},
		timeout:      10 * time.Second,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register creates a new account and mints a session token for it. A
// validation or conflict failure persists nothing.
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (*User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.users.GetByEmail(ctx, msg.Email); err == nil {
		return nil, "", ErrAlreadyRegistered
	} else if !IsRecordNotFound(err) {
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to check existing registration")
	}

	hash, err := HashPassword(msg.Password)
	if err != nil {
		s.logger.Error("register hash password", "error", err)
		return nil, "", err
	}

	user := &User{
		FirstName:    msg.FirstName,
		LastName:     msg.LastName,
		Email:        msg.Email,
		Phone:        msg.Phone,
		Role:         msg.Role,
		PasswordHash: hash,
	}

	if id, err := hashid.NewUUID(msg.Email); err == nil {
		user.ID = id
	}

	// The unique index decides the winner of two concurrent registrations;
	// the losing create comes back as the same conflict error.
	created, err := s.users.Create(ctx, user)
	if err != nil {
		if IsConflict(err) {
			return nil, "", err
		}
		s.logger.Error("register create user", "email", msg.Email, "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "could not create user")
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(created))
	if err != nil {
		s.logger.Error("register mint token", "error", err)
		return nil, "", err
	}

	return created, token, nil
}

// Login verifies the credentials and mints a session token. Unknown emails
// and bad passwords surface as distinct errors, matching the HTTP surface.
func (s *Auther) Login(ctx context.Context, email, password string) (*User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, "", ErrNotRegistered
		}
		s.logger.Error("login lookup user", "error", err)
		return nil, "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryInternal {
			s.logger.Error("login verify password", "error", err)
			return nil, "", err
		}
		return nil, "", ErrMismatchedHashAndPassword
	}

	token, err := s.tokenService.Generate(NewIdentityFromUser(user))
	if err != nil {
		s.logger.Error("login mint token", "error", err)
		return nil, "", err
	}

	return user, token, nil
}

// SessionFromToken validates a raw token and returns the decoded session
func (s *Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		return nil, err
	}
	return SessionFromClaims(claims)
}

// IdentityFromSession resolves the session subject back to a user record
func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (*User, error) {
	if session == nil {
		return nil, ErrUnauthenticated
	}

	id, err := uuid.Parse(session.GetUserID())
	if err != nil {
		return nil, ErrTokenMalformed
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if IsRecordNotFound(err) {
			return nil, err
		}
		s.logger.Error("identity from session", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve session identity")
	}

	return user, nil
}
