package mentorhub

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the invalid password error
var ErrMismatchedHashAndPassword = errors.New("Invalid password", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrNotRegistered is returned when a sign-in email has no account. The
// original service surfaced this as a 409, distinct from bad credentials.
var ErrNotRegistered = errors.New("User not registered", errors.CategoryNotFound).
	WithTextCode("NOT_REGISTERED").
	WithCode(errors.CodeConflict)

// ErrAlreadyRegistered is the duplicate registration error. It keeps the
// original 401 surface even though the category is a conflict.
var ErrAlreadyRegistered = errors.New("User already registered", errors.CategoryConflict).
	WithTextCode("ALREADY_REGISTERED").
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned when no valid session was presented
var ErrUnauthenticated = errors.New("Authentication required", errors.CategoryAuth).
	WithTextCode("UNAUTHENTICATED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for expired session tokens
var ErrTokenExpired = errors.New("Session token expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures and undecodable payloads
var ErrTokenMalformed = errors.New("Invalid session token", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// NewValidationError wraps a field->message map produced by payload
// validation into a single typed error.
func NewValidationError(fields map[string]string) *errors.Error {
	meta := make(map[string]any, len(fields))
	for k, v := range fields {
		meta[k] = v
	}
	return errors.New("Validation failed", errors.CategoryValidation).
		WithTextCode("VALIDATION").
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"fields": meta})
}

// NewErrorHandler returns the single error-to-response mapping applied at the
// fiber boundary. Domain errors translate 1:1 to status+message; anything
// else is logged and surfaced as a generic 500 so internals never leak.
func NewErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
			}
			logger.Error("unhandled error", "path", c.Path(), "error", err)
			return c.Status(http.StatusInternalServerError).
				JSON(fiber.Map{"message": "Internal server error"})
		}

		status := richErr.Code
		if status < http.StatusBadRequest || status > 599 {
			status = http.StatusInternalServerError
		}

		if richErr.Category == errors.CategoryInternal {
			logger.Error("internal error", "path", c.Path(), "error", richErr.Message, "meta", richErr.Metadata)
			return c.Status(status).JSON(fiber.Map{"message": "Internal server error"})
		}

		if richErr.Category == errors.CategoryValidation {
			if fields, ok := richErr.Metadata["fields"]; ok {
				return c.Status(status).JSON(fiber.Map{"errors": fields})
			}
		}

		return c.Status(status).JSON(fiber.Map{"message": richErr.Message})
	}
}

// IsConflict reports whether err is a duplicate-record conflict
func IsConflict(err error) bool {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryConflict
	}
	return false
}
