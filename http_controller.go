package mentorhub

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/mentorhubapp/mentorhub/middleware/jwtware"
)

// AuthController serves the authentication surface: sign-in, sign-up,
// identity check and logout.
type AuthController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
	Config Config
}

// AuthControllerOption mutates the controller during construction
type AuthControllerOption func(*AuthController) *AuthController

// NewAuthController builds the controller; Auther is mandatory
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// WithAuther sets the authenticator
func WithAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithControllerConfig sets the service configuration
func WithControllerConfig(cfg Config) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Config = cfg
		return c
	}
}

// WithControllerLogger sets the logger
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// RegisterAuthRoutes mounts the auth endpoints. protected guards the
// routes that require an authenticated session.
func (a *AuthController) RegisterAuthRoutes(app *fiber.App, protected fiber.Handler) {
	app.Post("/signin", a.SignIn)
	app.Post("/signup", a.SignUp)
	app.Post("/", protected, a.WhoAmI)
	app.Post("/logout", protected, a.Logout)
}

// SignIn verifies credentials and establishes a session cookie
func (a *AuthController) SignIn(c *fiber.Ctx) error {
	payload := new(SignInRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signin parse payload", "error", err)
		return NewValidationError(map[string]string{"payload": "Failed to parse body"})
	}

	if err := payload.Validate(); err != nil {
		return NewValidationError(FormatValidationErrorToMap(err))
	}

	if a.Debug {
		fmt.Println("======= AUTH SIGNIN =====")
		fmt.Println(print.MaybePrettyJSON(fiber.Map{"email": payload.Email}))
		fmt.Println("=========================")
	}

	user, token, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	a.setTokenCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(PublicProfileFromUser(user))
}

// SignUp registers a new account and establishes a session cookie
func (a *AuthController) SignUp(c *fiber.Ctx) error {
	payload := new(SignUpRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signup parse payload", "error", err)
		return NewValidationError(map[string]string{"payload": "Failed to parse body"})
	}

	if err := payload.Validate(); err != nil {
		return NewValidationError(FormatValidationErrorToMap(err))
	}

	user, token, err := a.Auther.Register(c.UserContext(), payload.Message())
	if err != nil {
		return err
	}

	// Only the signed token is set; the raw id the old service also issued
	// is derivable from the token and was spoofable as a cookie.
	a.setTokenCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    PublicProfileFromUser(user),
	})
}

// WhoAmI returns the caller's public profile. A session whose user row no
// longer exists yields an empty 200.
func (a *AuthController) WhoAmI(c *fiber.Ctx) error {
	session, err := GetSession(c, jwtware.DefaultContextKey)
	if err != nil {
		return err
	}

	user, err := a.Auther.IdentityFromSession(c.UserContext(), session)
	if err != nil {
		if IsRecordNotFound(err) {
			return c.Status(fiber.StatusOK).Send(nil)
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(PublicProfileFromUser(user))
}

// Logout clears the session cookie. Bearer tokens stay valid until expiry;
// there is no server-side denylist.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	if _, err := GetSession(c, jwtware.DefaultContextKey); err != nil {
		return err
	}

	a.clearTokenCookie(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// UnauthenticatedHandler is the jwtware error handler: every failure to
// present a valid session maps to the same typed error.
func (a *AuthController) UnauthenticatedHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr
	}
	return ErrUnauthenticated
}

func (a *AuthController) setTokenCookie(c *fiber.Ctx, token string) {
	hours := a.Config.TokenExpiration
	if hours <= 0 {
		hours = defaultTokenExpiration
	}

	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName(),
		Value:    token,
		Expires:  time.Now().Add(time.Duration(hours) * time.Hour),
		HTTPOnly: true,
		Secure:   a.Config.IsProduction(),
		SameSite: a.cookieSameSite(),
	})
}

func (a *AuthController) clearTokenCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cookieName(),
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * 24 * 365),
		HTTPOnly: true,
		Secure:   a.Config.IsProduction(),
		SameSite: a.cookieSameSite(),
	})
}

func (a *AuthController) cookieName() string {
	if a.Config.CookieName != "" {
		return a.Config.CookieName
	}
	return "token"
}

func (a *AuthController) cookieSameSite() string {
	if a.Config.IsProduction() {
		return fiber.CookieSameSiteStrictMode
	}
	return fiber.CookieSameSiteLaxMode
}
