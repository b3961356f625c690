// Package jwtware provides the per-request bearer token filter. It runs in
// front of route dispatch, attaches the authenticated principal when the
// presented token checks out, and otherwise either halts with 401 (missing
// Bearer prefix, malformed or expired token) or continues the chain
// unauthenticated for route-level guards to reject.
package jwtware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/kinovault/backend/auth"
)

const (
	defaultContextKey = "user"
	defaultAuthScheme = "Bearer"
)

type Config struct {
	// Filter skips the middleware for matching requests.
	Filter func(*fiber.Ctx) bool
	// ContextKey is the fiber locals key holding the *auth.User.
	ContextKey string
	// AuthScheme is the Authorization scheme, "Bearer" unless overridden.
	// The header must match "<scheme><space>" exactly, case-sensitive.
	AuthScheme string
	// TokenService validates presented tokens. Required.
	TokenService auth.TokenService
	// Store resolves the token subject back to a principal. Required.
	Store auth.UserStore
	// ErrorHandler translates halt-path failures into a response.
	ErrorHandler func(*fiber.Ctx, error) error

	Logger auth.Logger
}

func configDefault(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = defaultContextKey
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = defaultAuthScheme
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}
	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}
	if cfg.TokenService == nil {
		panic("jwtware: Config.TokenService is required")
	}
	if cfg.Store == nil {
		panic("jwtware: Config.Store is required")
	}

	return cfg
}

// New returns the request authentication filter.
//
// Per request it walks a fixed set of states: no Authorization header passes
// through unauthenticated; a header without the exact scheme prefix halts;
// a malformed or expired token halts; an unknown subject or a failed
// subject re-validation continues unauthenticated. Only a fully validated
// token attaches the principal, and an already attached principal is never
// re-derived or overwritten.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	prefix := cfg.AuthScheme + " "

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		if !strings.HasPrefix(header, prefix) {
			cfg.Logger.Debug("jwtware halting: authorization header without %q scheme", cfg.AuthScheme)
			return cfg.ErrorHandler(c, auth.ErrMissingBearerPrefix)
		}
		raw := header[len(prefix):]

		claims, err := cfg.TokenService.Validate(raw)
		if err != nil {
			if auth.IsTokenExpiredError(err) {
				return cfg.ErrorHandler(c, auth.ErrTokenExpired)
			}
			return cfg.ErrorHandler(c, auth.ErrTokenMalformed)
		}

		// Once per request: a principal attached by an earlier pass stays.
		if existing, ok := auth.PrincipalFromFiber(c, cfg.ContextKey); ok && existing != nil {
			return c.Next()
		}

		user, err := cfg.Store.GetByUsername(c.UserContext(), claims.Username())
		if err != nil {
			// Unknown subject continues unauthenticated rather than halting.
			// Preserved from the original system; flagged for product review
			// as possibly unintended (see DESIGN.md).
			cfg.Logger.Debug("jwtware continuing unauthenticated: subject not resolvable")
			return c.Next()
		}

		if !cfg.TokenService.ValidateForSubject(raw, user.Username) {
			return c.Next()
		}

		c.Locals(cfg.ContextKey, user)
		c.SetUserContext(auth.WithPrincipal(c.UserContext(), user))

		return c.Next()
	}
}

// DefaultErrorHandler surfaces halt-path failures as 401 with the plain-text
// reason string. The plain-text body is a deliberate wire contract.
func DefaultErrorHandler(c *fiber.Ctx, err error) error {
	reason := "Unauthorized"
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		reason = richErr.Message
	}
	return c.Status(fiber.StatusUnauthorized).SendString(reason)
}

// RequireAuthenticated is the route-level guard: it rejects any request the
// filter left without an attached principal.
func RequireAuthenticated(contextKey string) fiber.Handler {
	if contextKey == "" {
		contextKey = defaultContextKey
	}
	return func(c *fiber.Ctx) error {
		if _, ok := auth.PrincipalFromFiber(c, contextKey); !ok {
			return c.Status(fiber.StatusUnauthorized).SendString("Authentication required")
		}
		return c.Next()
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
