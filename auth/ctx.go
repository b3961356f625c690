package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// WithPrincipal sets the authenticated User in the given context
func WithPrincipal(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, principalCtxKey, user)
}

// PrincipalFromContext finds the authenticated user from the context.
func PrincipalFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(principalCtxKey).(*User)
	return raw, ok
}

// PrincipalFromFiber extracts the authenticated user the request filter
// attached to the fiber locals under key.
func PrincipalFromFiber(c *fiber.Ctx, key string) (*User, bool) {
	if key == "" {
		key = "user"
	}
	raw := c.Locals(key)
	if raw == nil {
		return nil, false
	}
	user, ok := raw.(*User)
	return user, ok
}
