package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every issued token: the subject
// username plus the registered issued-at/expiry pair.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// Username returns the subject claim
func (c *TokenClaims) Username() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *TokenClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// IsExpired reports whether the claim set expired relative to now.
func (c *TokenClaims) IsExpired(now time.Time) bool {
	exp := c.Expires()
	if exp.IsZero() {
		return false
	}
	return !now.Before(exp)
}
