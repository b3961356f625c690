package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetContextKey() string
	GetAuthScheme() string
	GetIssuer() string
	GetAudience() []string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	IssueFor(ctx context.Context, username string) (string, error)
}

// UserStore is the credential store consumed by the authenticator and the
// request filter. Absence is reported as a not-found error, never a panic.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Register(ctx context.Context, username, password string) (*User, error)
}

// TokenService maps between a principal's username and a signed, expiring
// token string.
type TokenService interface {
	Generate(username string) (string, error)
	Validate(tokenString string) (*TokenClaims, error)
	SubjectOf(tokenString string) (string, error)
	ValidateForSubject(tokenString, username string) bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
