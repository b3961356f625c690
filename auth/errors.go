package auth

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials  = "auth_invalid_credentials"
	TextCodeAccountDisabled     = "auth_account_disabled"
	TextCodeMissingBearerPrefix = "auth_missing_bearer_prefix"
	TextCodeTokenMalformed      = "auth_token_malformed"
	TextCodeTokenExpired        = "auth_token_expired"
	TextCodeIdentityNotFound    = "auth_identity_not_found"
	TextCodeUsernameTaken       = "auth_username_taken"
	TextCodeEmptyPassword       = "auth_empty_password"
)

// ErrInvalidCredentials is returned for a bad username or password. It
// deliberately does not say which, so callers cannot enumerate accounts.
var ErrInvalidCredentials = goerrors.New("Invalid username or password", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountDisabled is returned when the credentials check out but the
// account has been disabled.
var ErrAccountDisabled = goerrors.New("User account is disabled", goerrors.CategoryAuth).
	WithTextCode(TextCodeAccountDisabled).
	WithCode(goerrors.CodeUnauthorized)

// ErrMissingBearerPrefix is returned when an Authorization header is present
// but does not start with the literal "Bearer " scheme.
var ErrMissingBearerPrefix = goerrors.New("authorization header does not begin with Bearer scheme", goerrors.CategoryAuth).
	WithTextCode(TextCodeMissingBearerPrefix).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers structurally invalid tokens and bad signatures.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned once the token's expiry has passed.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrIdentityNotFound is returned when a principal cannot be resolved, for
// instance when the account vanished between authentication and issuance.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryAuth).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrUsernameTaken is returned on registration when the username exists.
var ErrUsernameTaken = goerrors.New("username already exists", goerrors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(goerrors.CodeConflict)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword wraps the bcrypt mismatch as an auth failure.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// IsTokenExpiredError checks for expired tokens, including errors that
// crossed a library boundary and only carry the message.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError checks for malformed token errors.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
