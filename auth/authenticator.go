package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// Auther verifies credentials against the user store and issues tokens.
type Auther struct {
	store        UserStore
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store UserStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService overrides the token service, mostly for tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the username/password pair and returns a fresh token.
// Unknown usernames and wrong passwords surface the same error so callers
// cannot tell registered accounts apart from unregistered ones.
func (s *Auther) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			s.logger.Debug("Login lookup miss")
			return "", ErrInvalidCredentials
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user.Disabled {
		s.logger.Info("Login rejected disabled account", "user_id", user.ID)
		return "", ErrAccountDisabled
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Debug("Login password mismatch")
		return "", ErrInvalidCredentials
	}

	return s.IssueFor(ctx, user.Username)
}

// IssueFor resolves the principal once more and generates a token for it.
// The re-lookup covers the window between authentication and issuance in
// which the account may have been deleted.
func (s *Auther) IssueFor(ctx context.Context, username string) (string, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return "", ErrIdentityNotFound
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during issuance")
	}

	token, err := s.tokenService.Generate(user.Username)
	if err != nil {
		s.logger.Error("IssueFor token generation error", "error", err)
		return "", err
	}

	return token, nil
}

var _ Authenticator = (*Auther)(nil)
