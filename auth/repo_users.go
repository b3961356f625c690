package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the credential store backed by the users table.
type Users interface {
	UserStore

	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, username, password string) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

func (a *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"username": username,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) Register(ctx context.Context, username, password string) (*User, error) {
	return a.RegisterTx(ctx, a.db, username, password)
}

// RegisterTx creates a new principal. The username must not be blank once
// trimmed, and the unique index on username backs the conflict check.
func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, username, password string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, goerrors.New("username must not be blank", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	if _, err := a.GetByUsernameTx(ctx, tx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}
	if id, err := hashid.NewUUID(username); err == nil {
		user.ID = id
	}

	user, err = a.Repository.CreateTx(ctx, tx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return user, nil
}
