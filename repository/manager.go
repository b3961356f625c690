// Package repository aggregates the bun-backed stores behind one manager.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"

	"github.com/kinovault/backend/auth"
	"github.com/kinovault/backend/movies"
)

// Manager hands out the stores and the shared transaction helper.
type Manager interface {
	Users() auth.Users
	Movies() movies.Movies
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Validate() error
	MustValidate()
}

type mngr struct {
	db     *bun.DB
	users  auth.Users
	movies movies.Movies
}

func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:     db,
		users:  auth.NewUsersRepository(db),
		movies: movies.NewMoviesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.movies == nil {
		return errors.New("repository movies should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() auth.Users {
	return m.users
}

func (m mngr) Movies() movies.Movies {
	return m.movies
}
