package movies

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Movies is the catalog store. Lookups key on the record UUID rather than
// the generic identifier resolution the underlying repository offers.
type Movies interface {
	Create(ctx context.Context, record *Movie, criteria ...repository.InsertCriteria) (*Movie, error)
	Update(ctx context.Context, record *Movie, criteria ...repository.UpdateCriteria) (*Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	List(ctx context.Context) ([]*Movie, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type moviesRepo struct {
	repository.Repository[*Movie]
	db *bun.DB
}

var _ Movies = (*moviesRepo)(nil)

func NewMoviesRepository(db *bun.DB) Movies {
	repo := repository.NewRepository[*Movie](db, repository.ModelHandlers[*Movie]{
		NewRecord: func() *Movie { return &Movie{} },
		GetID: func(m *Movie) uuid.UUID {
			if m == nil {
				return uuid.Nil
			}
			return m.ID
		},
		SetID: func(m *Movie, id uuid.UUID) {
			if m != nil {
				m.ID = id
			}
		},
	})

	return &moviesRepo{
		Repository: repo,
		db:         db,
	}
}

func (r *moviesRepo) Create(ctx context.Context, record *Movie, criteria ...repository.InsertCriteria) (*Movie, error) {
	prepareMovieDefaults(record)
	return r.Repository.CreateTx(ctx, r.db, record, criteria...)
}

func (r *moviesRepo) Update(ctx context.Context, record *Movie, criteria ...repository.UpdateCriteria) (*Movie, error) {
	return r.Repository.UpdateTx(ctx, r.db, record, criteria...)
}

func prepareMovieDefaults(record *Movie) {
	if record != nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (r *moviesRepo) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	record := &Movie{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *moviesRepo) List(ctx context.Context) ([]*Movie, error) {
	records := []*Movie{}
	err := r.db.NewSelect().
		Model(&records).
		Order("release_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *moviesRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Movie)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}
