package movies

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// MoviePayload is the inbound create/update shape.
type MoviePayload struct {
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	ReleaseDate time.Time `json:"release_date"`
}

func (p MoviePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Genre, validation.Required),
		validation.Field(&p.ReleaseDate, validation.Required),
	)
}

// Store is the slice of the catalog repository the service consumes.
type Store interface {
	Create(ctx context.Context, record *Movie, criteria ...repository.InsertCriteria) (*Movie, error)
	Update(ctx context.Context, record *Movie, criteria ...repository.UpdateCriteria) (*Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	List(ctx context.Context) ([]*Movie, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Service exposes the catalog operations.
type Service interface {
	Save(ctx context.Context, payload MoviePayload) (*Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Movie, error)
	GetAll(ctx context.Context) ([]*Movie, error)
	Update(ctx context.Context, id uuid.UUID, payload MoviePayload) (*Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FilterMovies(ctx context.Context, filter Filter) ([]*Movie, error)
}

type service struct {
	store Store
}

var _ Service = (*service)(nil)

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) Save(ctx context.Context, payload MoviePayload) (*Movie, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid movie data").
			WithCode(goerrors.CodeBadRequest)
	}

	record := &Movie{
		Title:       payload.Title,
		Genre:       payload.Genre,
		ReleaseDate: payload.ReleaseDate,
	}

	record, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to save movie")
	}

	return record, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrMovieNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve movie")
	}
	return record, nil
}

func (s *service) GetAll(ctx context.Context) ([]*Movie, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list movies")
	}
	return records, nil
}

// Update mutates an existing entry in place: lookup, overwrite the payload
// fields, persist.
func (s *service) Update(ctx context.Context, id uuid.UUID, payload MoviePayload) (*Movie, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record.Title = payload.Title
	record.Genre = payload.Genre
	record.ReleaseDate = payload.ReleaseDate

	record, err = s.store.Update(ctx, record, repository.UpdateByID(id.String()))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update movie")
	}

	return record, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		if repository.IsRecordNotFound(err) {
			return ErrMovieNotFound
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete movie")
	}
	return nil
}

// FilterMovies runs an in-memory predicate scan over the full catalog.
func (s *service) FilterMovies(ctx context.Context, filter Filter) ([]*Movie, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(records), nil
}
