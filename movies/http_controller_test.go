package movies_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kinovault/backend/movies"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Save(ctx context.Context, payload movies.MoviePayload) (*movies.Movie, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.Movie), args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, id uuid.UUID) (*movies.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.Movie), args.Error(1)
}

func (m *MockService) GetAll(ctx context.Context) ([]*movies.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*movies.Movie), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id uuid.UUID, payload movies.MoviePayload) (*movies.Movie, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.Movie), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) FilterMovies(ctx context.Context, filter movies.Filter) ([]*movies.Movie, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*movies.Movie), args.Error(1)
}

func newCatalogApp(svc movies.Service) *fiber.App {
	app := fiber.New()
	movies.RegisterRoutes(app.Group("/api/movies"), movies.NewHTTPController(svc))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestCatalogCreate(t *testing.T) {
	payload := movies.MoviePayload{
		Title:       "Alien",
		Genre:       "Horror",
		ReleaseDate: time.Date(1979, 5, 25, 0, 0, 0, 0, time.UTC),
	}

	t.Run("returns the stored record", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Save", mock.Anything, payload).
			Return(&movies.Movie{ID: uuid.New(), Title: "Alien", Genre: "Horror"}, nil).Once()

		resp, raw := doJSON(t, newCatalogApp(svc), http.MethodPost, "/api/movies/", payload)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got movies.Movie
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "Alien", got.Title)
		svc.AssertExpectations(t)
	})

	t.Run("invalid payload maps to 400", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Save", mock.Anything, mock.Anything).
			Return(nil, movies.ErrInvalidYear).Once()

		resp, _ := doJSON(t, newCatalogApp(svc), http.MethodPost, "/api/movies/", movies.MoviePayload{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCatalogGetByID(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetByID", mock.Anything, id).
			Return(&movies.Movie{ID: id, Title: "Heat"}, nil).Once()

		resp, raw := doJSON(t, newCatalogApp(svc), http.MethodGet, "/api/movies/"+id.String(), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), "Heat")
	})

	t.Run("missing record maps to 404", func(t *testing.T) {
		svc := new(MockService)
		svc.On("GetByID", mock.Anything, id).
			Return(nil, movies.ErrMovieNotFound).Once()

		resp, raw := doJSON(t, newCatalogApp(svc), http.MethodGet, "/api/movies/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(raw), "movie not found")
	})

	t.Run("malformed id maps to 400 without touching the service", func(t *testing.T) {
		svc := new(MockService)
		resp, _ := doJSON(t, newCatalogApp(svc), http.MethodGet, "/api/movies/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "GetByID")
	})
}

func TestCatalogDelete(t *testing.T) {
	id := uuid.New()

	svc := new(MockService)
	svc.On("Delete", mock.Anything, id).Return(nil).Once()

	resp, _ := doJSON(t, newCatalogApp(svc), http.MethodDelete, "/api/movies/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestCatalogFilterByGenre(t *testing.T) {
	svc := new(MockService)
	svc.On("FilterMovies", mock.Anything, movies.GenreFilter{Genre: "horror"}).
		Return([]*movies.Movie{{Title: "Alien"}}, nil).Once()

	resp, raw := doJSON(t, newCatalogApp(svc), http.MethodGet, "/api/movies/filter/genre/horror", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "Alien")
	svc.AssertExpectations(t)
}

func TestCatalogFilterByYear(t *testing.T) {
	t.Run("integer year reaches the service", func(t *testing.T) {
		svc := new(MockService)
		svc.On("FilterMovies", mock.Anything, movies.YearFilter{Year: 1995}).
			Return([]*movies.Movie{{Title: "Heat"}}, nil).Once()

		resp, _ := doJSON(t, newCatalogApp(svc), http.MethodGet, "/api/movies/filter/year/1995", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("non-integer year maps to 400", func(t *testing.T) {
		svc := new(MockService)
		resp, raw := doJSON(t, newCatalogApp(svc), http.MethodGet, "/api/movies/filter/year/nineteen95", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(raw), "the year must be a valid integer")
		svc.AssertNotCalled(t, "FilterMovies")
	})
}
