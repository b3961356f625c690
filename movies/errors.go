package movies

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeMovieNotFound = "movie_not_found"
	TextCodeInvalidYear   = "movie_invalid_year"
)

// ErrMovieNotFound is returned when no catalog entry matches the given ID.
var ErrMovieNotFound = goerrors.New("movie not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeMovieNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrInvalidYear is returned when a year filter value is not an integer.
var ErrInvalidYear = goerrors.New("the year must be a valid integer", goerrors.CategoryBadInput).
	WithTextCode(TextCodeInvalidYear).
	WithCode(goerrors.CodeBadRequest)
