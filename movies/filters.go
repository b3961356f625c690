package movies

import "strings"

// Filter narrows a movie list down to the entries matching a predicate.
type Filter interface {
	Apply(records []*Movie) []*Movie
}

// GenreFilter keeps movies whose genre equals the configured one,
// case-insensitively.
type GenreFilter struct {
	Genre string
}

func (f GenreFilter) Apply(records []*Movie) []*Movie {
	out := []*Movie{}
	for _, m := range records {
		if strings.EqualFold(m.Genre, f.Genre) {
			out = append(out, m)
		}
	}
	return out
}

// YearFilter keeps movies released in the configured year.
type YearFilter struct {
	Year int
}

func (f YearFilter) Apply(records []*Movie) []*Movie {
	out := []*Movie{}
	for _, m := range records {
		if m.ReleaseDate.Year() == f.Year {
			out = append(out, m)
		}
	}
	return out
}
