// Package movies implements the movie catalog: bun-backed storage, the
// CRUD service, and the genre/year filters exposed over HTTP.
package movies

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Movie is the catalog entry model.
type Movie struct {
	bun.BaseModel `bun:"table:movies,alias:mov"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title"`
	Genre         string     `bun:"genre,notnull" json:"genre"`
	ReleaseDate   time.Time  `bun:"release_date,notnull" json:"release_date"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
