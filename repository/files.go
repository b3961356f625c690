package repository

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// Migrate executes the embedded schema migrations in filename order. The
// statements are idempotent, so re-running at every boot is safe.
func Migrate(ctx context.Context, db *bun.DB) error {
	entries, err := fs.Glob(migrationsFS, "data/sql/migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(entries)

	for _, name := range entries {
		raw, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}
		// One statement per Exec; the sqlite driver does not take batches.
		for _, stmt := range strings.Split(string(raw), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
	}

	return nil
}
