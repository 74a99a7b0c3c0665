package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// defaultGroups are created on first startup so the group directory is not
// empty on a fresh install.
var defaultGroups = []struct {
	Title       string
	Slug        string
	Description string
}{
	{"General", "general", "Anything that does not fit elsewhere"},
	{"Travel notes", "travel-notes", "Trips, places, and the roads between them"},
	{"Tech", "tech", "Software, hardware, and everything in between"},
}

// CreateDefaultData seeds initial reference data. It only runs on an empty
// groups table, so existing installs are never touched.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM groups`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count groups: %w", err)
	}
	if count > 0 {
		lgr.Debug().Int64("groups", count).Msg("Groups already present, skipping seed")
		return nil
	}

	for _, group := range defaultGroups {
		_, err := db.Exec(ctx,
			`INSERT INTO groups (title, slug, description) VALUES ($1, $2, $3) ON CONFLICT (slug) DO NOTHING`,
			group.Title, group.Slug, group.Description)
		if err != nil {
			return fmt.Errorf("failed to seed group %s: %w", group.Slug, err)
		}
	}

	lgr.Info().Int("count", len(defaultGroups)).Msg("Default groups created")
	return nil
}
