package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS screenings (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			date       TEXT NOT NULL,
			time       TEXT NOT NULL,
			duration   INTEGER NOT NULL CHECK(duration > 0),
			hall       TEXT NOT NULL,
			genre      TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_screenings_start ON screenings(date, time);
		CREATE INDEX IF NOT EXISTS idx_screenings_hall ON screenings(hall);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating screenings table: %w", err)
	}

	return nil
}
