// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// SQLite implements screening.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ screening.Repository = (*SQLite)(nil)

const selectColumns = `id, title, date, time, duration, hall, genre, created_at`

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Create inserts s and assigns it a new id.
func (s *SQLite) Create(ctx context.Context, sc *screening.Screening) error {
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = time.Now()
	}
	id := screening.NewID()

	query := `
		INSERT INTO screenings (id, title, date, time, duration, hall, genre, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		id,
		sc.Title,
		sc.DateKey(),
		sc.Time,
		sc.Duration,
		sc.Hall,
		sc.Genre,
		sc.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting screening: %w", err)
	}

	sc.ID = id
	return nil
}

// Get retrieves a screening by id.
func (s *SQLite) Get(ctx context.Context, id string) (*screening.Screening, error) {
	query := `SELECT ` + selectColumns + ` FROM screenings WHERE id = ?`

	sc, err := scanScreening(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// List returns every screening ordered by date and start time.
func (s *SQLite) List(ctx context.Context) ([]*screening.Screening, error) {
	query := `SELECT ` + selectColumns + ` FROM screenings ORDER BY date, time, created_at`
	return s.query(ctx, query)
}

func (s *SQLite) query(ctx context.Context, query string) ([]*screening.Screening, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying screenings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*screening.Screening
	for rows.Next() {
		sc, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating screenings: %w", err)
	}

	return out, nil
}

// Update writes the non-nil fields of p to the screening with the given id.
// Values are stored as given; callers validate them first.
func (s *SQLite) Update(ctx context.Context, id string, p screening.Patch) error {
	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}
	if p.Time != nil {
		set("time", *p.Time)
	}
	if p.Duration != nil {
		set("duration", *p.Duration)
	}
	if p.Hall != nil {
		set("hall", *p.Hall)
	}
	if p.Genre != nil {
		set("genre", *p.Genre)
	}

	if len(sets) == 0 {
		_, err := s.Get(ctx, id)
		return err
	}

	query := `UPDATE screenings SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating screening: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}

	return nil
}

// Delete removes a screening.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM screenings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting screening: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScreening(row rowScanner) (*screening.Screening, error) {
	var (
		sc        screening.Screening
		date      string
		createdAt string
	)

	err := row.Scan(
		&sc.ID,
		&sc.Title,
		&date,
		&sc.Time,
		&sc.Duration,
		&sc.Hall,
		&sc.Genre,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning screening: %w", err)
	}

	sc.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parsing date of screening %s: %w", sc.ID, err)
	}

	sc.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at of screening %s: %w", sc.ID, err)
	}

	return &sc, nil
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values are parsed as local midnight.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateutil.DateLayout, s, time.Local); err == nil {
		return t, nil
	}

	// "2006-01-02T00:00:00Z" from a DATE-typed column
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation(dateutil.DateLayout, s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
