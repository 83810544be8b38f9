// Package filestore keeps screenings in a local JSON file. It is the offline
// backend used when the database is unavailable.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/javiermolinar/zaalplan/internal/screening"
)

type document struct {
	Screenings []screening.Record `json:"screenings"`
}

// Store implements screening.Repository on top of a single JSON file. Every
// mutation rewrites the file through a temp file and rename.
type Store struct {
	mu    sync.RWMutex
	path  string
	items map[string]*screening.Screening
	now   func() time.Time
}

var _ screening.Repository = (*Store)(nil)

// Open loads the store at path, creating its directory if needed. A missing
// file is an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating file store directory: %w", err)
	}

	s := &Store{
		path:  path,
		items: make(map[string]*screening.Screening),
		now:   time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading file store: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding file store: %w", err)
	}
	for _, r := range doc.Screenings {
		if r.ID == "" {
			continue
		}
		sc, err := screening.FromRecord(r)
		if err != nil {
			return fmt.Errorf("decoding file store: %w", err)
		}
		s.items[sc.ID] = sc
	}
	return nil
}

func (s *Store) persistLocked() error {
	doc := document{Screenings: make([]screening.Record, 0, len(s.items))}
	for _, sc := range s.sortedLocked() {
		doc.Screenings = append(doc.Screenings, sc.ToRecord())
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding file store: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing file store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("committing file store: %w", err)
	}
	return nil
}

func (s *Store) sortedLocked() []*screening.Screening {
	out := make([]*screening.Screening, 0, len(s.items))
	for _, sc := range s.items {
		out = append(out, sc.Clone())
	}
	screening.SortByStart(out)
	return out
}

// List returns every screening ordered by date and start time.
func (s *Store) List(ctx context.Context) ([]*screening.Screening, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

// Get retrieves a screening by id.
func (s *Store) Get(ctx context.Context, id string) (*screening.Screening, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}
	return sc.Clone(), nil
}

// Create stores sc under a new id and sets sc.ID.
func (s *Store) Create(ctx context.Context, sc *screening.Screening) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := sc.Clone()
	stored.ID = screening.NewID()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.CreatedAt = stored.CreatedAt.Truncate(time.Second)

	s.items[stored.ID] = stored
	if err := s.persistLocked(); err != nil {
		delete(s.items, stored.ID)
		return err
	}

	sc.ID = stored.ID
	sc.CreatedAt = stored.CreatedAt
	return nil
}

// Update writes the non-nil fields of p to the screening with the given id.
func (s *Store) Update(ctx context.Context, id string, p screening.Patch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}

	r := current.ToRecord()
	d := p.ApplyTo(current.Draft())
	r.Title, r.Date, r.Time, r.Duration, r.Hall, r.Genre = d.Title, d.Date, d.Time, d.Duration, d.Hall, d.Genre
	updated, err := screening.FromRecord(r)
	if err != nil {
		return err
	}

	s.items[id] = updated
	if err := s.persistLocked(); err != nil {
		s.items[id] = current
		return err
	}
	return nil
}

// Delete removes a screening.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}

	delete(s.items, id)
	if err := s.persistLocked(); err != nil {
		s.items[id] = current
		return err
	}
	return nil
}

// Close is a no-op; every mutation is already on disk.
func (s *Store) Close() error {
	return nil
}
