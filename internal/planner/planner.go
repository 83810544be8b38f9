// Package planner owns the in-memory schedule of screenings and keeps it in
// step with the repository.
//
// The snapshot changes only after the store confirms a write, so a failed
// save leaves the grid exactly as it was. Reads build the grid from the
// snapshot without touching the store.
package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/metrics"
	"github.com/javiermolinar/zaalplan/internal/schedule"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/week"
)

// ErrPersistence wraps every failure reported by the repository other than
// screening.ErrNotFound.
var ErrPersistence = errors.New("schedule could not be saved")

// Options configures a Planner.
type Options struct {
	Repo      screening.Repository
	Halls     []string
	StartHour int
	EndHour   int
	Catalog   screening.Catalog
	Log       logrus.FieldLogger
	Metrics   *metrics.Metrics
	Now       week.Clock // defaults to time.Now
}

// Planner is safe for concurrent use.
type Planner struct {
	repo      screening.Repository
	halls     []string
	startHour int
	endHour   int
	catalog   screening.Catalog
	log       logrus.FieldLogger
	metrics   *metrics.Metrics

	mu         sync.RWMutex
	cursor     *week.Cursor
	screenings []*screening.Screening // replaced, never modified in place
}

// New creates a planner on the current week. Call Load to fill it.
func New(opts Options) (*Planner, error) {
	if opts.Repo == nil {
		return nil, errors.New("planner: repository is required")
	}
	if len(opts.Halls) == 0 {
		return nil, errors.New("planner: at least one hall is required")
	}

	return &Planner{
		repo:      opts.Repo,
		halls:     slices.Clone(opts.Halls),
		startHour: opts.StartHour,
		endHour:   opts.EndHour,
		catalog:   opts.Catalog,
		log:       logging.OrDiscard(opts.Log),
		metrics:   opts.Metrics,
		cursor:    week.NewCursor(opts.Now),
	}, nil
}

// Halls returns the configured halls in display order.
func (p *Planner) Halls() []string {
	return slices.Clone(p.halls)
}

// Catalog returns the quick-add films.
func (p *Planner) Catalog() screening.Catalog {
	return p.catalog
}

// Window returns the configured visible hours.
func (p *Planner) Window() (startHour, endHour int) {
	return p.startHour, p.endHour
}

// Load replaces the snapshot with the repository contents.
func (p *Planner) Load(ctx context.Context) error {
	list, err := p.repo.List(ctx)
	if err != nil {
		return p.storeFailed("list", err)
	}

	p.mu.Lock()
	p.screenings = list
	p.mu.Unlock()

	p.log.WithField("screenings", len(list)).Debug("schedule loaded")
	return nil
}

// Screenings returns a copy of the snapshot ordered by start.
func (p *Planner) Screenings() []*screening.Screening {
	p.mu.RLock()
	list := p.screenings
	p.mu.RUnlock()

	out := make([]*screening.Screening, 0, len(list))
	for _, s := range list {
		out = append(out, s.Clone())
	}
	screening.SortByStart(out)
	return out
}

// Find returns a copy of the screening with the given id.
func (p *Planner) Find(id string) (*screening.Screening, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if i := p.indexLocked(id); i >= 0 {
		return p.screenings[i].Clone(), true
	}
	return nil, false
}

func (p *Planner) indexLocked(id string) int {
	return slices.IndexFunc(p.screenings, func(s *screening.Screening) bool { return s.ID == id })
}

// Create validates d, stores it and adds it to the snapshot.
func (p *Planner) Create(ctx context.Context, d screening.Draft) (*screening.Screening, error) {
	s, err := screening.New(d, p.halls)
	if err != nil {
		return nil, err
	}
	if err := p.repo.Create(ctx, s); err != nil {
		return nil, p.storeFailed("create", err)
	}

	p.mu.Lock()
	next := make([]*screening.Screening, 0, len(p.screenings)+1)
	next = append(next, p.screenings...)
	p.screenings = append(next, s.Clone())
	p.mu.Unlock()

	p.log.WithFields(screeningFields(s)).Info("screening created")
	return s, nil
}

// Update applies patch to the screening with the given id.
func (p *Planner) Update(ctx context.Context, id string, patch screening.Patch) (*screening.Screening, error) {
	current, ok := p.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", screening.ErrNotFound, id)
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := screening.Apply(current, patch, p.halls)
	if err != nil {
		return nil, err
	}
	if err := p.repo.Update(ctx, id, screening.PatchFrom(updated)); err != nil {
		return nil, p.storeFailed("update", err)
	}

	p.mu.Lock()
	next := slices.Clone(p.screenings)
	if i := slices.IndexFunc(next, func(s *screening.Screening) bool { return s.ID == id }); i >= 0 {
		next[i] = updated.Clone()
	} else {
		next = append(next, updated.Clone())
	}
	p.screenings = next
	p.mu.Unlock()

	p.log.WithFields(screeningFields(updated)).Info("screening updated")
	return updated, nil
}

// Save creates s when it has no id and updates it otherwise.
func (p *Planner) Save(ctx context.Context, s *screening.Screening) (*screening.Screening, error) {
	if s.ID == "" {
		return p.Create(ctx, s.Draft())
	}
	return p.Update(ctx, s.ID, screening.PatchFrom(s))
}

// Move places the screening with the given id at a new hall, date and time.
func (p *Planner) Move(ctx context.Context, id, hall, date, tm string) (*screening.Screening, error) {
	return p.Update(ctx, id, screening.Patch{Hall: &hall, Date: &date, Time: &tm})
}

// Delete removes the screening with the given id.
func (p *Planner) Delete(ctx context.Context, id string) error {
	if err := p.repo.Delete(ctx, id); err != nil {
		return p.storeFailed("delete", err)
	}

	p.mu.Lock()
	p.screenings = slices.DeleteFunc(slices.Clone(p.screenings), func(s *screening.Screening) bool { return s.ID == id })
	p.mu.Unlock()

	p.log.WithField("screening", id).Info("screening deleted")
	return nil
}

// Conflicts returns the screenings of the snapshot that overlap candidate
// in its hall. Overlaps are reported, never prevented.
func (p *Planner) Conflicts(candidate *screening.Screening) []*screening.Screening {
	p.mu.RLock()
	list := p.screenings
	p.mu.RUnlock()
	return schedule.Conflicts(candidate, list)
}

// Grid builds the grid of the displayed week.
func (p *Planner) Grid() *schedule.Result {
	return p.GridFor(p.WeekStart())
}

// GridFor builds the grid of the week containing t without moving the
// displayed week.
func (p *Planner) GridFor(t time.Time) *schedule.Result {
	p.mu.RLock()
	list := p.screenings
	p.mu.RUnlock()

	res := schedule.Build(schedule.Input{
		Screenings: list,
		Halls:      p.halls,
		WeekStart:  t,
		StartHour:  p.startHour,
		EndHour:    p.endHour,
		Log:        p.log,
	})

	skipped := make(map[string]int)
	for _, a := range res.Skipped() {
		skipped[string(a.Reason)]++
	}
	p.metrics.ObserveGrid(len(list)-len(res.Anomalies), skipped)

	return res
}

// WeekStart returns the Monday of the displayed week.
func (p *Planner) WeekStart() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cursor.Start()
}

// WeekLabel renders the displayed week for headers.
func (p *Planner) WeekLabel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cursor.Label()
}

// PreviousWeek moves the displayed week back by seven days.
func (p *Planner) PreviousWeek() {
	p.mu.Lock()
	p.cursor.Previous()
	p.mu.Unlock()
}

// NextWeek moves the displayed week forward by seven days.
func (p *Planner) NextWeek() {
	p.mu.Lock()
	p.cursor.Next()
	p.mu.Unlock()
}

// Today shows the current week.
func (p *Planner) Today() {
	p.mu.Lock()
	p.cursor.Today()
	p.mu.Unlock()
}

// SetWeek shows the week containing t.
func (p *Planner) SetWeek(t time.Time) {
	p.mu.Lock()
	p.cursor.Set(t)
	p.mu.Unlock()
}

func (p *Planner) storeFailed(op string, err error) error {
	if errors.Is(err, screening.ErrNotFound) {
		return err
	}
	p.log.WithError(err).WithField("op", op).Error("store operation failed")
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func screeningFields(s *screening.Screening) logrus.Fields {
	return logrus.Fields{
		"screening": s.ID,
		"title":     s.Title,
		"hall":      s.Hall,
		"date":      s.DateKey(),
		"time":      s.Time,
		"duration":  s.Duration,
	}
}
