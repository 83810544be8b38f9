package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// ErrEmptyDrop is returned when a drop carries neither a screening nor a film.
var ErrEmptyDrop = errors.New("nothing to drop")

// Target addresses a grid cell as shown: the column date and the slot label.
type Target struct {
	Hall string `json:"hall"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Drop is the payload of a drag: an existing screening or a catalog film.
type Drop struct {
	ScreeningID string `json:"screening_id,omitempty"`
	Film        string `json:"film,omitempty"`
}

// Outcome reports what a gesture did.
type Outcome struct {
	Screening *screening.Screening   // saved screening, nil when a form is needed
	Created   bool                   // Screening is new
	Draft     *screening.Draft       // pre-filled form for manual entry
	Conflicts []*screening.Screening // advisory overlaps in the same hall
}

// StartDate returns the calendar date a screening dropped on t starts on.
// Slots earlier than the configured start hour belong to the night after
// the column's date.
func (p *Planner) StartDate(t Target) string {
	if t.Date == "" || !timegrid.IsValidTime(t.Time) {
		return t.Date
	}
	d, err := dateutil.ParseDate(t.Date)
	if err != nil {
		return t.Date
	}
	if timegrid.TimeToMinutes(t.Time) < p.startHour*60 {
		return dateutil.FormatDate(d.AddDate(0, 0, 1))
	}
	return t.Date
}

// HandleDrop moves an existing screening to t, or creates a screening of a
// catalog film at t. The result is saved even when it overlaps others.
func (p *Planner) HandleDrop(ctx context.Context, t Target, drop Drop) (*Outcome, error) {
	date := p.StartDate(t)

	switch {
	case drop.ScreeningID != "":
		s, err := p.Move(ctx, drop.ScreeningID, t.Hall, date, t.Time)
		if err != nil {
			return nil, err
		}
		return p.outcome(s, false), nil

	case drop.Film != "":
		return p.quickAdd(ctx, t, date, drop.Film)

	default:
		return nil, ErrEmptyDrop
	}
}

// HandleDoubleClick creates a screening of film at t. Without a film it
// returns a draft pre-filled with the cell for manual entry.
func (p *Planner) HandleDoubleClick(ctx context.Context, t Target, film string) (*Outcome, error) {
	date := p.StartDate(t)

	if film == "" {
		return &Outcome{Draft: &screening.Draft{Hall: t.Hall, Date: date, Time: t.Time}}, nil
	}
	return p.quickAdd(ctx, t, date, film)
}

func (p *Planner) quickAdd(ctx context.Context, t Target, date, title string) (*Outcome, error) {
	film, ok := p.catalog.Lookup(title)
	if !ok {
		return nil, screening.FieldInvalid("title", fmt.Sprintf("%q is not in the catalog", title))
	}

	s, err := p.Create(ctx, screening.Draft{
		Title:    film.Title,
		Genre:    film.Genre,
		Duration: film.Duration,
		Hall:     t.Hall,
		Date:     date,
		Time:     t.Time,
	})
	if err != nil {
		return nil, err
	}
	return p.outcome(s, true), nil
}

func (p *Planner) outcome(s *screening.Screening, created bool) *Outcome {
	conflicts := p.Conflicts(s)
	if len(conflicts) > 0 {
		p.log.WithFields(screeningFields(s)).WithField("overlaps", len(conflicts)).
			Info("screening overlaps others in the same hall")
	}
	return &Outcome{Screening: s, Created: created, Conflicts: conflicts}
}
