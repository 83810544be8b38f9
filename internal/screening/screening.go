// Package screening defines the core domain types for zaalplan.
package screening

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// Domain errors.
var (
	ErrNotFound = errors.New("screening not found")
	ErrNoID     = errors.New("screening has no id")
)

// Screening is a film showing placed in a hall at a start date and time.
// Its occupied span is [Start, Start+Duration) and may cross midnight.
type Screening struct {
	ID        string
	Title     string
	Date      time.Time // local midnight of the start date
	Time      string    // "HH:MM" start time
	Duration  int       // minutes, > 0
	Hall      string
	Genre     string // optional, "" means no genre
	CreatedAt time.Time
}

// Draft is the user-supplied shape of a screening before it has an id.
type Draft struct {
	Title    string
	Date     string // "YYYY-MM-DD"
	Time     string // "HH:MM"
	Duration int
	Hall     string
	Genre    string
}

// New validates d against the configured halls and returns a screening
// without an id. The store assigns the id on create.
func New(d Draft, halls []string) (*Screening, error) {
	if err := Validate(d, halls); err != nil {
		return nil, err
	}
	date, _ := dateutil.ParseDate(d.Date)
	return &Screening{
		Title:     strings.TrimSpace(d.Title),
		Date:      date,
		Time:      d.Time,
		Duration:  d.Duration,
		Hall:      d.Hall,
		Genre:     strings.TrimSpace(d.Genre),
		CreatedAt: time.Now(),
	}, nil
}

// Validate checks every field of d and reports all failures at once.
func Validate(d Draft, halls []string) error {
	var verr ValidationError

	if strings.TrimSpace(d.Title) == "" {
		verr.add("title", "title is required")
	}
	if d.Date == "" {
		verr.add("date", "date is required")
	} else if _, err := dateutil.ParseDate(d.Date); err != nil {
		verr.add("date", err.Error())
	}
	if d.Time == "" {
		verr.add("time", "time is required")
	} else if !timegrid.IsValidTime(d.Time) {
		verr.add("time", fmt.Sprintf("time must be a 24-hour HH:MM clock time, got %q", d.Time))
	}
	if d.Duration <= 0 {
		verr.add("duration", fmt.Sprintf("duration must be a positive number of minutes, got %d", d.Duration))
	}
	if d.Hall == "" {
		verr.add("hall", "hall is required")
	} else if !slices.Contains(halls, d.Hall) {
		verr.add("hall", fmt.Sprintf("unknown hall %q", d.Hall))
	}

	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}

// NewID returns a fresh opaque screening id.
func NewID() string {
	return uuid.NewString()
}

// Draft returns the editable fields of s.
func (s *Screening) Draft() Draft {
	return Draft{
		Title:    s.Title,
		Date:     s.DateKey(),
		Time:     s.Time,
		Duration: s.Duration,
		Hall:     s.Hall,
		Genre:    s.Genre,
	}
}

// DateKey returns the start date as "YYYY-MM-DD".
func (s *Screening) DateKey() string {
	return dateutil.FormatDate(s.Date)
}

// Start returns the absolute start of the screening.
func (s *Screening) Start() time.Time {
	mins := timegrid.TimeToMinutes(s.Time)
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), mins/60, mins%60, 0, 0, s.Date.Location())
}

// maxDurationMinutes is the longest duration time.Duration can hold.
const maxDurationMinutes = int(math.MaxInt64 / int64(time.Minute))

// End returns the exclusive end of the screening. Durations past what
// time.Duration can hold end at the largest representable offset.
func (s *Screening) End() time.Time {
	mins := min(s.Duration, maxDurationMinutes)
	return s.Start().Add(time.Duration(mins) * time.Minute)
}

// Clone returns a copy of s.
func (s *Screening) Clone() *Screening {
	c := *s
	return &c
}

// String renders a one-line summary.
func (s *Screening) String() string {
	return fmt.Sprintf("%s %s %s %q (%d min)", s.Hall, s.DateKey(), s.Time, s.Title, s.Duration)
}

// SortByStart orders screenings by start date then start time.
func SortByStart(list []*Screening) {
	slices.SortStableFunc(list, func(a, b *Screening) int {
		if c := strings.Compare(a.DateKey(), b.DateKey()); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
	})
}
