package screening

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
)

// Record is the serialized form of a screening exchanged with stores and
// HTTP clients: dates as YYYY-MM-DD, times as HH:MM, durations in minutes.
type Record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  int    `json:"duration"`
	Hall      string `json:"hall"`
	Genre     string `json:"genre,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ToRecord converts s to its serialized form.
func (s *Screening) ToRecord() Record {
	r := Record{
		ID:       s.ID,
		Title:    s.Title,
		Date:     s.DateKey(),
		Time:     s.Time,
		Duration: s.Duration,
		Hall:     s.Hall,
		Genre:    s.Genre,
	}
	if !s.CreatedAt.IsZero() {
		r.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return r
}

// FromRecord parses a stored record. Field validation is not repeated here:
// stored screenings were validated on the way in, and the grid skips any
// that no longer resolve.
func FromRecord(r Record) (*Screening, error) {
	if strings.TrimSpace(r.Date) == "" {
		return nil, fmt.Errorf("screening %s: %w", r.ID, FieldInvalid("date", "date is required"))
	}
	date, err := dateutil.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("screening %s: %w", r.ID, err)
	}
	s := &Screening{
		ID:       r.ID,
		Title:    r.Title,
		Date:     date,
		Time:     r.Time,
		Duration: r.Duration,
		Hall:     r.Hall,
		Genre:    r.Genre,
	}
	if r.CreatedAt != "" {
		s.CreatedAt, err = time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("screening %s: parsing created at: %w", r.ID, err)
		}
	}
	return s, nil
}
