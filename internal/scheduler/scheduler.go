// Package scheduler finds room for new screenings in a week grid.
package scheduler

import (
	"time"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/schedule"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// Scheduler answers free-time questions about one built week.
type Scheduler struct {
	res *schedule.Result
}

// New creates a Scheduler over res.
func New(res *schedule.Result) *Scheduler {
	return &Scheduler{res: res}
}

// Gap is a run of free visible slots in one hall on one date.
type Gap struct {
	Hall    string
	Date    time.Time
	Start   string // "HH:MM"
	End     string // "HH:MM", exclusive; "24:00" at midnight
	Minutes int
}

// Slot is a place a screening can start.
type Slot struct {
	Hall string
	Date time.Time
	Time string // "HH:MM"
}

// Gaps returns the free runs of visible slots in hall on date, in order.
func (s *Scheduler) Gaps(hall string, date time.Time) []Gap {
	row := s.res.Grid.Row(hall, date)
	if row == nil {
		return nil
	}

	var gaps []Gap
	for i := 0; i < len(row); {
		if !row[i].IsEmpty() {
			i++
			continue
		}
		j := i
		for j < len(row) && row[j].IsEmpty() {
			j++
		}
		start := timegrid.TimeToMinutes(s.res.Visible[i])
		end := timegrid.TimeToMinutes(s.res.Visible[j-1]) + timegrid.SlotMinutes
		gaps = append(gaps, Gap{
			Hall:    hall,
			Date:    date,
			Start:   s.res.Visible[i],
			End:     clockLabel(end),
			Minutes: end - start,
		})
		i = j
	}
	return gaps
}

// CanFit reports whether duration minutes starting at start on date only
// cover free cells in hall. Slots past the end of the week are not checked.
func (s *Scheduler) CanFit(hall string, date time.Time, start string, duration int) bool {
	if !timegrid.IsValidTime(start) {
		return false
	}
	key := dateutil.FormatDate(date)
	day := -1
	for i, d := range s.res.Dates {
		if dateutil.FormatDate(d) == key {
			day = i
			break
		}
	}
	if day == -1 || s.res.Full.Row(hall, date) == nil {
		return false
	}

	slot := timegrid.TimeToMinutes(start) / timegrid.SlotMinutes
	for i := 0; i < timegrid.SpanSlots(duration); i++ {
		d, k := day, slot+i
		for k >= timegrid.SlotsPerDay {
			d++
			k -= timegrid.SlotsPerDay
		}
		if d >= len(s.res.Dates) {
			return true
		}
		if !s.res.Full.Row(hall, s.res.Dates[d])[k].IsEmpty() {
			return false
		}
	}
	return true
}

// NextAvailableStart returns the earliest visible slot at or after from,
// rounded up to the quarter hour, where duration fits. Halls are tried in
// configured order for each slot.
func (s *Scheduler) NextAvailableStart(from time.Time, duration int) (Slot, bool) {
	from = roundUpTo15Min(from)
	for _, d := range s.res.Dates {
		for _, label := range s.res.Visible {
			m := timegrid.TimeToMinutes(label)
			at := time.Date(d.Year(), d.Month(), d.Day(), m/60, m%60, 0, 0, d.Location())
			if at.Before(from) {
				continue
			}
			for _, hall := range s.res.Halls {
				if s.CanFit(hall, d, label, duration) {
					return Slot{Hall: hall, Date: d, Time: label}, true
				}
			}
		}
	}
	return Slot{}, false
}

func clockLabel(m int) string {
	if m == timegrid.MinutesPerDay {
		return "24:00"
	}
	return timegrid.MinutesToTime(m)
}

// roundUpTo15Min rounds t up to the next quarter of the wall clock.
func roundUpTo15Min(t time.Time) time.Time {
	remainder := t.Minute() % timegrid.SlotMinutes
	if remainder == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return t.Add(time.Duration(timegrid.SlotMinutes-remainder) * time.Minute).Truncate(time.Minute)
}
