package schedule

import (
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// AnomalyReason explains why a screening was left out of a grid.
type AnomalyReason string

const (
	ReasonInvalidTime   AnomalyReason = "invalid time"
	ReasonOutsideWindow AnomalyReason = "outside window"
	ReasonUnknownHall   AnomalyReason = "unknown hall"
)

// Anomaly records a screening skipped during placement. Screenings from
// other weeks are expected anomalies, not errors.
type Anomaly struct {
	Screening *screening.Screening
	Reason    AnomalyReason
}

// Place writes each screening into a full-day row per (hall, date) over the
// given dates. allSlots is the full-day template, normally
// timegrid.AllDaySlots().
//
// Screenings are processed in ascending (date, time) order and a later write
// overwrites whatever an earlier screening left in a slot. A screening that
// does not resolve to a slot, a date of the window or a known hall is skipped
// and reported; the rest are still placed.
func Place(list []*screening.Screening, halls []string, dates []time.Time, allSlots []string, log logrus.FieldLogger) (Grid, []Anomaly) {
	log = logging.OrDiscard(log)
	grid := newGrid(halls, dates, len(allSlots))

	dayIndex := make(map[string]int, len(dates))
	for i, d := range dates {
		dayIndex[dateutil.FormatDate(d)] = i
	}

	sorted := slices.DeleteFunc(slices.Clone(list), func(s *screening.Screening) bool { return s == nil })
	screening.SortByStart(sorted)

	var anomalies []Anomaly
	skip := func(s *screening.Screening, reason AnomalyReason) {
		anomalies = append(anomalies, Anomaly{Screening: s, Reason: reason})
		entry := log.WithFields(logrus.Fields{
			"screening": s.ID,
			"title":     s.Title,
			"hall":      s.Hall,
			"date":      s.DateKey(),
			"time":      s.Time,
		})
		if reason == ReasonOutsideWindow {
			entry.Debug("screening not in displayed week")
			return
		}
		entry.Warnf("ignoring screening: %s", reason)
	}

	for _, s := range sorted {
		startSlot := timegrid.SlotIndex(s.Time, allSlots)
		if startSlot == -1 {
			skip(s, ReasonInvalidTime)
			continue
		}

		startDay, ok := dayIndex[s.DateKey()]
		if !ok {
			skip(s, ReasonOutsideWindow)
			continue
		}

		byDate, ok := grid[s.Hall]
		if !ok {
			skip(s, ReasonUnknownHall)
			continue
		}

		span := timegrid.SpanSlots(s.Duration)
		for i := 0; i < span; i++ {
			day := startDay
			slot := startSlot + i
			// Durations over a day roll over more than once.
			for slot >= len(allSlots) {
				day++
				slot -= len(allSlots)
			}
			if day >= len(dates) {
				break
			}

			kind := CellContinuation
			if i == 0 {
				kind = CellStart
			}
			byDate[dateutil.FormatDate(dates[day])][slot] = Cell{Kind: kind, Screening: s}
		}
	}

	return grid, anomalies
}
