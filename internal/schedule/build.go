package schedule

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// Input is everything needed to build one week's grid.
type Input struct {
	Screenings []*screening.Screening
	Halls      []string
	WeekStart  time.Time // any date of the week; normalized to its Monday
	StartHour  int
	EndHour    int
	Log        logrus.FieldLogger
}

// Result is a built week grid ready for rendering.
type Result struct {
	Grid              Grid // rows trimmed to Visible
	Full              Grid // 96-slot rows
	Halls             []string
	Dates             []time.Time
	Visible           []string
	Anomalies         []Anomaly
	UsedDefaultWindow bool
}

// Build runs the full pipeline: week dates, placement, projection. It has no
// side effects besides logging and is cheap enough to call on every change.
func Build(in Input) *Result {
	log := logging.OrDiscard(in.Log)

	week := dateutil.WeekDates(dateutil.MondayOf(in.WeekStart))
	dates := week[:]

	all := timegrid.AllDaySlots()
	visible, usedDefault := timegrid.VisibleWindow(in.StartHour, in.EndHour, all)
	if usedDefault {
		log.WithFields(logrus.Fields{
			"start_hour": in.StartHour,
			"end_hour":   in.EndHour,
		}).Warn("visible window misconfigured, using 09:00-23:45")
	}

	full, anomalies := Place(in.Screenings, in.Halls, dates, all, log)

	return &Result{
		Grid:              Project(full, in.Halls, dates, all, visible),
		Full:              full,
		Halls:             in.Halls,
		Dates:             dates,
		Visible:           visible,
		Anomalies:         anomalies,
		UsedDefaultWindow: usedDefault,
	}
}

// Skipped returns the anomalies other than screenings of other weeks.
func (r *Result) Skipped() []Anomaly {
	var out []Anomaly
	for _, a := range r.Anomalies {
		if a.Reason != ReasonOutsideWindow {
			out = append(out, a)
		}
	}
	return out
}
