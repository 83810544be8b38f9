package schedule

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

var testHalls = []string{"Zaal 1", "Zaal 2"}

// Monday, June 10, 2024
var testMonday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

func testDates() []time.Time {
	week := dateutil.WeekDates(testMonday)
	return week[:]
}

func day(i int) time.Time {
	return testMonday.AddDate(0, 0, i)
}

func mk(id, hall, date, tm string, duration int) *screening.Screening {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return &screening.Screening{ID: id, Title: "Film " + id, Hall: hall, Date: d, Time: tm, Duration: duration}
}

func TestPlace_SingleSlot(t *testing.T) {
	s := mk("a", "Zaal 1", "2024-06-12", "14:00", 15)
	grid, anomalies := Place([]*screening.Screening{s}, testHalls, testDates(), timegrid.AllDaySlots(), nil)

	require.Empty(t, anomalies)
	c := grid.At("Zaal 1", day(2), 56)
	assert.Equal(t, CellStart, c.Kind)
	assert.Same(t, s, c.Screening)
	assert.True(t, grid.At("Zaal 1", day(2), 57).IsEmpty())
	assert.True(t, grid.At("Zaal 2", day(2), 56).IsEmpty())
}

func TestPlace_AllocatesEveryRow(t *testing.T) {
	grid, _ := Place(nil, testHalls, testDates(), timegrid.AllDaySlots(), nil)

	require.Len(t, grid, len(testHalls))
	for _, hall := range testHalls {
		require.Len(t, grid[hall], 7)
		for _, d := range testDates() {
			row := grid.Row(hall, d)
			require.Len(t, row, timegrid.SlotsPerDay)
			for _, c := range row {
				assert.True(t, c.IsEmpty())
			}
		}
	}
}

func TestPlace_RollsOverMidnight(t *testing.T) {
	// 22:30 + 120 minutes on a Monday: 8 slots, 6 on Monday and 2 on Tuesday.
	s := mk("late", "Zaal 1", "2024-06-10", "22:30", 120)
	grid, anomalies := Place([]*screening.Screening{s}, testHalls, testDates(), timegrid.AllDaySlots(), nil)
	require.Empty(t, anomalies)

	monday := grid.Row("Zaal 1", day(0))
	tuesday := grid.Row("Zaal 1", day(1))

	assert.Equal(t, CellStart, monday[90].Kind)
	for i := 91; i <= 95; i++ {
		assert.Equal(t, CellContinuation, monday[i].Kind, "monday slot %d", i)
		assert.Same(t, s, monday[i].Screening)
	}
	assert.True(t, monday[89].IsEmpty())

	assert.Equal(t, CellContinuation, tuesday[0].Kind)
	assert.Equal(t, CellContinuation, tuesday[1].Kind)
	assert.True(t, tuesday[2].IsEmpty())

	starts, continuations := grid.Occupied("late")
	assert.Equal(t, 1, starts)
	assert.Equal(t, 7, continuations)
}

func TestPlace_TruncatesAtWeekEnd(t *testing.T) {
	// Sunday 23:00 for three hours: only 23:00-23:45 stays in the window.
	s := mk("sun", "Zaal 2", "2024-06-16", "23:00", 180)
	grid, anomalies := Place([]*screening.Screening{s}, testHalls, testDates(), timegrid.AllDaySlots(), nil)
	require.Empty(t, anomalies)

	starts, continuations := grid.Occupied("sun")
	assert.Equal(t, 1, starts)
	assert.Equal(t, 3, continuations)

	// Nothing wraps around to the Monday of the same window.
	assert.True(t, grid.At("Zaal 2", day(0), 0).IsEmpty())
}

func TestPlace_SpanCountMatchesDuration(t *testing.T) {
	all := timegrid.AllDaySlots()
	for duration := 1; duration <= 600; duration += 7 {
		s := mk("x", "Zaal 1", "2024-06-12", "21:15", duration)
		grid, _ := Place([]*screening.Screening{s}, testHalls, testDates(), all, nil)

		starts, continuations := grid.Occupied("x")
		require.Equal(t, 1, starts, "duration %d", duration)
		require.Equal(t, timegrid.SpanSlots(duration)-1, continuations, "duration %d", duration)
	}
}

func TestPlace_HugeDurationFillsRestOfWeek(t *testing.T) {
	s := mk("x", "Zaal 1", "2024-06-16", "23:00", math.MaxInt)
	grid, _ := Place([]*screening.Screening{s}, testHalls, testDates(), timegrid.AllDaySlots(), nil)

	starts, continuations := grid.Occupied("x")
	assert.Equal(t, 1, starts)
	assert.Equal(t, 3, continuations)
}

func TestOverlaps_HugeDuration(t *testing.T) {
	long := mk("long", "Zaal 1", "2024-06-10", "20:00", 200_000_000)
	next := mk("next", "Zaal 1", "2024-06-11", "20:00", 90)
	assert.True(t, Overlaps(next, []*screening.Screening{long}))
	assert.True(t, Overlaps(long, []*screening.Screening{next}))
}

func TestPlace_MultiDayDuration(t *testing.T) {
	// 30 hours from Friday 20:00 ends Sunday 02:00.
	s := mk("marathon", "Zaal 1", "2024-06-14", "20:00", 30*60)
	grid, _ := Place([]*screening.Screening{s}, testHalls, testDates(), timegrid.AllDaySlots(), nil)

	assert.Equal(t, CellStart, grid.At("Zaal 1", day(4), 80).Kind)
	for i := 0; i < timegrid.SlotsPerDay; i++ {
		assert.Equal(t, CellContinuation, grid.At("Zaal 1", day(5), i).Kind, "saturday slot %d", i)
	}
	assert.Equal(t, CellContinuation, grid.At("Zaal 1", day(6), 7).Kind)
	assert.True(t, grid.At("Zaal 1", day(6), 8).IsEmpty())
}

func TestPlace_LastWriteWins(t *testing.T) {
	early := mk("early", "Zaal 1", "2024-06-10", "20:00", 90) // slots 80..85
	late := mk("late", "Zaal 1", "2024-06-10", "21:00", 30)   // slots 84..85

	// Input order must not matter: placement sorts by (date, time).
	grid, _ := Place([]*screening.Screening{late, early}, testHalls, testDates(), timegrid.AllDaySlots(), nil)
	row := grid.Row("Zaal 1", day(0))

	assert.Same(t, early, row[80].Screening)
	assert.Equal(t, CellStart, row[80].Kind)
	assert.Same(t, early, row[83].Screening)
	assert.Same(t, late, row[84].Screening)
	assert.Equal(t, CellStart, row[84].Kind)
	assert.Same(t, late, row[85].Screening)
	assert.Equal(t, CellContinuation, row[85].Kind)
	assert.True(t, row[86].IsEmpty())
}

func TestPlace_PreviousDayRolloverIsOverwrittenByLaterStart(t *testing.T) {
	monday := mk("mon", "Zaal 1", "2024-06-10", "23:30", 60) // Tue 00:00..00:15
	tuesday := mk("tue", "Zaal 1", "2024-06-11", "00:00", 15)

	grid, _ := Place([]*screening.Screening{tuesday, monday}, testHalls, testDates(), timegrid.AllDaySlots(), nil)
	row := grid.Row("Zaal 1", day(1))

	assert.Same(t, tuesday, row[0].Screening)
	assert.Equal(t, CellStart, row[0].Kind)
	assert.Same(t, monday, row[1].Screening)
}

func TestPlace_SkipsAndContinues(t *testing.T) {
	var logs bytes.Buffer
	log := logging.NewWithOutput("debug", &logs)

	good := mk("good", "Zaal 1", "2024-06-11", "19:00", 100)
	offGrid := mk("offgrid", "Zaal 1", "2024-06-11", "19:07", 100)
	malformed := mk("malformed", "Zaal 1", "2024-06-11", "7pm", 100)
	nextWeek := mk("nextweek", "Zaal 1", "2024-06-17", "19:00", 100)
	unknownHall := mk("nohall", "Zaal 9", "2024-06-11", "19:00", 100)

	grid, anomalies := Place(
		[]*screening.Screening{offGrid, malformed, nextWeek, unknownHall, good, nil},
		testHalls, testDates(), timegrid.AllDaySlots(), log,
	)

	reasons := map[string]AnomalyReason{}
	for _, a := range anomalies {
		reasons[a.Screening.ID] = a.Reason
	}
	assert.Equal(t, map[string]AnomalyReason{
		"offgrid":   ReasonInvalidTime,
		"malformed": ReasonInvalidTime,
		"nextweek":  ReasonOutsideWindow,
		"nohall":    ReasonUnknownHall,
	}, reasons)

	starts, continuations := grid.Occupied("good")
	assert.Equal(t, 1, starts)
	assert.Equal(t, 6, continuations)

	assert.Contains(t, logs.String(), "offgrid")
	assert.Contains(t, logs.String(), "unknown hall")
}

func TestPlace_DoesNotMutateInput(t *testing.T) {
	b := mk("b", "Zaal 1", "2024-06-11", "19:00", 30)
	a := mk("a", "Zaal 1", "2024-06-10", "19:00", 30)
	list := []*screening.Screening{b, a}

	Place(list, testHalls, testDates(), timegrid.AllDaySlots(), nil)

	assert.Same(t, b, list[0])
	assert.Same(t, a, list[1])
}

func TestProject(t *testing.T) {
	all := timegrid.AllDaySlots()
	s := mk("a", "Zaal 1", "2024-06-10", "20:00", 45)
	full, _ := Place([]*screening.Screening{s}, testHalls, testDates(), all, nil)

	t.Run("window includes the start slot", func(t *testing.T) {
		visible := timegrid.VisibleSlots(9, 23, all)
		grid := Project(full, testHalls, testDates(), all, visible)

		row := grid.Row("Zaal 1", day(0))
		require.Len(t, row, len(visible))
		k := timegrid.SlotIndex("20:00", visible)
		assert.Equal(t, 44, k)
		assert.Same(t, s, row[k].Screening)
		assert.Equal(t, CellStart, row[k].Kind)
		assert.Equal(t, CellContinuation, row[k+1].Kind)
		assert.Equal(t, CellContinuation, row[k+2].Kind)
		assert.True(t, row[k+3].IsEmpty())
	})

	t.Run("window excludes the screening", func(t *testing.T) {
		visible := timegrid.VisibleSlots(9, 12, all)
		grid := Project(full, testHalls, testDates(), all, visible)

		row := grid.Row("Zaal 1", day(0))
		require.Len(t, row, len(visible))
		for i, c := range row {
			assert.True(t, c.IsEmpty(), "slot %d", i)
		}
	})

	t.Run("length is independent of placements", func(t *testing.T) {
		visible := timegrid.VisibleSlots(0, 24, all)
		grid := Project(full, testHalls, testDates(), all, visible)
		for _, hall := range testHalls {
			for _, d := range testDates() {
				assert.Len(t, grid.Row(hall, d), len(visible))
			}
		}
	})

	t.Run("unknown labels project to empty", func(t *testing.T) {
		visible := []string{"20:00", "20:07"}
		grid := Project(full, testHalls, testDates(), all, visible)
		row := grid.Row("Zaal 1", day(0))
		assert.Equal(t, CellStart, row[0].Kind)
		assert.True(t, row[1].IsEmpty())
	})
}

func TestProject_RolloverVisibleOnNextDay(t *testing.T) {
	all := timegrid.AllDaySlots()
	s := mk("late", "Zaal 1", "2024-06-10", "22:30", 120)
	full, _ := Place([]*screening.Screening{s}, testHalls, testDates(), all, nil)

	visible := timegrid.VisibleSlots(0, 24, all)
	grid := Project(full, testHalls, testDates(), all, visible)

	tuesday := grid.Row("Zaal 1", day(1))
	assert.Equal(t, "00:00", visible[0])
	assert.Equal(t, "00:15", visible[1])
	assert.Same(t, s, tuesday[0].Screening)
	assert.Same(t, s, tuesday[1].Screening)
}

func TestBuild(t *testing.T) {
	s := mk("a", "Zaal 2", "2024-06-13", "21:00", 127)
	other := mk("b", "Zaal 1", "2024-06-20", "21:00", 90)

	res := Build(Input{
		Screenings: []*screening.Screening{s, other},
		Halls:      testHalls,
		WeekStart:  time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local), // Saturday
		StartHour:  9,
		EndHour:    24,
	})

	require.Len(t, res.Dates, 7)
	assert.Equal(t, "2024-06-10", dateutil.FormatDate(res.Dates[0]))
	assert.Len(t, res.Visible, 60)
	assert.False(t, res.UsedDefaultWindow)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, ReasonOutsideWindow, res.Anomalies[0].Reason)
	assert.Empty(t, res.Skipped())

	row := res.Grid.Row("Zaal 2", day(3))
	k := timegrid.SlotIndex("21:00", res.Visible)
	assert.Same(t, s, row[k].Screening)
	assert.Len(t, res.Full.Row("Zaal 2", day(3)), timegrid.SlotsPerDay)
}

func TestBuild_MisconfiguredWindow(t *testing.T) {
	res := Build(Input{Halls: testHalls, WeekStart: testMonday, StartHour: 23, EndHour: 9})

	assert.True(t, res.UsedDefaultWindow)
	assert.Len(t, res.Visible, 60)
	assert.Equal(t, "09:00", res.Visible[0])
	assert.Equal(t, "23:45", res.Visible[59])
}

func TestOverlaps(t *testing.T) {
	a := mk("a", "Zaal 1", "2024-06-10", "20:00", 90)
	b := mk("b", "Zaal 1", "2024-06-10", "21:00", 30)

	tests := []struct {
		name      string
		candidate *screening.Screening
		existing  []*screening.Screening
		want      bool
	}{
		{"intersecting spans", b, []*screening.Screening{a}, true},
		{"symmetric", a, []*screening.Screening{b}, true},
		{"different hall", mk("c", "Zaal 2", "2024-06-10", "21:00", 30), []*screening.Screening{a}, false},
		{"touching end is free", mk("d", "Zaal 1", "2024-06-10", "21:30", 30), []*screening.Screening{a}, false},
		{"touching start is free", mk("e", "Zaal 1", "2024-06-10", "19:00", 60), []*screening.Screening{a}, false},
		{"self is excluded", mk("a", "Zaal 1", "2024-06-10", "20:15", 90), []*screening.Screening{a}, false},
		{"contained", mk("f", "Zaal 1", "2024-06-10", "20:30", 15), []*screening.Screening{a}, true},
		{"across midnight", mk("g", "Zaal 1", "2024-06-11", "00:15", 30), []*screening.Screening{mk("h", "Zaal 1", "2024-06-10", "23:30", 60)}, true},
		{"next day same clock time", mk("i", "Zaal 1", "2024-06-11", "20:00", 90), []*screening.Screening{a}, false},
		{"empty list", a, nil, false},
		{"nil candidate", nil, []*screening.Screening{a}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.candidate, tt.existing))
		})
	}
}

func TestConflicts(t *testing.T) {
	a := mk("a", "Zaal 1", "2024-06-10", "20:00", 90)
	b := mk("b", "Zaal 1", "2024-06-10", "21:00", 30)
	c := mk("c", "Zaal 1", "2024-06-10", "23:00", 30)

	candidate := mk("", "Zaal 1", "2024-06-10", "21:15", 120)
	got := Conflicts(candidate, []*screening.Screening{a, b, c})
	assert.Equal(t, []*screening.Screening{a, b, c}, got)
}

func TestCellKind_String(t *testing.T) {
	assert.Equal(t, "empty", CellEmpty.String())
	assert.Equal(t, "start", CellStart.String())
	assert.Equal(t, "continuation", CellContinuation.String())
}
