package scheduler

import (
	"testing"
	"time"

	"github.com/javiermolinar/zaalplan/internal/schedule"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

var halls = []string{"Zaal 1", "Zaal 2"}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.Local)
}

// build lays out Barbie at 20:00 on Wednesday in Zaal 1, window 09:00-24:00.
func build(t *testing.T) *Scheduler {
	t.Helper()
	s, err := screening.New(screening.Draft{
		Title: "Barbie", Date: "2024-06-12", Time: "20:00", Duration: 114, Hall: "Zaal 1",
	}, halls)
	if err != nil {
		t.Fatalf("failed to create screening: %v", err)
	}
	s.ID = "barbie"

	res := schedule.Build(schedule.Input{
		Screenings: []*screening.Screening{s},
		Halls:      halls,
		WeekStart:  day(12),
		StartHour:  9,
		EndHour:    24,
	})
	return New(res)
}

func TestGaps(t *testing.T) {
	s := build(t)

	gaps := s.Gaps("Zaal 1", day(12))
	if len(gaps) != 2 {
		t.Fatalf("expected 2 gaps, got %d: %+v", len(gaps), gaps)
	}
	if gaps[0].Start != "09:00" || gaps[0].End != "20:00" || gaps[0].Minutes != 660 {
		t.Errorf("first gap: got %+v", gaps[0])
	}
	if gaps[1].Start != "22:00" || gaps[1].End != "24:00" || gaps[1].Minutes != 120 {
		t.Errorf("second gap: got %+v", gaps[1])
	}

	free := s.Gaps("Zaal 2", day(12))
	if len(free) != 1 || free[0].Minutes != 900 {
		t.Errorf("expected the whole window free in Zaal 2, got %+v", free)
	}

	if got := s.Gaps("Zaal 9", day(12)); got != nil {
		t.Errorf("expected no gaps for an unknown hall, got %+v", got)
	}
}

func TestCanFit(t *testing.T) {
	s := build(t)

	tests := []struct {
		name     string
		hall     string
		date     time.Time
		start    string
		duration int
		want     bool
	}{
		{"ends where Barbie starts", "Zaal 1", day(12), "18:00", 120, true},
		{"runs into Barbie", "Zaal 1", day(12), "18:00", 121, false},
		{"starts inside Barbie", "Zaal 1", day(12), "21:45", 15, false},
		{"after Barbie past midnight", "Zaal 1", day(12), "22:00", 300, true},
		{"other hall", "Zaal 2", day(12), "20:00", 114, true},
		{"runs past the end of the week", "Zaal 1", day(16), "23:00", 600, true},
		{"invalid time", "Zaal 1", day(12), "25:00", 60, false},
		{"other week", "Zaal 1", day(20), "20:00", 60, false},
		{"unknown hall", "Zaal 9", day(12), "10:00", 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.CanFit(tt.hall, tt.date, tt.start, tt.duration); got != tt.want {
				t.Errorf("CanFit(%s, %s, %d) = %v, want %v", tt.hall, tt.start, tt.duration, got, tt.want)
			}
		})
	}
}

func TestNextAvailableStart(t *testing.T) {
	s := build(t)

	// 19:10 rounds up to 19:15; Zaal 1 is taken from 20:00 on.
	slot, ok := s.NextAvailableStart(time.Date(2024, 6, 12, 19, 10, 0, 0, time.Local), 60)
	if !ok {
		t.Fatal("expected a free slot")
	}
	if slot.Hall != "Zaal 2" || slot.Time != "19:15" || !slot.Date.Equal(day(12)) {
		t.Errorf("got %+v, want Zaal 2 at 19:15 on Wednesday", slot)
	}

	// Before the window opens the first visible slot is used.
	slot, ok = s.NextAvailableStart(time.Date(2024, 6, 13, 6, 0, 0, 0, time.Local), 90)
	if !ok || slot.Hall != "Zaal 1" || slot.Time != "09:00" || !slot.Date.Equal(day(13)) {
		t.Errorf("got %+v (ok=%v), want Zaal 1 at 09:00 on Thursday", slot, ok)
	}

	// Nothing is left after the last slot of Sunday.
	if _, ok := s.NextAvailableStart(time.Date(2024, 6, 16, 23, 50, 0, 0, time.Local), 15); ok {
		t.Error("expected no slot after the end of the week")
	}
}

func TestRoundUpTo15Min(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 6, 12, 10, 30, 0, 0, time.Local), "10:30"},
		{time.Date(2024, 6, 12, 10, 23, 0, 0, time.Local), "10:30"},
		{time.Date(2024, 6, 12, 10, 30, 1, 0, time.Local), "10:45"},
		{time.Date(2024, 6, 12, 23, 59, 0, 0, time.Local), "00:00"},
	}

	for _, tt := range tests {
		if got := roundUpTo15Min(tt.in).Format("15:04"); got != tt.want {
			t.Errorf("roundUpTo15Min(%s) = %s, want %s", tt.in.Format("15:04:05"), got, tt.want)
		}
	}
}
