package dateutil

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2024-06-10")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := date(2024, 6, 10); !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, s := range []string{"10-06-2024", "2024-13-01", "2024-06-31", "june"} {
			if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("ParseDate(%q) error = %v, want %v", s, err, ErrInvalidDateFormat)
			}
		}
	})
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2024, 6, 10, 22, 30, 0, 0, time.Local))
	if got != "2024-06-10" {
		t.Errorf("got %q, want %q", got, "2024-06-10")
	}
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		dr, err := NewDateRange("2024-06-10", "2024-06-16")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(date(2024, 6, 10)) {
			t.Errorf("got start %v, want 2024-06-10", dr.Start)
		}
		if !dr.End.Equal(date(2024, 6, 16)) {
			t.Errorf("got end %v, want 2024-06-16", dr.End)
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2024-06-10", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("got end %v, want %v", dr.End, dr.Start)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := NewDateRange("2024-06-16", "2024-06-10")
		if !errors.Is(err, ErrEndDateBeforeStart) {
			t.Errorf("got error %v, want %v", err, ErrEndDateBeforeStart)
		}
	})

	t.Run("invalid end", func(t *testing.T) {
		_, err := NewDateRange("2024-06-10", "bogus")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"sunday goes back six days", date(2024, 6, 9), date(2024, 6, 3)},
		{"monday is itself", date(2024, 6, 10), date(2024, 6, 10)},
		{"wednesday", date(2024, 6, 12), date(2024, 6, 10)},
		{"saturday", date(2024, 6, 15), date(2024, 6, 10)},
		{"drops time of day", time.Date(2024, 6, 12, 22, 30, 0, 0, time.Local), date(2024, 6, 10)},
		{"crosses month boundary", date(2024, 7, 2), date(2024, 7, 1)},
		{"crosses into previous month", date(2024, 5, 1), date(2024, 4, 29)},
		{"crosses year boundary", date(2025, 1, 1), date(2024, 12, 30)},
		{"leap day", date(2024, 2, 29), date(2024, 2, 26)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MondayOf(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("MondayOf(%s) = %s, want %s", tt.in, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("MondayOf(%s) is a %s", tt.in, got.Weekday())
			}
		})
	}
}

func TestMondayOf_Idempotent(t *testing.T) {
	start := date(2023, 12, 1)
	for i := 0; i < 400; i++ {
		d := start.AddDate(0, 0, i)
		once := MondayOf(d)
		if !MondayOf(once).Equal(once) {
			t.Errorf("not idempotent for %s", d)
		}
	}
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(date(2024, 12, 30))

	want := []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05"}
	for i, d := range dates {
		if got := FormatDate(d); got != want[i] {
			t.Errorf("day %d: got %s, want %s", i, got, want[i])
		}
	}
	if dates[0].Weekday() != time.Monday || dates[6].Weekday() != time.Sunday {
		t.Errorf("week runs %s to %s, want Monday to Sunday", dates[0].Weekday(), dates[6].Weekday())
	}
}

func TestWeekRange(t *testing.T) {
	monday, sunday := WeekRange(date(2024, 6, 12))
	if FormatDate(monday) != "2024-06-10" || FormatDate(sunday) != "2024-06-16" {
		t.Errorf("got %s..%s, want 2024-06-10..2024-06-16", FormatDate(monday), FormatDate(sunday))
	}

	// January 1 minus seven days lands in the previous December.
	monday, _ = WeekRange(date(2025, 1, 1).AddDate(0, 0, -7))
	if got := FormatDate(monday); got != "2024-12-23" {
		t.Errorf("got %s, want 2024-12-23", got)
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2024, 6, 10, 23, 59, 59, 999, time.Local)
	if got := TruncateToDay(in); !got.Equal(date(2024, 6, 10)) {
		t.Errorf("got %v, want 2024-06-10 00:00", got)
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday, June 12, 2024
	now := time.Date(2024, 6, 12, 14, 0, 0, 0, time.Local)

	tests := []struct {
		input string
		want  string
	}{
		{"", "2024-06-12"},
		{"today", "2024-06-12"},
		{"TODAY", "2024-06-12"},
		{"tomorrow", "2024-06-13"},
		{"yesterday", "2024-06-11"},
		{"next-week", "2024-06-19"},
		{"last-week", "2024-06-05"},
		{"friday", "2024-06-14"},
		{"wednesday", "2024-06-19"},
		{"monday", "2024-06-17"},
		{"next-sunday", "2024-06-16"},
		{"2024-06-01", "2024-06-01"},
		{"  2024-07-01  ", "2024-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseRelativeDate(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	now := time.Date(2024, 6, 12, 14, 0, 0, 0, time.Local)
	for _, s := range []string{"someday", "next-moonday", "12/06/2024", "next-"} {
		if _, err := ParseRelativeDate(s, now); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("ParseRelativeDate(%q) error = %v, want %v", s, err, ErrInvalidDateFormat)
		}
	}
}
