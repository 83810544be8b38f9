package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestNewCursor_StartsOnCurrentWeek(t *testing.T) {
	// Sunday evening still belongs to the week that began on Monday.
	now := time.Date(2024, 6, 9, 21, 30, 0, 0, time.Local)
	c := NewCursor(fixedClock(now))

	assert.Equal(t, date(2024, 6, 3), c.Start())
	assert.Equal(t, date(2024, 6, 9), c.End())
	assert.True(t, c.IsCurrent())
}

func TestCursor_Navigation(t *testing.T) {
	c := NewCursor(fixedClock(time.Date(2024, 6, 12, 10, 0, 0, 0, time.Local)))
	require.Equal(t, date(2024, 6, 10), c.Start())

	c.Next()
	assert.Equal(t, date(2024, 6, 17), c.Start())
	assert.False(t, c.IsCurrent())

	c.Previous()
	c.Previous()
	assert.Equal(t, date(2024, 6, 3), c.Start())

	c.Today()
	assert.Equal(t, date(2024, 6, 10), c.Start())
	assert.True(t, c.IsCurrent())
}

func TestCursor_PreviousAcrossYearBoundary(t *testing.T) {
	c := NewCursorAt(date(2025, 1, 1), nil)
	require.Equal(t, date(2024, 12, 30), c.Start())

	c.Previous()
	assert.Equal(t, date(2024, 12, 23), c.Start())
	assert.Equal(t, time.Monday, c.Start().Weekday())
}

func TestCursor_StaysOnMondays(t *testing.T) {
	c := NewCursorAt(date(2024, 3, 20), nil)
	for i := 0; i < 60; i++ {
		c.Next()
		require.Equal(t, time.Monday, c.Start().Weekday())
		require.Equal(t, 0, c.Start().Hour())
		require.Equal(t, c.Start(), dateutil.MondayOf(c.Start()))
	}
}

func TestCursor_Dates(t *testing.T) {
	c := NewCursorAt(date(2024, 6, 12), nil)

	dates := c.Dates()
	require.Len(t, dates, 7)
	assert.Equal(t, time.Monday, dates[0].Weekday())
	assert.Equal(t, time.Sunday, dates[6].Weekday())

	assert.Equal(t, []string{
		"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13",
		"2024-06-14", "2024-06-15", "2024-06-16",
	}, c.DateKeys())
}

func TestCursor_Contains(t *testing.T) {
	c := NewCursorAt(date(2024, 6, 12), nil)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"monday", date(2024, 6, 10), true},
		{"sunday night", time.Date(2024, 6, 16, 23, 59, 0, 0, time.Local), true},
		{"previous sunday", date(2024, 6, 9), false},
		{"next monday", date(2024, 6, 17), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Contains(tt.t))
		})
	}
}

func TestCursor_Label(t *testing.T) {
	assert.Equal(t, "Jun 10 - Jun 16, 2024", NewCursorAt(date(2024, 6, 12), nil).Label())
	assert.Equal(t, "Dec 30, 2024 - Jan 5, 2025", NewCursorAt(date(2025, 1, 2), nil).Label())
}
