// Package week tracks which Monday-based week is on display.
package week

import (
	"time"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
)

// Clock returns the current time.
type Clock func() time.Time

// Cursor points at the Monday of the displayed week.
// Navigation moves it by whole weeks; Today snaps back to the week of now.
type Cursor struct {
	start time.Time
	now   Clock
}

// NewCursor creates a cursor on the current week.
// A nil clock uses time.Now.
func NewCursor(now Clock) *Cursor {
	if now == nil {
		now = time.Now
	}
	c := &Cursor{now: now}
	c.Today()
	return c
}

// NewCursorAt creates a cursor on the week containing t.
func NewCursorAt(t time.Time, now Clock) *Cursor {
	c := NewCursor(now)
	c.Set(t)
	return c
}

// Start returns the Monday of the displayed week at local midnight.
func (c *Cursor) Start() time.Time {
	return c.start
}

// End returns the Sunday of the displayed week.
func (c *Cursor) End() time.Time {
	return c.start.AddDate(0, 0, dateutil.DaysPerWeek-1)
}

// Dates returns the seven dates of the displayed week, Monday first.
func (c *Cursor) Dates() []time.Time {
	week := dateutil.WeekDates(c.start)
	return week[:]
}

// DateKeys returns Dates formatted as YYYY-MM-DD.
func (c *Cursor) DateKeys() []string {
	keys := make([]string, 0, dateutil.DaysPerWeek)
	for _, d := range c.Dates() {
		keys = append(keys, dateutil.FormatDate(d))
	}
	return keys
}

// Previous moves one week back.
func (c *Cursor) Previous() {
	c.start = c.start.AddDate(0, 0, -dateutil.DaysPerWeek)
}

// Next moves one week forward.
func (c *Cursor) Next() {
	c.start = c.start.AddDate(0, 0, dateutil.DaysPerWeek)
}

// Today moves to the week containing the current time.
func (c *Cursor) Today() {
	c.start = dateutil.MondayOf(c.now())
}

// Set moves to the week containing t.
func (c *Cursor) Set(t time.Time) {
	c.start = dateutil.MondayOf(t)
}

// Contains reports whether t falls on a date of the displayed week.
func (c *Cursor) Contains(t time.Time) bool {
	return dateutil.MondayOf(t).Equal(c.start)
}

// IsCurrent reports whether the displayed week is the week of now.
func (c *Cursor) IsCurrent() bool {
	return c.Contains(c.now())
}

// Label renders the week as "Jun 10 - Jun 16, 2024".
func (c *Cursor) Label() string {
	end := c.End()
	if c.start.Year() != end.Year() {
		return c.start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
	}
	return c.start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}
