// Package timegrid generates the uniform 15-minute slots of a day and the
// visible window the planner shows.
package timegrid

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// SlotMinutes is the width of a single slot.
	SlotMinutes = 15
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 24 * 60
	// SlotsPerDay is 1440 / 15 = 96 slots.
	SlotsPerDay = MinutesPerDay / SlotMinutes

	// DefaultStartHour and DefaultEndLabel bound the recovery window used
	// when the configured bounds cannot be resolved.
	DefaultStartHour = 9
	DefaultEndLabel  = "23:45"
)

// Window errors.
var (
	ErrStartHourRange = errors.New("start hour must be between 0 and 23")
	ErrEndHourRange   = errors.New("end hour must be between 1 and 24")
	ErrEmptyWindow    = errors.New("start hour must be before end hour")
)

var clockPattern = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`)

// IsValidTime reports whether s is a 24-hour "HH:MM" clock time.
func IsValidTime(s string) bool {
	return clockPattern.MatchString(s)
}

// AllDaySlots returns every slot label of a day, "00:00" through "23:45".
func AllDaySlots() []string {
	slots := make([]string, SlotsPerDay)
	for i := range slots {
		slots[i] = MinutesToTime(i * SlotMinutes)
	}
	return slots
}

// VisibleSlots returns the slots between startHour (inclusive) and endHour
// (exclusive, 24 meaning midnight). Bounds that do not resolve to a label of
// all, or an empty range, yield the 09:00..23:45 default window.
func VisibleSlots(startHour, endHour int, all []string) []string {
	slots, _ := VisibleWindow(startHour, endHour, all)
	return slots
}

// VisibleWindow is VisibleSlots that also reports whether the default window
// was substituted for the requested bounds.
func VisibleWindow(startHour, endHour int, all []string) (slots []string, usedDefault bool) {
	startIndex := SlotIndex(hourLabel(startHour), all)
	var endIndex int
	if endHour == 24 {
		endIndex = len(all)
	} else {
		endIndex = SlotIndex(hourLabel(endHour), all)
	}

	if startIndex == -1 || endIndex == -1 || startIndex >= endIndex {
		return defaultWindow(all), true
	}
	return all[startIndex:endIndex], false
}

func defaultWindow(all []string) []string {
	start := SlotIndex(hourLabel(DefaultStartHour), all)
	end := SlotIndex(DefaultEndLabel, all)
	if start == -1 || end == -1 || start > end {
		return nil
	}
	return all[start : end+1]
}

// ValidateWindow checks visible-window bounds before they reach VisibleSlots.
func ValidateWindow(startHour, endHour int) error {
	if startHour < 0 || startHour > 23 {
		return fmt.Errorf("%w, got %d", ErrStartHourRange, startHour)
	}
	if endHour < 1 || endHour > 24 {
		return fmt.Errorf("%w, got %d", ErrEndHourRange, endHour)
	}
	if startHour >= endHour {
		return ErrEmptyWindow
	}
	return nil
}

// SlotIndex returns the position of label in slots, or -1.
func SlotIndex(label string, slots []string) int {
	for i, s := range slots {
		if s == label {
			return i
		}
	}
	return -1
}

// SpanSlots returns how many slots a duration in minutes covers, at least 1.
func SpanSlots(duration int) int {
	n := duration / SlotMinutes
	if duration%SlotMinutes > 0 {
		n++
	}
	if n < 1 {
		return 1
	}
	return n
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if !IsValidTime(t) {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func hourLabel(hour int) string {
	if hour < 0 || hour > 23 {
		return ""
	}
	return fmt.Sprintf("%02d:00", hour)
}
