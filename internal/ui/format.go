package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// shortIDLen is the id prefix printed by list and accepted by move/delete.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// timeRange renders start-end, marking ends on a later day with +N.
func timeRange(s *screening.Screening) string {
	end := s.End()
	r := s.Time + "-" + end.Format("15:04")
	days := 0
	for d, last := s.Date, dateutil.TruncateToDay(end); d.Before(last); d = d.AddDate(0, 0, 1) {
		days++
	}
	if days > 0 {
		r += fmt.Sprintf("+%d", days)
	}
	return r
}

// describe renders a one-line summary of s.
func describe(s *screening.Screening) string {
	line := fmt.Sprintf("%s %s %s %s (%d min)",
		formatTitle(s.Title),
		formatHall(s.Hall),
		s.Date.Format("Mon 2006-01-02"),
		timeRange(s),
		s.Duration,
	)
	if s.Genre != "" {
		line += " " + formatMuted("["+s.Genre+"]")
	}
	return line
}

// printConflicts lists the screenings s overlaps.
func printConflicts(w io.Writer, conflicts []*screening.Screening) {
	if len(conflicts) == 0 {
		return
	}
	fmt.Fprintln(w, formatWarning(fmt.Sprintf("Warning: overlaps %d screening(s) in the same hall:", len(conflicts))))
	for _, c := range conflicts {
		fmt.Fprintf(w, "  %s %s %s\n", shortID(c.ID), c.Title, timeRange(c))
	}
}

// resolveID finds the screening whose id starts with prefix.
func resolveID(p *planner.Planner, prefix string) (*screening.Screening, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("empty screening id")
	}

	var matches []*screening.Screening
	for _, s := range p.Screenings() {
		if s.ID == prefix {
			return s, nil
		}
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", screening.ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("screening id %q is ambiguous (%d matches)", prefix, len(matches))
	}
}
