package schedule

import "github.com/javiermolinar/zaalplan/internal/screening"

// Overlaps reports whether candidate intersects any screening of existing in
// the same hall. A screening never conflicts with itself (same id), so a
// screening being moved can be checked against the full list.
//
// Spans are half-open: [start, start+duration).
func Overlaps(candidate *screening.Screening, existing []*screening.Screening) bool {
	return len(Conflicts(candidate, existing)) > 0
}

// Conflicts returns the screenings of existing that overlap candidate.
func Conflicts(candidate *screening.Screening, existing []*screening.Screening) []*screening.Screening {
	if candidate == nil {
		return nil
	}
	start, end := candidate.Start(), candidate.End()

	var conflicts []*screening.Screening
	for _, other := range existing {
		if other == nil || other.Hall != candidate.Hall {
			continue
		}
		if candidate.ID != "" && other.ID == candidate.ID {
			continue
		}
		if start.Before(other.End()) && end.After(other.Start()) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}
