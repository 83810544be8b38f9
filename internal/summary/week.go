// Package summary aggregates a built week of screenings.
package summary

import (
	"cmp"
	"slices"
	"time"

	"github.com/javiermolinar/zaalplan/internal/schedule"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// HallStats holds the totals of one hall.
type HallStats struct {
	Hall        string
	Screenings  int     // starts in the week
	Minutes     int     // summed durations of those screenings
	Utilization float64 // share of visible cells in use, 0..1
	Overlaps    int     // screenings overlapping another in the hall
}

// GenreCount is the number of screenings of one genre.
type GenreCount struct {
	Genre string
	Count int
}

// WeekSummary holds aggregated week data.
type WeekSummary struct {
	Start      time.Time
	End        time.Time
	Halls      []HallStats
	Screenings int
	Minutes    int
	Genres     []GenreCount // most frequent first; "" for screenings without one
	BusiestDay time.Time    // zero when the week is empty
	Skipped    int          // screenings that could not be placed
}

// SummarizeWeek totals res per hall. conflicted holds the ids of screenings
// that overlap another one.
func SummarizeWeek(res *schedule.Result, conflicted map[string]bool) *WeekSummary {
	sum := &WeekSummary{
		Start:   res.Dates[0],
		End:     res.Dates[len(res.Dates)-1],
		Skipped: len(res.Skipped()),
	}

	genres := make(map[string]int)
	perDay := make([]int, len(res.Dates))

	for _, hall := range res.Halls {
		hs := HallStats{Hall: hall}
		used, total := 0, 0

		for i, d := range res.Dates {
			for _, c := range res.Full.Row(hall, d) {
				if !c.IsStart() {
					continue
				}
				hs.Screenings++
				hs.Minutes += c.Screening.Duration
				if conflicted[c.Screening.ID] {
					hs.Overlaps++
				}
				genres[c.Screening.Genre]++
				perDay[i]++
			}

			row := res.Grid.Row(hall, d)
			total += len(row)
			for _, c := range row {
				if !c.IsEmpty() {
					used++
				}
			}
		}

		if total > 0 {
			hs.Utilization = float64(used) / float64(total)
		}
		sum.Screenings += hs.Screenings
		sum.Minutes += hs.Minutes
		sum.Halls = append(sum.Halls, hs)
	}

	for g, n := range genres {
		sum.Genres = append(sum.Genres, GenreCount{Genre: g, Count: n})
	}
	slices.SortFunc(sum.Genres, func(a, b GenreCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Genre, b.Genre)
	})

	busiest := 0
	for i, n := range perDay {
		if n > busiest {
			busiest = n
			sum.BusiestDay = res.Dates[i]
		}
	}

	return sum
}

// Conflicted returns the ids of the screenings in list that overlap another
// one, using conflicts to look them up.
func Conflicted(list []*screening.Screening, conflicts func(*screening.Screening) []*screening.Screening) map[string]bool {
	out := make(map[string]bool)
	for _, s := range list {
		if len(conflicts(s)) > 0 {
			out[s.ID] = true
		}
	}
	return out
}
