// Package schedule builds the weekly hall × slot grid from a flat list of
// screenings.
//
// A screening occupies ceil(duration/15) consecutive slots starting at its
// start time. The first slot holds a CellStart, the rest CellContinuation,
// so a renderer draws each screening once. Slots past midnight roll over to
// the next date of the window; slots past the last date are dropped.
package schedule

import (
	"time"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// CellKind tells what occupies a slot.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellStart
	CellContinuation
)

func (k CellKind) String() string {
	switch k {
	case CellStart:
		return "start"
	case CellContinuation:
		return "continuation"
	default:
		return "empty"
	}
}

// Cell is one slot of a hall on a date.
type Cell struct {
	Kind      CellKind
	Screening *screening.Screening // nil when empty
}

// IsEmpty reports whether nothing occupies the cell.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// IsStart reports whether the cell is the first slot of a screening.
func (c Cell) IsStart() bool {
	return c.Kind == CellStart
}

// Row is the ordered slots of one hall on one date.
type Row []Cell

// Grid maps hall → date key (YYYY-MM-DD) → row.
type Grid map[string]map[string]Row

// newGrid allocates an empty row of width cells for every hall and date.
func newGrid(halls []string, dates []time.Time, width int) Grid {
	g := make(Grid, len(halls))
	for _, hall := range halls {
		byDate := make(map[string]Row, len(dates))
		for _, d := range dates {
			byDate[dateutil.FormatDate(d)] = make(Row, width)
		}
		g[hall] = byDate
	}
	return g
}

// Row returns the row of a hall on a date, or nil if the grid has none.
func (g Grid) Row(hall string, date time.Time) Row {
	return g.RowByKey(hall, dateutil.FormatDate(date))
}

// RowByKey is Row with a preformatted date key.
func (g Grid) RowByKey(hall, dateKey string) Row {
	byDate, ok := g[hall]
	if !ok {
		return nil
	}
	return byDate[dateKey]
}

// At returns the cell at slot index i, or an empty cell when out of range.
func (g Grid) At(hall string, date time.Time, i int) Cell {
	row := g.Row(hall, date)
	if i < 0 || i >= len(row) {
		return Cell{}
	}
	return row[i]
}

// Occupied counts the cells covered by the screening with the given id.
func (g Grid) Occupied(id string) (starts, continuations int) {
	for _, byDate := range g {
		for _, row := range byDate {
			for _, c := range row {
				if c.Screening == nil || c.Screening.ID != id {
					continue
				}
				switch c.Kind {
				case CellStart:
					starts++
				case CellContinuation:
					continuations++
				}
			}
		}
	}
	return starts, continuations
}
