// Package tui provides the terminal user interface for zaalplan.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/schedule"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/tui/theme"
)

// statusLevel picks the style of the status line.
type statusLevel int

const (
	levelInfo statusLevel = iota
	levelWarn
	levelError
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // carrying a screening to a new cell
	ModeForm        // manual entry or edit of a screening
	ModeConfirmDelete
)

// Position addresses a grid cell: Row indexes the hall×day rows in display
// order, Slot the visible slot columns.
type Position struct {
	Row  int
	Slot int
}

// rowKey identifies one grid row.
type rowKey struct {
	Hall string
	Date time.Time
}

// Options configures the TUI.
type Options struct {
	Theme string
	Now   func() time.Time // defaults to time.Now
}

// Model is the main TUI model.
type Model struct {
	planner *planner.Planner
	styles  *Styles
	keys    keyMap
	help    help.Model
	now     func() time.Time

	// Built grid of the displayed week
	result     *schedule.Result
	rows       []rowKey
	conflicted map[string]bool

	cursor   Position
	mode     Mode
	carrying *screening.Screening
	film     int // index into the catalog, -1 for none
	form     form
	deleting *screening.Screening

	status      string
	statusLevel statusLevel

	width     int
	height    int
	slotWidth int // terminal columns per slot
	colOffset int // first visible slot column
	rowOffset int // first visible grid row
}

// New creates a model over p. The grid is built immediately from the
// planner's snapshot.
func New(p *planner.Planner, opts Options) Model {
	t, _ := theme.Load(opts.Theme) // nil falls back to the default palette
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		planner:   p,
		styles:    NewStyles(theme.NewPalette(t)),
		keys:      defaultKeyMap(),
		help:      help.New(),
		now:       now,
		film:      -1,
		slotWidth: 2,
		width:     120,
		height:    40,
	}
	m.refresh()
	m.cursor = m.initialCursor()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI on p.
func Run(p *planner.Planner, opts Options) error {
	prog := tea.NewProgram(New(p, opts), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// refresh rebuilds the grid of the displayed week and keeps the cursor in
// bounds.
func (m *Model) refresh() {
	m.result = m.planner.Grid()

	m.rows = make([]rowKey, 0, len(m.result.Halls)*len(m.result.Dates))
	for _, hall := range m.result.Halls {
		for _, d := range m.result.Dates {
			m.rows = append(m.rows, rowKey{Hall: hall, Date: d})
		}
	}

	m.conflicted = make(map[string]bool)
	for _, s := range m.planner.Screenings() {
		if !m.inWeek(s) {
			continue
		}
		if len(m.planner.Conflicts(s)) > 0 {
			m.conflicted[s.ID] = true
		}
	}

	m.cursor.Row = clamp(m.cursor.Row, 0, len(m.rows)-1)
	m.cursor.Slot = clamp(m.cursor.Slot, 0, len(m.result.Visible)-1)
	m.ensureCursorVisible()
}

func (m *Model) inWeek(s *screening.Screening) bool {
	if len(m.result.Dates) == 0 {
		return false
	}
	first := m.result.Dates[0]
	last := m.result.Dates[len(m.result.Dates)-1]
	return !s.Date.Before(first.AddDate(0, 0, -1)) && !s.Date.After(last)
}

// initialCursor points at today's row of the first hall when the current
// week is shown, at the first row otherwise.
func (m Model) initialCursor() Position {
	today := dateutil.FormatDate(m.now())
	for i, r := range m.rows {
		if dateutil.FormatDate(r.Date) == today {
			return Position{Row: i}
		}
	}
	return Position{}
}

// target returns the gesture target under the cursor.
func (m Model) target() planner.Target {
	if len(m.rows) == 0 || len(m.result.Visible) == 0 {
		return planner.Target{}
	}
	r := m.rows[m.cursor.Row]
	return planner.Target{
		Hall: r.Hall,
		Date: dateutil.FormatDate(r.Date),
		Time: m.result.Visible[m.cursor.Slot],
	}
}

// cellAt returns the cell at pos.
func (m Model) cellAt(pos Position) schedule.Cell {
	if pos.Row < 0 || pos.Row >= len(m.rows) {
		return schedule.Cell{}
	}
	r := m.rows[pos.Row]
	return m.result.Grid.At(r.Hall, r.Date, pos.Slot)
}

// selected returns the screening under the cursor, if any.
func (m Model) selected() *screening.Screening {
	return m.cellAt(m.cursor).Screening
}

// currentFilm returns the quick-add film, "" when none is selected.
func (m Model) currentFilm() string {
	catalog := m.planner.Catalog()
	if m.film < 0 || m.film >= len(catalog) {
		return ""
	}
	return catalog[m.film].Title
}

func (m *Model) setStatus(level statusLevel, msg string) {
	m.status = msg
	m.statusLevel = level
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
