package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/zaalplan/internal/planner"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.slotWidth = m.fitSlotWidth()
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case savedMsg:
		m.mode = ModeNormal
		m.carrying = nil
		m.refresh()
		m.showOutcome(msg.outcome)
		return m, nil

	case draftMsg:
		m.form = newForm("", msg.draft)
		m.mode = ModeForm
		m.setStatus(levelInfo, "New screening: fill in the title and duration")
		return m, textinput.Blink

	case deletedMsg:
		m.mode = ModeNormal
		m.deleting = nil
		m.refresh()
		m.setStatus(levelInfo, "Deleted "+msg.screening.Title)
		return m, nil

	case loadedMsg:
		m.refresh()
		m.setStatus(levelInfo, "Reloaded")
		return m, nil

	case errMsg:
		if verr, ok := screening.AsValidation(msg.err); ok && m.mode == ModeForm {
			m.form.errs = verr
		}
		m.setStatus(levelError, msg.err.Error())
		return m, nil
	}

	if m.mode == ModeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeForm:
		return m.handleFormKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNavigation moves the cursor or the displayed week. It reports
// whether msg was a navigation key.
func (m *Model) handleNavigation(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = max(0, m.cursor.Row-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = min(len(m.rows)-1, m.cursor.Row+1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.Slot = max(0, m.cursor.Slot-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor.Slot = min(len(m.result.Visible)-1, m.cursor.Slot+1)
	case key.Matches(msg, m.keys.PrevWeek):
		m.planner.PreviousWeek()
		m.refresh()
	case key.Matches(msg, m.keys.NextWeek):
		m.planner.NextWeek()
		m.refresh()
	case key.Matches(msg, m.keys.Today):
		m.planner.Today()
		m.refresh()
		m.cursor.Row = m.initialCursor().Row
	default:
		return false
	}
	m.ensureCursorVisible()
	return true
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleNavigation(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Place):
		return m, placeCmd(m.planner, m.target(), m.currentFilm())

	case key.Matches(msg, m.keys.Edit):
		s := m.selected()
		if s == nil {
			m.setStatus(levelInfo, "No screening here")
			return m, nil
		}
		m.form = newForm(s.ID, s.Draft())
		m.mode = ModeForm
		m.setStatus(levelInfo, "Editing "+s.Title)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Move):
		s := m.selected()
		if s == nil {
			m.setStatus(levelInfo, "No screening here")
			return m, nil
		}
		m.carrying = s
		m.mode = ModeMove
		m.setStatus(levelWarn, fmt.Sprintf("Moving %s: pick a cell and press enter, esc cancels", s.Title))

	case key.Matches(msg, m.keys.Delete):
		s := m.selected()
		if s == nil {
			m.setStatus(levelInfo, "No screening here")
			return m, nil
		}
		m.deleting = s
		m.mode = ModeConfirmDelete
		m.setStatus(levelWarn, fmt.Sprintf("Delete %s on %s %s? (y/n)", s.Title, s.DateKey(), s.Time))

	case key.Matches(msg, m.keys.Film):
		m.cycleFilm()

	case key.Matches(msg, m.keys.Reload):
		return m, reloadCmd(m.planner)

	case key.Matches(msg, m.keys.Cancel):
		m.setStatus(levelInfo, "")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureCursorVisible()
	}

	return m, nil
}

// handleMoveKeys handles keys while a screening is carried.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleNavigation(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Place), key.Matches(msg, m.keys.Move):
		return m, dropCmd(m.planner, m.target(), m.carrying.ID)
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeNormal
		m.carrying = nil
		m.setStatus(levelInfo, "Move cancelled")
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// handleConfirmDeleteKeys handles the delete confirmation.
func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, deleteCmd(m.planner, m.deleting)
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.deleting = nil
		m.setStatus(levelInfo, "")
	}
	return m, nil
}

// handleFormKeys handles keys in the entry form.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.form = form{}
		m.setStatus(levelInfo, "")
		return m, nil
	case "tab", "down":
		m.form.focusField(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.focusField(m.form.focus - 1)
		return m, nil
	case "enter":
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.id != "" {
		patch, err := m.form.patch()
		if err != nil {
			return m.Update(errMsg{err: err})
		}
		return m, updateCmd(m.planner, m.form.id, patch)
	}

	d, err := m.form.draft()
	if err != nil {
		return m.Update(errMsg{err: err})
	}
	return m, createCmd(m.planner, d)
}

// cycleFilm steps through the catalog and back to no film.
func (m *Model) cycleFilm() {
	catalog := m.planner.Catalog()
	if len(catalog) == 0 {
		m.setStatus(levelInfo, "The film catalog is empty")
		return
	}
	m.film++
	if m.film >= len(catalog) {
		m.film = -1
		m.setStatus(levelInfo, "Quick-add off: enter opens the form")
		return
	}
	f := catalog[m.film]
	m.setStatus(levelInfo, fmt.Sprintf("Quick-add: %s (%d min)", f.Title, f.Duration))
}

func (m *Model) showOutcome(out *planner.Outcome) {
	s := out.Screening
	verb := "Saved"
	if out.Created {
		verb = "Added"
	}
	text := fmt.Sprintf("%s %s in %s on %s at %s", verb, s.Title, s.Hall, s.Date.Format("Mon Jan 2"), s.Time)
	if n := len(out.Conflicts); n > 0 {
		m.setStatus(levelWarn, fmt.Sprintf("%s; overlaps %d other screening(s)", text, n))
		return
	}
	m.setStatus(levelInfo, text)
}
