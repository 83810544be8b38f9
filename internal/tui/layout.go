package tui

import "github.com/charmbracelet/lipgloss"

const (
	dayLabelWidth = 6 // "Mon 10"
	formHeight    = 9
	chromeLines   = 4 // header, ruler, status, blank
)

// hallWidth is the width of the hall column.
func (m Model) hallWidth() int {
	w := 4
	for _, h := range m.result.Halls {
		w = max(w, lipgloss.Width(h))
	}
	return w
}

// labelWidth is the width left of the slot columns.
func (m Model) labelWidth() int {
	return m.hallWidth() + 1 + dayLabelWidth + 1
}

// fitSlotWidth uses two columns per slot when the whole window fits.
func (m Model) fitSlotWidth() int {
	if m.width-m.labelWidth() >= 2*len(m.result.Visible) {
		return 2
	}
	return 1
}

func (m Model) visibleCols() int {
	return max(1, (m.width-m.labelWidth())/max(1, m.slotWidth))
}

func (m Model) visibleRows() int {
	h := m.height - chromeLines - lipgloss.Height(m.help.View(m.keys))
	if m.mode == ModeForm {
		h -= formHeight
	}
	return max(1, h)
}

// ensureCursorVisible scrolls so the cursor cell is on screen.
func (m *Model) ensureCursorVisible() {
	cols := m.visibleCols()
	if m.cursor.Slot < m.colOffset {
		m.colOffset = m.cursor.Slot
	}
	if m.cursor.Slot >= m.colOffset+cols {
		m.colOffset = m.cursor.Slot - cols + 1
	}
	m.colOffset = clamp(m.colOffset, 0, max(0, len(m.result.Visible)-cols))

	rows := m.visibleRows()
	if m.cursor.Row < m.rowOffset {
		m.rowOffset = m.cursor.Row
	}
	if m.cursor.Row >= m.rowOffset+rows {
		m.rowOffset = m.cursor.Row - rows + 1
	}
	m.rowOffset = clamp(m.rowOffset, 0, max(0, len(m.rows)-rows))
}
