package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/schedule"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')
	b.WriteString(m.renderRuler())
	b.WriteByte('\n')

	last := min(len(m.rows), m.rowOffset+m.visibleRows())
	for i := m.rowOffset; i < last; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteByte('\n')
	}

	if m.mode == ModeForm {
		b.WriteString(m.renderForm())
		b.WriteByte('\n')
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	left := m.styles.TitleStyle.Render("zaalplan") + m.styles.WeekStyle.Render(m.planner.WeekLabel())

	var right []string
	if m.result.UsedDefaultWindow {
		right = append(right, m.styles.WarningStyle.Render("window 09:00-23:45"))
	}
	if n := len(m.result.Skipped()); n > 0 {
		right = append(right, m.styles.WarningStyle.Render(fmt.Sprintf("%d not shown", n)))
	}
	if film := m.currentFilm(); film != "" {
		right = append(right, m.styles.FilmStyle.Render("film: "+film))
	} else {
		right = append(right, m.styles.MutedStyle.Render("film: none"))
	}

	r := strings.Join(right, "  ")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(r))
	return ansi.Truncate(left+strings.Repeat(" ", gap)+r, m.width, "")
}

// renderRuler labels every hour above its first slot.
func (m Model) renderRuler() string {
	cols := m.visibleCols()
	buf := []byte(strings.Repeat(" ", cols*m.slotWidth))
	for k := 0; k < cols && m.colOffset+k < len(m.result.Visible); k++ {
		label := m.result.Visible[m.colOffset+k]
		if !strings.HasSuffix(label, ":00") {
			continue
		}
		pos := k * m.slotWidth
		if pos+2 <= len(buf) {
			copy(buf[pos:], label[:2])
		}
	}
	return strings.Repeat(" ", m.labelWidth()) + m.styles.RulerStyle.Render(string(buf))
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	days := len(m.result.Dates)

	hall := ""
	if days > 0 && i%days == 0 {
		hall = r.Hall
	}
	hall = m.styles.HallStyle.Render(ansi.Truncate(hall, m.hallWidth(), "…"))
	hall += strings.Repeat(" ", m.hallWidth()-lipgloss.Width(hall))

	dayStyle := m.styles.DayStyle
	if m.isToday(r) {
		dayStyle = m.styles.DayTodayStyle
	}
	day := dayStyle.Render(r.Date.Format("Mon 02"))

	return hall + " " + day + " " + m.renderCells(i)
}

func (m Model) isToday(r rowKey) bool {
	return dateutil.FormatDate(r.Date) == dateutil.FormatDate(m.now())
}

func (m Model) isPast(r rowKey) bool {
	return r.Date.Before(dateutil.TruncateToDay(m.now()))
}

// renderCells draws the visible slots of row i. Consecutive cells of one
// screening are drawn as a single block labeled with its title.
func (m Model) renderCells(i int) string {
	r := m.rows[i]
	row := m.result.Grid.Row(r.Hall, r.Date)
	first := m.colOffset
	last := min(first+m.visibleCols(), len(row))

	var b strings.Builder
	block := 0
	for j := first; j < last; {
		c := row[j]
		if c.IsEmpty() {
			b.WriteString(m.renderEmpty(i, j))
			j++
			continue
		}

		end := j + 1
		for end < last && row[end].Kind == schedule.CellContinuation && row[end].Screening == c.Screening {
			end++
		}
		b.WriteString(m.renderBlock(i, j, end, c, block))
		block++
		j = end
	}
	return b.String()
}

func (m Model) renderEmpty(i, j int) string {
	content := strings.Repeat(" ", m.slotWidth)
	if strings.HasSuffix(m.result.Visible[j], ":00") {
		content = "·" + strings.Repeat(" ", m.slotWidth-1)
	}

	if m.cursor.Row == i && m.cursor.Slot == j {
		if m.carrying != nil {
			return m.styles.CarryStyle.Render(fitText(m.carrying.Title, m.slotWidth))
		}
		return m.styles.CursorStyle.Render(content)
	}
	if m.isToday(m.rows[i]) {
		return m.styles.EmptyTodayStyle.Render(content)
	}
	return m.styles.EmptyStyle.Render(content)
}

// renderBlock draws the cells [from, to) of row i, all covered by c's
// screening.
func (m Model) renderBlock(i, from, to int, c schedule.Cell, block int) string {
	s := c.Screening
	width := (to - from) * m.slotWidth

	label := s.Title
	if !c.IsStart() {
		label = "‹" + label
	}
	if m.conflicted[s.ID] {
		label = "!" + label
	}
	text := fitText(label, width)

	style := m.blockStyle(m.rows[i], c, block, m.conflicted[s.ID])

	if m.cursor.Row != i || m.cursor.Slot < from || m.cursor.Slot >= to {
		return style.Render(text)
	}

	cursorStyle := m.styles.CursorStyle
	if m.carrying != nil {
		cursorStyle = m.styles.CarryStyle
	}
	at := (m.cursor.Slot - from) * m.slotWidth
	return style.Render(ansi.Cut(text, 0, at)) +
		cursorStyle.Render(ansi.Cut(text, at, at+m.slotWidth)) +
		style.Render(ansi.Cut(text, at+m.slotWidth, width))
}

func (m Model) blockStyle(r rowKey, c schedule.Cell, block int, conflicted bool) lipgloss.Style {
	alt := block%2 == 1
	switch {
	case conflicted:
		return m.styles.ConflictStyle
	case m.isPast(r) && alt:
		return m.styles.PastAltStyle
	case m.isPast(r):
		return m.styles.PastStyle
	case c.IsStart() && alt:
		return m.styles.StartAltStyle
	case c.IsStart():
		return m.styles.StartStyle
	case alt:
		return m.styles.ContinuationAltStyle
	default:
		return m.styles.ContinuationStyle
	}
}

// fitText truncates s to width cells and pads it with spaces.
func fitText(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	return s + strings.Repeat(" ", max(0, width-ansi.StringWidth(s)))
}

func (m Model) renderStatus() string {
	text := m.status
	if text == "" {
		text = m.describeCursor()
	}
	text = ansi.Truncate(text, m.width, "…")

	switch m.statusLevel {
	case levelError:
		return m.styles.ErrorStyle.Render(text)
	case levelWarn:
		return m.styles.WarningStyle.Render(text)
	default:
		return m.styles.StatusStyle.Render(text)
	}
}

// describeCursor names the cell under the cursor and its screening.
func (m Model) describeCursor() string {
	t := m.target()
	if t.Hall == "" {
		return ""
	}
	parts := []string{t.Hall, m.rows[m.cursor.Row].Date.Format("Mon Jan 2"), t.Time}
	if s := m.selected(); s != nil {
		end := s.End().Format("15:04")
		parts = append(parts, fmt.Sprintf("%s %s-%s (%d min)", s.Title, s.Time, end, s.Duration))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderForm() string {
	f := m.form
	title := "New screening"
	if f.id != "" {
		title = "Edit screening"
	}

	lines := []string{
		m.styles.HallStyle.Render(fmt.Sprintf("%s · %s · %s", title, f.hall, f.date)),
	}
	for i := range f.inputs {
		label := m.styles.FormLabelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = m.styles.FormActiveStyle.Render(fieldLabels[i])
		}
		line := label + f.inputs[i].View()
		if f.errs != nil {
			if msg := f.errs.Field(strings.ToLower(fieldLabels[i])); msg != "" {
				line += "  " + m.styles.WarningStyle.Render(msg)
			}
		}
		lines = append(lines, line)
	}
	lines = append(lines, m.styles.MutedStyle.Render("enter save · tab next field · esc cancel"))

	return m.styles.FormStyle.Render(strings.Join(lines, "\n"))
}
