package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/zaalplan/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	TitleStyle      lipgloss.Style
	WeekStyle       lipgloss.Style
	RulerStyle      lipgloss.Style
	HallStyle       lipgloss.Style
	DayStyle        lipgloss.Style
	DayTodayStyle   lipgloss.Style
	EmptyStyle      lipgloss.Style
	EmptyTodayStyle lipgloss.Style

	// Screening blocks; Alt styles shade every other block in a row
	StartStyle           lipgloss.Style
	StartAltStyle        lipgloss.Style
	ContinuationStyle    lipgloss.Style
	ContinuationAltStyle lipgloss.Style
	PastStyle            lipgloss.Style
	PastAltStyle         lipgloss.Style
	ConflictStyle        lipgloss.Style

	CursorStyle  lipgloss.Style
	CarryStyle   lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	FilmStyle    lipgloss.Style
	MutedStyle   lipgloss.Style

	FormStyle       lipgloss.Style
	FormLabelStyle  lipgloss.Style
	FormActiveStyle lipgloss.Style
}

// NewStyles creates styles from a palette.
func NewStyles(p *theme.Palette) *Styles {
	block := lipgloss.NewStyle()

	return &Styles{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		WeekStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg).
			Padding(0, 1),
		RulerStyle: lipgloss.NewStyle().Foreground(p.FgMuted),
		HallStyle:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		DayStyle:   lipgloss.NewStyle().Foreground(p.FgMuted),
		DayTodayStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Today),
		EmptyStyle:      lipgloss.NewStyle().Foreground(p.BgSelection),
		EmptyTodayStyle: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BgHighlight),

		StartStyle:           block.Bold(true).Foreground(p.TextOnScreening).Background(p.ScreeningBg),
		StartAltStyle:        block.Bold(true).Foreground(p.TextOnAlternate).Background(p.AlternateBg),
		ContinuationStyle:    block.Foreground(p.TextOnScreening).Background(p.ScreeningBg),
		ContinuationAltStyle: block.Foreground(p.TextOnAlternate).Background(p.AlternateBg),
		PastStyle:            block.Foreground(p.FgMuted).Background(p.ScreeningPast),
		PastAltStyle:         block.Foreground(p.FgMuted).Background(p.AlternatePast),
		ConflictStyle:        block.Bold(true).Foreground(p.TextOnWarning).Background(p.Warning),

		CursorStyle: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.BgSelection).
			Reverse(true),
		CarryStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnWarning).
			Background(p.Warning),
		StatusStyle:  lipgloss.NewStyle().Foreground(p.Fg),
		ErrorStyle:   lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
		WarningStyle: lipgloss.NewStyle().Foreground(p.Warning),
		FilmStyle:    lipgloss.NewStyle().Foreground(p.Screening),
		MutedStyle:   lipgloss.NewStyle().Foreground(p.FgMuted),

		FormStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		FormLabelStyle:  lipgloss.NewStyle().Foreground(p.FgMuted).Width(10),
		FormActiveStyle: lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Width(10),
	}
}

