package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Screening titles: bold cyan
	colorTitle = color.New(color.FgCyan, color.Bold)

	// Halls: magenta to tell them apart from titles
	colorHall = color.New(color.FgMagenta)

	// Overlaps and skipped screenings: yellow to make them pop
	colorWarning = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Today's header: green
	colorToday = color.New(color.FgGreen, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// painter applies colors, or nothing when plain output is wanted (for
// example text going to the clipboard).
type painter struct {
	plain bool
}

func (p painter) paint(c *color.Color, s string) string {
	if p.plain {
		return s
	}
	return c.Sprint(s)
}

// formatTitle formats a screening title.
func formatTitle(s string) string {
	return colorTitle.Sprint(s)
}

// formatHall formats a hall name.
func formatHall(s string) string {
	return colorHall.Sprint(s)
}

// formatWarning formats warnings.
func formatWarning(s string) string {
	return colorWarning.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
