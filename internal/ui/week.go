package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/schedule"
	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/week"
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date    string
		copyOut bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show a week of screenings as a grid",
		Long: `Display Monday through Sunday as one row per hall and day over the
configured hours, one character per 15-minute slot. A screening shows the
first letter of its title followed by its continuation.`,
		Example: `  zaalplan week
  zaalplan week --date=2024-06-12 --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return fmt.Errorf("--date %q: %w", date, err)
			}

			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}
			res := p.GridFor(day)

			out := cmd.OutOrStdout()
			if countStarts(res.Full) == 0 {
				fmt.Fprintln(out, "No screenings scheduled for this week.")
				return nil
			}

			opts := weekOpts{Today: a.now(), Width: termWidth(), Conflicted: make(map[string]bool)}
			for _, s := range p.Screenings() {
				if len(p.Conflicts(s)) > 0 {
					opts.Conflicted[s.ID] = true
				}
			}
			fmt.Fprint(out, renderWeek(res, opts, painter{}))

			if copyOut {
				opts.Width = 0
				if err := clipboard.WriteAll(renderWeek(res, opts, painter{plain: true})); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(out, formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date of the week to show (default: today)")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the grid as plain text to the clipboard")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// weekOpts controls renderWeek.
type weekOpts struct {
	Today      time.Time
	Width      int // lines are cut to this width; 0 keeps them whole
	Conflicted map[string]bool
}

const (
	glyphEmpty        = "·"
	glyphContinuation = "━"
)

// renderWeek draws res as text: per day a slot ruler, one line per hall and
// the day's screenings in start order.
func renderWeek(res *schedule.Result, opts weekOpts, pt painter) string {
	var b strings.Builder
	line := func(s string) {
		if opts.Width > 0 {
			s = ansi.Truncate(s, opts.Width, "")
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}

	hallWidth := 0
	for _, h := range res.Halls {
		hallWidth = max(hallWidth, utf8.RuneCountInString(h))
	}
	indent := strings.Repeat(" ", hallWidth+4)
	rule := strings.Repeat("─", hallWidth+4+len(res.Visible))

	label := week.NewCursorAt(res.Dates[0], nil).Label()
	line("")
	line("  " + pt.paint(colorHeader, "WEEK: "+label))
	line(rule)

	today := dateutil.FormatDate(opts.Today)
	for _, d := range res.Dates {
		header := d.Format("Mon Jan 2")
		if dateutil.FormatDate(d) == today {
			header = pt.paint(colorToday, header+" (today)")
		} else {
			header = pt.paint(colorHeader, header)
		}
		line("")
		line("  " + header)
		line(indent + pt.paint(colorMuted, slotRuler(res.Visible)))

		for _, hall := range res.Halls {
			name := hall + strings.Repeat(" ", hallWidth-utf8.RuneCountInString(hall))
			line("  " + pt.paint(colorHall, name) + "  " + renderSlots(res.Grid.Row(hall, d), pt))
		}

		for _, s := range dayStarts(res, d) {
			marker := " "
			if opts.Conflicted[s.ID] {
				marker = pt.paint(colorWarning, "!")
			}
			line(fmt.Sprintf("   %s %-13s %s %s (%d min)",
				marker, timeRange(s), pt.paint(colorHall, s.Hall), pt.paint(colorTitle, s.Title), s.Duration))
		}
	}

	if skipped := res.Skipped(); len(skipped) > 0 {
		line("")
		line(pt.paint(colorWarning, fmt.Sprintf("  %d screening(s) not shown:", len(skipped))))
		for _, an := range skipped {
			line(fmt.Sprintf("    %s %s %s %s: %s",
				shortID(an.Screening.ID), an.Screening.Title, an.Screening.Hall, an.Screening.Time, an.Reason))
		}
	}
	line(rule)

	return b.String()
}

// slotRuler writes each hour above its first slot.
func slotRuler(visible []string) string {
	buf := []byte(strings.Repeat(" ", len(visible)))
	for k, label := range visible {
		if strings.HasSuffix(label, ":00") && k+2 <= len(buf) {
			copy(buf[k:], label[:2])
		}
	}
	return string(buf)
}

// renderSlots draws one character per cell.
func renderSlots(row schedule.Row, pt painter) string {
	var b strings.Builder
	for _, c := range row {
		switch c.Kind {
		case schedule.CellStart:
			b.WriteString(pt.paint(colorTitle, initial(c.Screening.Title)))
		case schedule.CellContinuation:
			b.WriteString(pt.paint(colorTitle, glyphContinuation))
		default:
			b.WriteString(pt.paint(colorMuted, glyphEmpty))
		}
	}
	return b.String()
}

func initial(title string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(title))
	if r == utf8.RuneError {
		return "■"
	}
	return string(unicode.ToUpper(r))
}

// dayStarts returns the screenings whose start cell is on d, in start order
// and then hall order.
func dayStarts(res *schedule.Result, d time.Time) []*screening.Screening {
	var out []*screening.Screening
	for _, hall := range res.Halls {
		for _, c := range res.Full.Row(hall, d) {
			if c.IsStart() {
				out = append(out, c.Screening)
			}
		}
	}
	slices.SortStableFunc(out, func(x, y *screening.Screening) int {
		return strings.Compare(x.Time, y.Time)
	})
	return out
}

func countStarts(g schedule.Grid) int {
	n := 0
	for _, byDate := range g {
		for _, row := range byDate {
			for _, c := range row {
				if c.IsStart() {
					n++
				}
			}
		}
	}
	return n
}
