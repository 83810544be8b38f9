package ui

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/summary"
	"github.com/javiermolinar/zaalplan/internal/week"
)

func (a *App) summaryCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a week per hall",
		Long: `Show per hall how many screenings start in the week, their total
running time, how much of the visible window they fill and how many overlap.`,
		Example: `  zaalplan summary
  zaalplan summary --date=2024-06-12`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return fmt.Errorf("--date %q: %w", date, err)
			}

			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}

			sum := summary.SummarizeWeek(p.GridFor(day), summary.Conflicted(p.Screenings(), p.Conflicts))
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date of the week (default: today)")
	return cmd
}

func printSummary(w io.Writer, sum *summary.WeekSummary) {
	label := week.NewCursorAt(sum.Start, nil).Label()
	fmt.Fprintln(w, formatHeader("WEEK: "+label))

	if sum.Screenings == 0 {
		fmt.Fprintln(w, "No screenings scheduled for this week.")
		return
	}

	width := 0
	for _, h := range sum.Halls {
		width = max(width, utf8.RuneCountInString(h.Hall))
	}

	fmt.Fprintf(w, "%d screenings, %s\n\n", sum.Screenings, fmtMinutes(sum.Minutes))
	for _, h := range sum.Halls {
		pad := width - utf8.RuneCountInString(h.Hall)
		line := fmt.Sprintf("  %s%*s  %3d screenings  %-9s %3.0f%% used",
			formatHall(h.Hall), pad, "", h.Screenings, fmtMinutes(h.Minutes), h.Utilization*100)
		if h.Overlaps > 0 {
			line += "  " + formatWarning(fmt.Sprintf("%d overlapping", h.Overlaps))
		}
		fmt.Fprintln(w, line)
	}

	if !sum.BusiestDay.IsZero() {
		fmt.Fprintf(w, "\nBusiest day: %s\n", sum.BusiestDay.Format("Monday Jan 2"))
	}
	if len(sum.Genres) > 0 {
		fmt.Fprint(w, "Genres:")
		for _, g := range sum.Genres {
			name := g.Genre
			if name == "" {
				name = "none"
			}
			fmt.Fprintf(w, " %s %d", name, g.Count)
		}
		fmt.Fprintln(w)
	}
	if sum.Skipped > 0 {
		fmt.Fprintln(w, formatWarning(fmt.Sprintf("%d screening(s) could not be placed (see zaalplan week)", sum.Skipped)))
	}
}
