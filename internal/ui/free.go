package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/scheduler"
)

func (a *App) freeCmd() *cobra.Command {
	var (
		date     string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "free",
		Short: "Show free time per hall",
		Long: `Show the free stretches of the visible window in every hall for one day.

With --duration, also print the earliest start from that day on (or from now,
for today) where a screening of that length fits without overlapping.`,
		Example: `  zaalplan free
  zaalplan free --date=friday --duration=166`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return fmt.Errorf("--date %q: %w", date, err)
			}

			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}
			sched := scheduler.New(p.GridFor(day))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Free time on %s:\n", formatHeader(day.Format("Mon 2006-01-02")))

			width := 0
			for _, h := range p.Halls() {
				width = max(width, utf8.RuneCountInString(h))
			}
			for _, hall := range p.Halls() {
				var parts []string
				for _, g := range sched.Gaps(hall, day) {
					parts = append(parts, fmt.Sprintf("%s-%s %s", g.Start, g.End, formatMuted(fmtMinutes(g.Minutes))))
				}
				if len(parts) == 0 {
					parts = append(parts, formatWarning("full"))
				}
				pad := strings.Repeat(" ", width-utf8.RuneCountInString(hall))
				fmt.Fprintf(out, "  %s%s  %s\n", formatHall(hall), pad, strings.Join(parts, "  "))
			}

			if duration <= 0 {
				return nil
			}
			from := day
			if now := a.now(); now.After(from) {
				from = now
			}
			slot, ok := sched.NextAvailableStart(from, duration)
			if !ok {
				fmt.Fprintf(out, "\nNo room left this week for %d min.\n", duration)
				return nil
			}
			fmt.Fprintf(out, "\nNext start for %d min: %s on %s at %s\n",
				duration, formatHall(slot.Hall), slot.Date.Format("Mon 2006-01-02"), slot.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (default: today)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Find the next start for a screening of this many minutes")
	return cmd
}

// fmtMinutes renders a length as "(2h30)".
func fmtMinutes(m int) string {
	return fmt.Sprintf("(%dh%02d)", m/60, m%60)
}
