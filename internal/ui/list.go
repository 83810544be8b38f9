package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		hall      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List screenings in a date range",
		Long: `List all screenings starting within a date range.

If no dates are specified, lists the current week.
If only --start is specified, lists screenings of that single day.
If both --start and --end are specified, lists screenings in that range (inclusive).`,
		Example: `  zaalplan list
  zaalplan list --start=2024-06-12
  zaalplan list --start=2024-06-10 --end=2024-06-16 --hall="Zaal 2"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var from, to string
			if startDate == "" && endDate == "" {
				monday, sunday := dateutil.WeekRange(a.now())
				from, to = dateutil.FormatDate(monday), dateutil.FormatDate(sunday)
			} else {
				from, to = startDate, endDate
			}
			dateRange, err := dateutil.NewDateRange(from, to)
			if err != nil {
				return err
			}

			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}

			var list []*screening.Screening
			for _, s := range p.Screenings() {
				if s.Date.Before(dateRange.Start) || s.Date.After(dateRange.End) {
					continue
				}
				if hall != "" && s.Hall != hall {
					continue
				}
				list = append(list, s)
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No screenings found in the specified date range.")
				return nil
			}

			// Print screenings grouped by date
			var currentDate string
			for _, s := range list {
				date := s.DateKey()
				if date != currentDate {
					if currentDate != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "=== %s ===\n", formatHeader(s.Date.Format("Mon 2006-01-02")))
					currentDate = date
				}

				marker := " "
				if len(p.Conflicts(s)) > 0 {
					marker = formatWarning("!")
				}
				fmt.Fprintf(out, "  %s %s %-13s %s %s\n",
					marker,
					formatMuted(shortID(s.ID)),
					timeRange(s),
					formatHall(s.Hall),
					formatTitle(s.Title),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().StringVar(&hall, "hall", "", "Only list this hall")

	return cmd
}
