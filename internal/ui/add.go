package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date     string
		start    string
		duration int
		hall     string
		genre    string
		film     string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a screening",
		Long: `Add a screening to a hall.

Give a title and --duration, or pick a film from the catalog with --film,
which fills in the title, duration and genre. Overlaps with other
screenings in the hall are reported but do not block the save.`,
		Example: `  zaalplan add "Barbie" --date=2024-06-12 --time=20:00 --duration=114 --hall="Zaal 1"
  zaalplan add --film=Oppenheimer --date=friday --time=19:30 --hall="Zaal 2"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}

			d := screening.Draft{Time: start, Duration: duration, Hall: hall, Genre: genre}
			if len(args) == 1 {
				d.Title = args[0]
			}
			if film != "" {
				f, ok := p.Catalog().Lookup(film)
				if !ok {
					return fmt.Errorf("film %q is not in the catalog (see zaalplan catalog)", film)
				}
				if d.Title == "" {
					d.Title = f.Title
				}
				if !cmd.Flags().Changed("duration") {
					d.Duration = f.Duration
				}
				if d.Genre == "" {
					d.Genre = f.Genre
				}
			}
			if d.Hall == "" {
				d.Hall = p.Halls()[0]
			}

			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return fmt.Errorf("--date %q: %w", date, err)
			}
			d.Date = dateutil.FormatDate(day)

			s, err := p.Create(cmd.Context(), d)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created screening %s: %s\n", shortID(s.ID), describe(s))
			printConflicts(out, p.Conflicts(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Start date (YYYY-MM-DD, today, tomorrow or a weekday; default: today)")
	cmd.Flags().StringVar(&start, "time", "", "Start time (HH:MM, required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&hall, "hall", "", "Hall (default: first configured hall)")
	cmd.Flags().StringVar(&genre, "genre", "", "Genre (optional)")
	cmd.Flags().StringVar(&film, "film", "", "Catalog film to schedule")

	_ = cmd.MarkFlagRequired("time")

	return cmd
}
