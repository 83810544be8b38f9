package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/dateutil"
	"github.com/javiermolinar/zaalplan/internal/screening"
)

func (a *App) moveCmd() *cobra.Command {
	var (
		hall  string
		date  string
		start string
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Move a screening to another hall, date or time",
		Long: `Move a screening. Flags that are not given keep their current value.
The id may be shortened to any unique prefix, as printed by list.`,
		Example: `  zaalplan move 3f2a91c0 --hall="Zaal 3"
  zaalplan move 3f2a --date=tomorrow --time=21:15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("hall") && !flags.Changed("date") && !flags.Changed("time") {
				return errors.New("nothing to move: pass --hall, --date or --time")
			}

			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}
			s, err := resolveID(p, args[0])
			if err != nil {
				return err
			}

			var patch screening.Patch
			if flags.Changed("hall") {
				patch.Hall = &hall
			}
			if flags.Changed("date") {
				day, err := dateutil.ParseRelativeDate(date, a.now())
				if err != nil {
					return fmt.Errorf("--date %q: %w", date, err)
				}
				key := dateutil.FormatDate(day)
				patch.Date = &key
			}
			if flags.Changed("time") {
				patch.Time = &start
			}

			moved, err := p.Update(cmd.Context(), s.ID, patch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Moved screening %s: %s\n", shortID(moved.ID), describe(moved))
			printConflicts(out, p.Conflicts(moved))
			return nil
		},
	}

	cmd.Flags().StringVar(&hall, "hall", "", "New hall")
	cmd.Flags().StringVar(&date, "date", "", "New start date (YYYY-MM-DD, today, tomorrow or a weekday)")
	cmd.Flags().StringVar(&start, "time", "", "New start time (HH:MM)")

	return cmd
}
