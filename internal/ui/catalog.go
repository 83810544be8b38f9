package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

func (a *App) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the films available for quick-add",
		Long: `List the film catalog. Pick one with add --film or cycle through it
with c in the grid; enter on an empty slot then schedules it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			films := p.Catalog()
			if len(films) == 0 {
				fmt.Fprintln(out, "The catalog is empty.")
				return nil
			}

			width := 0
			for _, f := range films {
				width = max(width, utf8.RuneCountInString(f.Title))
			}

			fmt.Fprintln(out, formatHeader(fmt.Sprintf("Catalog (%d films)", len(films))))
			for _, f := range films {
				pad := width - utf8.RuneCountInString(f.Title)
				fmt.Fprintf(out, "  %s%*s  %4d min  %s\n", formatTitle(f.Title), pad, "", f.Duration, formatMuted(f.Genre))
			}
			return nil
		},
	}
}
