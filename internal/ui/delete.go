package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a screening",
		Example: `  zaalplan delete 3f2a91c0`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.ensurePlanner(cmd.Context(), modeCommand)
			if err != nil {
				return err
			}
			s, err := resolveID(p, args[0])
			if err != nil {
				return err
			}
			if err := p.Delete(cmd.Context(), s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted screening %s: %s\n", shortID(s.ID), describe(s))
			return nil
		},
	}
}
