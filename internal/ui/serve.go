package ui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/zaalplan/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule over HTTP",
		Long: `Start the HTTP API: screenings, the week grid, drop and double-click
placement, and Prometheus metrics on /metrics. Stops on interrupt.`,
		Example: `  zaalplan serve --addr=:9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.ensurePlanner(cmd.Context(), modeServer)
			if err != nil {
				return err
			}
			log, err := a.logger(modeServer)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(p, a.registry, log).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
