package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klabast/wb-services/payday-calendar/internal/app"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the payday API over HTTP",
		Example: "payday-calendar serve --addr :8080",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.HTTP.Addr = addr
			}

			auth, err := app.LoadAuth(cfg.AuthFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.NewServer(cfg, opts.store(), auth).ListenAndServe(ctx)
		},
	}

	c.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides HTTP_ADDR)")
	return c
}
