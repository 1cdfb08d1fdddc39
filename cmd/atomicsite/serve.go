package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/atomicsite"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `serve starts the HTTP server. Chronicles come from the SQLite database
when database_path is set, otherwise from the entries compiled into the binary.
The catalog is read once at startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			app := atomicsite.New(cfg)
			defer app.Close()
			if err := app.Init(); err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(sigCtx)
			g.Go(app.Start)
			g.Go(func() error {
				<-ctx.Done()
				app.Echo.Logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return app.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides addr from config)")
	return cmd
}
