package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"appointment-scheduler/internal/app"
	"appointment-scheduler/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduler over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := opts.newScheduler()
			if err != nil {
				return err
			}
			if opts.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			a := app.New(sched, opts.logger)
			router := server.NewRouter(a, server.RouterConfig{
				Auth:              opts.cfg.Auth(),
				MaxRequestsPerMin: opts.cfg.MaxRequestsPerMin,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, ":"+opts.cfg.AppPort, router, opts.logger)
		},
	}

	cmd.Flags().String("port", "8080", "HTTP listen port (or APP_PORT env)")
	_ = opts.v.BindPFlag("APP_PORT", cmd.Flags().Lookup("port"))

	return cmd
}
