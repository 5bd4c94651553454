package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"appointment-scheduler/internal/app"
	"appointment-scheduler/internal/config"
	"appointment-scheduler/internal/logging"
)

// rootOptions is shared by every subcommand; it is filled in by the root's
// PersistentPreRunE once flags have been parsed.
type rootOptions struct {
	configFile string
	v          *viper.Viper

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd creates the root cobra command for the scheduler.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	root := &cobra.Command{
		Use:   "scheduler",
		Short: "In-memory appointment scheduler",
		Long:  "scheduler books appointments inside a working-hours window, rejects overlaps and suggests free slots.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.v, opts.configFile)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.IsProduction())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	hours := app.DefaultWorkingHours()
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default ./config.yaml or ./config/config.yaml if present)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("env", "development", "Environment (development, production)")
	flags.Int("work-start", hours.StartHour, "First hour appointments may start (0-22)")
	flags.Int("work-end", hours.EndHour, "Hour the working window closes (1-23)")

	_ = opts.v.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))
	_ = opts.v.BindPFlag("ENV", flags.Lookup("env"))
	_ = opts.v.BindPFlag("WORK_START_HOUR", flags.Lookup("work-start"))
	_ = opts.v.BindPFlag("WORK_END_HOUR", flags.Lookup("work-end"))

	root.AddCommand(
		newServeCmd(opts),
		newDemoCmd(opts),
	)

	return root
}

func (o *rootOptions) newScheduler() (*app.Scheduler, error) {
	return app.NewScheduler(o.cfg.WorkingHours(), app.WithLogger(o.logger.Named("scheduler")))
}
