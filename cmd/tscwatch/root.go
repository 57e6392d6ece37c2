package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tscwatch/pkg/config"
	"github.com/walteh/tscwatch/pkg/operation"
	"github.com/walteh/tscwatch/pkg/status"
	"github.com/walteh/tscwatch/pkg/transform"
)

var (
	// Flags
	configFile string
	debug      bool
	jobs       int
	noWatch    bool
	swcBin     string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tscwatch <directory>",
		Short: "compile a TypeScript tree and recompile files as they change",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (default "+config.DefaultPath+")")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", operation.DefaultJobs(), "max concurrent compiles (0 = unbounded)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "exit after the initial compilation")
	cmd.Flags().StringVar(&swcBin, "swc", "", "swc binary to invoke (default \"swc\" from PATH)")

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return log
}

func run(cmd *cobra.Command, args []string) error {
	logger := setupLogging()

	// Usage errors are already handled by cobra; from here on, errors are
	// startup failures and we own the reporting.
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	root := args[0]
	if _, err := os.Stat(root); err != nil {
		return errors.Errorf("opening root directory: %w", err)
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	reporter := status.NewReporter(ctx, true)
	opts := operation.Options{
		Root:        root,
		Config:      cfg,
		Transformer: transform.NewSWC(swcBin),
		Reporter:    reporter,
		Jobs:        jobs,
	}

	if noWatch {
		op, err := operation.New(opts)
		if err != nil {
			return err
		}
		_, err = op.Compile(ctx)
		return err
	}

	return operation.Run(ctx, opts)
}
