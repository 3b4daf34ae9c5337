package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/haloshell/haloshell/internal/adapters/sim"
	"github.com/haloshell/haloshell/internal/domain/orchestrator"
	"github.com/haloshell/haloshell/internal/infrastructure/config"
	"github.com/haloshell/haloshell/internal/infrastructure/logging"
	"github.com/haloshell/haloshell/internal/infrastructure/monitoring"
	"github.com/haloshell/haloshell/internal/registration"
	"github.com/haloshell/haloshell/internal/supervisor"
)

var logLevel string

func main() {
	args, panicRequested := extractPanicSwitch(os.Args[1:])

	root := &cobra.Command{
		Use:           "shell",
		Short:         "Desktop shell core: window tracking, workspaces, tray, hotkeys",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), panicRequested)
		},
	}
	root.Flags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	root.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "shell:", err)
		os.Exit(1)
	}
}

// extractPanicSwitch strips the recovery switch from the argument list.
// The switch is recognized with -, --, and / prefixes and wins over any
// other flag.
func extractPanicSwitch(args []string) ([]string, bool) {
	out := args[:0:0]
	requested := false
	for _, arg := range args {
		switch arg {
		case "panic", "-panic", "--panic", "/panic":
			requested = true
		default:
			out = append(out, arg)
		}
	}
	return out, requested
}

func run(ctx context.Context, panicRequested bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics := monitoring.NewMetrics()

	var reg registration.Store
	if cfg.DangerousOpsDisabled() || cfg.Shell.RegistrationPath == "" {
		reg = registration.NewDisabled()
	} else {
		reg = registration.NewFileStore(cfg.Shell.RegistrationPath)
	}

	launcher := sim.NewLauncher(!cfg.DangerousOpsDisabled(), logger.Named("launcher"))
	orch := orchestrator.New(cfg, logger.Named("orchestrator"), nil).WithMetrics(metrics)
	sup := supervisor.New(cfg, logger.Named("supervisor"), orch, reg, launcher).WithMetrics(metrics)

	return sup.Run(ctx, panicRequested)
}
