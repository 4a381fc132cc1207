package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/sciencedock/config"
	"github.com/jonwraymond/sciencedock/dispatch"
	"github.com/jonwraymond/sciencedock/observability"
	"github.com/jonwraymond/sciencedock/registry"

	_ "github.com/jonwraymond/sciencedock/tasks/transform"
)

var rootCmd = &cobra.Command{
	Use:   "sciencedock [task] [flags]",
	Short: "Describe and run sciencedock tasks",
	Long: `With no arguments, prints the JSON document of every task.
With a task identifier, runs that task with the remaining arguments.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runDispatch,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// The dispatcher already reported unknown tasks.
		if !errors.Is(err, dispatch.ErrTaskNotFound) {
			fmt.Fprintf(os.Stderr, "sciencedock: %v\n", err)
		}
		os.Exit(1)
	}
}

func runDispatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup("")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pull := cfg.PullImage
	d, err := dispatch.New(registry.Default, dispatch.Options{
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Logger:      observability.NewTaskLogger(logger),
		PullImage:   &pull,
		DockerImage: cfg.DockerImage,
	})
	if err != nil {
		return err
	}
	if args == nil {
		args = []string{}
	}
	return d.Run(cmd.Context(), args)
}

// setup loads configuration and builds the logger.
func setup(path string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}
	return cfg, logger, nil
}
