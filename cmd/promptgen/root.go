package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"prompt-studio/internal/config"
)

type app struct {
	logLevel string
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "promptgen",
		Short:         "Compose product photography prompts from a product form",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default LOG_LEVEL or info)")

	root.AddCommand(
		newComposeCmd(a),
		newResolveCmd(a),
		newBatchCmd(a),
		newPreviewCmd(a),
		newCatalogCmd(a),
	)
	return root
}

// setupLogger logs JSON to stderr so stdout stays clean for command output.
func (a *app) setupLogger(cmd *cobra.Command) error {
	level := config.Config{LogLevel: a.logLevel}.SlogLevel()
	if a.logLevel == "" {
		if cfg, err := config.Load(); err == nil {
			level = cfg.SlogLevel()
		}
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}
