// Package main provides recruitctl, the command-line front end for resume
// scoring and fairness evaluation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/bias-aware-recruitment/internal/app"
	"alfredoptarigan/bias-aware-recruitment/internal/config"
	"alfredoptarigan/bias-aware-recruitment/internal/logger"
)

type rootOptions struct {
	debug bool
	json  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "recruitctl",
		Short:         "Bias-aware resume scoring and fairness evaluation",
		Long:          "recruitctl scores resume PDFs against a target role and company culture, and evaluates prediction batches for group disparities.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Emit logs as JSON")

	cmd.AddCommand(newScoreCmd(opts))
	cmd.AddCommand(newFairnessCmd(opts))

	return cmd
}

// setup loads config, applying the logging flags on top of the environment.
func (o *rootOptions) setup(cmd *cobra.Command) (*app.App, *zap.Logger, error) {
	cfg := config.Load()
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = o.debug
	}
	if cmd.Flags().Changed("json") {
		cfg.Log.JSON = o.json
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	components, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return components, log, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
