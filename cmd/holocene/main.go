// Package main is the holocene command-line tool.
//
// It loads configuration from the environment (and an optional .env file),
// opens the configured stores and exposes the data-access layer through a
// small set of subcommands: an HTTP server, ad-hoc queries, compressed
// exports, store health checks and configuration inspection.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"holocene/internal/config"
	"holocene/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// app carries state shared by every subcommand.
type app struct {
	out        io.Writer
	errOut     io.Writer
	secretsDir string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
}

// load resolves configuration and builds the process logger. Commands that
// never touch a store skip it.
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.LoadConfig(config.DefaultProvider(a.secretsDir))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.cfg = cfg
	a.logger = logging.WithService(logging.New(level, cfg.LogFormat, a.errOut), cfg.Service, cfg.Build.Version)
	return nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "holocene",
		Short:         "Holocene data-access layer",
		Long:          "Reads and writes the Holocene research, risk, portfolio and alt-data stores.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.secretsDir, "secrets-dir", "/run/secrets", "directory of mounted secret files for *_SECRET_REF lookups")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(
		newServeCmd(a),
		newQueryCmd(a),
		newExportCmd(a),
		newPingCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}
