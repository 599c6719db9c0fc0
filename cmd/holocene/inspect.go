package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"holocene/internal/config"
	"holocene/internal/db"
)

func newPingCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Connect to every configured store and report its health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			stores, err := db.OpenStores(cmd.Context(), a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer stores.Close()

			statuses := stores.Ping(cmd.Context())
			if err := encode(a.out, output, statuses); err != nil {
				return err
			}
			for _, s := range statuses {
				if s.Configured && !s.Healthy {
					return fmt.Errorf("store %s is unhealthy", s.Store)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: json or yaml")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return encode(a.out, output, a.cfg)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: json or yaml")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := config.NewBuildInfo()
			_, err := fmt.Fprintf(a.out, "holocene %s (commit %s, built %s)\n", b.Version, b.Commit, b.BuildTime)
			return err
		},
	}
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
