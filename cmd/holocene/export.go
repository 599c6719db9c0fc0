package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"holocene/internal/db"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		spec querySpec
		path string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Stream a result set to a JSON-lines file",
		Long: `Streams every row of one command to a JSON-lines file. The file suffix
picks the compression: .gz for gzip, .zst for zstd, anything else is plain.`,
		Example: `  holocene export --proc research.GetIdeaAbstracts -p Symbol=AAPL --out idea-abstracts.jsonl.zst`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := spec.validate(); err != nil {
				return err
			}
			if err := a.load(); err != nil {
				return err
			}
			stores, err := db.OpenStores(cmd.Context(), a.cfg.Database, a.logger)
			if err != nil {
				return err
			}
			defer stores.Close()
			return a.export(cmd.Context(), stores, spec, path)
		},
	}
	spec.bind(cmd.Flags())
	cmd.Flags().StringVar(&path, "out", "", "destination file (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (a *app) export(ctx context.Context, stores *db.Stores, spec querySpec, path string) error {
	rows, err := spec.rows(ctx, stores)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	start := time.Now()
	n, err := writeCompressed(f, path, func(w io.Writer) (int64, error) {
		return writeJSONLines(w, rows)
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("exporting to %s: %w", path, err)
	}

	a.logger.Info().
		Str("store", spec.store).
		Str("file", path).
		Int64("rows", n).
		Dur("elapsed", time.Since(start)).
		Msg("export complete")
	return nil
}

// compressor wraps w according to the suffix of path.
func compressor(w io.Writer, path string) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	case ".zst", ".zstd":
		return zstd.NewWriter(w)
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeCompressed runs write through the compressor chosen for path and
// flushes it.
func writeCompressed(w io.Writer, path string, write func(io.Writer) (int64, error)) (int64, error) {
	cw, err := compressor(w, path)
	if err != nil {
		return 0, err
	}
	n, err := write(cw)
	if cerr := cw.Close(); err == nil {
		err = cerr
	}
	return n, err
}
