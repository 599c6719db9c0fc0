package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"

	"holocene/internal/db"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		spec   querySpec
		output string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one command against a store and print the rows",
		Example: `  holocene query --proc research.GetIdeaAbstracts -p Symbol=AAPL
  holocene query --store altdata --sql 'SELECT * FROM stat WHERE stat_id = $1' --arg 5 -o yaml`,
		Args: cobra.NoArgs,
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

			rows, err := spec.rows(cmd.Context(), stores)
			if err != nil {
				return err
			}
			return writeRows(a.out, output, take(rows, limit))
		},
	}
	spec.bind(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, jsonl or yaml")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many rows (0 for all)")
	return cmd
}

// take stops the sequence after n rows; n <= 0 passes everything through.
func take(seq iter.Seq2[db.Row, error], n int) iter.Seq2[db.Row, error] {
	if n <= 0 {
		return seq
	}
	return func(yield func(db.Row, error) bool) {
		seen := 0
		for row, err := range seq {
			if !yield(row, err) || err != nil {
				return
			}
			seen++
			if seen >= n {
				return
			}
		}
	}
}

// writeRows renders rows in the requested format. jsonl writes as rows arrive;
// json and yaml collect the result set first.
func writeRows(w io.Writer, format string, rows iter.Seq2[db.Row, error]) error {
	switch format {
	case "jsonl":
		_, err := writeJSONLines(w, rows)
		return err
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	all := make([]db.Row, 0)
	for row, err := range rows {
		if err != nil {
			return err
		}
		all = append(all, row)
	}
	return encode(w, format, all)
}

// writeJSONLines writes one JSON object per row and returns the row count.
func writeJSONLines(w io.Writer, rows iter.Seq2[db.Row, error]) (int64, error) {
	enc := json.NewEncoder(w)
	var n int64
	for row, err := range rows {
		if err != nil {
			return n, err
		}
		if err := enc.Encode(row); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
