package main

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/spf13/pflag"

	"holocene/internal/db"
)

// querySpec selects rows from one store for the query and export commands.
// SQL Server stores take a procedure or SQL text with named parameters;
// Postgres stores take SQL text with positional arguments.
type querySpec struct {
	store  string
	proc   string
	sql    string
	params []string
	args   []string
}

func (q *querySpec) bind(fs *pflag.FlagSet) {
	fs.StringVar(&q.store, "store", db.StoreHolocene, "store to query: holocene, mik, qr, qr_reports or altdata")
	fs.StringVar(&q.proc, "proc", "", "stored procedure to execute (SQL Server stores)")
	fs.StringVar(&q.sql, "sql", "", "parameterized SQL text to run")
	fs.StringArrayVarP(&q.params, "param", "p", nil, "named parameter Name=Value (SQL Server stores, repeatable)")
	fs.StringArrayVar(&q.args, "arg", nil, "positional argument for $1, $2, ... (Postgres stores, repeatable)")
}

func isPostgresStore(name string) bool {
	switch name {
	case db.StoreQR, db.StoreQRReports, db.StoreAltData:
		return true
	}
	return false
}

func (q querySpec) validate() error {
	switch q.store {
	case db.StoreHolocene, db.StoreMIK, db.StoreQR, db.StoreQRReports, db.StoreAltData:
	default:
		return fmt.Errorf("unknown store %q", q.store)
	}
	if (q.proc == "") == (q.sql == "") {
		return fmt.Errorf("exactly one of --proc or --sql is required")
	}
	if isPostgresStore(q.store) {
		if q.proc != "" {
			return fmt.Errorf("store %s does not support stored procedures", q.store)
		}
		if len(q.params) > 0 {
			return fmt.Errorf("store %s takes --arg, not --param", q.store)
		}
		return nil
	}
	if len(q.args) > 0 {
		return fmt.Errorf("store %s takes --param, not --arg", q.store)
	}
	return nil
}

// parseParams turns Name=Value pairs into named input parameters. A leading
// "@" on the name is accepted.
func parseParams(raw []string) (db.Params, error) {
	var params db.Params
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || strings.TrimPrefix(name, "@") == "" {
			return nil, fmt.Errorf("parameter %q must be Name=Value", kv)
		}
		params = params.Add(name, value)
	}
	return params, nil
}

// rows streams the selected result set.
func (q querySpec) rows(ctx context.Context, stores *db.Stores) (iter.Seq2[db.Row, error], error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	if isPostgresStore(q.store) {
		var pg *db.PGExecutor
		switch q.store {
		case db.StoreQR:
			pg = stores.QR
		case db.StoreQRReports:
			pg = stores.QRReports
		default:
			pg = stores.AltData
		}
		args := make([]any, len(q.args))
		for i, a := range q.args {
			args[i] = a
		}
		return pg.Stream(ctx, q.sql, args...), nil
	}

	params, err := parseParams(q.params)
	if err != nil {
		return nil, err
	}
	exec := stores.Holocene
	if q.store == db.StoreMIK {
		exec = stores.MIK
	}
	cmd := db.Text(q.sql)
	if q.proc != "" {
		cmd = db.Proc(q.proc)
	}
	return exec.Stream(ctx, cmd, params), nil
}
