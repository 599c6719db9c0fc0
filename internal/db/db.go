// Package db provides the data-access layer for the Holocene research portal.
//
// SQL Server stores (Holocene, MIK) are reached through SQLExecutor, which runs
// stored procedures and inline queries with named parameters and returns
// generic rows that repositories decode into typed records. Postgres stores
// (QR, QRReports, AltData) are reached through PGExecutor over the DBTX
// interface, which is satisfied by both *pgxpool.Pool and pgx.Tx.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the minimal interface shared by *pgxpool.Pool and pgx.Tx.
// Postgres repositories accept this so the same code works inside or outside a
// transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Executor runs one command against a SQL Server store. Every call opens (or
// borrows) a connection, executes exactly one command and releases the
// connection before returning.
type Executor interface {
	// Query runs the command and materializes every row of the first result set.
	Query(ctx context.Context, cmd Command, params Params) ([]Row, error)
	// Scalar returns the first column of the first row, or nil when the
	// command produced no rows.
	Scalar(ctx context.Context, cmd Command, params Params) (any, error)
	// Exec runs the command for its side effects.
	Exec(ctx context.Context, cmd Command, params Params) (ExecResult, error)
}

// TxExecutor is an Executor that can group several commands in one
// transaction. fn receives an Executor bound to the transaction; returning an
// error rolls everything back.
type TxExecutor interface {
	Executor
	InTx(ctx context.Context, fn func(tx Executor) error) error
}

// ExecResult reports the outcome of Exec.
type ExecResult struct {
	RowsAffected int64
	// ReturnStatus is the value of the procedure's RETURN statement. It is
	// always zero for inline text commands.
	ReturnStatus int32
}
