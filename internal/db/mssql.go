package db

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	mssql "github.com/microsoft/go-mssqldb"
	"github.com/rs/zerolog"

	"holocene/internal/types"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SQLExecutor runs commands against one SQL Server store. A nil database
// handle marks an optional store that was not configured; every call then
// fails with internal_store_not_configured.
type SQLExecutor struct {
	store   string
	db      *sql.DB
	conn    queryer
	timeout time.Duration
	logger  zerolog.Logger
}

// NewSQLExecutor wraps an open *sql.DB. timeout bounds every command; zero
// means the caller's context alone decides.
func NewSQLExecutor(store string, db *sql.DB, timeout time.Duration, logger zerolog.Logger) *SQLExecutor {
	e := &SQLExecutor{
		store:   store,
		db:      db,
		timeout: timeout,
		logger:  logger.With().Str("store", store).Logger(),
	}
	if db != nil {
		e.conn = db
	}
	return e
}

// Store returns the logical store name.
func (e *SQLExecutor) Store() string { return e.store }

// Configured reports whether the executor has a live connection pool.
func (e *SQLExecutor) Configured() bool { return e.conn != nil }

func (e *SQLExecutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *SQLExecutor) prepare(cmd Command, params Params) ([]any, error) {
	if e.conn == nil {
		return nil, notConfigured(e.store)
	}
	if err := cmd.validate(); err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeInternalDB, "invalid command", err, map[string]any{"store": e.store})
	}
	args, err := params.args()
	if err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeInternalDB, "invalid parameters", err, map[string]any{"store": e.store})
	}
	return args, nil
}

func (e *SQLExecutor) logCall(ctx context.Context, callID string, cmd Command, params Params, start time.Time, rows int64, err error) {
	ev := e.logger.Debug()
	if err != nil {
		ev = e.logger.Warn().Err(err)
	}
	if reqID := types.GetRequestID(ctx); reqID != "" {
		ev = ev.Str("request_id", reqID)
	}
	ev.Str("call_id", callID).
		Stringer("command", cmd).
		Strs("params", params.Names()).
		Dur("elapsed", time.Since(start)).
		Int64("rows", rows).
		Msg("sql command")
}

// Stream runs the command and yields rows as they arrive. Iteration stops at
// the first error, which is yielded once with a nil row. The connection is
// released when the loop ends, including on early break.
func (e *SQLExecutor) Stream(ctx context.Context, cmd Command, params Params) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		callID := uuid.NewString()
		start := time.Now()
		var count int64
		var callErr error
		defer func() { e.logCall(ctx, callID, cmd, params, start, count, callErr) }()

		args, err := e.prepare(cmd, params)
		if err != nil {
			callErr = err
			yield(nil, err)
			return
		}

		qctx, cancel := e.withTimeout(ctx)
		defer cancel()

		rows, err := e.conn.QueryContext(qctx, cmd.Text, args...)
		if err != nil {
			callErr = classifyError(e.store, err)
			yield(nil, callErr)
			return
		}
		defer rows.Close()

		scanner, err := newRowScanner(rows)
		if err != nil {
			callErr = classifyError(e.store, err)
			yield(nil, callErr)
			return
		}
		for rows.Next() {
			row, err := scanner.scan(rows)
			if err != nil {
				if isDriverError(err) {
					callErr = classifyError(e.store, err)
				} else {
					callErr = conversionError("row", err)
				}
				yield(nil, callErr)
				return
			}
			count++
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			callErr = classifyError(e.store, err)
			yield(nil, callErr)
		}
	}
}

// Query materializes the first result set.
func (e *SQLExecutor) Query(ctx context.Context, cmd Command, params Params) ([]Row, error) {
	out := make([]Row, 0)
	for row, err := range e.Stream(ctx, cmd, params) {
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// Scalar returns the first column of the first row. Remaining rows are
// drained so output parameters are populated before it returns.
func (e *SQLExecutor) Scalar(ctx context.Context, cmd Command, params Params) (any, error) {
	callID := uuid.NewString()
	start := time.Now()
	var count int64
	var callErr error
	defer func() { e.logCall(ctx, callID, cmd, params, start, count, callErr) }()

	args, err := e.prepare(cmd, params)
	if err != nil {
		callErr = err
		return nil, err
	}

	qctx, cancel := e.withTimeout(ctx)
	defer cancel()

	rows, err := e.conn.QueryContext(qctx, cmd.Text, args...)
	if err != nil {
		callErr = classifyError(e.store, err)
		return nil, callErr
	}
	defer rows.Close()

	var first any
	for rows.Next() {
		count++
		if count > 1 {
			continue
		}
		cols, err := rows.Columns()
		if err != nil {
			callErr = classifyError(e.store, err)
			return nil, callErr
		}
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			callErr = classifyError(e.store, err)
			return nil, callErr
		}
		if len(values) > 0 {
			first = values[0]
		}
	}
	if err := rows.Err(); err != nil {
		callErr = classifyError(e.store, err)
		return nil, callErr
	}
	if err := rows.Close(); err != nil {
		callErr = classifyError(e.store, err)
		return nil, callErr
	}
	if b, ok := first.([]byte); ok {
		first = string(b)
	}
	return first, nil
}

// Exec runs the command for its side effects. For procedures the RETURN
// status is captured alongside the affected-row count.
func (e *SQLExecutor) Exec(ctx context.Context, cmd Command, params Params) (ExecResult, error) {
	callID := uuid.NewString()
	start := time.Now()
	var res ExecResult
	var callErr error
	defer func() { e.logCall(ctx, callID, cmd, params, start, res.RowsAffected, callErr) }()

	args, err := e.prepare(cmd, params)
	if err != nil {
		callErr = err
		return res, err
	}
	var status mssql.ReturnStatus
	if cmd.Kind == KindProcedure {
		args = append(args, &status)
	}

	qctx, cancel := e.withTimeout(ctx)
	defer cancel()

	result, err := e.conn.ExecContext(qctx, cmd.Text, args...)
	if err != nil {
		callErr = classifyError(e.store, err)
		return res, callErr
	}
	if n, err := result.RowsAffected(); err == nil {
		res.RowsAffected = n
	}
	res.ReturnStatus = int32(status)
	return res, nil
}

// InTx runs fn inside a transaction that lives as long as ctx. The command
// timeout applies to each command inside it, not to the transaction.
func (e *SQLExecutor) InTx(ctx context.Context, fn func(tx Executor) error) error {
	if e.db == nil {
		return notConfigured(e.store)
	}
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return classifyError(e.store, err)
	}
	txExec := &SQLExecutor{store: e.store, conn: tx, timeout: e.timeout, logger: e.logger}
	if err := fn(txExec); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			e.logger.Error().Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return classifyError(e.store, err)
	}
	return nil
}

// Ping verifies the store is reachable.
func (e *SQLExecutor) Ping(ctx context.Context) error {
	if e.db == nil {
		return notConfigured(e.store)
	}
	if err := e.db.PingContext(ctx); err != nil {
		return classifyError(e.store, err)
	}
	return nil
}

// Close releases the pool.
func (e *SQLExecutor) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

// OpenSQLServer opens and pings a SQL Server pool using the "sqlserver" driver.
func OpenSQLServer(ctx context.Context, store string, dsn types.SecretString, opts PoolOptions, logger zerolog.Logger) (*SQLExecutor, error) {
	db, err := sql.Open("sqlserver", dsn.Unmask())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", store, err)
	}
	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(opts.MaxConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	pctx, cancel := context.WithTimeout(ctx, opts.pingTimeout())
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, classifyError(store, err)
	}
	return NewSQLExecutor(store, db, opts.CommandTimeout, logger), nil
}
