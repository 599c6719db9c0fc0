package db

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"holocene/internal/types"
)

// PGExecutor runs inline queries against one Postgres store. A nil DBTX marks
// an optional store that was not configured.
type PGExecutor struct {
	store   string
	db      DBTX
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPGExecutor wraps a pool or transaction.
func NewPGExecutor(store string, db DBTX, timeout time.Duration, logger zerolog.Logger) *PGExecutor {
	e := &PGExecutor{
		store:   store,
		db:      db,
		timeout: timeout,
		logger:  logger.With().Str("store", store).Logger(),
	}
	if pool, ok := db.(*pgxpool.Pool); ok {
		e.pool = pool
	}
	return e
}

// Store returns the logical store name.
func (e *PGExecutor) Store() string { return e.store }

// Configured reports whether the executor has a connection.
func (e *PGExecutor) Configured() bool { return e.db != nil }

func (e *PGExecutor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *PGExecutor) logCall(ctx context.Context, sql string, argc int, start time.Time, rows int, err error) {
	ev := e.logger.Debug()
	if err != nil {
		ev = e.logger.Warn().Err(err)
	}
	if reqID := types.GetRequestID(ctx); reqID != "" {
		ev = ev.Str("request_id", reqID)
	}
	ev.Str("call_id", uuid.NewString()).
		Str("command", firstLine(sql)).
		Int("args", argc).
		Dur("elapsed", time.Since(start)).
		Int("rows", rows).
		Msg("pg query")
}

// Ping verifies the store is reachable.
func (e *PGExecutor) Ping(ctx context.Context) error {
	if e.pool == nil {
		return notConfigured(e.store)
	}
	if err := e.pool.Ping(ctx); err != nil {
		return classifyError(e.store, err)
	}
	return nil
}

// Close releases the pool.
func (e *PGExecutor) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// collect runs sql and maps each row onto T by column name. Every selected
// column needs a matching db tag; fields with no column keep their zero value.
func collect[T any](ctx context.Context, e *PGExecutor, sql string, args ...any) ([]T, error) {
	if e == nil || e.db == nil {
		store := "postgres"
		if e != nil {
			store = e.store
		}
		return nil, notConfigured(store)
	}
	start := time.Now()
	qctx, cancel := e.withTimeout(ctx)
	defer cancel()

	rows, err := e.db.Query(qctx, sql, args...)
	if err != nil {
		err = classifyError(e.store, err)
		e.logCall(ctx, sql, len(args), start, 0, err)
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		if isDriverError(err) {
			err = classifyError(e.store, err)
		} else {
			err = conversionError(fmt.Sprintf("%T", *new(T)), err)
		}
		e.logCall(ctx, sql, len(args), start, 0, err)
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	e.logCall(ctx, sql, len(args), start, len(out), nil)
	return out, nil
}

// Stream runs an ad-hoc query and yields each row keyed by column name. UUID
// columns are rendered in canonical form. Iteration stops at the first error.
func (e *PGExecutor) Stream(ctx context.Context, sql string, args ...any) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		if e.db == nil {
			yield(nil, notConfigured(e.store))
			return
		}
		start := time.Now()
		count := 0
		var callErr error
		defer func() { e.logCall(ctx, sql, len(args), start, count, callErr) }()

		qctx, cancel := e.withTimeout(ctx)
		defer cancel()

		rows, err := e.db.Query(qctx, sql, args...)
		if err != nil {
			callErr = classifyError(e.store, err)
			yield(nil, callErr)
			return
		}
		defer rows.Close()

		fields := rows.FieldDescriptions()
		for rows.Next() {
			values, err := rows.Values()
			if err != nil {
				callErr = conversionError("row", err)
				yield(nil, callErr)
				return
			}
			row := make(Row, len(fields))
			for i, fd := range fields {
				v := values[i]
				if id, ok := v.([16]byte); ok {
					v = uuid.UUID(id).String()
				}
				row[fd.Name] = v
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

// queryRowScalar runs sql and scans the single returned column into T.
func queryRowScalar[T any](ctx context.Context, e *PGExecutor, sql string, args ...any) (T, error) {
	var out T
	if e == nil || e.db == nil {
		store := "postgres"
		if e != nil {
			store = e.store
		}
		return out, notConfigured(store)
	}
	start := time.Now()
	qctx, cancel := e.withTimeout(ctx)
	defer cancel()

	err := e.db.QueryRow(qctx, sql, args...).Scan(&out)
	if err != nil {
		err = classifyError(e.store, err)
		e.logCall(ctx, sql, len(args), start, 0, err)
		return out, err
	}
	e.logCall(ctx, sql, len(args), start, 1, nil)
	return out, nil
}

// OpenPostgres creates and pings a pgx pool. When trace is set every query is
// logged through pgx-zerolog at debug level.
func OpenPostgres(ctx context.Context, store string, dsn types.SecretString, opts PoolOptions, logger zerolog.Logger) (*PGExecutor, error) {
	cfg, err := pgxpool.ParseConfig(dsn.Unmask())
	if err != nil {
		return nil, fmt.Errorf("parse %s config: %w", store, err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = int32(opts.MaxConns)
	}
	if opts.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnMaxLifetime
	}
	if opts.Trace {
		cfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(logger.With().Str("store", store).Logger()),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s pool: %w", store, err)
	}

	pctx, cancel := context.WithTimeout(ctx, opts.pingTimeout())
	defer cancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, classifyError(store, err)
	}
	return NewPGExecutor(store, pool, opts.CommandTimeout, logger), nil
}
