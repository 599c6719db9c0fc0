package db

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// --- Mock DBTX (Postgres) ---

type mockDBTX struct {
	mock.Mock
}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDBTX) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if r := args.Get(0); r != nil {
		return r.(pgx.Rows), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// --- Mock Row ---

type mockRow struct {
	scanErr error
	scanFn  func(dest ...any) error
}

func (r *mockRow) Scan(dest ...any) error {
	if r.scanFn != nil {
		return r.scanFn(dest...)
	}
	return r.scanErr
}

// --- Fake Rows ---

// fakeRows implements pgx.Rows over named columns so struct mapping by name
// can be exercised without a server.
type fakeRows struct {
	columns []string
	data    [][]any
	idx     int
	closed  bool
	err     error
}

func newFakeRows(columns []string, data ...[]any) *fakeRows {
	return &fakeRows{columns: columns, data: data, idx: -1}
}

func (r *fakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.idx]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		if err := assignValue(d, row[i]); err != nil {
			return fmt.Errorf("column %s: %w", r.columns[i], err)
		}
	}
	return nil
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		out[i] = pgconn.FieldDescription{Name: c}
	}
	return out
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Values() ([]any, error)        { return r.data[r.idx], nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

// assignValue copies src into dest the way a driver would: NULL zeroes the
// target, pointer targets are allocated, and sql.Scanner targets scan.
func assignValue(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination %T is not a pointer", dest)
	}
	target := dv.Elem()
	if src == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	if s, ok := dest.(sql.Scanner); ok {
		return s.Scan(src)
	}
	if target.Kind() == reflect.Pointer {
		p := reflect.New(target.Type().Elem())
		if err := assignValue(p.Interface(), src); err != nil {
			return err
		}
		target.Set(p)
		return nil
	}
	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(target.Type()):
		target.Set(sv)
	case sv.Kind() != reflect.String && sv.Type().ConvertibleTo(target.Type()):
		target.Set(sv.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
	return nil
}

func newTestPG(db DBTX) *PGExecutor {
	return NewPGExecutor("test_pg", db, 0, zerolog.Nop())
}

// --- Mock Executor (SQL Server) ---

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Query(ctx context.Context, cmd Command, params Params) ([]Row, error) {
	args := m.Called(ctx, cmd, params)
	rows, _ := args.Get(0).([]Row)
	return rows, args.Error(1)
}

func (m *mockExecutor) Scalar(ctx context.Context, cmd Command, params Params) (any, error) {
	args := m.Called(ctx, cmd, params)
	return args.Get(0), args.Error(1)
}

func (m *mockExecutor) Exec(ctx context.Context, cmd Command, params Params) (ExecResult, error) {
	args := m.Called(ctx, cmd, params)
	return args.Get(0).(ExecResult), args.Error(1)
}

// InTx runs fn against the mock itself; rollback is not simulated.
func (m *mockExecutor) InTx(ctx context.Context, fn func(tx Executor) error) error {
	return fn(m)
}

// hasParams matches a Params list by exact parameter names, in order.
func hasParams(names ...string) any {
	return mock.MatchedBy(func(p Params) bool {
		got := p.Names()
		if len(got) != len(names) {
			return false
		}
		for i := range names {
			if got[i] != names[i] {
				return false
			}
		}
		return true
	})
}

func paramValue(p Params, name string) any {
	param, ok := p.Get(name)
	if !ok {
		return nil
	}
	return param.Value
}
