package db

import (
	"context"
)

// queryList runs cmd and decodes every row into T. Zero rows yield an empty,
// non-nil slice.
func queryList[T any](ctx context.Context, exec Executor, op string, cmd Command, params Params) ([]T, error) {
	rows, err := exec.Query(ctx, cmd, params)
	if err != nil {
		return nil, opError(op, err)
	}
	out, err := DecodeRows[T](rows)
	if err != nil {
		return nil, opError(op, err)
	}
	return out, nil
}

// queryLast runs cmd and decodes the last row into T. Zero rows yield the
// zero record and no error.
func queryLast[T any](ctx context.Context, exec Executor, op string, cmd Command, params Params) (T, error) {
	var out T
	rows, err := exec.Query(ctx, cmd, params)
	if err != nil {
		return out, opError(op, err)
	}
	if len(rows) == 0 {
		return out, nil
	}
	out, err = DecodeRow[T](rows[len(rows)-1])
	if err != nil {
		return out, opError(op, err)
	}
	return out, nil
}

// scalarID runs cmd for the identifier it selects. When the command selects
// nothing the value left in fallback (typically an InOut destination) is
// returned instead.
func scalarID(ctx context.Context, exec Executor, op string, cmd Command, params Params, fallback *int64) (int64, error) {
	v, err := exec.Scalar(ctx, cmd, params)
	if err != nil {
		return 0, opError(op, err)
	}
	if v == nil {
		if fallback != nil {
			return *fallback, nil
		}
		return 0, nil
	}
	id, err := DecodeValue[int64](v)
	if err != nil {
		return 0, opError(op, err)
	}
	return id, nil
}

func execCmd(ctx context.Context, exec Executor, op string, cmd Command, params Params) (ExecResult, error) {
	res, err := exec.Exec(ctx, cmd, params)
	if err != nil {
		return res, opError(op, err)
	}
	return res, nil
}

// pgList is collect with the operation name attached to errors.
func pgList[T any](ctx context.Context, e *PGExecutor, op, sql string, args ...any) ([]T, error) {
	out, err := collect[T](ctx, e, sql, args...)
	if err != nil {
		return nil, opError(op, err)
	}
	return out, nil
}
