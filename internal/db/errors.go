package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"

	"holocene/internal/types"
)

// SQL Server error numbers that mean the server could not be used at all.
const (
	mssqlLoginFailed       = 18456
	mssqlDatabaseNotOnline = 4060
)

// classifyError converts a driver failure into an AppError carrying the store
// name. AppErrors pass through untouched.
func classifyError(store string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	details := map[string]any{"store": store}

	switch {
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return types.NewAppErrorWithDetails(types.ErrCodeUpstreamDatabaseTimeout, "database command timed out", err, details)
	case errors.Is(err, context.Canceled):
		return types.NewAppErrorWithDetails(types.ErrCodeUpstreamDatabaseTimeout, "database command canceled", err, details)
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		details["number"] = msErr.Number
		if msErr.ProcName != "" {
			details["procedure"] = msErr.ProcName
		}
		if msErr.Number == mssqlLoginFailed || msErr.Number == mssqlDatabaseNotOnline {
			return types.NewAppErrorWithDetails(types.ErrCodeUpstreamDatabase, "database unavailable", err, details)
		}
		return types.NewAppErrorWithDetails(types.ErrCodeInternalDB, "database command failed", err, details)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details["sqlstate"] = pgErr.Code
		switch {
		case pgErr.Code == "57014":
			return types.NewAppErrorWithDetails(types.ErrCodeUpstreamDatabaseTimeout, "database command canceled", err, details)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "28"), pgErr.Code == "57P01", pgErr.Code == "57P03":
			return types.NewAppErrorWithDetails(types.ErrCodeUpstreamDatabase, "database unavailable", err, details)
		}
		return types.NewAppErrorWithDetails(types.ErrCodeInternalDB, "database command failed", err, details)
	}

	if isConnectivity(err) {
		return types.NewAppErrorWithDetails(types.ErrCodeUpstreamDatabase, "database unavailable", err, details)
	}
	return types.NewAppErrorWithDetails(types.ErrCodeInternalDB, "database command failed", err, details)
}

func isConnectivity(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "closed pool") || strings.Contains(msg, "database is closed")
}

// isDriverError reports whether err came from the server or the connection
// rather than from mapping values onto Go types.
func isDriverError(err error) bool {
	var msErr mssql.Error
	var pgErr *pgconn.PgError
	return errors.As(err, &msErr) ||
		errors.As(err, &pgErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		isConnectivity(err)
}

// notConfigured is returned by executors for optional stores without a
// connection string.
func notConfigured(store string) error {
	return types.NewAppErrorWithDetails(
		types.ErrCodeInternalStoreNotConfigured,
		"store "+store+" is not configured",
		nil,
		map[string]any{"store": store},
	)
}

// opError tags err with the repository operation that produced it.
func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr.WithDetails(map[string]any{"operation": op})
	}
	return types.NewAppErrorWithDetails(types.ErrCodeInternalDB, op+" failed", err, map[string]any{"operation": op})
}

// validationError reports a bad caller-supplied argument.
func validationError(code types.ErrorCode, op, field, msg string, err error) error {
	return types.NewAppErrorWithDetails(code, msg, err, map[string]any{
		"operation": op,
		"field":     field,
	})
}
