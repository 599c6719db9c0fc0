// Package handlers maps HTTP requests onto the Holocene repositories.
//
// Each handler declares the slice of repository methods it needs as a local
// interface so tests can inject a stub. All routes are mounted under /v1 by
// Register.
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"holocene/internal/core"
	"holocene/internal/types"
)

func queryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// queryList splits a comma-separated parameter, dropping blanks.
func queryList(r *http.Request, name string) []string {
	raw := queryString(r, name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// queryInt64 parses an optional integer parameter; absent yields zero.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := queryString(r, name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidNumber(name, raw, err)
	}
	return n, nil
}

// queryInt64List parses a comma-separated list of integers.
func queryInt64List(r *http.Request, name string) ([]int64, error) {
	parts := queryList(r, name)
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, invalidNumber(name, p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := queryString(r, name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidFormat,
			name+" must be true or false", err, map[string]any{"field": name, "value": raw})
	}
	return b, nil
}

// queryDate parses an optional YYYY-MM-DD parameter as a UTC date.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := queryString(r, name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(core.BusDateLayout, raw, time.UTC)
	if err != nil {
		return nil, types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidDate,
			name+" must be a date in YYYY-MM-DD form", err, map[string]any{"field": name, "value": raw})
	}
	return &t, nil
}

// queryDateOr parses an optional date, falling back to def when absent.
func queryDateOr(r *http.Request, name string, def time.Time) (time.Time, error) {
	t, err := queryDate(r, name)
	if err != nil || t == nil {
		return def, err
	}
	return *t, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidNumber,
			name+" must be a positive integer", err, map[string]any{"field": name, "value": raw})
	}
	return n, nil
}

func requireParam(name, value string) error {
	if value == "" {
		return types.NewAppErrorWithDetails(types.ErrCodeValidationMissingField,
			name+" query parameter is required", nil, map[string]any{"field": name})
	}
	return nil
}

func invalidNumber(name, raw string, err error) error {
	return types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidNumber,
		name+" must be an integer", err, map[string]any{"field": name, "value": raw})
}

// username returns the explicit ?username= filter or, failing that, the
// portal caller from the request context.
func username(r *http.Request) string {
	if u := queryString(r, "username"); u != "" {
		return u
	}
	return types.GetCaller(r.Context())
}

func writeList[T any](w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.List(w, r, items)
}

func writeOne(w http.ResponseWriter, r *http.Request, item any, err error) {
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.OK(w, r, item)
}
