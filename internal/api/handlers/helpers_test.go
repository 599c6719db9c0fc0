package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"holocene/internal/core"
	"holocene/internal/types"
)

func testValidator() *core.Validator {
	return core.NewValidator(zerolog.Nop())
}

func mount(prefix string, routes func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Route(prefix, routes)
	return r
}

type requestOpt func(*http.Request) *http.Request

func asCaller(user string) requestOpt {
	return func(r *http.Request) *http.Request {
		return r.WithContext(types.WithCaller(r.Context(), user))
	}
}

func do(t *testing.T, h http.Handler, method, target, body string, opts ...requestOpt) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	for _, opt := range opts {
		req = opt(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type listEnvelope[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func decodeList[T any](t *testing.T, rec *httptest.ResponseRecorder) listEnvelope[T] {
	t.Helper()
	var out listEnvelope[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func decodeOne[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) core.ErrorDetail {
	t.Helper()
	var out core.APIErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out.Error
}
