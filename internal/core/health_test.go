package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"holocene/internal/db"
)

func TestHandleHealth_AllConfiguredHealthy(t *testing.T) {
	stores := &fakeStores{statuses: []db.StoreStatus{
		{Store: db.StoreHolocene, Configured: true, Healthy: true},
		{Store: db.StoreQR, Configured: true, Healthy: true},
		{Store: db.StoreAltData, Configured: false},
	}}
	srv := newTestServer(t, stores, nil)

	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %q", resp.Status)
	}
	if len(resp.Stores) != 3 {
		t.Errorf("expected 3 stores, got %d", len(resp.Stores))
	}
	if stores.pinged != 1 {
		t.Errorf("expected one ping fan-out, got %d", stores.pinged)
	}
}

func TestHandleHealth_ConfiguredStoreDown(t *testing.T) {
	stores := &fakeStores{statuses: []db.StoreStatus{
		{Store: db.StoreHolocene, Configured: true, Healthy: true},
		{Store: db.StoreMIK, Configured: true, Healthy: false, Error: "login failed"},
	}}
	srv := newTestServer(t, stores, nil)

	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("expected unhealthy, got %q", resp.Status)
	}
	if resp.Stores[1].Error != "login failed" {
		t.Errorf("expected store error to be reported, got %q", resp.Stores[1].Error)
	}
}

func TestHandleHealth_NothingConfigured(t *testing.T) {
	srv := newTestServer(t, &fakeStores{}, nil)

	rec := httptest.NewRecorder()
	srv.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}
