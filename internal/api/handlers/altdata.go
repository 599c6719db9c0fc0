package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

type AltDataService interface {
	GetDashboardDetails(ctx context.Context) ([]types.AltDataDashboardDetail, error)
	GetBreakdownView(ctx context.Context, ticker string) ([]types.AltDataBreakdown, error)
	GetFilterView(ctx context.Context, breakdownID int64) ([]types.AltDataFilter, error)
	GetPeriodTypeStatView(ctx context.Context, breakdownID int64) ([]types.AltDataPeriodTypeStat, error)
	GetRecordView(ctx context.Context, f types.RecordViewFilter) ([]types.AltDataRecord, error)
	GetStatView(ctx context.Context) ([]types.AltDataStat, error)
	InsertDashQuery(ctx context.Context, q types.AltDataDashQuery) (int64, error)
}

// AltDataHandler serves the alternative-data catalog.
type AltDataHandler struct {
	service   AltDataService
	validator *core.Validator
	logger    zerolog.Logger
}

func NewAltDataHandler(svc AltDataService, val *core.Validator, logger zerolog.Logger) *AltDataHandler {
	return &AltDataHandler{service: svc, validator: val, logger: logger}
}

func (h *AltDataHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboards", h.HandleDashboards)
	r.Get("/breakdowns", h.HandleBreakdowns)
	r.Get("/breakdowns/{id}/filters", h.HandleFilters)
	r.Get("/breakdowns/{id}/period-stats", h.HandlePeriodStats)
	r.Get("/records", h.HandleRecords)
	r.Get("/stats", h.HandleStats)
	r.Post("/dash-queries", h.HandleInsertDashQuery)
}

func (h *AltDataHandler) HandleDashboards(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetDashboardDetails(r.Context())
	writeList(w, r, items, err)
}

func (h *AltDataHandler) HandleBreakdowns(w http.ResponseWriter, r *http.Request) {
	ticker := queryString(r, "ticker")
	if err := requireParam("ticker", ticker); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetBreakdownView(r.Context(), ticker)
	writeList(w, r, items, err)
}

func (h *AltDataHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetFilterView(r.Context(), id)
	writeList(w, r, items, err)
}

func (h *AltDataHandler) HandlePeriodStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetPeriodTypeStatView(r.Context(), id)
	writeList(w, r, items, err)
}

// HandleRecords handles GET /v1/altdata/records. Every id except filter_id
// is required; a missing filter_id matches all filters.
func (h *AltDataHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	var (
		f   types.RecordViewFilter
		err error
	)
	for _, p := range []struct {
		name string
		dst  *int64
	}{
		{"datasource_id", &f.DataSourceID},
		{"asset_id", &f.AssetID},
		{"metric_id", &f.MetricID},
		{"filter_id", &f.FilterID},
		{"stat_id", &f.StatID},
		{"period_type_id", &f.PeriodTypeID},
	} {
		if *p.dst, err = queryInt64(r, p.name); err != nil {
			core.Error(w, r, err)
			return
		}
	}
	if err := h.validator.ValidateStruct(f); err != nil {
		core.Error(w, r, err)
		return
	}

	items, err := h.service.GetRecordView(r.Context(), f)
	writeList(w, r, items, err)
}

func (h *AltDataHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetStatView(r.Context())
	writeList(w, r, items, err)
}

func (h *AltDataHandler) HandleInsertDashQuery(w http.ResponseWriter, r *http.Request) {
	var q types.AltDataDashQuery
	if err := core.DecodeJSON(w, r, &q); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(q); err != nil {
		core.Error(w, r, err)
		return
	}
	id, err := h.service.InsertDashQuery(r.Context(), q)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, r, http.StatusCreated, core.APIResponse{Data: map[string]int64{"dash_query_id": id}})
}
