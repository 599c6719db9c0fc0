package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

type DashboardService interface {
	GetDashAssets(ctx context.Context) ([]types.DashAsset, error)
	GetDashAssetID(ctx context.Context, topic string) (int64, error)
	GetDashQuery(ctx context.Context, id int64) (types.DashQuery, error)
	GetDashQueries(ctx context.Context) ([]types.DashQuery, error)
	UpsertDashQuery(ctx context.Context, q types.DashQuery, username string) (int64, error)
	GetDashCharts(ctx context.Context) ([]types.DashChart, error)
	UpsertDashChart(ctx context.Context, id int64, title, aesthetic, username string) (int64, error)
	SetDashChartQueries(ctx context.Context, chartID int64, queryIDs []int64, username string) error
	UpsertDashView(ctx context.Context, v types.DashView, username string) (int64, error)
	GetDashViews(ctx context.Context, topic string) ([]types.DashViewAsset, error)
	GetDashViewsByAsset(ctx context.Context, assetID int64) ([]types.DashViewAsset, error)
	GetDashViewCache(ctx context.Context, viewID int64) ([]types.DashViewCache, error)
	GetDashViewCharts(ctx context.Context, viewID int64) ([]types.DashViewChart, error)
	GetDashChartQueries(ctx context.Context, chartID int64) ([]types.DashChartQuery, error)
	UpsertDashViewChart(ctx context.Context, viewID, chartID int64, displayOrder int, username string) (int64, error)
	UpdateDashViewChartSequence(ctx context.Context, viewChartID int64, displayOrder int, username string) error
	UpdateDashViewChartStatus(ctx context.Context, viewChartID int64, active bool, username string) error
	UpdateDashViewAssetStatus(ctx context.Context, viewAssetID int64, active bool, username string) error
	CloneDashView(ctx context.Context, viewID int64, topic, username string) error
}

type DashboardHandler struct {
	service   DashboardService
	validator *core.Validator
	logger    zerolog.Logger
}

func NewDashboardHandler(svc DashboardService, val *core.Validator, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{service: svc, validator: val, logger: logger}
}

// RegisterRoutes mounts /v1/dashboard. Writes are attributed to the portal
// caller.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/assets", h.HandleAssets)
	r.Get("/assets/id", h.HandleAssetID)
	r.Get("/queries", h.HandleQueries)
	r.Post("/queries", h.HandleUpsertQuery)
	r.Get("/queries/{id}", h.HandleQuery)
	r.Get("/charts", h.HandleCharts)
	r.Post("/charts", h.HandleUpsertChart)
	r.Put("/charts/{id}/queries", h.HandleSetChartQueries)
	r.Get("/assets/{id}/views", h.HandleViewsByAsset)
	r.Get("/charts/{id}/queries", h.HandleChartQueries)
	r.Get("/views", h.HandleViews)
	r.Post("/views", h.HandleUpsertView)
	r.Get("/views/{id}/charts", h.HandleViewCharts)
	r.Put("/views/{id}/charts", h.HandlePlaceChart)
	r.Get("/views/{id}/cache", h.HandleViewCache)
	r.Post("/views/{id}/clone", h.HandleCloneView)
	r.Patch("/view-charts/{id}", h.HandleUpdateViewChart)
	r.Patch("/view-assets/{id}", h.HandleUpdateViewAsset)
}

func (h *DashboardHandler) HandleAssets(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetDashAssets(r.Context())
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleAssetID(w http.ResponseWriter, r *http.Request) {
	topic := queryString(r, "topic")
	if err := requireParam("topic", topic); err != nil {
		core.Error(w, r, err)
		return
	}
	id, err := h.service.GetDashAssetID(r.Context(), topic)
	writeOne(w, r, map[string]int64{"dash_asset_id": id}, err)
}

func (h *DashboardHandler) HandleQueries(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetDashQueries(r.Context())
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetDashQuery(r.Context(), id)
	writeOne(w, r, item, err)
}

// HandleUpsertQuery handles POST /v1/dashboard/queries. A zero
// dash_query_id inserts and then requires query_name.
func (h *DashboardHandler) HandleUpsertQuery(w http.ResponseWriter, r *http.Request) {
	var q types.DashQuery
	if err := core.DecodeJSON(w, r, &q); err != nil {
		core.Error(w, r, err)
		return
	}
	if q.DashQueryID == 0 && q.QueryName == "" {
		core.Error(w, r, types.NewAppErrorWithDetails(types.ErrCodeValidationMissingField,
			"query_name is required for a new query", nil, map[string]any{"field": "query_name"}))
		return
	}

	id, err := h.service.UpsertDashQuery(r.Context(), q, types.GetCaller(r.Context()))
	writeOne(w, r, map[string]int64{"dash_query_id": id}, err)
}

func (h *DashboardHandler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetDashCharts(r.Context())
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleUpsertChart(w http.ResponseWriter, r *http.Request) {
	var c types.DashChart
	if err := core.DecodeJSON(w, r, &c); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(c); err != nil {
		core.Error(w, r, err)
		return
	}
	id, err := h.service.UpsertDashChart(r.Context(), c.DashChartID, c.Title, c.Aesthetic, types.GetCaller(r.Context()))
	writeOne(w, r, map[string]int64{"dash_chart_id": id}, err)
}

type setChartQueriesRequest struct {
	QueryIDs []int64 `json:"query_ids"`
}

// HandleSetChartQueries handles PUT /v1/dashboard/charts/{id}/queries. The
// list replaces the chart's queries in the given order.
func (h *DashboardHandler) HandleSetChartQueries(w http.ResponseWriter, r *http.Request) {
	chartID, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	var req setChartQueriesRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.service.SetDashChartQueries(r.Context(), chartID, req.QueryIDs, types.GetCaller(r.Context())); err != nil {
		core.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) HandleUpsertView(w http.ResponseWriter, r *http.Request) {
	var v types.DashView
	if err := core.DecodeJSON(w, r, &v); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(v); err != nil {
		core.Error(w, r, err)
		return
	}
	id, err := h.service.UpsertDashView(r.Context(), v, types.GetCaller(r.Context()))
	writeOne(w, r, map[string]int64{"dash_view_id": id}, err)
}

func (h *DashboardHandler) HandleViews(w http.ResponseWriter, r *http.Request) {
	topic := queryString(r, "topic")
	if err := requireParam("topic", topic); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetDashViews(r.Context(), topic)
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleViewsByAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetDashViewsByAsset(r.Context(), id)
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleViewCharts(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetDashViewCharts(r.Context(), id)
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleViewCache(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetDashViewCache(r.Context(), id)
	writeList(w, r, items, err)
}

func (h *DashboardHandler) HandleChartQueries(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetDashChartQueries(r.Context(), id)
	writeList(w, r, items, err)
}

type placeChartRequest struct {
	DashChartID  int64 `json:"dash_chart_id" validate:"required"`
	DisplayOrder int   `json:"display_order"`
}

// HandlePlaceChart handles PUT /v1/dashboard/views/{id}/charts. Placing a
// chart that is already on the view moves it.
func (h *DashboardHandler) HandlePlaceChart(w http.ResponseWriter, r *http.Request) {
	viewID, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	var req placeChartRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}
	id, err := h.service.UpsertDashViewChart(r.Context(), viewID, req.DashChartID, req.DisplayOrder, types.GetCaller(r.Context()))
	writeOne(w, r, map[string]int64{"dash_view_chart_id": id}, err)
}

type cloneViewRequest struct {
	Topic string `json:"topic" validate:"required"`
}

// HandleCloneView handles POST /v1/dashboard/views/{id}/clone.
func (h *DashboardHandler) HandleCloneView(w http.ResponseWriter, r *http.Request) {
	viewID, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	var req cloneViewRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.service.CloneDashView(r.Context(), viewID, req.Topic, types.GetCaller(r.Context())); err != nil {
		core.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateViewChartRequest struct {
	DisplayOrder *int  `json:"display_order"`
	IsActive     *bool `json:"is_active"`
}

// HandleUpdateViewChart handles PATCH /v1/dashboard/view-charts/{id}. Either
// field may be sent; at least one is required.
func (h *DashboardHandler) HandleUpdateViewChart(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	var req updateViewChartRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if req.DisplayOrder == nil && req.IsActive == nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField,
			"display_order or is_active is required", nil))
		return
	}

	caller := types.GetCaller(r.Context())
	if req.DisplayOrder != nil {
		if err := h.service.UpdateDashViewChartSequence(r.Context(), id, *req.DisplayOrder, caller); err != nil {
			core.Error(w, r, err)
			return
		}
	}
	if req.IsActive != nil {
		if err := h.service.UpdateDashViewChartStatus(r.Context(), id, *req.IsActive, caller); err != nil {
			core.Error(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateViewAssetRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// HandleUpdateViewAsset handles PATCH /v1/dashboard/view-assets/{id}.
func (h *DashboardHandler) HandleUpdateViewAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	var req updateViewAssetRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.service.UpdateDashViewAssetStatus(r.Context(), id, *req.IsActive, types.GetCaller(r.Context())); err != nil {
		core.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
