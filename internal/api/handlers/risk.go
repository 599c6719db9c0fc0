package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

// defaultHistory is how far back history endpoints look without ?start=.
const defaultHistory = 365 * 24 * time.Hour

type RiskService interface {
	GetBarraID(ctx context.Context, symbol string) (string, error)
	GetIdioReturns(ctx context.Context, symbol string, start, end time.Time) ([]types.RiskReturn, error)
	GetIdioReturnsWithOverrides(ctx context.Context, symbol, barraID string, start time.Time) ([]types.RiskReturn, error)
	GetFactors(ctx context.Context) ([]types.Factor, error)
	GetFactorGroups(ctx context.Context) ([]types.FactorGroup, error)
	GetBarraCache(ctx context.Context) ([]types.BarraCache, error)
	GetFactorLoadings(ctx context.Context, barraID string) ([]types.FactorLoading, error)
	GetCrowdingLoadings(ctx context.Context, symbol string) ([]types.FactorLoading, error)
	GetFactorLoadingsHistory(ctx context.Context, factors, barraIDs []string, start time.Time) ([]types.FactorLoading, error)
	GetFactorReturnsHistory(ctx context.Context, start time.Time) ([]types.FactorReturn, error)
	GetFactorGroupReturnsHistory(ctx context.Context, start time.Time, barraID string, factors []string) ([]types.RiskReturn, error)
	GetSpecificReturnHistory(ctx context.Context, barraIDs []string, start time.Time) ([]types.RiskReturn, error)
	GetFactorReturns(ctx context.Context) ([]types.FactorReturn, error)
	GetFactorVol(ctx context.Context) ([]types.FactorVol, error)
	GetBarraMetrics(ctx context.Context, barraID string) (types.BarraMetrics, error)
}

// RiskHandler serves the Barra risk model: identifiers, loadings, factor and
// specific returns.
type RiskHandler struct {
	service RiskService
	logger  zerolog.Logger
	now     func() time.Time
}

func NewRiskHandler(svc RiskService, logger zerolog.Logger) *RiskHandler {
	return &RiskHandler{service: svc, logger: logger, now: time.Now}
}

func (h *RiskHandler) RegisterRoutes(r chi.Router) {
	r.Get("/barra-id", h.HandleBarraID)
	r.Get("/barra-cache", h.HandleBarraCache)
	r.Get("/metrics", h.HandleMetrics)
	r.Get("/factors", h.HandleFactors)
	r.Get("/factor-groups", h.HandleFactorGroups)
	r.Get("/factor-vol", h.HandleFactorVol)
	r.Get("/factor-returns", h.HandleFactorReturns)
	r.Get("/factor-returns/history", h.HandleFactorReturnsHistory)
	r.Get("/factor-group-returns", h.HandleFactorGroupReturns)
	r.Get("/loadings", h.HandleLoadings)
	r.Get("/loadings/history", h.HandleLoadingsHistory)
	r.Get("/crowding", h.HandleCrowding)
	r.Get("/idio-returns", h.HandleIdioReturns)
	r.Get("/idio-returns/overrides", h.HandleIdioReturnsWithOverrides)
	r.Get("/specific-returns", h.HandleSpecificReturns)
}

// start returns ?start= or the default look-back from today.
func (h *RiskHandler) start(r *http.Request) (time.Time, error) {
	return queryDateOr(r, "start", h.now().UTC().Add(-defaultHistory).Truncate(24*time.Hour))
}

func (h *RiskHandler) HandleBarraID(w http.ResponseWriter, r *http.Request) {
	symbol := queryString(r, "symbol")
	if err := requireParam("symbol", symbol); err != nil {
		core.Error(w, r, err)
		return
	}
	id, err := h.service.GetBarraID(r.Context(), symbol)
	writeOne(w, r, map[string]string{"symbol": symbol, "barra_id": id}, err)
}

func (h *RiskHandler) HandleBarraCache(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetBarraCache(r.Context())
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	barraID := queryString(r, "barra_id")
	if err := requireParam("barra_id", barraID); err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetBarraMetrics(r.Context(), barraID)
	writeOne(w, r, item, err)
}

func (h *RiskHandler) HandleFactors(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetFactors(r.Context())
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleFactorGroups(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetFactorGroups(r.Context())
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleFactorVol(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetFactorVol(r.Context())
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleFactorReturns(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetFactorReturns(r.Context())
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleFactorReturnsHistory(w http.ResponseWriter, r *http.Request) {
	start, err := h.start(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetFactorReturnsHistory(r.Context(), start)
	writeList(w, r, items, err)
}

// HandleFactorGroupReturns handles
// GET /v1/risk/factor-group-returns?barra_id=&factors=a,b&start=.
func (h *RiskHandler) HandleFactorGroupReturns(w http.ResponseWriter, r *http.Request) {
	barraID := queryString(r, "barra_id")
	if err := requireParam("barra_id", barraID); err != nil {
		core.Error(w, r, err)
		return
	}
	factors := queryList(r, "factors")
	if len(factors) == 0 {
		core.Error(w, r, requireParam("factors", ""))
		return
	}
	start, err := h.start(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetFactorGroupReturnsHistory(r.Context(), start, barraID, factors)
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleLoadings(w http.ResponseWriter, r *http.Request) {
	barraID := queryString(r, "barra_id")
	if err := requireParam("barra_id", barraID); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetFactorLoadings(r.Context(), barraID)
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleLoadingsHistory(w http.ResponseWriter, r *http.Request) {
	barraIDs := queryList(r, "barra_ids")
	if len(barraIDs) == 0 {
		core.Error(w, r, requireParam("barra_ids", ""))
		return
	}
	start, err := h.start(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetFactorLoadingsHistory(r.Context(), queryList(r, "factors"), barraIDs, start)
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleCrowding(w http.ResponseWriter, r *http.Request) {
	symbol := queryString(r, "symbol")
	if err := requireParam("symbol", symbol); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetCrowdingLoadings(r.Context(), symbol)
	writeList(w, r, items, err)
}

// HandleIdioReturns handles GET /v1/risk/idio-returns?symbol=&start=&end=.
// end defaults to today.
func (h *RiskHandler) HandleIdioReturns(w http.ResponseWriter, r *http.Request) {
	symbol := queryString(r, "symbol")
	if err := requireParam("symbol", symbol); err != nil {
		core.Error(w, r, err)
		return
	}
	start, err := h.start(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	end, err := queryDateOr(r, "end", h.now().UTC().Truncate(24*time.Hour))
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if end.Before(start) {
		core.Error(w, r, types.NewAppErrorWithDetails(types.ErrCodeValidationInvalidDate,
			"end must not be before start", nil, map[string]any{"field": "end"}))
		return
	}
	items, err := h.service.GetIdioReturns(r.Context(), symbol, start, end)
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleIdioReturnsWithOverrides(w http.ResponseWriter, r *http.Request) {
	symbol, barraID := queryString(r, "symbol"), queryString(r, "barra_id")
	if err := requireParam("barra_id", barraID); err != nil {
		core.Error(w, r, err)
		return
	}
	start, err := h.start(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetIdioReturnsWithOverrides(r.Context(), symbol, barraID, start)
	writeList(w, r, items, err)
}

func (h *RiskHandler) HandleSpecificReturns(w http.ResponseWriter, r *http.Request) {
	barraIDs := queryList(r, "barra_ids")
	if len(barraIDs) == 0 {
		core.Error(w, r, requireParam("barra_ids", ""))
		return
	}
	start, err := h.start(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetSpecificReturnHistory(r.Context(), barraIDs, start)
	writeList(w, r, items, err)
}
