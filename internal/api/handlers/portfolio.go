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

type PortfolioService interface {
	GetPositions(ctx context.Context, symbol, desk string) ([]types.Position, error)
	GetCurrentPositionsWithRiskLimits(ctx context.Context, symbol string, includeOptions bool) ([]types.PositionRiskLimit, error)
	GetIntradayPositions(ctx context.Context) ([]types.IntradayPosition, error)
	GetDailyRiskLimits(ctx context.Context, symbol string) ([]types.RiskLimit, error)
	GetTrades(ctx context.Context, symbol string) ([]types.Trade, error)
	GetAlphaReturns(ctx context.Context, desk string) ([]types.AlphaReturn, error)
	GetCoverageUniverse(ctx context.Context, desk string) ([]types.CoverageUniverse, error)
	GetHoldings(ctx context.Context, asOf time.Time) ([]types.Holding, error)
	GetBorrowRate(ctx context.Context, symbol string) (types.BorrowRate, error)
}

// TradingCostService reads transaction-cost grades.
type TradingCostService interface {
	GetTCAGrade(ctx context.Context, symbol string, busDate time.Time) (types.TCA, error)
}

// PortfolioHandler serves positions, trades, holdings and trading cost.
type PortfolioHandler struct {
	service   PortfolioService
	tcost     TradingCostService
	validator *core.Validator
	logger    zerolog.Logger
	now       func() time.Time
}

func NewPortfolioHandler(svc PortfolioService, tcost TradingCostService, val *core.Validator, logger zerolog.Logger) *PortfolioHandler {
	return &PortfolioHandler{service: svc, tcost: tcost, validator: val, logger: logger, now: time.Now}
}

func (h *PortfolioHandler) RegisterRoutes(r chi.Router) {
	r.Get("/positions", h.HandlePositions)
	r.Get("/positions/risk-limits", h.HandlePositionsWithRiskLimits)
	r.Get("/positions/intraday", h.HandleIntradayPositions)
	r.Get("/risk-limits", h.HandleRiskLimits)
	r.Get("/trades", h.HandleTrades)
	r.Get("/alpha-returns", h.HandleAlphaReturns)
	r.Get("/coverage", h.HandleCoverage)
	r.Get("/holdings", h.HandleHoldings)
	r.Get("/borrow-rate", h.HandleBorrowRate)
	r.Get("/tca", h.HandleTCA)
}

func (h *PortfolioHandler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetPositions(r.Context(), queryString(r, "symbol"), queryString(r, "desk"))
	writeList(w, r, items, err)
}

func (h *PortfolioHandler) HandlePositionsWithRiskLimits(w http.ResponseWriter, r *http.Request) {
	includeOptions, err := queryBool(r, "include_options")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetCurrentPositionsWithRiskLimits(r.Context(), queryString(r, "symbol"), includeOptions)
	writeList(w, r, items, err)
}

func (h *PortfolioHandler) HandleIntradayPositions(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIntradayPositions(r.Context())
	writeList(w, r, items, err)
}

func (h *PortfolioHandler) HandleRiskLimits(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetDailyRiskLimits(r.Context(), queryString(r, "symbol"))
	writeList(w, r, items, err)
}

func (h *PortfolioHandler) HandleTrades(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetTrades(r.Context(), queryString(r, "symbol"))
	writeList(w, r, items, err)
}

func (h *PortfolioHandler) HandleAlphaReturns(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetAlphaReturns(r.Context(), queryString(r, "desk"))
	writeList(w, r, items, err)
}

func (h *PortfolioHandler) HandleCoverage(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetCoverageUniverse(r.Context(), queryString(r, "desk"))
	writeList(w, r, items, err)
}

// HandleHoldings handles GET /v1/portfolio/holdings?as_of=YYYY-MM-DD. The
// window ends today when as_of is absent.
func (h *PortfolioHandler) HandleHoldings(w http.ResponseWriter, r *http.Request) {
	asOf, err := queryDateOr(r, "as_of", h.now().UTC())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetHoldings(r.Context(), asOf)
	writeList(w, r, items, err)
}

type symbolQuery struct {
	Symbol  string `json:"symbol" validate:"required,symbol"`
	BusDate string `json:"bus_date" validate:"omitempty,busdate"`
}

func (h *PortfolioHandler) HandleBorrowRate(w http.ResponseWriter, r *http.Request) {
	q := symbolQuery{Symbol: queryString(r, "symbol")}
	if err := h.validator.ValidateStruct(q); err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetBorrowRate(r.Context(), q.Symbol)
	writeOne(w, r, item, err)
}

// HandleTCA handles GET /v1/portfolio/tca?symbol=&bus_date=. bus_date
// defaults to today.
func (h *PortfolioHandler) HandleTCA(w http.ResponseWriter, r *http.Request) {
	q := symbolQuery{Symbol: queryString(r, "symbol"), BusDate: queryString(r, "bus_date")}
	if err := h.validator.ValidateStruct(q); err != nil {
		core.Error(w, r, err)
		return
	}
	busDate, err := queryDateOr(r, "bus_date", h.now().UTC())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.tcost.GetTCAGrade(r.Context(), q.Symbol, busDate)
	writeOne(w, r, item, err)
}
