package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

type StressService interface {
	GetStressValues(ctx context.Context, stressType string) ([]types.StressValue, error)
	GetStressScores(ctx context.Context, stressType, symbol string) ([]types.StressScore, error)
	GetLatestStressScore(ctx context.Context, stressType, symbol string) (types.StressScore, error)
	UpdateStressScore(ctx context.Context, stressType, symbol, username, score string) error
}

type StressHandler struct {
	service   StressService
	validator *core.Validator
	logger    zerolog.Logger
}

func NewStressHandler(svc StressService, val *core.Validator, logger zerolog.Logger) *StressHandler {
	return &StressHandler{service: svc, validator: val, logger: logger}
}

// RegisterRoutes mounts /v1/stress/{type}/... for every stress type.
func (h *StressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/{type}", func(r chi.Router) {
		r.Get("/values", h.HandleValues)
		r.Get("/scores", h.HandleScores)
		r.Get("/scores/latest", h.HandleLatestScore)
		r.Put("/scores", h.HandleUpdateScore)
	})
}

func stressType(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "type")))
}

func (h *StressHandler) HandleValues(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetStressValues(r.Context(), stressType(r))
	writeList(w, r, items, err)
}

func (h *StressHandler) HandleScores(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetStressScores(r.Context(), stressType(r), queryString(r, "symbol"))
	writeList(w, r, items, err)
}

func (h *StressHandler) HandleLatestScore(w http.ResponseWriter, r *http.Request) {
	symbol := queryString(r, "symbol")
	if err := requireParam("symbol", symbol); err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetLatestStressScore(r.Context(), stressType(r), symbol)
	writeOne(w, r, item, err)
}

type updateStressScoreRequest struct {
	Symbol string `json:"symbol" validate:"required,symbol"`
	Score  string `json:"score" validate:"required"`
}

// HandleUpdateScore handles PUT /v1/stress/{type}/scores. The score is
// recorded against the portal caller.
func (h *StressHandler) HandleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req updateStressScoreRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}
	user := types.GetCaller(r.Context())
	if user == "" {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField, "caller username is required", nil))
		return
	}

	if err := h.service.UpdateStressScore(r.Context(), stressType(r), req.Symbol, user, req.Score); err != nil {
		core.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
