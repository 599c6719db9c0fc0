package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

type ExpectedValueService interface {
	GetExpectedValueIdeaRecommendations(ctx context.Context) ([]types.ExpectedValueIdeaRecommendation, error)
	GetExpectedValue(ctx context.Context, id int64) (types.ExpectedValue, error)
	GetExpectedValues(ctx context.Context, ids []int64) ([]types.ExpectedValue, error)
	GetExpectedValuesLatest(ctx context.Context) ([]types.ExpectedValueLatest, error)
	GetExpectedValueNestedScenarios(ctx context.Context, id int64) ([]types.ExpectedValueScenario, error)
}

type ExpectedValueHandler struct {
	service ExpectedValueService
	logger  zerolog.Logger
}

func NewExpectedValueHandler(svc ExpectedValueService, logger zerolog.Logger) *ExpectedValueHandler {
	return &ExpectedValueHandler{service: svc, logger: logger}
}

func (h *ExpectedValueHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Get("/latest", h.HandleLatest)
	r.Get("/recommendations", h.HandleRecommendations)
	r.Get("/{id}", h.HandleGet)
	r.Get("/{id}/scenarios", h.HandleScenarios)
}

// HandleList handles GET /v1/expected-values?ids=1,2,3.
func (h *ExpectedValueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ids, err := queryInt64List(r, "ids")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if len(ids) == 0 {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField, "ids query parameter is required", nil))
		return
	}
	items, err := h.service.GetExpectedValues(r.Context(), ids)
	writeList(w, r, items, err)
}

func (h *ExpectedValueHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetExpectedValuesLatest(r.Context())
	writeList(w, r, items, err)
}

func (h *ExpectedValueHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetExpectedValueIdeaRecommendations(r.Context())
	writeList(w, r, items, err)
}

func (h *ExpectedValueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetExpectedValue(r.Context(), id)
	writeOne(w, r, item, err)
}

func (h *ExpectedValueHandler) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetExpectedValueNestedScenarios(r.Context(), id)
	writeList(w, r, items, err)
}
