package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

type EarningsService interface {
	GetEarningsDetails(ctx context.Context, symbol, username string) ([]types.EarningsDetails, error)
	GetEarningsPreviews(ctx context.Context, symbol, username string, previewID int64) ([]types.EarningsPreview, error)
	GetEarningsPreviewMetrics(ctx context.Context, previewID int64) ([]types.PreviewMetric, error)
	GetStreetEvents(ctx context.Context, eventTypeCode string) ([]types.StreetEvent, error)
}

type EarningsHandler struct {
	service EarningsService
	logger  zerolog.Logger
}

func NewEarningsHandler(svc EarningsService, logger zerolog.Logger) *EarningsHandler {
	return &EarningsHandler{service: svc, logger: logger}
}

func (h *EarningsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/details", h.HandleDetails)
	r.Get("/previews", h.HandlePreviews)
	r.Get("/previews/{id}/metrics", h.HandlePreviewMetrics)
	r.Get("/street-events", h.HandleStreetEvents)
}

func (h *EarningsHandler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetEarningsDetails(r.Context(), queryString(r, "symbol"), username(r))
	writeList(w, r, items, err)
}

// HandlePreviews handles GET /v1/earnings/previews. preview_id narrows the
// result to one preview.
func (h *EarningsHandler) HandlePreviews(w http.ResponseWriter, r *http.Request) {
	previewID, err := queryInt64(r, "preview_id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetEarningsPreviews(r.Context(), queryString(r, "symbol"), username(r), previewID)
	writeList(w, r, items, err)
}

func (h *EarningsHandler) HandlePreviewMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetEarningsPreviewMetrics(r.Context(), id)
	writeList(w, r, items, err)
}

func (h *EarningsHandler) HandleStreetEvents(w http.ResponseWriter, r *http.Request) {
	eventType := queryString(r, "type")
	if err := requireParam("type", eventType); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetStreetEvents(r.Context(), eventType)
	writeList(w, r, items, err)
}
