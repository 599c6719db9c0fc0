package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

// IdeaEngineService is the subset of db.IdeaEngineRepository served over HTTP.
type IdeaEngineService interface {
	GetIdeaEngineStatuses(ctx context.Context) ([]types.IdeaEngineStatus, error)
	GetIdeaEngineSizes(ctx context.Context) ([]types.IdeaEngineSize, error)
	GetIdeaEngines(ctx context.Context, f types.IdeaEngineFilter) ([]types.IdeaEngine, error)
	GetIdeaEngine(ctx context.Context, id int64) (types.IdeaEngine, error)
	GetIdeaEngineList(ctx context.Context, symbol, topic string, id int64) ([]types.IdeaEngine, error)
	UpdateIdeaEngine(ctx context.Context, e types.IdeaEngine, assignedBy string) (types.IdeaEngine, error)
}

type IdeaEngineHandler struct {
	service IdeaEngineService
	logger  zerolog.Logger
}

func NewIdeaEngineHandler(svc IdeaEngineService, logger zerolog.Logger) *IdeaEngineHandler {
	return &IdeaEngineHandler{service: svc, logger: logger}
}

// RegisterRoutes mounts /v1/idea-engine.
func (h *IdeaEngineHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleEngines)
	r.Post("/", h.HandleUpdate)
	r.Get("/statuses", h.HandleStatuses)
	r.Get("/sizes", h.HandleSizes)
	r.Get("/list", h.HandleList)
	r.Get("/{id}", h.HandleEngine)
}

func (h *IdeaEngineHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeaEngineStatuses(r.Context())
	writeList(w, r, items, err)
}

func (h *IdeaEngineHandler) HandleSizes(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeaEngineSizes(r.Context())
	writeList(w, r, items, err)
}

// HandleEngines handles GET /v1/idea-engine?symbol=&topic=&username=&request_type=&id=.
// Every filter is optional.
func (h *IdeaEngineHandler) HandleEngines(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetIdeaEngines(r.Context(), types.IdeaEngineFilter{
		Symbol:       queryString(r, "symbol"),
		Topic:        queryString(r, "topic"),
		Username:     queryString(r, "username"),
		RequestType:  queryString(r, "request_type"),
		IdeaEngineID: id,
	})
	writeList(w, r, items, err)
}

func (h *IdeaEngineHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetIdeaEngineList(r.Context(), queryString(r, "symbol"), queryString(r, "topic"), id)
	writeList(w, r, items, err)
}

func (h *IdeaEngineHandler) HandleEngine(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetIdeaEngine(r.Context(), id)
	writeOne(w, r, item, err)
}

// HandleUpdate handles POST /v1/idea-engine. A zero idea_engine_id creates
// the item; the caller is recorded as the assigner. The saved item is
// returned.
func (h *IdeaEngineHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var e types.IdeaEngine
	if err := core.DecodeJSON(w, r, &e); err != nil {
		core.Error(w, r, err)
		return
	}
	caller := types.GetCaller(r.Context())
	if caller == "" {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField, "caller username is required", nil))
		return
	}
	saved, err := h.service.UpdateIdeaEngine(r.Context(), e, caller)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	h.logger.Info().Int64("idea_engine_id", saved.IdeaEngineID).Str("assigned_by", caller).Msg("idea engine item saved")
	core.OK(w, r, saved)
}
