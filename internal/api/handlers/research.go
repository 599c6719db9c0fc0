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

// ResearchService is the subset of db.ResearchRepository served over HTTP.
type ResearchService interface {
	GetIdeaAbstractLongTermViews(ctx context.Context) ([]types.ViewOption, error)
	GetIdeaAbstractShortTermViews(ctx context.Context) ([]types.ViewOption, error)
	GetIdeaAbstracts(ctx context.Context, symbol, username, timestamp string) ([]types.IdeaAbstract, error)
	GetIdeaAbstractHistory(ctx context.Context, symbol, username string) ([]types.IdeaAbstract, error)
	UpdateIdeaAbstract(ctx context.Context, a types.IdeaAbstract) error
	GetLatestEVAndIdeaAbstract(ctx context.Context, symbol string) ([]types.LatestEVAndIdeaAbstract, error)
	GetIdeas(ctx context.Context, username string) ([]types.Idea, error)
	GetIdeaStatuses(ctx context.Context) ([]types.IdeaStatus, error)
	GetHotIdeas(ctx context.Context, username string) ([]types.HotIdea, error)
	GetResearchEvent(ctx context.Context, id int) (types.ResearchEvent, error)
	GetResearchEvents(ctx context.Context, symbol string, busDate *time.Time) ([]types.ResearchEvent, error)
	GetAnalystIdeas(ctx context.Context, username, semvType string) ([]types.AnalystIdea, error)
	GetAnalystIdeaAlerts(ctx context.Context, username, entity string, includeSelf bool) ([]types.AnalystIdea, error)
	GetUpcomingEarnings(ctx context.Context, username, semvType string) ([]types.AnalystIdea, error)
	GetStaleAnalystIdeas(ctx context.Context, username string) ([]types.AnalystIdea, error)
}

type ResearchHandler struct {
	service   ResearchService
	validator *core.Validator
	logger    zerolog.Logger
}

func NewResearchHandler(svc ResearchService, val *core.Validator, logger zerolog.Logger) *ResearchHandler {
	return &ResearchHandler{service: svc, validator: val, logger: logger}
}

// RegisterRoutes mounts the research endpoints under /v1/research.
func (h *ResearchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/views/long-term", h.HandleLongTermViews)
	r.Get("/views/short-term", h.HandleShortTermViews)
	r.Get("/idea-abstracts", h.HandleIdeaAbstracts)
	r.Put("/idea-abstracts", h.HandleUpdateIdeaAbstract)
	r.Get("/idea-abstracts/history", h.HandleIdeaAbstractHistory)
	r.Get("/latest", h.HandleLatest)
	r.Get("/ideas", h.HandleIdeas)
	r.Get("/idea-statuses", h.HandleIdeaStatuses)
	r.Get("/hot-ideas", h.HandleHotIdeas)
	r.Get("/events", h.HandleEvents)
	r.Get("/events/{id}", h.HandleEvent)
	r.Get("/analyst-ideas", h.HandleAnalystIdeas)
	r.Get("/analyst-ideas/alerts", h.HandleAnalystIdeaAlerts)
	r.Get("/analyst-ideas/stale", h.HandleStaleAnalystIdeas)
	r.Get("/upcoming-earnings", h.HandleUpcomingEarnings)
}

func (h *ResearchHandler) HandleLongTermViews(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeaAbstractLongTermViews(r.Context())
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleShortTermViews(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeaAbstractShortTermViews(r.Context())
	writeList(w, r, items, err)
}

// HandleIdeaAbstracts handles GET /v1/research/idea-abstracts. Every filter
// is optional; timestamp is passed through for the repository to parse.
func (h *ResearchHandler) HandleIdeaAbstracts(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeaAbstracts(r.Context(),
		queryString(r, "symbol"), queryString(r, "username"), queryString(r, "timestamp"))
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleIdeaAbstractHistory(w http.ResponseWriter, r *http.Request) {
	symbol := queryString(r, "symbol")
	if err := requireParam("symbol", symbol); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetIdeaAbstractHistory(r.Context(), symbol, queryString(r, "username"))
	writeList(w, r, items, err)
}

type updateIdeaAbstractRequest struct {
	Symbol            string `json:"symbol" validate:"required,symbol"`
	LongTermViewCode  string `json:"long_term_view_code" validate:"required"`
	ShortTermViewCode string `json:"short_term_view_code" validate:"required"`
	LongTermThesis    string `json:"long_term_thesis"`
	ShortTermThesis   string `json:"short_term_thesis"`
}

// HandleUpdateIdeaAbstract handles PUT /v1/research/idea-abstracts. The
// abstract is recorded for the portal caller.
func (h *ResearchHandler) HandleUpdateIdeaAbstract(w http.ResponseWriter, r *http.Request) {
	var req updateIdeaAbstractRequest
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

	err := h.service.UpdateIdeaAbstract(r.Context(), types.IdeaAbstract{
		Username:          user,
		Symbol:            req.Symbol,
		LongTermViewCode:  req.LongTermViewCode,
		ShortTermViewCode: req.ShortTermViewCode,
		LongTermThesis:    req.LongTermThesis,
		ShortTermThesis:   req.ShortTermThesis,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}
	h.logger.Info().Str("symbol", req.Symbol).Str("username", user).Msg("idea abstract updated")
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResearchHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetLatestEVAndIdeaAbstract(r.Context(), queryString(r, "symbol"))
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleIdeas(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeas(r.Context(), username(r))
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleIdeaStatuses(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetIdeaStatuses(r.Context())
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleHotIdeas(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetHotIdeas(r.Context(), username(r))
	writeList(w, r, items, err)
}

// HandleEvents handles GET /v1/research/events?symbol=&bus_date=.
func (h *ResearchHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	symbol := queryString(r, "symbol")
	if err := requireParam("symbol", symbol); err != nil {
		core.Error(w, r, err)
		return
	}
	busDate, err := queryDate(r, "bus_date")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetResearchEvents(r.Context(), symbol, busDate)
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	item, err := h.service.GetResearchEvent(r.Context(), int(id))
	writeOne(w, r, item, err)
}

// HandleAnalystIdeas handles GET /v1/research/analyst-ideas?semv_type=.
// The analyst is ?username= or the caller.
func (h *ResearchHandler) HandleAnalystIdeas(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if err := requireParam("username", user); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetAnalystIdeas(r.Context(), user, queryString(r, "semv_type"))
	writeList(w, r, items, err)
}

// HandleAnalystIdeaAlerts handles GET
// /v1/research/analyst-ideas/alerts?entity=&include_self=.
func (h *ResearchHandler) HandleAnalystIdeaAlerts(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if err := requireParam("username", user); err != nil {
		core.Error(w, r, err)
		return
	}
	includeSelf, err := queryBool(r, "include_self")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetAnalystIdeaAlerts(r.Context(), user, queryString(r, "entity"), includeSelf)
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleStaleAnalystIdeas(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if err := requireParam("username", user); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetStaleAnalystIdeas(r.Context(), user)
	writeList(w, r, items, err)
}

func (h *ResearchHandler) HandleUpcomingEarnings(w http.ResponseWriter, r *http.Request) {
	user := username(r)
	if err := requireParam("username", user); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetUpcomingEarnings(r.Context(), user, queryString(r, "semv_type"))
	writeList(w, r, items, err)
}
