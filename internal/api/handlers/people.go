package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"holocene/internal/core"
	"holocene/internal/types"
)

type PeopleService interface {
	GetAnalysts(ctx context.Context) ([]types.User, error)
	GetUsers(ctx context.Context) ([]types.User, error)
	GetUserCustomSettings(ctx context.Context, fieldGroup string) ([]types.UserCustomSetting, error)
	UpsertUserCustomSetting(ctx context.Context, setting types.UserCustomSetting) (int64, error)
	GetTweets(ctx context.Context, username string, tweetID int) ([]types.Tweet, error)
}

type PeopleHandler struct {
	service   PeopleService
	validator *core.Validator
	logger    zerolog.Logger
}

func NewPeopleHandler(svc PeopleService, val *core.Validator, logger zerolog.Logger) *PeopleHandler {
	return &PeopleHandler{service: svc, validator: val, logger: logger}
}

func (h *PeopleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/analysts", h.HandleAnalysts)
	r.Get("/users", h.HandleUsers)
	r.Get("/settings", h.HandleSettings)
	r.Put("/settings", h.HandleUpsertSetting)
	r.Get("/tweets", h.HandleTweets)
}

func (h *PeopleHandler) HandleAnalysts(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetAnalysts(r.Context())
	writeList(w, r, items, err)
}

func (h *PeopleHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetUsers(r.Context())
	writeList(w, r, items, err)
}

func (h *PeopleHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	group := queryString(r, "field_group")
	if err := requireParam("field_group", group); err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetUserCustomSettings(r.Context(), group)
	writeList(w, r, items, err)
}

// HandleUpsertSetting handles PUT /v1/people/settings. A body without a
// username is stored for the portal caller.
func (h *PeopleHandler) HandleUpsertSetting(w http.ResponseWriter, r *http.Request) {
	var setting types.UserCustomSetting
	if err := core.DecodeJSON(w, r, &setting); err != nil {
		core.Error(w, r, err)
		return
	}
	if setting.Username == "" {
		setting.Username = types.GetCaller(r.Context())
	}
	if err := h.validator.ValidateStruct(setting); err != nil {
		core.Error(w, r, err)
		return
	}

	id, err := h.service.UpsertUserCustomSetting(r.Context(), setting)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.OK(w, r, map[string]int64{"id": id})
}

func (h *PeopleHandler) HandleTweets(w http.ResponseWriter, r *http.Request) {
	tweetID, err := queryInt64(r, "tweet_id")
	if err != nil {
		core.Error(w, r, err)
		return
	}
	items, err := h.service.GetTweets(r.Context(), username(r), int(tweetID))
	writeList(w, r, items, err)
}
