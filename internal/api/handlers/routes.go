package handlers

import (
	"github.com/go-chi/chi/v5"

	"holocene/internal/core"
)

// Register attaches every domain handler to srv under /v1. It must run
// before srv.MountRoutes.
func Register(srv *core.Server) {
	repos := srv.Repos
	val := srv.Validator
	log := srv.Logger

	mounts := []struct {
		prefix string
		routes func(chi.Router)
	}{
		{"/research", NewResearchHandler(repos.Research, val, log.With().Str("handler", "research").Logger()).RegisterRoutes},
		{"/idea-engine", NewIdeaEngineHandler(repos.IdeaEngine, log.With().Str("handler", "idea_engine").Logger()).RegisterRoutes},
		{"/expected-values", NewExpectedValueHandler(repos.ExpectedValue, log.With().Str("handler", "expected_value").Logger()).RegisterRoutes},
		{"/earnings", NewEarningsHandler(repos.Earnings, log.With().Str("handler", "earnings").Logger()).RegisterRoutes},
		{"/people", NewPeopleHandler(repos.People, val, log.With().Str("handler", "people").Logger()).RegisterRoutes},
		{"/portfolio", NewPortfolioHandler(repos.Portfolio, repos.TradingCost, val, log.With().Str("handler", "portfolio").Logger()).RegisterRoutes},
		{"/risk", NewRiskHandler(repos.Risk, log.With().Str("handler", "risk").Logger()).RegisterRoutes},
		{"/stress", NewStressHandler(repos.Stress, val, log.With().Str("handler", "stress").Logger()).RegisterRoutes},
		{"/altdata", NewAltDataHandler(repos.AltData, val, log.With().Str("handler", "altdata").Logger()).RegisterRoutes},
		{"/dashboard", NewDashboardHandler(repos.Dashboard, val, log.With().Str("handler", "dashboard").Logger()).RegisterRoutes},
	}

	for _, m := range mounts {
		srv.RouteRegistrars = append(srv.RouteRegistrars, func(r chi.Router) {
			r.Route(m.prefix, m.routes)
		})
	}
}
