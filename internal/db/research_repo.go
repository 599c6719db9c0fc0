package db

import (
	"context"
	"time"

	"holocene/internal/types"
)

// ResearchRepository reads and writes idea abstracts, the idea list, hot ideas
// and research events in the Holocene store.
type ResearchRepository struct {
	exec Executor
}

// NewResearchRepository creates a repository over the Holocene executor.
func NewResearchRepository(exec Executor) *ResearchRepository {
	return &ResearchRepository{exec: exec}
}

// GetIdeaAbstractLongTermViews returns the long-term view pick list.
func (r *ResearchRepository) GetIdeaAbstractLongTermViews(ctx context.Context) ([]types.ViewOption, error) {
	return queryList[types.ViewOption](ctx, r.exec, "GetIdeaAbstractLongTermViews",
		Proc("research.GetIdeaAbstractLongTermViews"), nil)
}

// GetIdeaAbstractShortTermViews returns the short-term view pick list.
func (r *ResearchRepository) GetIdeaAbstractShortTermViews(ctx context.Context) ([]types.ViewOption, error) {
	return queryList[types.ViewOption](ctx, r.exec, "GetIdeaAbstractShortTermViews",
		Proc("research.GetIdeaAbstractShortTermViews"), nil)
}

// GetIdeaAbstracts returns the current abstracts. Blank arguments are not
// sent, so an empty username returns every analyst's abstract for the
// symbol. timestamp, when given, selects the abstracts as of that moment.
func (r *ResearchRepository) GetIdeaAbstracts(ctx context.Context, symbol, username, timestamp string) ([]types.IdeaAbstract, error) {
	const op = "GetIdeaAbstracts"
	params := Params{}.
		AddIfNotEmpty("Symbol", symbol).
		AddIfNotEmpty("Username", username)
	if timestamp != "" {
		ts, err := ParseTime(timestamp)
		if err != nil {
			return nil, validationError(types.ErrCodeValidationInvalidTimestamp, op, "timestamp", "timestamp is not a valid date-time", err)
		}
		params = params.Add("Timestamp", ts)
	}
	return queryList[types.IdeaAbstract](ctx, r.exec, op, Proc("research.GetIdeaAbstracts"), params)
}

// GetIdeaAbstractHistory returns every recorded abstract for a symbol.
func (r *ResearchRepository) GetIdeaAbstractHistory(ctx context.Context, symbol, username string) ([]types.IdeaAbstract, error) {
	params := Params{}.
		Add("Symbol", symbol).
		AddIfNotEmpty("Username", username)
	return queryList[types.IdeaAbstract](ctx, r.exec, "GetIdeaAbstractHistory",
		Proc("research.GetIdeaAbstractHistory"), params)
}

// UpdateIdeaAbstract records a new version of the analyst's abstract. History
// is append-only; the procedure inserts rather than updates.
func (r *ResearchRepository) UpdateIdeaAbstract(ctx context.Context, a types.IdeaAbstract) error {
	params := Params{}.
		Add("Symbol", a.Symbol).
		Add("Username", a.Username).
		Add("LongTermViewCode", a.LongTermViewCode).
		Add("ShortTermViewCode", a.ShortTermViewCode).
		Add("LongTermThesis", a.LongTermThesis).
		Add("ShortTermThesis", a.ShortTermThesis)
	_, err := execCmd(ctx, r.exec, "UpdateIdeaAbstract", Proc("research.InsertIdeaAbstract"), params)
	return err
}

// GetLatestEVAndIdeaAbstract returns the latest expected value and abstract per analyst.
func (r *ResearchRepository) GetLatestEVAndIdeaAbstract(ctx context.Context, symbol string) ([]types.LatestEVAndIdeaAbstract, error) {
	params := Params{}.AddIfNotEmpty("Symbol", symbol)
	return queryList[types.LatestEVAndIdeaAbstract](ctx, r.exec, "GetLatestEVAndIdeaAbstract",
		Proc("research.GetLatestEVandIdeaAbstract"), params)
}

// GetIdeas returns the idea list for username.
func (r *ResearchRepository) GetIdeas(ctx context.Context, username string) ([]types.Idea, error) {
	params := Params{}.Add("Username", username)
	return queryList[types.Idea](ctx, r.exec, "GetIdeas", Proc("research.GetIdeas"), params)
}

// CreateIdea adds an idea to the list and returns its id.
func (r *ResearchRepository) CreateIdea(ctx context.Context, idea types.Idea) (int64, error) {
	id := int64(idea.IdeaID)
	params := Params{}.
		Add("Symbol", idea.Symbol).
		Add("SecurityDesc", idea.SecurityDesc).
		Add("Assignee", idea.Assignee).
		Add("Analyst", idea.Analyst).
		Add("IdeaStatusCode", idea.IdeaStatusCode).
		Add("Thesis", idea.Thesis).
		Add("IdeaSource", idea.IdeaSource).
		Add("ModelCompleted", idea.ModelCompleted).
		InOut("IdeaId", &id)
	return scalarID(ctx, r.exec, "CreateIdea", Proc("research.CreateIdea"), params, &id)
}

// UpdateIdea saves changes to an existing idea.
func (r *ResearchRepository) UpdateIdea(ctx context.Context, idea types.Idea) error {
	params := Params{}.
		Add("Analyst", idea.Analyst).
		Add("Thesis", idea.Thesis).
		Add("IdeaSource", idea.IdeaSource).
		Add("IdeaStatusCode", idea.IdeaStatusCode).
		Add("Username", idea.Username).
		Add("ModelCompleted", idea.ModelCompleted).
		Add("IdeaId", idea.IdeaID)
	_, err := execCmd(ctx, r.exec, "UpdateIdea", Proc("research.UpdateIdea"), params)
	return err
}

// GetIdeaStatuses returns the idea status pick list.
func (r *ResearchRepository) GetIdeaStatuses(ctx context.Context) ([]types.IdeaStatus, error) {
	return queryList[types.IdeaStatus](ctx, r.exec, "GetIdeaStatuses", Proc("research.GetIdeaStatuses"), nil)
}

// GetHotIdeas returns the hot ideas for username.
func (r *ResearchRepository) GetHotIdeas(ctx context.Context, username string) ([]types.HotIdea, error) {
	params := Params{}.Add("Username", username)
	return queryList[types.HotIdea](ctx, r.exec, "GetHotIdeas", Proc("research.GetHotIdeas"), params)
}

// InsertHotIdea flags a symbol and returns the value the procedure selects.
func (r *ResearchRepository) InsertHotIdea(ctx context.Context, idea types.HotIdea) (int64, error) {
	params := Params{}.
		Add("Symbol", idea.Symbol).
		Add("IdeaAbstractShortTermViewCode", idea.IdeaAbstractShortTermViewCode).
		Add("Username", idea.Username)
	return scalarID(ctx, r.exec, "InsertHotIdea", Proc("research.InsertHotIdea"), params, nil)
}

// GetResearchEvent returns one event, or the zero event when the id is unknown.
func (r *ResearchRepository) GetResearchEvent(ctx context.Context, id int) (types.ResearchEvent, error) {
	params := Params{}.Add("ResearchEventId", id)
	return queryLast[types.ResearchEvent](ctx, r.exec, "GetResearchEvent", Proc("research.GetResearchEvents"), params)
}

// GetResearchEvents lists a symbol's events, optionally for one business date.
func (r *ResearchRepository) GetResearchEvents(ctx context.Context, symbol string, busDate *time.Time) ([]types.ResearchEvent, error) {
	params := Params{}.Add("Symbol", symbol)
	if busDate != nil {
		params = params.Add("BusDate", busDate.Format("01/02/2006"))
	}
	return queryList[types.ResearchEvent](ctx, r.exec, "GetResearchEvents", Proc("research.GetResearchEvents"), params)
}

// GetAnalystIdeas returns the analyst's ideas with position, expected value
// and thesis context. semvType selects the SEMV aggregation.
func (r *ResearchRepository) GetAnalystIdeas(ctx context.Context, username, semvType string) ([]types.AnalystIdea, error) {
	params := Params{}.
		Add("Username", username).
		Add("TMTSEMVAggregation", semvType)
	return queryList[types.AnalystIdea](ctx, r.exec, "GetAnalystIdeas", Proc("research.GetAnalystIdeas"), params)
}

// GetAnalystIdeaAlerts returns idea alerts for an entity. includeSelf keeps
// alerts raised by username's own ideas.
func (r *ResearchRepository) GetAnalystIdeaAlerts(ctx context.Context, username, entity string, includeSelf bool) ([]types.AnalystIdea, error) {
	params := Params{}.
		Add("Username", username).
		Add("Entity", entity).
		Add("IncludeSelf", includeSelf)
	return queryList[types.AnalystIdea](ctx, r.exec, "GetAnalystIdeaAlerts", Proc("report.GetAnalystIdeasAlerts"), params)
}

// GetUpcomingEarnings returns the analyst's ideas that report soon, with
// their snooze state.
func (r *ResearchRepository) GetUpcomingEarnings(ctx context.Context, username, semvType string) ([]types.AnalystIdea, error) {
	params := Params{}.
		Add("Username", username).
		Add("TMTSEMVAggregation", semvType)
	return queryList[types.AnalystIdea](ctx, r.exec, "GetUpcomingEarnings", Proc("research.GetUpcomingEarnings"), params)
}

// GetStaleAnalystIdeas returns ideas whose abstract has not been refreshed
// recently.
func (r *ResearchRepository) GetStaleAnalystIdeas(ctx context.Context, username string) ([]types.AnalystIdea, error) {
	params := Params{}.Add("Username", username)
	return queryList[types.AnalystIdea](ctx, r.exec, "GetStaleAnalystIdeas", Proc("research.GetStaleAnalystIdeas"), params)
}
