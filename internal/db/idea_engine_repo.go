package db

import (
	"context"

	"holocene/internal/types"
)

// IdeaEngineRepository manages idea engine work items in the Holocene store.
type IdeaEngineRepository struct {
	exec Executor
}

// NewIdeaEngineRepository creates a repository over the Holocene executor.
func NewIdeaEngineRepository(exec Executor) *IdeaEngineRepository {
	return &IdeaEngineRepository{exec: exec}
}

// GetIdeaEngineStatuses returns the status pick list.
func (r *IdeaEngineRepository) GetIdeaEngineStatuses(ctx context.Context) ([]types.IdeaEngineStatus, error) {
	return queryList[types.IdeaEngineStatus](ctx, r.exec, "GetIdeaEngineStatuses",
		Proc("research.GetIdeaEngineStatuses"), nil)
}

// GetIdeaEngineSizes returns the sizing pick list.
func (r *IdeaEngineRepository) GetIdeaEngineSizes(ctx context.Context) ([]types.IdeaEngineSize, error) {
	return queryList[types.IdeaEngineSize](ctx, r.exec, "GetIdeaEngineSizes",
		Proc("research.GetIdeaEngineSize"), nil)
}

// GetIdeaEngines returns the full work items matching f. Blank filters are
// not sent, so an empty filter returns every item.
func (r *IdeaEngineRepository) GetIdeaEngines(ctx context.Context, f types.IdeaEngineFilter) ([]types.IdeaEngine, error) {
	params := Params{}.
		AddIfNotEmpty("Symbol", f.Symbol).
		AddIfNotEmpty("Topic", f.Topic).
		AddIfNotEmpty("Username", f.Username).
		AddIfNotEmpty("RequestType", f.RequestType).
		AddIfNotZero("IdeaEngineId", f.IdeaEngineID)
	return queryList[types.IdeaEngine](ctx, r.exec, "GetIdeaEngines", Proc("research.GetIdeaEngine2"), params)
}

// GetIdeaEngine returns one work item. An unknown id yields the zero record.
func (r *IdeaEngineRepository) GetIdeaEngine(ctx context.Context, id int64) (types.IdeaEngine, error) {
	params := Params{}.AddIfNotZero("IdeaEngineId", id)
	return queryLast[types.IdeaEngine](ctx, r.exec, "GetIdeaEngine", Proc("research.GetIdeaEngineById"), params)
}

// GetIdeaEngineList returns the summary list used by the idea engine board.
// Action items and conclusions are not populated.
func (r *IdeaEngineRepository) GetIdeaEngineList(ctx context.Context, symbol, topic string, id int64) ([]types.IdeaEngine, error) {
	params := Params{}.
		AddIfNotEmpty("Symbol", symbol).
		AddIfNotEmpty("Topic", topic).
		AddIfNotZero("IdeaEngineId", id)
	return queryList[types.IdeaEngine](ctx, r.exec, "GetIdeaEngineList", Proc("research.GetIdeaEngineList"), params)
}

// UpdateIdeaEngine creates the item when IdeaEngineID is zero and updates it
// otherwise. Only non-blank fields are sent, so blanks keep their stored
// value. The saved item is read back; when the procedure reports no id the
// zero record is returned.
func (r *IdeaEngineRepository) UpdateIdeaEngine(ctx context.Context, e types.IdeaEngine, assignedBy string) (types.IdeaEngine, error) {
	const op = "UpdateIdeaEngine"
	if e.IdeaEngineID == 0 && e.Symbol == "" && e.Topic == "" {
		return types.IdeaEngine{}, validationError(types.ErrCodeValidationMissingField, op,
			"symbol", "a new idea engine item needs a symbol or a topic", nil)
	}
	params := Params{}.
		AddIfNotZero("IdeaEngineId", e.IdeaEngineID).
		AddIfNotEmpty("Symbol", e.Symbol).
		AddIfNotEmpty("Topic", e.Topic).
		AddIfNotEmpty("Username", e.Username).
		AddIfNotEmpty("AssignedByUsername", assignedBy).
		AddIfNotEmpty("Thesis", e.Thesis).
		AddIfNotEmpty("ActionItem1", e.ActionItem1).
		AddIfNotEmpty("ActionItem2", e.ActionItem2).
		AddIfNotEmpty("ActionItem3", e.ActionItem3).
		AddIfNotEmpty("ActionItem4", e.ActionItem4).
		AddIfNotEmpty("ActionItem5", e.ActionItem5).
		AddIfNotEmpty("ActionItem6", e.ActionItem6).
		AddIfNotEmpty("SizeCode", e.SizeCode).
		AddIfNotEmpty("StatusCode", e.StatusCode).
		AddIfNotEmpty("Conclusion1", e.Conclusion1).
		AddIfNotEmpty("Conclusion2", e.Conclusion2).
		AddIfNotEmpty("Conclusion3", e.Conclusion3).
		AddIfNotEmpty("InvestmentType", e.InvestmentType).
		AddIfNotEmpty("IdeaRecommendation", e.IdeaRecommendation)

	id, err := scalarID(ctx, r.exec, op, Proc("research.UpdateIdeaEngine2"), params, nil)
	if err != nil {
		return types.IdeaEngine{}, err
	}
	if id == 0 {
		return types.IdeaEngine{}, nil
	}
	return r.GetIdeaEngine(ctx, id)
}
