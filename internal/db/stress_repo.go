package db

import (
	"context"

	"holocene/internal/types"
)

// StressRepository reads and records analyst stress scores.
type StressRepository struct {
	exec Executor
}

// NewStressRepository creates a repository over the Holocene executor.
func NewStressRepository(exec Executor) *StressRepository {
	return &StressRepository{exec: exec}
}

// GetStressValues returns the score pick list for a stress type.
func (r *StressRepository) GetStressValues(ctx context.Context, stressType string) ([]types.StressValue, error) {
	params := Params{}.Add("StressType", stressType)
	return queryList[types.StressValue](ctx, r.exec, "GetStressValues", Proc("research.GetStressValues"), params)
}

// GetStressScores returns every recorded score for a symbol.
func (r *StressRepository) GetStressScores(ctx context.Context, stressType, symbol string) ([]types.StressScore, error) {
	params := Params{}.
		Add("StressType", stressType).
		Add("Symbol", symbol)
	return queryList[types.StressScore](ctx, r.exec, "GetStressScores", Proc("research.GetStressScores"), params)
}

// GetLatestStressScore returns the most recent score, or the zero score when none exists.
func (r *StressRepository) GetLatestStressScore(ctx context.Context, stressType, symbol string) (types.StressScore, error) {
	params := Params{}.
		Add("StressType", stressType).
		Add("Symbol", symbol)
	return queryLast[types.StressScore](ctx, r.exec, "GetLatestStressScore", Proc("research.GetLatestStressScore"), params)
}

// UpdateStressScore records score, a stress value code, for symbol.
func (r *StressRepository) UpdateStressScore(ctx context.Context, stressType, symbol, username, score string) error {
	params := Params{}.
		Add("StressType", stressType).
		Add("Symbol", symbol).
		Add("Username", username).
		Add("StressScore", score)
	_, err := execCmd(ctx, r.exec, "UpdateStressScore", Proc("research.UpdateStressScore"), params)
	return err
}
