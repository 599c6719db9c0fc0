package db

import (
	"context"
	"fmt"

	"holocene/internal/types"
)

const expectedValuesQuery = `select a.ExpectedValueId, a.BusDate, a.ModifiedOn, a.Price, a.Upside, a.ModifiedBy,
	d.Symbol, d.FullBloombergCode, b.DisplayName, b.Username, c.MetricTypeCode,
	coalesce(f.IdeaRecommendationCode, '') IdeaRecommendationCode,
	coalesce(f.IdeaRecommendationDesc, '') IdeaRecommendationDesc,
	coalesce(a.OverrideCalc, 0) OverrideCalc
from research.ExpectedValue a
	join app.[User] b on (a.UserId = b.UserId)
	join research.ExpectedValueMetricType c on (a.MetricTypeId = c.ExpectedValueMetricTypeId)
	join sm.[Security] d on (a.SecurityId = d.SecurityId)
	left join research.ExpectedValuePeriodType e on (a.PeriodTypeId = e.ExpectedValuePeriodTypeId)
	left join research.ExpectedValueIdeaRecommendation f on (a.IdeaRecommendationId = f.ExpectedValueIdeaRecommendationId)
where a.ExpectedValueId in (%s)`

const expectedValuesLatestQuery = `select UserId, SecurityId, max(ExpectedValueId) ExpectedValueId
from research.ExpectedValue
group by UserId, SecurityId`

// ExpectedValueRepository reads and writes analyst expected values. Nested
// scenario updates need a transaction, hence TxExecutor.
type ExpectedValueRepository struct {
	exec TxExecutor
}

// NewExpectedValueRepository creates a repository over the Holocene executor.
func NewExpectedValueRepository(exec TxExecutor) *ExpectedValueRepository {
	return &ExpectedValueRepository{exec: exec}
}

// GetExpectedValueIdeaRecommendations returns the recommendation pick list.
func (r *ExpectedValueRepository) GetExpectedValueIdeaRecommendations(ctx context.Context) ([]types.ExpectedValueIdeaRecommendation, error) {
	return queryList[types.ExpectedValueIdeaRecommendation](ctx, r.exec, "GetExpectedValueIdeaRecommendations",
		Proc("research.GetExpectedValueIdeaRecommendations"), nil)
}

// GetExpectedValue returns the expected value with the given id, or the zero
// value when none exists.
func (r *ExpectedValueRepository) GetExpectedValue(ctx context.Context, id int64) (types.ExpectedValue, error) {
	params := Params{}.Add("ExpectedValueId", id)
	return queryLast[types.ExpectedValue](ctx, r.exec, "GetExpectedValue", Proc("research.GetExpectedValueById"), params)
}

// GetExpectedValues loads several expected values in one round trip.
func (r *ExpectedValueRepository) GetExpectedValues(ctx context.Context, ids []int64) ([]types.ExpectedValue, error) {
	if len(ids) == 0 {
		return []types.ExpectedValue{}, nil
	}
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	params, in := Params{}.AddList("ExpectedValueId", values...)
	return queryList[types.ExpectedValue](ctx, r.exec, "GetExpectedValues",
		Text(fmt.Sprintf(expectedValuesQuery, in)), params)
}

// GetExpectedValuesLatest returns the newest expected value id for every
// analyst and security pair.
func (r *ExpectedValueRepository) GetExpectedValuesLatest(ctx context.Context) ([]types.ExpectedValueLatest, error) {
	return queryList[types.ExpectedValueLatest](ctx, r.exec, "GetExpectedValuesLatest", Text(expectedValuesLatestQuery), nil)
}

// GetExpectedValueNestedScenarios returns the scenarios nested under one expected value.
func (r *ExpectedValueRepository) GetExpectedValueNestedScenarios(ctx context.Context, id int64) ([]types.ExpectedValueScenario, error) {
	params := Params{}.Add("ExpectedValueId", id)
	return queryList[types.ExpectedValueScenario](ctx, r.exec, "GetExpectedValueNestedScenarios",
		Proc("research.GetExpectedValueNestedScenarios"), params)
}

// UpdateNestedExpectedValueScenarios upserts a nested expected value under
// its parent scenario and then each of its scenarios, returning the nested
// expected value id. Everything is written in one transaction.
func (r *ExpectedValueRepository) UpdateNestedExpectedValueScenarios(
	ctx context.Context,
	ev types.ExpectedValue,
	scenarios []types.ExpectedValueScenario,
	username string,
	parentID int64,
	parentScenarioType string,
) (int64, error) {
	const op = "UpdateNestedExpectedValueScenarios"

	var evID int64
	err := r.exec.InTx(ctx, func(tx Executor) error {
		id := ev.ExpectedValueID
		params := Params{}.
			Add("ParentExpectedValueId", parentID).
			Add("ParentScenarioType", parentScenarioType).
			Add("Symbol", ev.Symbol).
			Add("SecurityDesc", ev.SecurityDesc).
			Add("FullBloombergCode", ev.FullBloombergCode).
			Add("ShortName", ev.ShortName).
			Add("CUSIP", ev.CUSIP).
			Add("CINS", ev.CINS).
			Add("Username", ev.Username).
			Add("MetricType", ev.MetricTypeCode).
			Add("PeriodType", ev.PeriodTypeCode).
			Add("CQF", "0").
			Add("IdeaRecommendationCode", ev.IdeaRecommendationCode).
			Add("OverrideCalc", boolToInt(ev.OverrideCalc)).
			Add("Price", ev.Price).
			Add("Upside", ev.Upside).
			InOut("ExpectedValueId", &id)

		var err error
		evID, err = scalarID(ctx, tx, op, Proc("research.UpsertNestedExpectedValue"), params, &id)
		if err != nil {
			return err
		}

		for _, s := range scenarios {
			scenarioID := s.ExpectedValueScenarioID
			sp := Params{}.
				Add("ExpectedValueId", evID).
				Add("Scenario", s.Scenario).
				Add("Metric", s.Metric).
				Add("Multiple", s.Multiple).
				Add("Probability", s.Probability).
				Add("Price", s.Price).
				Add("OverrideCalc", boolToInt(s.OverrideCalc)).
				Add("Upside", s.Upside).
				Add("Notes", s.Notes).
				Add("Username", username).
				InOut("ExpectedValueScenarioId", &scenarioID)
			if _, err := scalarID(ctx, tx, op, Proc("research.UpsertNestedExpectedValueScenario"), sp, &scenarioID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, opError(op, err)
	}
	return evID, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
