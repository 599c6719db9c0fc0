package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"holocene/internal/types"
)

// memExecutor keeps nested expected values in memory and answers the
// procedures ExpectedValueRepository calls.
type memExecutor struct {
	nextID    int64
	txCount   int
	evs       map[int64]Row
	scenarios map[int64][]Row
}

func newMemExecutor() *memExecutor {
	return &memExecutor{evs: map[int64]Row{}, scenarios: map[int64][]Row{}}
}

func (m *memExecutor) Query(_ context.Context, cmd Command, params Params) ([]Row, error) {
	id, _ := paramValue(params, "ExpectedValueId").(int64)
	switch cmd.Text {
	case "research.GetExpectedValueById":
		if row, ok := m.evs[id]; ok {
			return []Row{row}, nil
		}
		return []Row{}, nil
	case "research.GetExpectedValueNestedScenarios":
		return m.scenarios[id], nil
	}
	return nil, fmt.Errorf("unexpected query %s", cmd)
}

func (m *memExecutor) Scalar(_ context.Context, cmd Command, params Params) (any, error) {
	switch cmd.Text {
	case "research.UpsertNestedExpectedValue":
		p, _ := params.Get("ExpectedValueId")
		dest := p.Dest.(*int64)
		if *dest == 0 {
			m.nextID++
			*dest = m.nextID
		}
		m.evs[*dest] = Row{
			"ExpectedValueId": *dest,
			"Symbol":          paramValue(params, "Symbol"),
			"MetricTypeCode":  paramValue(params, "MetricType"),
			"OverrideCalc":    paramValue(params, "OverrideCalc"),
			"Price":           paramValue(params, "Price"),
			"Upside":          paramValue(params, "Upside"),
			"ModifiedBy":      paramValue(params, "Username"),
		}
		m.scenarios[*dest] = nil
		// The procedure only assigns its output parameter.
		return nil, nil
	case "research.UpsertNestedExpectedValueScenario":
		evID := paramValue(params, "ExpectedValueId").(int64)
		m.nextID++
		m.scenarios[evID] = append(m.scenarios[evID], Row{
			"ExpectedValueNestedId":         evID,
			"ExpectedValueScenarioNestedId": m.nextID,
			"ScenarioTypeCode":              paramValue(params, "Scenario"),
			"Probability":                   paramValue(params, "Probability"),
			"Price":                         paramValue(params, "Price"),
			"Notes":                         paramValue(params, "Notes"),
			"Username":                      paramValue(params, "Username"),
		})
		return m.nextID, nil
	}
	return nil, fmt.Errorf("unexpected scalar %s", cmd)
}

func (m *memExecutor) Exec(_ context.Context, cmd Command, _ Params) (ExecResult, error) {
	return ExecResult{}, fmt.Errorf("unexpected exec %s", cmd)
}

func (m *memExecutor) InTx(_ context.Context, fn func(tx Executor) error) error {
	m.txCount++
	return fn(m)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestExpectedValueRepository_NestedRoundTrip(t *testing.T) {
	exec := newMemExecutor()
	repo := NewExpectedValueRepository(exec)
	ctx := context.Background()

	ev := types.ExpectedValue{
		Symbol:         "AAPL",
		MetricTypeCode: "EPS",
		OverrideCalc:   true,
		Price:          decimal.RequireFromString("212.40"),
		Upside:         decimal.RequireFromString("0.18"),
	}
	scenarios := []types.ExpectedValueScenario{
		{Scenario: "BULL", Probability: decPtr("0.3"), Price: decPtr("260"), Notes: "services re-rate"},
		{Scenario: "BEAR", Probability: decPtr("0.2"), Price: decPtr("150")},
	}

	id, err := repo.UpdateNestedExpectedValueScenarios(ctx, ev, scenarios, "jdoe", 10, "BASE")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Equal(t, 1, exec.txCount)

	got, err := repo.GetExpectedValue(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ExpectedValueID)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "EPS", got.MetricTypeCode)
	assert.True(t, got.OverrideCalc)
	assert.True(t, ev.Price.Equal(got.Price))
	assert.True(t, ev.Upside.Equal(got.Upside))

	legs, err := repo.GetExpectedValueNestedScenarios(ctx, id)
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, "BULL", legs[0].Scenario)
	assert.Equal(t, "jdoe", legs[0].Username)
	assert.Equal(t, "services re-rate", legs[0].Notes)
	require.NotNil(t, legs[0].Price)
	assert.True(t, decimal.NewFromInt(260).Equal(*legs[0].Price))
	assert.Equal(t, id, legs[1].ExpectedValueID)
}

func TestExpectedValueRepository_GetExpectedValue_Unknown(t *testing.T) {
	repo := NewExpectedValueRepository(newMemExecutor())

	got, err := repo.GetExpectedValue(context.Background(), 404)
	require.NoError(t, err)
	assert.Equal(t, types.ExpectedValue{}, got)
}

func TestExpectedValueRepository_UpdateNested_ScenarioFailure(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewExpectedValueRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Proc("research.UpsertNestedExpectedValue"), mock.Anything).Return(int64(5), nil)
	exec.On("Scalar", ctx, Proc("research.UpsertNestedExpectedValueScenario"), mock.Anything).
		Return(nil, errors.New("constraint violation"))

	_, err := repo.UpdateNestedExpectedValueScenarios(ctx, types.ExpectedValue{Symbol: "AAPL"},
		[]types.ExpectedValueScenario{{Scenario: "BULL"}}, "jdoe", 1, "BASE")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "UpdateNestedExpectedValueScenarios", appErr.Details["operation"])
}

func TestExpectedValueRepository_GetExpectedValues_Empty(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewExpectedValueRepository(exec)

	got, err := repo.GetExpectedValues(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	exec.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything)
}

func TestExpectedValueRepository_GetExpectedValues_ExpandsInList(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewExpectedValueRepository(exec)
	ctx := context.Background()

	exec.On("Query", ctx, mock.MatchedBy(func(cmd Command) bool {
		return cmd.Kind == KindText && strings.Contains(cmd.Text, "in (@ExpectedValueId1,@ExpectedValueId2)")
	}), hasParams("ExpectedValueId1", "ExpectedValueId2")).
		Return([]Row{{"ExpectedValueId": int64(3), "Symbol": "AAPL"}, {"ExpectedValueId": int64(8), "Symbol": "MSFT"}}, nil)

	got, err := repo.GetExpectedValues(ctx, []int64{3, 8})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "MSFT", got[1].Symbol)
	exec.AssertExpectations(t)
}
