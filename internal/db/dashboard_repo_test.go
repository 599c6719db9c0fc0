package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"holocene/internal/types"
)

func TestDashboardRepository_GetDashAssetID_NormalizesTopic(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Text(dashAssetIDQuery), mock.MatchedBy(func(p Params) bool {
		return paramValue(p, "Topic") == "CONSUMER SPEND"
	})).Return(int64(12), nil)

	id, err := repo.GetDashAssetID(ctx, "  Consumer Spend ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestDashboardRepository_GetDashAssetID_Unknown(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Text(dashAssetIDQuery), mock.Anything).Return(nil, nil)

	id, err := repo.GetDashAssetID(ctx, "nothing")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestDashboardRepository_UpsertDashQuery_Insert(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Text(insertDashQueryQuery), mock.MatchedBy(func(p Params) bool {
		_, hasID := p.Get("DashQueryId")
		span, _ := p.Get("SpanId")
		return !hasID && span.Value == (*int64)(nil) && paramValue(p, "DisplayOrder") == 3
	})).Return(int64(88), nil)

	id, err := repo.UpsertDashQuery(ctx, types.DashQuery{QueryName: "sales", Query: "select 1", DisplayOrder: 3}, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(88), id)
	exec.AssertExpectations(t)
}

func TestDashboardRepository_UpsertDashQuery_Update(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	statID := int64(4)
	exec.On("Scalar", ctx, Text(updateDashQueryQuery), mock.MatchedBy(func(p Params) bool {
		_, hasOrder := p.Get("DisplayOrder")
		return paramValue(p, "DashQueryId") == int64(21) && paramValue(p, "StatId") == &statID && !hasOrder
	})).Return(int64(21), nil)

	id, err := repo.UpsertDashQuery(ctx, types.DashQuery{DashQueryID: 21, StatID: &statID, DisplayOrder: 9}, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(21), id)
}

func TestDashboardRepository_UpsertDashChart(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Text(insertDashChartQuery), hasParams("Title", "Aesthetic", "Username")).Return(int64(5), nil)
	exec.On("Scalar", ctx, Text(updateDashChartQuery), hasParams("Title", "Aesthetic", "Username", "DashChartId")).Return(int64(6), nil)

	id, err := repo.UpsertDashChart(ctx, 0, "Card spend", "{}", "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	id, err = repo.UpsertDashChart(ctx, 6, "Card spend YoY", "{}", "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestDashboardRepository_SetDashChartQueries(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Exec", ctx, Text(deleteDashChartQueries), hasParams("DashChartId")).Return(ExecResult{RowsAffected: 2}, nil)
	exec.On("Scalar", ctx, Text(insertDashChartQueryLink), mock.MatchedBy(func(p Params) bool {
		return paramValue(p, "DashQueryId") == int64(30) && paramValue(p, "DisplayOrder") == 1
	})).Return(int64(100), nil).Once()
	exec.On("Scalar", ctx, Text(insertDashChartQueryLink), mock.MatchedBy(func(p Params) bool {
		return paramValue(p, "DashQueryId") == int64(31) && paramValue(p, "DisplayOrder") == 2
	})).Return(int64(101), nil).Once()

	require.NoError(t, repo.SetDashChartQueries(ctx, 6, []int64{30, 31}, "jdoe"))
	exec.AssertExpectations(t)
}

func TestDashboardRepository_SetDashChartQueries_RequiresChart(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)

	err := repo.SetDashChartQueries(context.Background(), 0, []int64{1}, "jdoe")
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeValidationMissingField, appErr.Code)
}

func TestDashboardRepository_GetDashQuery_NullCatalogIDs(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Query", ctx, Text(dashQueryByIDQuery), hasParams("DashQueryId")).Return([]Row{
		{"DashQueryId": int64(21), "QueryName": "sales", "SpanId": nil, "StatId": int64(4), "IsActive": true, "ModifiedBy": "jdoe"},
	}, nil)

	got, err := repo.GetDashQuery(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, "sales", got.QueryName)
	assert.Nil(t, got.SpanID)
	require.NotNil(t, got.StatID)
	assert.Equal(t, int64(4), *got.StatID)
}

func TestDashboardRepository_UpsertDashView(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Proc("data.UpsertDashView"),
		hasParams("DashViewId", "DashViewName", "DashViewDesc", "Asset", "Username")).Return(int64(3), nil)

	id, err := repo.UpsertDashView(ctx, types.DashView{Name: "Retail", Asset: "WMT"}, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func chartIDIs(id int64) any {
	return mock.MatchedBy(func(p Params) bool { return paramValue(p, "DashChartId") == id })
}

func TestDashboardRepository_GetDashViewCharts_AttachesQueries(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Query", ctx, Proc("data.GetDashViewCharts"), hasParams("DashViewId")).Return([]Row{
		{"DashViewChartId": int64(1), "DashChartId": int64(10), "Title": "Sales", "DisplayWidth": int64(6), "DisplayHeight": nil},
		{"DashViewChartId": int64(2), "DashChartId": int64(11), "Title": "Map", "ChartUrl": "https://charts.local/map"},
		{"DashViewChartId": int64(3), "DashChartId": int64(12), "Title": "Empty"},
	}, nil)
	exec.On("Query", mock.Anything, Proc("data.GetDashChartQueries"), chartIDIs(10)).
		Return([]Row{{"DashQueryId": int64(100), "QueryName": "sales", "SpanId": nil}}, nil)
	exec.On("Query", mock.Anything, Proc("data.GetDashChartQueries"), chartIDIs(12)).
		Return([]Row{}, nil)

	charts, err := repo.GetDashViewCharts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, charts, 3)

	assert.Equal(t, 6, charts[0].DisplayWidth)
	assert.Equal(t, types.DefaultChartHeight, charts[0].DisplayHeight)
	require.Len(t, charts[0].Queries, 1)
	assert.Equal(t, int64(100), charts[0].Queries[0].DashQueryID)
	assert.Nil(t, charts[0].Queries[0].SpanID)

	assert.True(t, charts[1].Embedded())
	assert.NotNil(t, charts[1].Queries)
	assert.Empty(t, charts[1].Queries)
	assert.Equal(t, types.DefaultChartWidth, charts[2].DisplayWidth)
	assert.Empty(t, charts[2].Queries)

	exec.AssertNotCalled(t, "Query", mock.Anything, Proc("data.GetDashChartQueries"), chartIDIs(11))
	exec.AssertExpectations(t)
}

func TestDashboardRepository_GetDashViewCharts_QueryFailure(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Query", ctx, Proc("data.GetDashViewCharts"), mock.Anything).
		Return([]Row{{"DashChartId": int64(10)}}, nil)
	exec.On("Query", mock.Anything, Proc("data.GetDashChartQueries"), mock.Anything).
		Return(nil, errors.New("login failed"))

	charts, err := repo.GetDashViewCharts(ctx, 5)
	require.Error(t, err)
	assert.Nil(t, charts)
}

func TestDashboardRepository_UpsertDashViewChart(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Scalar", ctx, Proc("data.UpsertDashViewChart"),
		hasParams("DashViewId", "DashChartId", "DisplayOrder", "Username")).Return(int64(31), nil)

	id, err := repo.UpsertDashViewChart(ctx, 5, 10, 2, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, int64(31), id)

	_, err = repo.UpsertDashViewChart(ctx, 5, 0, 2, "jdoe")
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeValidationMissingField, appErr.Code)
	exec.AssertNumberOfCalls(t, "Scalar", 1)
}

func TestDashboardRepository_UpdateDashViewChartStatus(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Exec", ctx, Text(updateDashViewChartStatusQuery), mock.MatchedBy(func(p Params) bool {
		return paramValue(p, "IsActive") == false &&
			paramValue(p, "Username") == "jdoe" &&
			paramValue(p, "DashViewChartId") == int64(31)
	})).Return(ExecResult{RowsAffected: 1}, nil)

	require.NoError(t, repo.UpdateDashViewChartStatus(ctx, 31, false, "jdoe"))
	require.Error(t, repo.UpdateDashViewChartStatus(ctx, 0, true, "jdoe"))
	exec.AssertNumberOfCalls(t, "Exec", 1)
}

func TestDashboardRepository_UpdateDashViewChartSequence(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Exec", ctx, Text(updateDashViewChartSequenceQuery),
		hasParams("DisplayOrder", "Username", "DashViewChartId")).Return(ExecResult{RowsAffected: 1}, nil)

	require.NoError(t, repo.UpdateDashViewChartSequence(ctx, 31, 4, "jdoe"))
	exec.AssertExpectations(t)
}

func TestDashboardRepository_CloneDashView(t *testing.T) {
	exec := new(mockExecutor)
	repo := NewDashboardRepository(exec)
	ctx := context.Background()

	exec.On("Exec", ctx, Proc("data.CloneDashView"), mock.MatchedBy(func(p Params) bool {
		return paramValue(p, "DashViewId") == int64(5) && paramValue(p, "Asset") == "RETAIL"
	})).Return(ExecResult{}, errors.New("view not found"))

	err := repo.CloneDashView(ctx, 5, "RETAIL", "jdoe")
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
	assert.Equal(t, "CloneDashView", appErr.Details["operation"])
}
