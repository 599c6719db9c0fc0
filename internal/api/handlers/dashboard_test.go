package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"holocene/internal/types"
)

type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) GetDashAssets(ctx context.Context) ([]types.DashAsset, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.DashAsset), args.Error(1)
}

func (m *mockDashboardService) GetDashAssetID(ctx context.Context, topic string) (int64, error) {
	args := m.Called(ctx, topic)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDashboardService) GetDashQuery(ctx context.Context, id int64) (types.DashQuery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.DashQuery), args.Error(1)
}

func (m *mockDashboardService) GetDashQueries(ctx context.Context) ([]types.DashQuery, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.DashQuery), args.Error(1)
}

func (m *mockDashboardService) UpsertDashQuery(ctx context.Context, q types.DashQuery, username string) (int64, error) {
	args := m.Called(ctx, q, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDashboardService) GetDashCharts(ctx context.Context) ([]types.DashChart, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.DashChart), args.Error(1)
}

func (m *mockDashboardService) UpsertDashChart(ctx context.Context, id int64, title, aesthetic, username string) (int64, error) {
	args := m.Called(ctx, id, title, aesthetic, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDashboardService) SetDashChartQueries(ctx context.Context, chartID int64, queryIDs []int64, username string) error {
	return m.Called(ctx, chartID, queryIDs, username).Error(0)
}

func (m *mockDashboardService) UpsertDashView(ctx context.Context, v types.DashView, username string) (int64, error) {
	args := m.Called(ctx, v, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDashboardService) GetDashViews(ctx context.Context, topic string) ([]types.DashViewAsset, error) {
	args := m.Called(ctx, topic)
	return args.Get(0).([]types.DashViewAsset), args.Error(1)
}

func (m *mockDashboardService) GetDashViewsByAsset(ctx context.Context, assetID int64) ([]types.DashViewAsset, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).([]types.DashViewAsset), args.Error(1)
}

func (m *mockDashboardService) GetDashViewCache(ctx context.Context, viewID int64) ([]types.DashViewCache, error) {
	args := m.Called(ctx, viewID)
	return args.Get(0).([]types.DashViewCache), args.Error(1)
}

func (m *mockDashboardService) GetDashViewCharts(ctx context.Context, viewID int64) ([]types.DashViewChart, error) {
	args := m.Called(ctx, viewID)
	return args.Get(0).([]types.DashViewChart), args.Error(1)
}

func (m *mockDashboardService) GetDashChartQueries(ctx context.Context, chartID int64) ([]types.DashChartQuery, error) {
	args := m.Called(ctx, chartID)
	return args.Get(0).([]types.DashChartQuery), args.Error(1)
}

func (m *mockDashboardService) UpsertDashViewChart(ctx context.Context, viewID, chartID int64, displayOrder int, username string) (int64, error) {
	args := m.Called(ctx, viewID, chartID, displayOrder, username)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDashboardService) UpdateDashViewChartSequence(ctx context.Context, viewChartID int64, displayOrder int, username string) error {
	return m.Called(ctx, viewChartID, displayOrder, username).Error(0)
}

func (m *mockDashboardService) UpdateDashViewChartStatus(ctx context.Context, viewChartID int64, active bool, username string) error {
	return m.Called(ctx, viewChartID, active, username).Error(0)
}

func (m *mockDashboardService) UpdateDashViewAssetStatus(ctx context.Context, viewAssetID int64, active bool, username string) error {
	return m.Called(ctx, viewAssetID, active, username).Error(0)
}

func (m *mockDashboardService) CloneDashView(ctx context.Context, viewID int64, topic, username string) error {
	return m.Called(ctx, viewID, topic, username).Error(0)
}

func newDashboardRouter(svc DashboardService) http.Handler {
	return mount("/v1/dashboard", NewDashboardHandler(svc, testValidator(), zerolog.Nop()).RegisterRoutes)
}

func TestDashboard_AssetID(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("GetDashAssetID", mock.Anything, "airlines").Return(int64(0), nil)

	rec := do(t, newDashboardRouter(svc), http.MethodGet, "/v1/dashboard/assets/id?topic=airlines", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), decodeOne[map[string]int64](t, rec)["dash_asset_id"])
}

func TestDashboard_UpsertQuery_Insert(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("UpsertDashQuery", mock.Anything, types.DashQuery{QueryName: "revpar", Query: "select 1"}, "jdoe").
		Return(int64(55), nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPost, "/v1/dashboard/queries",
		`{"query_name":"revpar","query":"select 1"}`, asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(55), decodeOne[map[string]int64](t, rec)["dash_query_id"])
}

func TestDashboard_UpsertQuery_UpdateWithoutName(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("UpsertDashQuery", mock.Anything, types.DashQuery{DashQueryID: 55, QueryDesc: "renamed"}, "jdoe").
		Return(int64(55), nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPost, "/v1/dashboard/queries",
		`{"dash_query_id":55,"query_desc":"renamed"}`, asCaller("jdoe"))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestDashboard_UpsertQuery_InsertNeedsName(t *testing.T) {
	svc := &mockDashboardService{}

	rec := do(t, newDashboardRouter(svc), http.MethodPost, "/v1/dashboard/queries", `{"query":"select 1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpsertDashQuery", mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboard_SetChartQueries(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("SetDashChartQueries", mock.Anything, int64(8), []int64{3, 1, 2}, "jdoe").Return(nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPut, "/v1/dashboard/charts/8/queries",
		`{"query_ids":[3,1,2]}`, asCaller("jdoe"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestDashboard_UpsertChart_TitleRequired(t *testing.T) {
	svc := &mockDashboardService{}

	rec := do(t, newDashboardRouter(svc), http.MethodPost, "/v1/dashboard/charts", `{"aesthetic":"bar"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", decodeError(t, rec).Message)
}

func TestDashboard_UpsertView(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("UpsertDashView", mock.Anything, types.DashView{Name: "Airlines", Asset: "AIRLINES"}, "jdoe").
		Return(int64(4), nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPost, "/v1/dashboard/views",
		`{"name":"Airlines","asset":"AIRLINES"}`, asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), decodeOne[map[string]int64](t, rec)["dash_view_id"])
}

func TestDashboard_ViewCharts(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("GetDashViewCharts", mock.Anything, int64(3)).Return([]types.DashViewChart{
		{DashViewChartID: 1, DashChartID: 10, Title: "Sales", DisplayWidth: 3, DisplayHeight: 4,
			Queries: []types.DashChartQuery{{DashQueryID: 100, QueryName: "sales"}}},
	}, nil)

	rec := do(t, newDashboardRouter(svc), http.MethodGet, "/v1/dashboard/views/3/charts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeList[types.DashViewChart](t, rec)
	require.Len(t, out.Data, 1)
	require.Len(t, out.Data[0].Queries, 1)
	assert.Equal(t, "sales", out.Data[0].Queries[0].QueryName)
}

func TestDashboard_Views_TopicRequired(t *testing.T) {
	svc := &mockDashboardService{}

	rec := do(t, newDashboardRouter(svc), http.MethodGet, "/v1/dashboard/views", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetDashViews", mock.Anything, mock.Anything)
}

func TestDashboard_PlaceChart(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("UpsertDashViewChart", mock.Anything, int64(3), int64(10), 2, "jdoe").Return(int64(31), nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPut, "/v1/dashboard/views/3/charts",
		`{"dash_chart_id":10,"display_order":2}`, asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(31), decodeOne[map[string]int64](t, rec)["dash_view_chart_id"])
}

func TestDashboard_PlaceChart_ChartRequired(t *testing.T) {
	svc := &mockDashboardService{}

	rec := do(t, newDashboardRouter(svc), http.MethodPut, "/v1/dashboard/views/3/charts", `{"display_order":2}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "dash_chart_id is required", decodeError(t, rec).Message)
}

func TestDashboard_CloneView(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("CloneDashView", mock.Anything, int64(3), "RETAIL", "jdoe").Return(nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPost, "/v1/dashboard/views/3/clone",
		`{"topic":"RETAIL"}`, asCaller("jdoe"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestDashboard_UpdateViewChart_BothFields(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("UpdateDashViewChartSequence", mock.Anything, int64(31), 0, "jdoe").Return(nil)
	svc.On("UpdateDashViewChartStatus", mock.Anything, int64(31), false, "jdoe").Return(nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPatch, "/v1/dashboard/view-charts/31",
		`{"display_order":0,"is_active":false}`, asCaller("jdoe"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestDashboard_UpdateViewChart_EmptyBody(t *testing.T) {
	svc := &mockDashboardService{}

	rec := do(t, newDashboardRouter(svc), http.MethodPatch, "/v1/dashboard/view-charts/31", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "display_order or is_active is required", decodeError(t, rec).Message)
}

func TestDashboard_UpdateViewAsset(t *testing.T) {
	svc := &mockDashboardService{}
	svc.On("UpdateDashViewAssetStatus", mock.Anything, int64(9), true, "jdoe").Return(nil)

	rec := do(t, newDashboardRouter(svc), http.MethodPatch, "/v1/dashboard/view-assets/9",
		`{"is_active":true}`, asCaller("jdoe"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
