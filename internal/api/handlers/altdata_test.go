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

type mockAltDataService struct {
	mock.Mock
}

func (m *mockAltDataService) GetDashboardDetails(ctx context.Context) ([]types.AltDataDashboardDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.AltDataDashboardDetail), args.Error(1)
}

func (m *mockAltDataService) GetBreakdownView(ctx context.Context, ticker string) ([]types.AltDataBreakdown, error) {
	args := m.Called(ctx, ticker)
	return args.Get(0).([]types.AltDataBreakdown), args.Error(1)
}

func (m *mockAltDataService) GetFilterView(ctx context.Context, breakdownID int64) ([]types.AltDataFilter, error) {
	args := m.Called(ctx, breakdownID)
	return args.Get(0).([]types.AltDataFilter), args.Error(1)
}

func (m *mockAltDataService) GetPeriodTypeStatView(ctx context.Context, breakdownID int64) ([]types.AltDataPeriodTypeStat, error) {
	args := m.Called(ctx, breakdownID)
	return args.Get(0).([]types.AltDataPeriodTypeStat), args.Error(1)
}

func (m *mockAltDataService) GetRecordView(ctx context.Context, f types.RecordViewFilter) ([]types.AltDataRecord, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]types.AltDataRecord), args.Error(1)
}

func (m *mockAltDataService) GetStatView(ctx context.Context) ([]types.AltDataStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.AltDataStat), args.Error(1)
}

func (m *mockAltDataService) InsertDashQuery(ctx context.Context, q types.AltDataDashQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func newAltDataRouter(svc AltDataService) http.Handler {
	return mount("/v1/altdata", NewAltDataHandler(svc, testValidator(), zerolog.Nop()).RegisterRoutes)
}

func TestAltData_Records_FilterOptional(t *testing.T) {
	svc := &mockAltDataService{}
	svc.On("GetRecordView", mock.Anything, types.RecordViewFilter{
		DataSourceID: 1, AssetID: 2, MetricID: 3, StatID: 5, PeriodTypeID: 6,
	}).Return([]types.AltDataRecord{{AssetID: 2}}, nil)

	rec := do(t, newAltDataRouter(svc), http.MethodGet,
		"/v1/altdata/records?datasource_id=1&asset_id=2&metric_id=3&stat_id=5&period_type_id=6", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeList[types.AltDataRecord](t, rec).Count)
	svc.AssertExpectations(t)
}

func TestAltData_Records_MissingID(t *testing.T) {
	svc := &mockAltDataService{}

	rec := do(t, newAltDataRouter(svc), http.MethodGet, "/v1/altdata/records?datasource_id=1&asset_id=2", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, string(types.ErrCodeValidationMissingField), detail.Code)
	assert.Equal(t, "metric_id is required", detail.Message)
}

func TestAltData_Records_BadNumber(t *testing.T) {
	rec := do(t, newAltDataRouter(&mockAltDataService{}), http.MethodGet, "/v1/altdata/records?datasource_id=one", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationInvalidNumber), decodeError(t, rec).Code)
}

func TestAltData_Filters(t *testing.T) {
	svc := &mockAltDataService{}
	svc.On("GetFilterView", mock.Anything, int64(17)).Return([]types.AltDataFilter{}, nil)

	rec := do(t, newAltDataRouter(svc), http.MethodGet, "/v1/altdata/breakdowns/17/filters", "")

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestAltData_Breakdowns_RequiresTicker(t *testing.T) {
	rec := do(t, newAltDataRouter(&mockAltDataService{}), http.MethodGet, "/v1/altdata/breakdowns", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAltData_InsertDashQuery(t *testing.T) {
	svc := &mockAltDataService{}
	q := types.AltDataDashQuery{QueryName: "card spend", QueryDesc: "weekly", Aesthetic: "line", UserID: 9}
	svc.On("InsertDashQuery", mock.Anything, q).Return(int64(301), nil)

	rec := do(t, newAltDataRouter(svc), http.MethodPost, "/v1/altdata/dash-queries",
		`{"query_name":"card spend","query_desc":"weekly","aesthetic":"line","user_id":9}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(301), decodeOne[map[string]int64](t, rec)["dash_query_id"])
}

func TestAltData_InsertDashQuery_NameRequired(t *testing.T) {
	svc := &mockAltDataService{}

	rec := do(t, newAltDataRouter(svc), http.MethodPost, "/v1/altdata/dash-queries", `{"query_desc":"weekly"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "InsertDashQuery", mock.Anything, mock.Anything)
}
