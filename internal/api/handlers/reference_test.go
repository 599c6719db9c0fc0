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

// Expected values, earnings and people share this file; their handlers are
// thin pass-throughs.

type mockExpectedValueService struct {
	mock.Mock
}

func (m *mockExpectedValueService) GetExpectedValueIdeaRecommendations(ctx context.Context) ([]types.ExpectedValueIdeaRecommendation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.ExpectedValueIdeaRecommendation), args.Error(1)
}

func (m *mockExpectedValueService) GetExpectedValue(ctx context.Context, id int64) (types.ExpectedValue, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.ExpectedValue), args.Error(1)
}

func (m *mockExpectedValueService) GetExpectedValues(ctx context.Context, ids []int64) ([]types.ExpectedValue, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]types.ExpectedValue), args.Error(1)
}

func (m *mockExpectedValueService) GetExpectedValuesLatest(ctx context.Context) ([]types.ExpectedValueLatest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.ExpectedValueLatest), args.Error(1)
}

func (m *mockExpectedValueService) GetExpectedValueNestedScenarios(ctx context.Context, id int64) ([]types.ExpectedValueScenario, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]types.ExpectedValueScenario), args.Error(1)
}

type mockEarningsService struct {
	mock.Mock
}

func (m *mockEarningsService) GetEarningsDetails(ctx context.Context, symbol, username string) ([]types.EarningsDetails, error) {
	args := m.Called(ctx, symbol, username)
	return args.Get(0).([]types.EarningsDetails), args.Error(1)
}

func (m *mockEarningsService) GetEarningsPreviews(ctx context.Context, symbol, username string, previewID int64) ([]types.EarningsPreview, error) {
	args := m.Called(ctx, symbol, username, previewID)
	return args.Get(0).([]types.EarningsPreview), args.Error(1)
}

func (m *mockEarningsService) GetEarningsPreviewMetrics(ctx context.Context, previewID int64) ([]types.PreviewMetric, error) {
	args := m.Called(ctx, previewID)
	return args.Get(0).([]types.PreviewMetric), args.Error(1)
}

func (m *mockEarningsService) GetStreetEvents(ctx context.Context, eventTypeCode string) ([]types.StreetEvent, error) {
	args := m.Called(ctx, eventTypeCode)
	return args.Get(0).([]types.StreetEvent), args.Error(1)
}

type mockPeopleService struct {
	mock.Mock
}

func (m *mockPeopleService) GetAnalysts(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *mockPeopleService) GetUsers(ctx context.Context) ([]types.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *mockPeopleService) GetUserCustomSettings(ctx context.Context, fieldGroup string) ([]types.UserCustomSetting, error) {
	args := m.Called(ctx, fieldGroup)
	return args.Get(0).([]types.UserCustomSetting), args.Error(1)
}

func (m *mockPeopleService) UpsertUserCustomSetting(ctx context.Context, setting types.UserCustomSetting) (int64, error) {
	args := m.Called(ctx, setting)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPeopleService) GetTweets(ctx context.Context, username string, tweetID int) ([]types.Tweet, error) {
	args := m.Called(ctx, username, tweetID)
	return args.Get(0).([]types.Tweet), args.Error(1)
}

func TestExpectedValues_ListByIDs(t *testing.T) {
	svc := &mockExpectedValueService{}
	svc.On("GetExpectedValues", mock.Anything, []int64{10, 11}).
		Return([]types.ExpectedValue{{ExpectedValueID: 10}, {ExpectedValueID: 11}}, nil)
	router := mount("/v1/expected-values", NewExpectedValueHandler(svc, zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodGet, "/v1/expected-values?ids=10,11", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decodeList[types.ExpectedValue](t, rec).Count)

	rec = do(t, router, http.MethodGet, "/v1/expected-values", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/expected-values?ids=10,x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationInvalidNumber), decodeError(t, rec).Code)
}

func TestExpectedValues_GetAndScenarios(t *testing.T) {
	svc := &mockExpectedValueService{}
	svc.On("GetExpectedValue", mock.Anything, int64(10)).Return(types.ExpectedValue{ExpectedValueID: 10, Symbol: "AAPL"}, nil)
	svc.On("GetExpectedValueNestedScenarios", mock.Anything, int64(10)).Return([]types.ExpectedValueScenario{{}, {}, {}}, nil)
	router := mount("/v1/expected-values", NewExpectedValueHandler(svc, zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodGet, "/v1/expected-values/10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", decodeOne[types.ExpectedValue](t, rec).Symbol)

	rec = do(t, router, http.MethodGet, "/v1/expected-values/10/scenarios", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeList[types.ExpectedValueScenario](t, rec).Count)

	rec = do(t, router, http.MethodGet, "/v1/expected-values/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEarnings_Previews(t *testing.T) {
	svc := &mockEarningsService{}
	svc.On("GetEarningsPreviews", mock.Anything, "AAPL", "jdoe", int64(0)).Return([]types.EarningsPreview{{}}, nil)
	router := mount("/v1/earnings", NewEarningsHandler(svc, zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodGet, "/v1/earnings/previews?symbol=AAPL", "", asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestEarnings_StreetEvents_RequiresType(t *testing.T) {
	svc := &mockEarningsService{}
	svc.On("GetStreetEvents", mock.Anything, "ER").Return([]types.StreetEvent{}, nil)
	router := mount("/v1/earnings", NewEarningsHandler(svc, zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodGet, "/v1/earnings/street-events", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/earnings/street-events?type=ER", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPeople_UpsertSetting_UsesCaller(t *testing.T) {
	svc := &mockPeopleService{}
	want := types.UserCustomSetting{Username: "jdoe", FieldGroup: "grid", FieldName: "columns", FieldValue1: "symbol,ev"}
	svc.On("UpsertUserCustomSetting", mock.Anything, want).Return(int64(12), nil)
	router := mount("/v1/people", NewPeopleHandler(svc, testValidator(), zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodPut, "/v1/people/settings",
		`{"field_group":"grid","field_name":"columns","field_value_1":"symbol,ev"}`, asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), decodeOne[map[string]int64](t, rec)["id"])
}

func TestPeople_UpsertSetting_Anonymous(t *testing.T) {
	svc := &mockPeopleService{}
	router := mount("/v1/people", NewPeopleHandler(svc, testValidator(), zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodPut, "/v1/people/settings", `{"field_group":"grid","field_name":"columns"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username is required", decodeError(t, rec).Message)
}

func TestPeople_Tweets(t *testing.T) {
	svc := &mockPeopleService{}
	svc.On("GetTweets", mock.Anything, "asmith", 7).Return([]types.Tweet{{TweetID: 7}}, nil)
	router := mount("/v1/people", NewPeopleHandler(svc, testValidator(), zerolog.Nop()).RegisterRoutes)

	rec := do(t, router, http.MethodGet, "/v1/people/tweets?username=asmith&tweet_id=7", "", asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
