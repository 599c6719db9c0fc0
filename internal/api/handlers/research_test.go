package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"holocene/internal/types"
)

type mockResearchService struct {
	mock.Mock
}

func (m *mockResearchService) GetIdeaAbstractLongTermViews(ctx context.Context) ([]types.ViewOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.ViewOption), args.Error(1)
}

func (m *mockResearchService) GetIdeaAbstractShortTermViews(ctx context.Context) ([]types.ViewOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.ViewOption), args.Error(1)
}

func (m *mockResearchService) GetIdeaAbstracts(ctx context.Context, symbol, username, timestamp string) ([]types.IdeaAbstract, error) {
	args := m.Called(ctx, symbol, username, timestamp)
	return args.Get(0).([]types.IdeaAbstract), args.Error(1)
}

func (m *mockResearchService) GetIdeaAbstractHistory(ctx context.Context, symbol, username string) ([]types.IdeaAbstract, error) {
	args := m.Called(ctx, symbol, username)
	return args.Get(0).([]types.IdeaAbstract), args.Error(1)
}

func (m *mockResearchService) UpdateIdeaAbstract(ctx context.Context, a types.IdeaAbstract) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockResearchService) GetLatestEVAndIdeaAbstract(ctx context.Context, symbol string) ([]types.LatestEVAndIdeaAbstract, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).([]types.LatestEVAndIdeaAbstract), args.Error(1)
}

func (m *mockResearchService) GetIdeas(ctx context.Context, username string) ([]types.Idea, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]types.Idea), args.Error(1)
}

func (m *mockResearchService) GetIdeaStatuses(ctx context.Context) ([]types.IdeaStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.IdeaStatus), args.Error(1)
}

func (m *mockResearchService) GetHotIdeas(ctx context.Context, username string) ([]types.HotIdea, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]types.HotIdea), args.Error(1)
}

func (m *mockResearchService) GetResearchEvent(ctx context.Context, id int) (types.ResearchEvent, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.ResearchEvent), args.Error(1)
}

func (m *mockResearchService) GetResearchEvents(ctx context.Context, symbol string, busDate *time.Time) ([]types.ResearchEvent, error) {
	args := m.Called(ctx, symbol, busDate)
	return args.Get(0).([]types.ResearchEvent), args.Error(1)
}

func (m *mockResearchService) GetAnalystIdeas(ctx context.Context, username, semvType string) ([]types.AnalystIdea, error) {
	args := m.Called(ctx, username, semvType)
	return args.Get(0).([]types.AnalystIdea), args.Error(1)
}

func (m *mockResearchService) GetAnalystIdeaAlerts(ctx context.Context, username, entity string, includeSelf bool) ([]types.AnalystIdea, error) {
	args := m.Called(ctx, username, entity, includeSelf)
	return args.Get(0).([]types.AnalystIdea), args.Error(1)
}

func (m *mockResearchService) GetUpcomingEarnings(ctx context.Context, username, semvType string) ([]types.AnalystIdea, error) {
	args := m.Called(ctx, username, semvType)
	return args.Get(0).([]types.AnalystIdea), args.Error(1)
}

func (m *mockResearchService) GetStaleAnalystIdeas(ctx context.Context, username string) ([]types.AnalystIdea, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]types.AnalystIdea), args.Error(1)
}

func newResearchRouter(svc ResearchService) http.Handler {
	return mount("/v1/research", NewResearchHandler(svc, testValidator(), zerolog.Nop()).RegisterRoutes)
}

func TestResearch_IdeaAbstracts_BlankFiltersPassThrough(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("GetIdeaAbstracts", mock.Anything, "AAPL", "", "").
		Return([]types.IdeaAbstract{{Symbol: "AAPL", Username: "jdoe"}, {Symbol: "AAPL", Username: "asmith"}}, nil)

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/idea-abstracts?symbol=AAPL", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeList[types.IdeaAbstract](t, rec)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "asmith", resp.Data[1].Username)
	svc.AssertExpectations(t)
}

func TestResearch_IdeaAbstracts_RepositoryErrorMapped(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("GetIdeaAbstracts", mock.Anything, "", "", "yesterday").
		Return([]types.IdeaAbstract(nil), types.NewAppError(types.ErrCodeValidationInvalidTimestamp, "timestamp is not a valid date-time", nil))

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/idea-abstracts?timestamp=yesterday", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationInvalidTimestamp), decodeError(t, rec).Code)
}

func TestResearch_History_RequiresSymbol(t *testing.T) {
	svc := &mockResearchService{}

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/idea-abstracts/history", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationMissingField), decodeError(t, rec).Code)
	svc.AssertNotCalled(t, "GetIdeaAbstractHistory", mock.Anything, mock.Anything, mock.Anything)
}

func TestResearch_Ideas_DefaultsToCaller(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("GetIdeas", mock.Anything, "jdoe").Return([]types.Idea{}, nil)

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/ideas", "", asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeList[types.Idea](t, rec).Count)
	svc.AssertExpectations(t)
}

func TestResearch_Events_ParsesBusDate(t *testing.T) {
	svc := &mockResearchService{}
	want := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	svc.On("GetResearchEvents", mock.Anything, "MSFT", mock.MatchedBy(func(d *time.Time) bool {
		return d != nil && d.Equal(want)
	})).Return([]types.ResearchEvent{{Symbol: "MSFT"}}, nil)

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/events?symbol=MSFT&bus_date=2024-06-14", "")

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestResearch_Events_BadDate(t *testing.T) {
	rec := do(t, newResearchRouter(&mockResearchService{}), http.MethodGet, "/v1/research/events?symbol=MSFT&bus_date=06/14/2024", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationInvalidDate), decodeError(t, rec).Code)
}

func TestResearch_Event_ByID(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("GetResearchEvent", mock.Anything, 42).Return(types.ResearchEvent{}, nil)

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/events/42", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/events/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "GetResearchEvent", 1)
}

func TestResearch_UpdateIdeaAbstract(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("UpdateIdeaAbstract", mock.Anything, types.IdeaAbstract{
		Username:          "jdoe",
		Symbol:            "AAPL",
		LongTermViewCode:  "L",
		ShortTermViewCode: "N",
		LongTermThesis:    "services growth",
	}).Return(nil)

	body := `{"symbol":"AAPL","long_term_view_code":"L","short_term_view_code":"N","long_term_thesis":"services growth"}`
	rec := do(t, newResearchRouter(svc), http.MethodPut, "/v1/research/idea-abstracts", body, asCaller("jdoe"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestResearch_UpdateIdeaAbstract_Validation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		caller string
		code   types.ErrorCode
	}{
		{"missing view", `{"symbol":"AAPL","long_term_view_code":"L"}`, "jdoe", types.ErrCodeValidationMissingField},
		{"bad json", `{"symbol":`, "jdoe", types.ErrCodeValidationInvalidJSON},
		{"no caller", `{"symbol":"AAPL","long_term_view_code":"L","short_term_view_code":"N"}`, "", types.ErrCodeValidationMissingField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockResearchService{}
			rec := do(t, newResearchRouter(svc), http.MethodPut, "/v1/research/idea-abstracts", tt.body, asCaller(tt.caller))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, string(tt.code), decodeError(t, rec).Code)
			svc.AssertNotCalled(t, "UpdateIdeaAbstract", mock.Anything, mock.Anything)
		})
	}
}

func TestResearch_AnalystIdeaAlerts_CallerAndFlags(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("GetAnalystIdeaAlerts", mock.Anything, "jdoe", "TMT", true).
		Return([]types.AnalystIdea{{Symbol: "MSFT", IdeaConflict: true}}, nil)

	rec := do(t, newResearchRouter(svc), http.MethodGet,
		"/v1/research/analyst-ideas/alerts?entity=TMT&include_self=true", "", asCaller("jdoe"))

	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeList[types.AnalystIdea](t, rec)
	require.Len(t, out.Data, 1)
	assert.True(t, out.Data[0].IdeaConflict)
}

func TestResearch_AnalystIdeaAlerts_BadFlag(t *testing.T) {
	svc := &mockResearchService{}

	rec := do(t, newResearchRouter(svc), http.MethodGet,
		"/v1/research/analyst-ideas/alerts?include_self=maybe", "", asCaller("jdoe"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetAnalystIdeaAlerts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResearch_UpcomingEarnings_ExplicitUser(t *testing.T) {
	svc := &mockResearchService{}
	svc.On("GetUpcomingEarnings", mock.Anything, "asmith", "Fund").Return([]types.AnalystIdea{}, nil)

	rec := do(t, newResearchRouter(svc), http.MethodGet,
		"/v1/research/upcoming-earnings?username=asmith&semv_type=Fund", "", asCaller("jdoe"))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestResearch_StaleAnalystIdeas_NeedsUser(t *testing.T) {
	svc := &mockResearchService{}

	rec := do(t, newResearchRouter(svc), http.MethodGet, "/v1/research/analyst-ideas/stale", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username query parameter is required", decodeError(t, rec).Message)
}
