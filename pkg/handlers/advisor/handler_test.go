package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/api"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecommender struct {
	mock.Mock
}

func (m *mockRecommender) Recommendations(ctx context.Context) ([]domain.Recommendation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *mockRecommender) Probe(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Execute(ctx context.Context, checkID string, dryRun bool) domain.ImplementationOutcome {
	args := m.Called(ctx, checkID, dryRun)
	return args.Get(0).(domain.ImplementationOutcome)
}

func (m *mockEngine) ExecuteAutomation(
	ctx context.Context,
	automationID string,
	dryRun bool,
) (domain.ImplementationOutcome, bool) {
	args := m.Called(ctx, automationID, dryRun)
	return args.Get(0).(domain.ImplementationOutcome), args.Bool(1)
}

func (m *mockEngine) Automations() []domain.Automation {
	args := m.Called()
	return args.Get(0).([]domain.Automation)
}

type mockSpendReader struct {
	mock.Mock
}

func (m *mockSpendReader) GetServiceSpend(
	ctx context.Context,
	service string,
	days int,
) ([]domain.SpendRecord, error) {
	args := m.Called(ctx, service, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SpendRecord), args.Error(1)
}

func setupRouter(recommender *mockRecommender, engine *mockEngine, spend *mockSpendReader) http.Handler {
	handler := NewHandler(recommender, engine, spend)

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/recommendations", handler.ListRecommendations)
		r.Post("/recommendations/{checkID}/implement", handler.ImplementRecommendation)
		r.Get("/automations", handler.ListAutomations)
		r.Post("/automations/{automationID}/execute", handler.ExecuteAutomation)
		r.Get("/spend/{service}", handler.GetServiceSpend)
	})
	return router
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		connected      bool
		expectedStatus string
	}{
		{"connected", true, "healthy"},
		{"disconnected", false, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recommender := &mockRecommender{}
			recommender.On("Probe", mock.Anything).Return(tt.connected)
			router := setupRouter(recommender, &mockEngine{}, &mockSpendReader{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body api.Health
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.expectedStatus, body.Status)
			assert.Equal(t, tt.connected, body.AWSConnection)
		})
	}
}

func TestListRecommendations(t *testing.T) {
	recommender := &mockRecommender{}
	recommender.On("Recommendations", mock.Anything).Return([]domain.Recommendation{
		{
			CheckID:          "idleEC2InstanceCheck",
			Category:         domain.CategoryCostOptimization,
			Title:            "Idle EC2 Instances",
			Status:           domain.StatusWarning,
			EstimatedSavings: 100,
			CanImplement:     true,
		},
		{
			CheckID:          "s3BucketVersioningCheck",
			Category:         domain.CategorySecurity,
			Title:            "S3 Bucket Versioning",
			Status:           domain.StatusError,
			EstimatedSavings: 50,
		},
	}, nil)
	router := setupRouter(recommender, &mockEngine{}, &mockSpendReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.RecommendationList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.TotalCount)
	assert.InDelta(t, 150.0, body.TotalSavings, 0.001)
	require.Len(t, body.Recommendations, 2)
	assert.Equal(t, "idleEC2InstanceCheck", body.Recommendations[0].CheckID)
	assert.Equal(t, "cost_optimization", body.Recommendations[0].Category)
}

func TestListRecommendationsFailure(t *testing.T) {
	recommender := &mockRecommender{}
	recommender.On("Recommendations", mock.Anything).Return(nil, assert.AnError)
	router := setupRouter(recommender, &mockEngine{}, &mockSpendReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestImplementRecommendation(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Execute", mock.Anything, "idleEC2InstanceCheck", true).Return(domain.ImplementationOutcome{
		Success:           true,
		Message:           "would stop 2 idle instances",
		Savings:           16.94,
		AffectedResources: []string{"i-1", "i-2"},
		DryRun:            true,
		ExecutedAt:        time.Now(),
	})
	router := setupRouter(&mockRecommender{}, engine, &mockSpendReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/v1/recommendations/idleEC2InstanceCheck/implement",
		strings.NewReader(`{"dry_run": true}`),
	)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.ImplementationOutcome
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.True(t, body.DryRun)
	assert.Equal(t, []string{"i-1", "i-2"}, body.AffectedResources)
}

func TestImplementRecommendationEmptyBodyDefaultsToWetRun(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Execute", mock.Anything, "idleEC2InstanceCheck", false).Return(domain.ImplementationOutcome{
		Success:    true,
		Message:    "no idle instances found",
		ExecutedAt: time.Now(),
	})
	router := setupRouter(&mockRecommender{}, engine, &mockSpendReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/idleEC2InstanceCheck/implement", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	engine.AssertCalled(t, "Execute", mock.Anything, "idleEC2InstanceCheck", false)
}

func TestImplementRecommendationUnknownCheckStaysOK(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Execute", mock.Anything, "doesNotExist", false).Return(domain.ImplementationOutcome{
		Success:           false,
		Message:           `no automation available for check "doesNotExist"`,
		AffectedResources: []string{},
		ExecutedAt:        time.Now(),
	})
	router := setupRouter(&mockRecommender{}, engine, &mockSpendReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/doesNotExist/implement", nil)
	router.ServeHTTP(rec, req)

	// An unmapped check is a normal outcome, not a transport error.
	require.Equal(t, http.StatusOK, rec.Code)
	var body api.ImplementationOutcome
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "doesNotExist")
}

func TestListAutomations(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Automations").Return([]domain.Automation{
		{ID: "stop_idle_instances", Name: "Stop Idle Instances", Service: "EC2", RiskLevel: "Low"},
	})
	router := setupRouter(&mockRecommender{}, engine, &mockSpendReader{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/automations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body api.AutomationList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Automations, 1)
	assert.Equal(t, "stop_idle_instances", body.Automations[0].ID)
}

func TestExecuteAutomationNotFound(t *testing.T) {
	engine := &mockEngine{}
	engine.On("ExecuteAutomation", mock.Anything, "unknown", false).
		Return(domain.ImplementationOutcome{}, false)
	router := setupRouter(&mockRecommender{}, engine, &mockSpendReader{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/automations/unknown/execute", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetServiceSpend(t *testing.T) {
	spend := &mockSpendReader{}
	spend.On("GetServiceSpend", mock.Anything, "EC2", 7).Return([]domain.SpendRecord{
		{Service: "EC2", Amount: 12.5, Currency: "USD"},
	}, nil)
	router := setupRouter(&mockRecommender{}, &mockEngine{}, spend)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spend/EC2?days=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []api.SpendRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "EC2", body[0].Service)
	assert.InDelta(t, 12.5, body[0].Amount, 0.001)
}

func TestGetServiceSpendInvalidDays(t *testing.T) {
	router := setupRouter(&mockRecommender{}, &mockEngine{}, &mockSpendReader{})

	for _, days := range []string{"abc", "-1", "0"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spend/EC2?days="+days, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}
