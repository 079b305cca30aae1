package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/api"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultSpendDays = 30

// Recommender is the advisory read path consumed by the handler.
type Recommender interface {
	Recommendations(ctx context.Context) ([]domain.Recommendation, error)
	Probe(ctx context.Context) bool
}

// Engine is the remediation surface consumed by the handler.
type Engine interface {
	Execute(ctx context.Context, checkID string, dryRun bool) domain.ImplementationOutcome
	ExecuteAutomation(ctx context.Context, automationID string, dryRun bool) (domain.ImplementationOutcome, bool)
	Automations() []domain.Automation
}

// SpendReader is the billed-spend read path consumed by the handler.
type SpendReader interface {
	GetServiceSpend(ctx context.Context, service string, days int) ([]domain.SpendRecord, error)
}

type Handler struct {
	recommender Recommender
	engine      Engine
	spend       SpendReader
}

func NewHandler(recommender Recommender, engine Engine, spend SpendReader) *Handler {
	return &Handler{
		recommender: recommender,
		engine:      engine,
		spend:       spend,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	connected := h.recommender.Probe(ctx)
	status := "healthy"
	if !connected {
		status = "unhealthy"
	}

	writeJSON(ctx, w, http.StatusOK, api.Health{
		Status:        status,
		Timestamp:     time.Now(),
		AWSConnection: connected,
	})
}

func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recommendations, err := h.recommender.Recommendations(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to fetch recommendations")
		writeError(ctx, w, http.StatusInternalServerError, "failed to fetch recommendations")
		return
	}

	response := api.RecommendationList{
		Recommendations: make([]api.Recommendation, 0, len(recommendations)),
		TotalCount:      len(recommendations),
		LastRefresh:     time.Now(),
	}
	for _, rec := range recommendations {
		response.TotalSavings += rec.EstimatedSavings
		response.Recommendations = append(response.Recommendations, toAPIRecommendation(rec))
	}

	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) ImplementRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checkID := chi.URLParam(r, "checkID")

	request, err := decodeImplementationRequest(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome := h.engine.Execute(ctx, checkID, request.DryRun)
	writeJSON(ctx, w, http.StatusOK, toAPIOutcome(outcome))
}

func (h *Handler) ListAutomations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	automations := h.engine.Automations()
	response := api.AutomationList{
		Automations: make([]api.Automation, 0, len(automations)),
	}
	for _, a := range automations {
		response.Automations = append(response.Automations, api.Automation{
			ID:               a.ID,
			Name:             a.Name,
			Description:      a.Description,
			Service:          a.Service,
			RiskLevel:        a.RiskLevel,
			EstimatedSavings: a.EstimatedSavings,
		})
	}

	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) ExecuteAutomation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	automationID := chi.URLParam(r, "automationID")

	request, err := decodeImplementationRequest(r)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, found := h.engine.ExecuteAutomation(ctx, automationID, request.DryRun)
	if !found {
		writeError(ctx, w, http.StatusNotFound, "automation not found: "+automationID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toAPIOutcome(outcome))
}

func (h *Handler) GetServiceSpend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	service := chi.URLParam(r, "service")

	days := defaultSpendDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	records, err := h.spend.GetServiceSpend(ctx, service, days)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("service", service).Msg("failed to fetch spend")
		writeError(ctx, w, http.StatusInternalServerError, "failed to fetch spend for "+service)
		return
	}

	response := make([]api.SpendRecord, 0, len(records))
	for _, record := range records {
		response = append(response, api.SpendRecord{
			Date:     record.Date,
			Service:  record.Service,
			Amount:   record.Amount,
			Currency: record.Currency,
		})
	}

	writeJSON(ctx, w, http.StatusOK, response)
}

func decodeImplementationRequest(r *http.Request) (api.ImplementationRequest, error) {
	var request api.ImplementationRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil && !errors.Is(err, io.EOF) {
		return api.ImplementationRequest{}, err
	}
	return request, nil
}

func toAPIRecommendation(rec domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		CheckID:           rec.CheckID,
		Category:          string(rec.Category),
		Title:             rec.Title,
		Description:       rec.Description,
		Status:            string(rec.Status),
		EstimatedSavings:  rec.EstimatedSavings,
		CanImplement:      rec.CanImplement,
		AffectedResources: rec.AffectedResources,
		LastUpdated:       rec.LastUpdated,
	}
}

func toAPIOutcome(outcome domain.ImplementationOutcome) api.ImplementationOutcome {
	return api.ImplementationOutcome{
		Success:           outcome.Success,
		Message:           outcome.Message,
		Savings:           outcome.Savings,
		AffectedResources: outcome.AffectedResources,
		DryRun:            outcome.DryRun,
		ExecutedAt:        outcome.ExecutedAt,
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, map[string]string{"error": message})
}
