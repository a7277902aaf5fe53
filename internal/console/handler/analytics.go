package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

type AnalyticsService interface {
	ModelPerformance() domain.ModelPerformance
	FeatureImportance() []domain.FeatureWeight
	AttackPatterns() []domain.AttackPattern
	Benchmarks() []domain.Benchmark
	BusinessImpact() domain.BusinessImpact
}

// AnalyticsHandler serves the static model analytics. None of it is random.
type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(s AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/model", h.Model)
	r.Get("/features", h.Features)
	r.Get("/attack-patterns", h.AttackPatterns)
	r.Get("/benchmarks", h.Benchmarks)
	r.Get("/impact", h.Impact)
	return r
}

func (h *AnalyticsHandler) Model(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ModelPerformance())
}

func (h *AnalyticsHandler) Features(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.FeatureImportance())
}

func (h *AnalyticsHandler) AttackPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.AttackPatterns())
}

func (h *AnalyticsHandler) Benchmarks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Benchmarks())
}

func (h *AnalyticsHandler) Impact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.BusinessImpact())
}
