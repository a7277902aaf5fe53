package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

// BriefingService backs the executive pages.
type BriefingService interface {
	ExecutiveSummary(seed uint64) (domain.ExecutiveSummary, uint64)
	Forecast(seed uint64) ([]domain.ForecastDay, uint64)
	Competitors() []domain.CompetitorProfile
	ThreatCategories() []domain.ThreatCategory
	BoardMetrics() domain.BoardMetrics
}

type BriefingHandler struct {
	service BriefingService
}

func NewBriefingHandler(s BriefingService) *BriefingHandler {
	return &BriefingHandler{service: s}
}

// Routes is mounted under /api/v1/briefing.
func (h *BriefingHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", withSeed(h.Summary))
	r.Get("/forecast", withSeed(h.Forecast))
	r.Get("/competitors", h.Competitors)
	r.Get("/threat-categories", h.ThreatCategories)
	r.Get("/board", h.Board)
	return r
}

func (h *BriefingHandler) Summary(w http.ResponseWriter, r *http.Request, seed uint64) {
	s, used := h.service.ExecutiveSummary(seed)
	writeSeeded(w, used, s)
}

func (h *BriefingHandler) Forecast(w http.ResponseWriter, r *http.Request, seed uint64) {
	days, used := h.service.Forecast(seed)
	writeSeeded(w, used, days)
}

func (h *BriefingHandler) Competitors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Competitors())
}

func (h *BriefingHandler) ThreatCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ThreatCategories())
}

func (h *BriefingHandler) Board(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.BoardMetrics())
}
