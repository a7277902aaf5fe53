package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/console/service"
	"github.com/xela07ax/netsec-analytics/internal/domain"
)

// DashboardService is what the live dashboard needs from the service layer.
type DashboardService interface {
	Snapshot(seed uint64) (domain.Snapshot, uint64)
	Threats(count int, seed uint64) ([]domain.ThreatEvent, uint64, error)
	Overview(seed uint64) domain.Overview
	Predict(seed uint64) (domain.Prediction, uint64)
}

type DashboardHandler struct {
	service DashboardService
	logger  *zap.Logger
}

func NewDashboardHandler(s DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, logger: logger.Named("dashboard-handler")}
}

// Routes is mounted under /api/v1/dashboard.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/snapshot", withSeed(h.Snapshot))
	r.Get("/threats", withSeed(h.Threats))
	r.Get("/overview", withSeed(h.Overview))
	r.Get("/predict", withSeed(h.Predict))
	return r
}

func (h *DashboardHandler) Snapshot(w http.ResponseWriter, r *http.Request, seed uint64) {
	snap, used := h.service.Snapshot(seed)
	writeSeeded(w, used, snap)
}

func (h *DashboardHandler) Threats(w http.ResponseWriter, r *http.Request, seed uint64) {
	count := 0 // service default
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "count must be an integer")
			return
		}
		count = n
		if count == 0 {
			writeError(w, http.StatusBadRequest, "count must be positive")
			return
		}
	}

	events, used, err := h.service.Threats(count, seed)
	if errors.Is(err, service.ErrInvalidCount) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("threat generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to generate threats")
		return
	}
	writeSeeded(w, used, events)
}

func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request, seed uint64) {
	ov := h.service.Overview(seed)
	writeSeeded(w, ov.Seed, ov)
}

func (h *DashboardHandler) Predict(w http.ResponseWriter, r *http.Request, seed uint64) {
	p, used := h.service.Predict(seed)
	writeSeeded(w, used, p)
}
