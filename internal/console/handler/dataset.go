package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/console/service"
	"github.com/xela07ax/netsec-analytics/internal/domain"
)

type DatasetService interface {
	Summary(ctx context.Context, kind domain.DatasetKind) (domain.ValidationSummary, error)
}

type DatasetHandler struct {
	service DatasetService
	logger  *zap.Logger
}

func NewDatasetHandler(s DatasetService, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{service: s, logger: logger.Named("dataset-handler")}
}

func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{kind}/summary", h.Summary)
	return r
}

func (h *DatasetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseDatasetKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	summary, err := h.service.Summary(r.Context(), kind)
	switch {
	case errors.Is(err, service.ErrDatasetUnavailable):
		writeError(w, http.StatusServiceUnavailable, "dataset "+string(kind)+" is not available")
	case err != nil:
		h.logger.Error("dataset summary failed", zap.String("kind", string(kind)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to summarize dataset")
	default:
		writeJSON(w, http.StatusOK, summary)
	}
}
