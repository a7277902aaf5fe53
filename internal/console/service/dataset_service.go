package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/dataset"
	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/metrics"
)

var ErrDatasetUnavailable = errors.New("dataset unavailable")

// FrameLoader is satisfied by *dataset.Loader.
type FrameLoader interface {
	Load(kind domain.DatasetKind) *dataset.Frame
}

// DatasetService validates splits once and serves the cached summary.
// A failed load is not cached, so a file dropped in later is picked up.
type DatasetService struct {
	loader  FrameLoader
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu        sync.Mutex // guards the maps only
	loading   map[domain.DatasetKind]*sync.Mutex
	summaries map[domain.DatasetKind]domain.ValidationSummary
}

func NewDatasetService(loader FrameLoader, m *metrics.Metrics, logger *zap.Logger) *DatasetService {
	if m == nil {
		m = metrics.New(nil)
	}
	return &DatasetService{
		loader:    loader,
		metrics:   m,
		logger:    logger.Named("dataset-service"),
		loading:   make(map[domain.DatasetKind]*sync.Mutex),
		summaries: make(map[domain.DatasetKind]domain.ValidationSummary),
	}
}

// Summary reads a split at most once at a time. Loads of different kinds
// run concurrently.
func (s *DatasetService) Summary(ctx context.Context, kind domain.DatasetKind) (domain.ValidationSummary, error) {
	kindMu := s.kindLock(kind)
	kindMu.Lock()
	defer kindMu.Unlock()

	if cached, ok := s.cached(kind); ok {
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return domain.ValidationSummary{}, err
	}

	frame := s.loader.Load(kind)
	if frame == nil {
		return domain.ValidationSummary{}, ErrDatasetUnavailable
	}

	summary := dataset.Validate(kind, frame)
	s.mu.Lock()
	s.summaries[kind] = summary
	s.mu.Unlock()
	s.metrics.DatasetRows.WithLabelValues(string(kind)).Set(float64(summary.Rows))

	s.logger.Info("dataset validated",
		zap.String("kind", string(kind)),
		zap.Int("rows", summary.Rows),
		zap.Int("missing", summary.MissingValues))
	return summary, nil
}

func (s *DatasetService) kindLock(kind domain.DatasetKind) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.loading[kind]
	if !ok {
		m = &sync.Mutex{}
		s.loading[kind] = m
	}
	return m
}

func (s *DatasetService) cached(kind domain.DatasetKind) (domain.ValidationSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.summaries[kind]
	return v, ok
}
