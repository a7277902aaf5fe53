package service

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/metrics"
	"github.com/xela07ax/netsec-analytics/internal/telemetry"
)

var ErrInvalidCount = errors.New("count out of range")

// Options control seeding and limits of DashboardService.
type Options struct {
	// Seed pins every response when non-zero. Per-call seeds still win.
	Seed          uint64
	EventCount    int
	MaxEventCount int
	Clock         func() time.Time
}

// DashboardService turns generator output into API views. Every call builds
// its own random source, so the service is safe for concurrent use.
type DashboardService struct {
	profile telemetry.Profile
	opts    Options
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewDashboardService(profile telemetry.Profile, opts Options, m *metrics.Metrics, logger *zap.Logger) *DashboardService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.EventCount <= 0 {
		opts.EventCount = profile.Events.DefaultCount
	}
	if opts.MaxEventCount <= 0 {
		opts.MaxEventCount = 500
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &DashboardService{
		profile: profile,
		opts:    opts,
		metrics: m,
		logger:  logger.Named("dashboard-service"),
	}
}

// source resolves the effective seed: explicit, then configured, then random.
func (s *DashboardService) source(seed uint64) (telemetry.Source, uint64) {
	if seed == 0 {
		seed = s.opts.Seed
	}
	if seed == 0 {
		seed = telemetry.RandomSeed()
	}
	return telemetry.NewSource(seed), seed
}

func (s *DashboardService) DefaultEventCount() int { return s.opts.EventCount }

func (s *DashboardService) Snapshot(seed uint64) (domain.Snapshot, uint64) {
	rng, seed := s.source(seed)
	snap := telemetry.GenerateSnapshot(s.opts.Clock(), rng, s.profile)
	s.metrics.SnapshotsGenerated.WithLabelValues(string(snap.ThreatLevel)).Inc()
	return snap, seed
}

// Threats returns count recent events. count 0 selects the default.
func (s *DashboardService) Threats(count int, seed uint64) ([]domain.ThreatEvent, uint64, error) {
	if count == 0 {
		count = s.opts.EventCount
	}
	if count < 1 || count > s.opts.MaxEventCount {
		return nil, 0, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, count, s.opts.MaxEventCount)
	}

	rng, seed := s.source(seed)
	events := telemetry.GenerateEvents(s.opts.Clock(), count, rng, s.profile)
	s.metrics.EventsGenerated.Add(float64(len(events)))
	return events, seed, nil
}

// Overview draws the snapshot and the default event batch from one source.
func (s *DashboardService) Overview(seed uint64) domain.Overview {
	rng, seed := s.source(seed)
	now := s.opts.Clock()

	snap := telemetry.GenerateSnapshot(now, rng, s.profile)
	events := telemetry.GenerateEvents(now, s.opts.EventCount, rng, s.profile)

	s.metrics.SnapshotsGenerated.WithLabelValues(string(snap.ThreatLevel)).Inc()
	s.metrics.EventsGenerated.Add(float64(len(events)))

	s.logger.Debug("overview generated",
		zap.Uint64("seed", seed),
		zap.String("threat_level", string(snap.ThreatLevel)))

	return domain.Overview{
		Snapshot: snap,
		Threats:  events,
		Model:    telemetry.ModelPerformance(s.profile),
		Impact:   telemetry.BusinessImpact(s.profile),
		Seed:     seed,
	}
}

func (s *DashboardService) Predict(seed uint64) (domain.Prediction, uint64) {
	rng, seed := s.source(seed)
	return telemetry.PredictThreat(s.opts.Clock(), rng, s.profile), seed
}

func (s *DashboardService) Forecast(seed uint64) ([]domain.ForecastDay, uint64) {
	rng, seed := s.source(seed)
	return telemetry.GenerateForecast(s.opts.Clock(), rng, s.profile), seed
}

func (s *DashboardService) ExecutiveSummary(seed uint64) (domain.ExecutiveSummary, uint64) {
	rng, seed := s.source(seed)
	return telemetry.GenerateExecutiveSummary(s.opts.Clock(), rng, s.profile), seed
}

// Constant views, no randomness involved.

func (s *DashboardService) ModelPerformance() domain.ModelPerformance {
	return telemetry.ModelPerformance(s.profile)
}

func (s *DashboardService) FeatureImportance() []domain.FeatureWeight {
	return telemetry.FeatureImportance(s.profile)
}

func (s *DashboardService) BusinessImpact() domain.BusinessImpact {
	return telemetry.BusinessImpact(s.profile)
}

func (s *DashboardService) Competitors() []domain.CompetitorProfile {
	return telemetry.Competitors(s.profile)
}

func (s *DashboardService) ThreatCategories() []domain.ThreatCategory {
	return telemetry.ThreatCategories(s.profile)
}

func (s *DashboardService) BoardMetrics() domain.BoardMetrics {
	return telemetry.BoardMetrics(s.profile)
}

func (s *DashboardService) AttackPatterns() []domain.AttackPattern {
	return telemetry.AttackPatterns(s.profile)
}

func (s *DashboardService) Benchmarks() []domain.Benchmark {
	return telemetry.Benchmarks(s.profile)
}
