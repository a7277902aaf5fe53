package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/dataset"
	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/metrics"
	"github.com/xela07ax/netsec-analytics/internal/telemetry"
)

var fixedNow = time.Date(2025, time.March, 12, 14, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts Options) (*DashboardService, *metrics.Metrics) {
	t.Helper()
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return fixedNow }
	}
	m := metrics.New(prometheus.NewRegistry())
	return NewDashboardService(telemetry.DefaultProfile(), opts, m, zap.NewNop()), m
}

func TestDashboardService_SeedReplay(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	first, seed := svc.Snapshot(0)
	require.NotZero(t, seed)

	again, sameSeed := svc.Snapshot(seed)
	assert.Equal(t, seed, sameSeed)
	assert.Equal(t, first, again)

	ov1 := svc.Overview(42)
	ov2 := svc.Overview(42)
	assert.Equal(t, ov1, ov2)
	assert.Equal(t, uint64(42), ov1.Seed)
}

func TestDashboardService_ConfiguredSeed(t *testing.T) {
	svc, _ := newTestService(t, Options{Seed: 7})

	_, seed := svc.Forecast(0)
	assert.Equal(t, uint64(7), seed)

	_, seed = svc.Forecast(9)
	assert.Equal(t, uint64(9), seed, "request seed overrides the configured one")
}

func TestDashboardService_Threats(t *testing.T) {
	svc, m := newTestService(t, Options{MaxEventCount: 20})

	events, _, err := svc.Threats(0, 1)
	require.NoError(t, err)
	assert.Len(t, events, svc.DefaultEventCount())

	events, _, err = svc.Threats(20, 1)
	require.NoError(t, err)
	assert.Len(t, events, 20)
	assert.Equal(t, float64(8+20), testutil.ToFloat64(m.EventsGenerated))

	for _, bad := range []int{-1, 21} {
		_, _, err := svc.Threats(bad, 1)
		assert.ErrorIs(t, err, ErrInvalidCount, "count %d", bad)
	}
}

func TestDashboardService_SnapshotMetrics(t *testing.T) {
	svc, m := newTestService(t, Options{})

	snap, _ := svc.Snapshot(3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotsGenerated.WithLabelValues(string(snap.ThreatLevel))))
}

func TestDashboardService_Views(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	forecast, _ := svc.Forecast(5)
	assert.Len(t, forecast, 7)
	assert.Equal(t, "03/12", forecast[0].Label)

	summary, _ := svc.ExecutiveSummary(5)
	assert.Equal(t, "March 12, 2025", summary.Date)
	assert.Equal(t, "March 13, 2025", summary.NextBriefing)

	pred, _ := svc.Predict(5)
	assert.Equal(t, fixedNow, pred.Timestamp)

	assert.Equal(t, 99.1, svc.ModelPerformance().AccuracyPercent)
	assert.NotEmpty(t, svc.FeatureImportance())
	assert.NotEmpty(t, svc.Competitors())
	assert.NotEmpty(t, svc.ThreatCategories())
	assert.NotEmpty(t, svc.AttackPatterns())
	assert.NotEmpty(t, svc.Benchmarks())
	assert.NotZero(t, svc.BoardMetrics())
	assert.NotZero(t, svc.BusinessImpact())
}

type countingLoader struct {
	frame *dataset.Frame
	calls int
}

func (l *countingLoader) Load(kind domain.DatasetKind) *dataset.Frame {
	l.calls++
	return l.frame
}

func TestDatasetService_Summary(t *testing.T) {
	loader := &countingLoader{frame: &dataset.Frame{
		Header: []string{"duration", "protocol_type"},
		Rows:   [][]string{{"0", "tcp"}, {"", "udp"}},
	}}
	m := metrics.New(prometheus.NewRegistry())
	svc := NewDatasetService(loader, m, zap.NewNop())

	got, err := svc.Summary(context.Background(), domain.DatasetTrain)
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationSummary{Kind: domain.DatasetTrain, Rows: 2, Columns: 2, MissingValues: 1}, got)

	_, err = svc.Summary(context.Background(), domain.DatasetTrain)
	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls, "summary is cached")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatasetRows.WithLabelValues("train")))
}

func TestDatasetService_Unavailable(t *testing.T) {
	loader := &countingLoader{}
	svc := NewDatasetService(loader, nil, zap.NewNop())

	_, err := svc.Summary(context.Background(), domain.DatasetTest)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)

	_, err = svc.Summary(context.Background(), domain.DatasetTest)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
	assert.Equal(t, 2, loader.calls, "failures are retried on the next call")
}

// gatedLoader blocks loads of one kind until release is closed.
type gatedLoader struct {
	gated   domain.DatasetKind
	entered chan struct{}
	release chan struct{}
}

func (l *gatedLoader) Load(kind domain.DatasetKind) *dataset.Frame {
	if kind == l.gated {
		close(l.entered)
		<-l.release
	}
	return &dataset.Frame{Header: []string{"a"}, Rows: [][]string{{"1"}}}
}

func TestDatasetService_SlowLoadDoesNotBlockOtherKinds(t *testing.T) {
	loader := &gatedLoader{gated: domain.DatasetTrain, entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewDatasetService(loader, nil, zap.NewNop())

	trainDone := make(chan error, 1)
	go func() {
		_, err := svc.Summary(context.Background(), domain.DatasetTrain)
		trainDone <- err
	}()
	<-loader.entered

	testDone := make(chan error, 1)
	go func() {
		_, err := svc.Summary(context.Background(), domain.DatasetTest)
		testDone <- err
	}()

	select {
	case err := <-testDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("test summary waited on the train load")
	}

	close(loader.release)
	require.NoError(t, <-trainDone)
}
