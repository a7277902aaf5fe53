package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/domain"
	"github.com/xela07ax/netsec-analytics/internal/metrics"
	"github.com/xela07ax/netsec-analytics/internal/telemetry"
)

// SnapshotSource produces the snapshot for seed and reports the seed used.
type SnapshotSource interface {
	Snapshot(seed uint64) (domain.Snapshot, uint64)
}

// Locker elects the single instance that publishes a given tick.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// RedisLocker takes a short SETNX lease, so replicas don't publish the same tick twice.
type RedisLocker struct {
	rdb   *redis.Client
	owner string
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{rdb: rdb, owner: uuid.New().String()}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, key, l.owner, ttl).Result()
}

// Broadcaster periodically publishes a fresh snapshot to the live feed.
type Broadcaster struct {
	source   SnapshotSource
	pub      Publisher
	locker   Locker // optional
	channel  string
	lockKey  string
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger

	nextSeed func() uint64
}

type BroadcasterConfig struct {
	Channel  string
	LockKey  string
	Interval time.Duration
}

func NewBroadcaster(src SnapshotSource, pub Publisher, locker Locker, cfg BroadcasterConfig, m *metrics.Metrics, logger *zap.Logger) *Broadcaster {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Broadcaster{
		source:   src,
		pub:      pub,
		locker:   locker,
		channel:  cfg.Channel,
		lockKey:  cfg.LockKey,
		interval: cfg.Interval,
		metrics:  m,
		logger:   logger.Named("broadcaster"),
		nextSeed: telemetry.RandomSeed,
	}
}

// Run blocks until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.logger.Info("live feed started",
		zap.String("channel", b.channel),
		zap.Duration("interval", b.interval))

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("live feed stopped")
			return
		case <-ticker.C:
			b.Tick(ctx)
		}
	}
}

// Tick publishes one snapshot. It reports whether anything was sent.
func (b *Broadcaster) Tick(ctx context.Context) bool {
	if b.locker != nil && b.lockKey != "" {
		// lease slightly shorter than the tick so the next one is free
		ok, err := b.locker.TryLock(ctx, b.lockKey, b.interval*9/10)
		if err != nil {
			b.logger.Warn("broadcaster lock unavailable", zap.Error(err))
			return false
		}
		if !ok {
			return false // another replica owns this tick
		}
	}

	// a pinned generator.seed must not freeze the live feed
	snap, seed := b.source.Snapshot(b.nextSeed())
	payload, err := json.Marshal(snap)
	if err != nil {
		b.logger.Error("failed to encode snapshot", zap.Error(err))
		return false
	}

	if err := b.pub.Publish(ctx, b.channel, payload); err != nil {
		b.metrics.FeedPublishErrors.Inc()
		b.logger.Warn("snapshot publish failed",
			zap.Uint64("seed", seed),
			zap.Error(err))
		return false
	}

	b.metrics.FeedPublished.Inc()
	b.logger.Debug("snapshot published",
		zap.String("threat_level", string(snap.ThreatLevel)),
		zap.Uint64("seed", seed))
	return true
}
