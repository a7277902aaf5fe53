package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xela07ax/netsec-analytics/internal/metrics"
)

// Publisher delivers one payload to a Pub/Sub channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisPublisher publishes straight to Redis.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}

// ReliabilityOptions tune ReliablePublisher.
type ReliabilityOptions struct {
	RateLimit rate.Limit // publishes per second
	Burst     int
	Attempts  uint
	Timeout   time.Duration // per attempt
}

func DefaultReliabilityOptions() ReliabilityOptions {
	return ReliabilityOptions{RateLimit: 10, Burst: 5, Attempts: 3, Timeout: 2 * time.Second}
}

// ReliablePublisher wraps a Publisher with a rate limiter, a circuit breaker
// and bounded retries, in that order.
type ReliablePublisher struct {
	next    Publisher
	cb      *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	opts    ReliabilityOptions
	logger  *zap.Logger
}

func NewReliablePublisher(next Publisher, opts ReliabilityOptions, m *metrics.Metrics, logger *zap.Logger) *ReliablePublisher {
	logger = logger.Named("feed-publisher")
	if opts.Attempts == 0 {
		opts.Attempts = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-feed",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second, // open -> half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			if m != nil {
				m.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			}
		},
	})

	return &ReliablePublisher{
		next:    next,
		cb:      cb,
		limiter: rate.NewLimiter(opts.RateLimit, opts.Burst),
		opts:    opts,
		logger:  logger,
	}
}

func (p *ReliablePublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	_, err := p.cb.Execute(func() (interface{}, error) {
		r := retry.New(
			retry.Context(ctx),
			retry.Attempts(p.opts.Attempts),
			retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
				return retry.BackOffDelay(n, err, config)
			}),
		)

		return nil, r.Do(func() error {
			tCtx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
			defer cancel()
			return p.next.Publish(tCtx, channel, payload)
		})
	})
	if err != nil {
		return fmt.Errorf("feed: publish to %s: %w", channel, err)
	}
	return nil
}

// State exposes the breaker state for health reporting.
func (p *ReliablePublisher) State() gobreaker.State {
	return p.cb.State()
}
