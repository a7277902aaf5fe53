package feed

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Listener is a self-healing Redis subscription to one channel.
type Listener struct {
	rdb        *redis.Client
	channel    string
	retryDelay time.Duration
	logger     *zap.Logger
}

func NewListener(rdb *redis.Client, channel string, logger *zap.Logger) *Listener {
	return &Listener{
		rdb:        rdb,
		channel:    channel,
		retryDelay: 5 * time.Second,
		logger:     logger.Named("feed-listener"),
	}
}

// Listen delivers every payload on the channel to onMessage until ctx is done.
// Failed subscriptions and closed channels are retried.
func (l *Listener) Listen(ctx context.Context, onMessage func(payload string)) {
	for {
		pubsub := l.rdb.Subscribe(ctx, l.channel)

		if _, err := pubsub.Receive(ctx); err != nil {
			pubsub.Close()
			if ctx.Err() != nil {
				return
			}
			l.logger.Error("failed to subscribe", zap.String("chan", l.channel), zap.Error(err))
			if !sleepCtx(ctx, l.retryDelay) {
				return
			}
			continue
		}

		ch := pubsub.Channel()

	loop:
		for {
			select {
			case <-ctx.Done():
				pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					break loop // resubscribe
				}
				onMessage(msg.Payload)
			}
		}

		pubsub.Close()
		if !sleepCtx(ctx, time.Second) {
			return
		}
	}
}

// sleepCtx waits d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
