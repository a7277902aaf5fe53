package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xela07ax/netsec-analytics/internal/console/handler"
	"github.com/xela07ax/netsec-analytics/internal/console/server"
	"github.com/xela07ax/netsec-analytics/internal/console/service"
	"github.com/xela07ax/netsec-analytics/internal/dataset"
	"github.com/xela07ax/netsec-analytics/internal/feed"
	"github.com/xela07ax/netsec-analytics/internal/infra"
	"github.com/xela07ax/netsec-analytics/internal/infra/auth"
	"github.com/xela07ax/netsec-analytics/internal/metrics"
	"github.com/xela07ax/netsec-analytics/internal/telemetry"
)

func main() {
	// 1. Config and logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := infra.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// 2. Services
	profile := telemetry.DefaultProfile()
	profile.Events.ChronologicalEvents = cfg.Generator.ChronologicalEvents

	dash := service.NewDashboardService(profile, service.Options{
		Seed:          cfg.Generator.Seed,
		EventCount:    cfg.Generator.EventCount,
		MaxEventCount: cfg.Generator.MaxEventCount,
	}, m, logger)
	datasets := service.NewDatasetService(dataset.NewLoader(cfg.Dataset.Dir, logger), m, logger)

	// 3. Optional RS256 guard for the briefing pages
	var validator auth.TokenValidator
	if cfg.Auth.Enabled() {
		pub, err := auth.ParseRSAPublicKey(cfg.Auth.PublicKey)
		if err != nil {
			logger.Fatal("failed to load auth public key", zap.Error(err))
		}
		validator = auth.NewBaseValidator(pub, auth.ValidatorOptions{
			Issuer: cfg.Auth.Issuer,
			Leeway: cfg.Auth.Leeway,
		})
	}

	// 4. Live feed over Redis Pub/Sub
	var (
		listener  handler.FeedListener
		feedState func() string
		rdb       *redis.Client
	)
	if cfg.Feed.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, pingCancel := context.WithTimeout(appCtx, 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// the publisher breaker and the listener loop recover once Redis is back
			logger.Warn("redis unreachable at startup", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		pingCancel()

		opts := feed.DefaultReliabilityOptions()
		opts.RateLimit = rate.Limit(cfg.Feed.RateLimit)
		opts.Burst = cfg.Feed.Burst
		publisher := feed.NewReliablePublisher(feed.NewRedisPublisher(rdb), opts, m, logger)

		broadcaster := feed.NewBroadcaster(dash, publisher, feed.NewRedisLocker(rdb), feed.BroadcasterConfig{
			Channel:  infra.RedisChanSnapshots,
			LockKey:  infra.RedisKeyBroadcasterLock,
			Interval: cfg.Feed.Interval,
		}, m, logger)
		go broadcaster.Run(appCtx)

		listener = feed.NewListener(rdb, infra.RedisChanSnapshots, logger)
		feedState = func() string { return publisher.State().String() }
	}

	// 5. HTTP
	srvHandler := server.NewConsoleServer(cfg, logger, m, reg, validator, feedState, server.Handlers{
		Dashboard: handler.NewDashboardHandler(dash, logger),
		Stream:    handler.NewStreamHandler(listener, logger),
		Analytics: handler.NewAnalyticsHandler(dash),
		Briefing:  handler.NewBriefingHandler(dash),
		Dataset:   handler.NewDatasetHandler(datasets, logger),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srvHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout, // lifted per request by the SSE handler
		BaseContext:  func(_ net.Listener) context.Context { return appCtx },
	}

	// 6. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("console API started", zap.String("addr", srv.Addr), zap.Bool("feed", cfg.Feed.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-stop
	logger.Info("console API stopping")
	cancel() // ends the broadcaster and open streams

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}
	logger.Info("console API exited properly")
}
