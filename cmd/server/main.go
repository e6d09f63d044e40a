package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/mkravchenko/dex-settlement/config"
	"github.com/mkravchenko/dex-settlement/internal/adapter/cache"
	"github.com/mkravchenko/dex-settlement/internal/adapter/in_memory"
	"github.com/mkravchenko/dex-settlement/internal/adapter/pg"
	"github.com/mkravchenko/dex-settlement/internal/adapter/queue"
	apihttp "github.com/mkravchenko/dex-settlement/internal/api/http"
	"github.com/mkravchenko/dex-settlement/internal/core"
	"github.com/mkravchenko/dex-settlement/internal/logging"
	"github.com/mkravchenko/dex-settlement/internal/port"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := logging.NewLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var repo port.Repository
	if cfg.PostgresDSN != "" {
		pgRepo, err := pg.NewPgRepo(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("failed to connect to Postgres", zap.Error(err))
		}
		defer pgRepo.Close(ctx)
		repo = pgRepo
		logger.Info("using Postgres repository")
	} else {
		repo = in_memory.NewMemoryRepo()
		logger.Info("using in-memory repository")
	}

	var statsCache port.Cache
	if cfg.RedisAddr != "" {
		statsCache = cache.NewRedisCache(
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RedisDB,
			time.Duration(cfg.CacheTTLSec)*time.Second,
		)
		logger.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	var events port.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		notifier := queue.NewKafkaNotifier(queue.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer notifier.Close()
		events = notifier
		logger.Info("kafka notifier enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	engine := core.NewEngine(repo, statsCache, events, in_memory.NewLogicalClock(), logger)
	if err := engine.LoadState(ctx); err != nil {
		logger.Fatal("failed to load engine state", zap.Error(err))
	}

	server := apihttp.NewHTTPServer(engine, logger)
	logger.Info("starting HTTP server", zap.String("addr", cfg.HTTPAddr))
	if err := server.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
