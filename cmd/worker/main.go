package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/cemyet/summare-sub001/internal/app"
	"github.com/cemyet/summare-sub001/internal/filing"
	"github.com/cemyet/summare-sub001/internal/mapping"
	"github.com/cemyet/summare-sub001/internal/platform/cache"
	"github.com/cemyet/summare-sub001/internal/platform/db"
	"github.com/cemyet/summare-sub001/jobs"
	"github.com/cemyet/summare-sub001/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	mappingRepo := mapping.NewCachedRepository(mapping.NewRepository(pool), redisClient, cfg.MappingCacheTTL, logger)
	artifactRepo := filing.NewArtifactRepository(pool)
	formFill := report.NewClient(cfg.FormFillURL)

	filingService := filing.NewService(mappingRepo, artifactRepo, formFill, logger)
	exportJob := jobs.NewExportRenderJob(filingService, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskExportRender, Handler: exportJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
