package main

import (
	"context"
	"flag"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/config"
	logpkg "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/logger"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/metrics"
	statsrepo "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/repository/stats"
	openaiModel "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/transport/openai"
	askuc "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/ask"
	batchuc "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/batch"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	input := flag.String("input", cfg.Batch.InputPath, "questions JSON file")
	output := flag.String("output", cfg.Batch.OutputPath, "answers JSON file")
	flag.Parse()

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting NBA QA batch run",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("input", *input),
		zap.String("output", *output),
	)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	store := statsrepo.New(pool)
	if err := store.Ping(ctx); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.RegisterModelMetrics()

	embedder := openaiModel.NewEmbedder(&openaiModel.Config{
		APIKey:  cfg.Models.Embedding.APIKey,
		BaseURL: cfg.Models.Embedding.BaseURL,
		Model:   cfg.Models.Embedding.Model,
		Logger:  logger,
	})
	generator := openaiModel.NewGenerator(&openaiModel.Config{
		APIKey:  cfg.Models.Generation.APIKey,
		BaseURL: cfg.Models.Generation.BaseURL,
		Model:   cfg.Models.Generation.Model,
		Logger:  logger,
	})

	players, err := store.Roster(ctx)
	if err != nil {
		logger.Fatal("Failed to load roster", zap.Error(err))
	}

	askSvc := askuc.New(store, embedder, generator, players, logger)
	runner := batchuc.New(askSvc, logger)

	answered, err := runner.Run(ctx, *input, *output)
	if err != nil {
		logger.Fatal("Batch run failed", zap.Error(err))
	}

	logger.Info("Batch run complete", zap.Int("answered", answered))
}
