package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/config"
	dbRedis "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/db/redis"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
	logpkg "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/logger"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/metrics"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/repository/embcache"
	statsrepo "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/repository/stats"
	chiTransport "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/transport/chi"
	openaiModel "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/transport/openai"
	askuc "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/ask"
	healthuc "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/health"
	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting NBA QA server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
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
	logger.Info("Connected to database")

	// Register model metrics explicitly (no init())
	metrics.RegisterModelMetrics()

	embedder, generator, modelClose := buildModels(ctx, cfg, logger)
	defer modelClose()

	// Roster is loaded once; player resolution works off this snapshot.
	players, err := store.Roster(ctx)
	if err != nil {
		logger.Fatal("Failed to load roster", zap.Error(err))
	}
	logger.Info("Roster loaded", zap.Int("players", len(players)))

	askSvc := askuc.New(store, embedder, generator, players, logger)

	healthSvc := healthuc.New(store,
		newModelHealthChecker(embedder),
		newModelHealthChecker(generator),
	)

	server := chiTransport.NewServer(askSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.HTTP.CORSOrigin))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildModels assembles the embedder (with the optional cache decorator) and
// the generator. The returned close func releases the cache client, if any.
func buildModels(ctx context.Context, cfg config.Config, logger *zap.Logger) (domain.Embedder, domain.Generator, func()) {
	base := openaiModel.NewEmbedder(&openaiModel.Config{
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

	var embedder domain.Embedder = base
	closeFn := func() {}

	if cfg.Cache.Enabled() {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		if err := cache.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}

		embedder = embcache.New(base, cache,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.EmbeddingCacheTotal, logger,
		)
		closeFn = cache.Close
		logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	logger.Info("Model providers created",
		zap.String("embedding_model", cfg.Models.Embedding.Model),
		zap.String("generation_model", cfg.Models.Generation.Model),
	)

	return embedder, generator, closeFn
}

// modelHealthChecker adapts a provider to health.ModelChecker.
type modelHealthChecker struct {
	inner any
}

func newModelHealthChecker(inner any) *modelHealthChecker {
	return &modelHealthChecker{inner: inner}
}

func (h *modelHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.inner.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("model health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
