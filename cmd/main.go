package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/config"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/handler"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/health"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/infra/artifact"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/infra/predictionrecorder"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/infra/repository"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/logging"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/metrics"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/observability/middleware"
	"github.com/KasumiMercury/primind-task-time-predictor/internal/service/predict"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("task-time-predictor")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	predictMetrics, err := metrics.NewPredictMetrics()
	if err != nil {
		slog.Error("failed to initialize predict metrics", slog.String("error", err.Error()))
		return 1
	}

	// The service must not start without its artifacts.
	artifacts, err := artifact.Load(ctx, cfg.Artifact)
	if err != nil {
		slog.Error("failed to load model artifacts",
			slog.String("event", "artifact.load.fail"),
			slog.String("dir", cfg.Artifact.Dir),
			slog.String("error", err.Error()),
		)
		return 1
	}

	// Initialize prediction result recorder (InfluxDB for local, BigQuery for gcloud)
	resultRecorder, err := predictionrecorder.NewRecorder(ctx, predictionrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize prediction result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := resultRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush prediction result recorder", slog.String("error", err.Error()))
		}
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close prediction result recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		return 1
	}

	var tally domain.PredictionTally
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
		tally = repository.NewPredictionTally(redisClient)
	}

	predictService := predict.NewService(artifacts, predictMetrics)
	predictHandler := handler.NewPredictHandler(predictService, resultRecorder, tally)
	// Runs before the recorder and Redis client are closed.
	defer predictHandler.Wait()
	healthChecker := health.NewChecker(redisClient, Version, predictService.Artifacts())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           newHTTPHandler(cfg.CORS, predictHandler, healthChecker, httpMetrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Any("artifacts", artifacts.Digests()),
			slog.Bool("tally_enabled", tally != nil),
			slog.Bool("cors_any_origin", cfg.CORS.AllowsAnyOrigin()),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

// initRedis returns a nil client when the tally is disabled.
func initRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		slog.Info("REDIS_ADDR not set, prediction tally disabled")
		return nil, nil
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
		slog.Bool("tls", cfg.TLS),
	)

	return redisClient, nil
}

func newHTTPHandler(
	corsCfg *config.CORSConfig,
	predictHandler *handler.PredictHandler,
	healthChecker *health.Checker,
	httpMetrics *metrics.HTTPMetrics,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-task-time-predictor/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	r.POST(grpcHealthPath+"*method", gin.WrapH(grpcHealthHandler))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/predict", predictHandler.HandlePredict)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}).Handler(r)

	return h2c.NewHandler(corsHandler, &http2.Server{})
}
