package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/navette-vtc/navette/internal/app"
	"github.com/navette-vtc/navette/internal/billing"
	"github.com/navette-vtc/navette/internal/company"
	"github.com/navette-vtc/navette/internal/observability"
	"github.com/navette-vtc/navette/internal/platform/db"
	"github.com/navette-vtc/navette/internal/platform/sequence"
	"github.com/navette-vtc/navette/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("redis ping", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	companyService := company.NewService(company.NewRepository(pool))
	companyHandler := company.NewHandler(logger, companyService)

	docSequence := sequence.NewRedis(redisClient, cfg.DocSequenceKey)
	billingService := billing.NewService(billing.NewRepository(pool), docSequence, billing.SystemClock(), cfg.QuoteValidity())
	billingHandler := billing.NewHandler(logger, billingService, companyService, report.NewDocumentEncoder(), metrics)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CompanyHandler: companyHandler,
		BillingHandler: billingHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.Any("error", err))
	}
}
