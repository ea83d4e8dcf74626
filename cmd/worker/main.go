package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Maxfurry/Hospital-Managment-Software/internal/config"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/email"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/model"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository"
	"github.com/Maxfurry/Hospital-Managment-Software/internal/repository/postgres"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/logger"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/messaging/redis"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/metrics"
	"github.com/Maxfurry/Hospital-Managment-Software/pkg/worker"
)

func setupHealthCheck(port int, store repository.Store, reg *prometheus.Registry, logger *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "Health check server failed")
		}
	}()
	return srv
}

func main() {
	configFile := ""
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.Database.Driver != "postgres" {
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("The worker needs the postgres driver")
	}

	appLogger := logger.Init(cfg.Log.Level, cfg.Log.Format).With("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "Failed to connect to database")
	}
	store := postgres.NewStore(db)
	defer store.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "hms_worker")

	broker, err := redis.NewRedisBroker(ctx, redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger.Zerolog(), m)
	if err != nil {
		appLogger.Fatal(err, "Failed to create Redis broker")
	}
	defer broker.Close()

	var sender email.Sender = email.LogSender{}
	if cfg.SMTP.Enabled() {
		sender = email.NewSMTPSender(cfg.SMTP)
	}
	mailer := email.NewService(sender)

	processor := worker.NewOutboxProcessor(store, broker, worker.OutboxProcessorConfig{
		Channel:       cfg.Redis.Channel,
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, appLogger.With("worker", "outbox"), m)
	processor.On(model.EventEmployeeCreated, mailer.HandleEmployeeCreated)

	cleanup := worker.NewAuditCleanupWorker(store.Audit(), cfg.Audit.RetentionDays, cfg.Audit.CleanupInterval, appLogger.With("worker", "audit_cleanup"))

	health := setupHealthCheck(cfg.Server.MetricsPort, store, reg, appLogger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		processor.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		cleanup.Start(ctx)
	}()

	appLogger.Info("Worker started", "channel", cfg.Redis.Channel)
	<-ctx.Done()
	appLogger.Info("Shutting down...")
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = health.Shutdown(shutdownCtx)
}
