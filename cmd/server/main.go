package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repairs/internal/config"
	"repairs/internal/gateway"
	"repairs/internal/handler"
	"repairs/internal/infra"
	"repairs/internal/router"
	"repairs/internal/session"
	"repairs/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in development, JSON otherwise
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)

	// Redis backs the session when asked to and the invoice e-mail queue
	// whenever e-mailing is enabled.
	var rdb *redis.Client
	if cfg.SessionStore == session.KindRedis || cfg.InvoiceEmailEnabled() {
		rdb, err = infra.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
	}

	var db *gorm.DB
	if cfg.SessionStore == session.KindDatabase {
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
	}

	persister, err := session.NewPersister(cfg.SessionStore, session.Backends{Dir: cfg.SessionDir, Redis: rdb, DB: db})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up session storage")
	}
	store, err := session.New(ctx, persister, cfg.SessionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to restore session")
	}
	log.Info().Str("store", store.Backend()).Bool("authenticated", store.IsAuthenticated()).Msg("session restored")

	gwCfg := gateway.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.GatewayTimeout(),
		Coalesce: cfg.GatewayCoalesce,
	}
	if cfg.GatewayBreakerThreshold > 0 {
		gwCfg.Breaker = infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
			FailureThreshold: cfg.GatewayBreakerThreshold,
			OpenTimeout:      cfg.BreakerOpenTimeout(),
		})
	}
	gw := gateway.New(gwCfg)

	// Invoice e-mail worker pool. Jobs carry an already rendered PDF, so the
	// workers never need the session.
	var queue handler.EmailQueue
	var pool *worker.Pool
	if rdb != nil && cfg.InvoiceEmailEnabled() {
		queue = worker.NewDispatcher(rdb)
		pool = worker.StartWorkerPool(ctx, rdb, map[string]worker.Handler{
			worker.JobInvoiceEmail: worker.NewInvoiceEmailWorker(mailer),
		}, cfg.WorkerPoolSize)
	} else {
		log.Warn().Bool("smtp", mailer.Configured()).Int("workers", cfg.WorkerPoolSize).Msg("invoice e-mail disabled")
	}

	r := router.New(cfg, gw, store, rdb, queue)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("api", gw.BaseURL()).Msgf("repairs console listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if pool != nil {
		pool.Wait()
	}
	log.Info().Msg("server exited")
}
