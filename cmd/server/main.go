package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riceweigh/internal/config"
	"riceweigh/internal/infra"
	"riceweigh/internal/repository"
	"riceweigh/internal/router"
	"riceweigh/internal/service"
	"riceweigh/internal/worker"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Start goroutine worker pool for async tasks (invoice PDF, email).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	txRepo := repository.NewTransactionRepository(db)

	workerHandlers := &worker.WorkerHandlers{
		Invoice: worker.NewInvoiceWorker(txRepo, dispatcher, cfg.BusinessName, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Nightly housekeeping: freeze yesterday's daily aggregate into redis
	// and re-warm the rice price cache.
	statsSvc := service.NewStatsService(txRepo, rdb)
	ricePriceSvc := service.NewRicePriceService(repository.NewRicePriceRepository(db), rdb)
	sched := cron.New()
	if _, err := sched.AddFunc("10 0 * * *", func() {
		jobCtx, jobCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer jobCancel()
		statsSvc.SnapshotYesterday(jobCtx)
		ricePriceSvc.WarmCache(jobCtx)
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to register nightly job")
	}
	sched.Start()
	defer sched.Stop()

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("riceweigh backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
