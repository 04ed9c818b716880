package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Cheertaboi/maxreward-console/internal/api"
	"github.com/Cheertaboi/maxreward-console/internal/api/handlers"
	"github.com/Cheertaboi/maxreward-console/internal/api/middleware"
	"github.com/Cheertaboi/maxreward-console/internal/backend"
	"github.com/Cheertaboi/maxreward-console/internal/cache"
	"github.com/Cheertaboi/maxreward-console/internal/config"
	"github.com/Cheertaboi/maxreward-console/internal/repository"
	"github.com/Cheertaboi/maxreward-console/internal/service"
	"github.com/Cheertaboi/maxreward-console/pkg/db"
)

const housekeepingInterval = time.Minute

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// query cache: redis when configured, otherwise per-process memory
	var (
		store  cache.QueryCache
		memory *cache.MemoryCache
	)
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("redis connect")
		}
		defer rdb.Close()
		store = cache.NewRedisCache(rdb)
	} else {
		memory = cache.NewMemoryCache()
		store = memory
	}
	loader := cache.NewLoader(store, cfg.CacheTTL, log)

	// audit trail is optional
	var (
		recorder service.AuditRecorder = service.NopAudit{}
		lister   handlers.AuditLister  = handlers.NopAuditLister{}
	)
	if cfg.Postgres.Enabled() {
		conn, err := db.NewPostgresConnection(cfg.Postgres)
		if err != nil {
			log.WithError(err).Fatal("db connect")
		}
		defer conn.Close()
		if err := db.ApplySchema(ctx, conn); err != nil {
			log.WithError(err).Fatal("apply schema")
		}
		repo := repository.NewAuditRepo(conn)
		recorder, lister = repo, repo
	} else {
		log.Info("DB_HOST not set, audit trail disabled")
	}

	client := backend.New(cfg.Backend, backend.WithLogger(log))
	settings := service.NewSettingsService(client, loader, log)
	reports := service.NewReportService(client, loader, log)
	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	}

	handler := api.NewRouter(api.Deps{
		Purchases:   service.NewPurchaseService(client, settings, loader, recorder, log),
		Vouchers:    service.NewVoucherService(client, settings, loader, recorder, log),
		Lists:       reports,
		Settings:    settings,
		Dashboard:   service.NewDashboardService(reports, settings, log),
		Audit:       lister,
		RateLimiter: limiter,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go housekeeping(ctx, memory, limiter)

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("starting maxreward-console")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("listen")
	}

	<-idleConnsClosed
	log.Info("server stopped")
}

// housekeeping drops expired cache entries and idle rate limiter clients.
func housekeeping(ctx context.Context, memory *cache.MemoryCache, limiter *middleware.RateLimiter) {
	t := time.NewTicker(housekeepingInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if memory != nil {
				memory.Sweep()
			}
			if limiter != nil {
				limiter.Cleanup(10 * housekeepingInterval)
			}
		}
	}
}
