package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voucher-donation-gateway/config"
	"voucher-donation-gateway/internal/adapter/feed"
	httpHandler "voucher-donation-gateway/internal/adapter/http/handler"
	"voucher-donation-gateway/internal/adapter/redemption"
	pgStorage "voucher-donation-gateway/internal/adapter/storage/postgres"
	redisStorage "voucher-donation-gateway/internal/adapter/storage/redis"
	"voucher-donation-gateway/internal/core/ports"
	"voucher-donation-gateway/internal/service"
	"voucher-donation-gateway/pkg/logger"
	"voucher-donation-gateway/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("VDG_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("feed_mode", cfg.Feed.Mode).
		Msg("Starting Voucher Donation Gateway")

	if cfg.Redemption.MobileNumber == "" {
		log.Warn().Msg("redemption.mobile_number is empty, every claim will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, logger.Component(log, "ledger"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(pool, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Live feed: the hub serves local subscribers; in redis mode every
	// instance publishes to the channel and relays it into its own hub.
	feedLog := logger.Component(log, "feed")
	hub := feed.NewHub(0, feedLog)
	defer hub.Close()

	var publisher ports.FeedPublisher = hub
	var relay *redisStorage.FeedRelay
	if cfg.Feed.Mode == "redis" {
		publisher = redisStorage.NewFeedPublisher(rdb, cfg.Feed.Channel)
		relay = redisStorage.NewFeedRelay(rdb, cfg.Feed.Channel, hub, feedLog)
	}

	// Initialize services
	donationRepo := pgStorage.NewDonationRepo(pool)
	voucherCache := redisStorage.NewVoucherCache(rdb)
	redeemer := redemption.NewClient(cfg.Redemption, nil, logger.Component(log, "redemption"))

	donationSvc := service.NewDonationService(
		donationRepo,
		voucherCache,
		redeemer,
		publisher,
		m,
		service.NewMessages(cfg.Donation.Locale),
		log,
	)
	reportingSvc := service.NewReportingService(donationRepo, cfg.Donation.RecentLimit, m, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		DonationSvc:    donationSvc,
		ReportingSvc:   reportingSvc,
		Feed:           hub,
		FeedHeartbeat:  cfg.Feed.Heartbeat,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		Gatherer:       reg,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if relay != nil {
		g.Go(func() error {
			return relay.Run(gctx, nil)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		// Open feed streams never finish on their own.
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		return
	}

	log.Info().Msg("Server exited")
}
