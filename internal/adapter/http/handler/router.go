package handler

import (
	"time"

	"voucher-donation-gateway/internal/adapter/http/middleware"
	"voucher-donation-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	DonationSvc    ports.DonationService
	ReportingSvc   ports.ReportingService
	Feed           FeedSource
	FeedHeartbeat  time.Duration
	RateLimitStore middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Gatherer       prometheus.Gatherer // nil = /metrics not mounted
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	donationHandler := NewDonationHandler(deps.DonationSvc, deps.ReportingSvc)
	donations := v1.Group("/donations")
	{
		donations.POST("", rl("donations"), donationHandler.Claim)
		donations.GET("/recent", rl("dashboard"), donationHandler.Recent)
		donations.GET("/stats", rl("dashboard"), donationHandler.Stats)
	}

	if deps.Feed != nil {
		feedHandler := NewFeedHandler(deps.Feed, deps.FeedHeartbeat, deps.Logger)
		v1.GET("/feed", rl("feed"), feedHandler.Stream)
	}

	return r
}
