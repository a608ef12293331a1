package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-service-booking/internal/config"
	"github.com/iliyamo/car-service-booking/internal/database"
	"github.com/iliyamo/car-service-booking/internal/handler"
	"github.com/iliyamo/car-service-booking/internal/logging"
	"github.com/iliyamo/car-service-booking/internal/middleware"
	"github.com/iliyamo/car-service-booking/internal/queue"
	"github.com/iliyamo/car-service-booking/internal/repository"
	"github.com/iliyamo/car-service-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment

	logger := logging.New("car-service-booking")
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("ensure schema")
	}
	cancel()

	// Redis backs the response cache and the rate limiter. A nil client
	// disables both; the API itself keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn().Msg("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	customer := handler.NewCustomerHandler(users, bookings, logger)
	admin := handler.NewAdminHandler(bookings, logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.RegisterPublic(e, cacheMW)
	router.RegisterAuth(e, auth, middleware.JWTAuth(cfg.JWTSecret))
	router.RegisterCustomer(e, customer, cfg.JWTSecret)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)

	// Background consumer that mirrors booking status events into
	// logs/booking.log. Runs its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			logger.Error().Err(err).Msg("booking consumer stopped")
		}
	}()

	// Periodically drop long-expired refresh tokens.
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			tctx, tcancel := context.WithTimeout(context.Background(), time.Minute)
			if n, err := tokens.PurgeExpired(tctx, 24*time.Hour); err != nil {
				logger.Warn().Err(err).Msg("purge refresh tokens")
			} else if n > 0 {
				logger.Info().Int64("purged", n).Msg("purged refresh tokens")
			}
			tcancel()
		}
	}()

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
