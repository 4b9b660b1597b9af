package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/feliksshtein/wall-art-backend/internal/admin"
	"github.com/feliksshtein/wall-art-backend/internal/cart"
	"github.com/feliksshtein/wall-art-backend/internal/catalog"
	"github.com/feliksshtein/wall-art-backend/internal/checkout"
	"github.com/feliksshtein/wall-art-backend/internal/config"
	"github.com/feliksshtein/wall-art-backend/internal/order"
	"github.com/feliksshtein/wall-art-backend/internal/payment"
	"github.com/feliksshtein/wall-art-backend/internal/pricing"
	"github.com/feliksshtein/wall-art-backend/internal/ratelimit"
	"github.com/feliksshtein/wall-art-backend/pkg/logger"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.Environment)

	db := openDB(cfg)
	if db != nil {
		defer db.Close()
	}
	redisClient := openRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// catalog
	var catalogRepo catalog.Repository
	if db != nil {
		catalogRepo = catalog.NewPostgresRepository(db)
	} else {
		catalogRepo = catalog.NewInMemoryRepository(catalog.Seed())
	}
	catalogService := catalog.NewService(catalogRepo, pricing.Default)
	catalogHandler := catalog.NewHandler(catalogService)

	// cart
	var cartStore cart.Store
	if redisClient != nil {
		cartStore = cart.NewRedisStore(redisClient)
	} else {
		cartStore = cart.NewMemoryStore()
	}
	cartHandler := cart.NewHandler(cart.NewService(cartStore))

	// orders
	var orderRepo order.Repository
	if db != nil {
		orderRepo = order.NewPostgresRepository(db)
	} else {
		orderRepo = order.NewInMemoryRepository()
	}
	orderHandler := order.NewHandler(orderRepo)

	// payments: real gateway when credentials exist, demo otherwise.
	// config.Load already refuses production without credentials.
	var gateway payment.Gateway
	if cfg.PayPalConfigured() {
		gateway = payment.NewPayPalGateway(payment.PayPalConfig{
			BaseURL:      cfg.PayPalAPIURL(),
			ClientID:     cfg.PayPalClientID,
			ClientSecret: cfg.PayPalClientSecret,
			AppURL:       cfg.AppURL,
		})
		logger.Info().Str("mode", cfg.PayPalMode).Msg("paypal gateway enabled")
	} else {
		gateway = payment.NewDemoGateway()
		logger.Warn().Msg("paypal credentials not configured, running in demo mode")
	}
	paymentService := payment.NewService(gateway, orderRepo)
	checkoutHandler := checkout.NewHandler(checkout.NewVerifier(catalogService, pricing.Default), paymentService)

	// admin gate
	var limiter ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient, loginMaxAttempts, loginWindow)
	} else {
		limiter = ratelimit.NewMemoryLimiter(loginMaxAttempts, loginWindow)
	}
	var adminRepo admin.Repository
	if db != nil {
		adminRepo = admin.NewPostgresRepository(db)
	} else {
		seed := admin.Seed(cfg.AdminEmail, cfg.AdminPasswordHash)
		if seed == nil {
			logger.Warn().Msg("ADMIN_EMAIL/ADMIN_PASSWORD_HASH not set, admin login is unavailable")
		}
		adminRepo = admin.NewInMemoryRepository(seed)
	}
	adminService := admin.NewService(adminRepo, cfg.JWTSecret)
	adminHandler := admin.NewHandler(adminService, limiter, cfg.IsProduction())

	app := fiber.New()
	setupCORS(app, cfg)

	catalogHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)
	adminHandler.RegisterPublicRoutes(app)

	app.Use(admin.Gatekeeper(adminService))

	catalogHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	logger.Info().Str("addr", cfg.Addr).Str("env", cfg.Environment).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App, cfg config.Config) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AppURL,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))
}

// openDB connects to Postgres when DATABASE_URL is set. Without it the
// service runs on in-memory repositories.
func openDB(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, using in-memory storage")
		return nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open database")
	}
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("cannot reach database")
	}
	return db
}

func openRedis(cfg config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("REDIS_URL not set, carts and rate limits are process-local")
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	return redis.NewClient(opts)
}
