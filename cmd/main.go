package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FJR5209/Dashboard-backend/config"
	"github.com/FJR5209/Dashboard-backend/db"
	alerthandler "github.com/FJR5209/Dashboard-backend/internal/alerting/handler"
	alertrepo "github.com/FJR5209/Dashboard-backend/internal/alerting/repository/postgres"
	alertservice "github.com/FJR5209/Dashboard-backend/internal/alerting/service"
	authhandler "github.com/FJR5209/Dashboard-backend/internal/auth/handler"
	authrepo "github.com/FJR5209/Dashboard-backend/internal/auth/repository/postgres"
	authservice "github.com/FJR5209/Dashboard-backend/internal/auth/service"
	"github.com/FJR5209/Dashboard-backend/internal/feed"
	"github.com/FJR5209/Dashboard-backend/internal/mail"
	"github.com/FJR5209/Dashboard-backend/internal/poller"
	telemetryhandler "github.com/FJR5209/Dashboard-backend/internal/telemetry/handler"
	telemetryrepo "github.com/FJR5209/Dashboard-backend/internal/telemetry/repository/postgres"
	telemetryservice "github.com/FJR5209/Dashboard-backend/internal/telemetry/service"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := initLogger(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories.
	userRepo := authrepo.NewPostgresRepository(dbPool)
	deviceRepo := telemetryrepo.NewPostgresRepository(dbPool)
	alertRepo := alertrepo.NewPostgresRepository(dbPool)

	// Services.
	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.TokenExpiryMin)
	userService := authservice.NewUserService(userRepo, tokenService, deviceRepo)
	deviceService := telemetryservice.NewDeviceService(deviceRepo)

	policy, known := alertservice.ParseBreachPolicy(cfg.BreachPolicy)
	if !known {
		logger.Warn("unknown breach policy, using default",
			zap.String("configured", cfg.BreachPolicy),
			zap.String("effective", string(policy)),
		)
	}

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	alertService := alertservice.NewAlertService(alertRepo, mailer, policy,
		time.Duration(cfg.MailTimeoutSeconds)*time.Second, cfg.MailQueueSize, logger)
	alertService.Start()

	feedClient := feed.NewClient(cfg.ThingSpeakBaseURL, cfg.ThingSpeakChannelID, cfg.ThingSpeakAPIKey,
		time.Duration(cfg.FeedTimeoutSeconds)*time.Second)
	highWater := poller.NewRedisHighWaterStore(redisClient)

	feedPoller := poller.New(feedClient, userRepo, alertService, highWater,
		time.Duration(cfg.PollIntervalSeconds)*time.Second,
		time.Duration(cfg.FeedTimeoutSeconds)*time.Second, logger)
	feedPoller.Start()

	// HTTP surface.
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	authHandler := authhandler.NewAuthHandler(userService, tokenService, logger)
	deviceHandler := telemetryhandler.NewDeviceHandler(deviceService, logger)
	alertHandler := alerthandler.NewAlertHandler(alertService, userService, feedClient, feedPoller, logger)

	authhandler.RegisterRoutes(app, authHandler)
	telemetryhandler.RegisterRoutes(app, deviceHandler)
	alerthandler.RegisterRoutes(app, alertHandler)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(cfg.Addr())
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, shutting down",
			zap.String("signal", sig.String()),
		)
	case err := <-serverErr:
		logger.Error("server stopped", zap.Error(err))
	}

	// Drain HTTP first: in-flight requests may still dispatch alerts.
	if err := app.Shutdown(); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	feedPoller.Stop()
	alertService.Stop()

	logger.Info("dashboard backend stopped")
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.LogFormat == "json" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
