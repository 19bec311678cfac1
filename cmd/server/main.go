package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hiptrack/shipment-tracker/internal/api"
	"github.com/hiptrack/shipment-tracker/internal/core/service"
	"github.com/hiptrack/shipment-tracker/internal/infrastructure/config"
	mongodb "github.com/hiptrack/shipment-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/hiptrack/shipment-tracker/internal/infrastructure/db/redis"
	"github.com/hiptrack/shipment-tracker/internal/infrastructure/email"
	"github.com/hiptrack/shipment-tracker/internal/infrastructure/queue"
	"github.com/hiptrack/shipment-tracker/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	shipmentRepo := mongodb.NewShipmentRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	feedbackRepo := mongodb.NewFeedbackRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{shipmentRepo, messageRepo, feedbackRepo, userRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Collaborators ---
	notifier := email.NewNotifier(email.Config{
		Host:         cfg.SMTP.Host,
		Port:         cfg.SMTP.Port,
		Username:     cfg.SMTP.Username,
		Password:     cfg.SMTP.Password,
		From:         cfg.SMTP.From,
		SupportEmail: cfg.SMTP.SupportEmail,
		BaseURL:      cfg.BaseURL,
	}, log)
	dedup := redisdb.NewNotificationDedup(rdb)
	publisher := redisdb.NewMessagePublisher(rdb)

	writer := queue.NewWriter(cfg.Queue.Workers, shipmentRepo, log)
	writer.Start(ctx)

	// --- Services ---
	trackingService := service.NewTrackingService(shipmentRepo, writer, notifier, dedup, log)
	shipmentService := service.NewShipmentService(shipmentRepo, log)
	messageService := service.NewMessageService(messageRepo, publisher, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, notifier, log)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(api.Dependencies{
		Tracking:  trackingService,
		Shipments: shipmentService,
		Messages:  messageService,
		Feedback:  feedbackService,
		Auth:      authService,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
