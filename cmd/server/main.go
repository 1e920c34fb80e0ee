package main

// @title           Social Service API
// @version         1.0
// @description     REST + WebSocket backend for the social app: posts, messaging, notifications, live presence.
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-service/internal/adapters/kafka"
	"social-service/internal/api/routes"
	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/jobs"
	"social-service/internal/repository"
	"social-service/internal/service"
	"social-service/internal/services"
	"social-service/internal/ws"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("starting social service")

	redisClient, err := database.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	db, err := database.NewPostgresConnection(cfg.Database.URI)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	blobs, err := database.NewMinIOClient(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket)
	if err != nil {
		slog.Error("failed to connect to minio", "error", err)
		os.Exit(1)
	}

	var journal *kafka.Journal
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers)
		if err != nil {
			slog.Error("failed to connect to kafka, events will not be journaled", "error", err)
		} else {
			defer producer.Close()
			journal = kafka.NewJournal(producer, cfg.Kafka.Topic)
		}
	}

	redisService := services.NewRedisService(redisClient)

	hub := ws.NewHub(redisService)
	go hub.Run()
	defer hub.Stop()

	// Cleanup job for read notifications past retention.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	notificationService := service.NewNotificationService(repository.NewNotificationRepository(db), hub, journal)
	cleanup := jobs.NewNotificationCleanup(notificationService, cfg.Jobs.NotificationPurgeInterval, cfg.Jobs.NotificationRetention)
	go cleanup.Run(jobCtx)

	router := routes.NewRouter(hub, redisService, db, blobs, journal, cfg.JWT.Secret)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}
