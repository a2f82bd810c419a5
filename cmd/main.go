package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/safezone_tracking/internal/alert"
	"github.com/shenikar/safezone_tracking/internal/config"
	v1 "github.com/shenikar/safezone_tracking/internal/handler/http/v1"
	"github.com/shenikar/safezone_tracking/internal/realtime"
	"github.com/shenikar/safezone_tracking/internal/repository"
	"github.com/shenikar/safezone_tracking/internal/sensor"
	"github.com/shenikar/safezone_tracking/internal/service"
	"github.com/shenikar/safezone_tracking/internal/tracking"
	"github.com/shenikar/safezone_tracking/internal/webhook"
	"github.com/shenikar/safezone_tracking/pkg/logger"
	"github.com/shenikar/safezone_tracking/pkg/postgres"
	redisclient "github.com/shenikar/safezone_tracking/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/safezone_tracking/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Safe-Zone Tracking API
// @version 1.0
// @description Location tracking and geofence alerting for care groups.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Очередь SMS-уведомлений и воркер доставки
	notifier := webhook.NewRedisNotifier(redisClient)
	notificationWorker := webhook.NewNotificationWorker(redisClient, log, cfg)
	notificationWorker.Start(ctx)

	realtimeChannel := realtime.NewRedisChannel(redisClient, log)

	// Устройства присылают данные по HTTP и, если задан брокер, по MQTT
	hub := sensor.NewHub(cfg.FixMaxAge)
	if cfg.MQTTBroker != "" {
		bridge, err := sensor.NewMQTTBridge(cfg, hub, log)
		if err != nil {
			log.Fatalf("Failed to start MQTT bridge: %v", err)
		}
		defer bridge.Stop()
		log.WithField("broker", cfg.MQTTBroker).Info("MQTT device bridge started")
	}

	// Инициализация репозиториев
	geofenceRepo := repository.NewGeofenceRepository(dbpool, redisClient, cfg.GeofenceCacheTTL)
	trackingRepo := repository.NewTrackingRepository(dbpool)
	alertRepo := repository.NewAlertRepository(dbpool)

	// Инициализация сервисов
	geofenceService := service.NewGeofenceService(geofenceRepo, log)
	dispatcher := alert.NewDispatcher(alertRepo, realtimeChannel, notifier, log)
	manager := tracking.NewManager(
		hub,
		trackingRepo,
		geofenceService,
		dispatcher,
		realtimeChannel,
		func(event realtime.Event) {
			log.WithFields(logrus.Fields{
				"group_id": event.GroupID,
				"table":    event.Table,
				"type":     event.Type,
			}).Info("Alert event received")
		},
		tracking.Options{
			DefaultInterval:     cfg.TrackingUpdateInterval,
			HistoryLimit:        cfg.TrackingHistoryLimit,
			PositionTimeout:     cfg.PositionTimeout,
			LowBatteryThreshold: cfg.LowBatteryThreshold,
		},
		log,
	)

	// Инициализация хэндлеров
	handler := v1.NewHandler(geofenceService, manager, trackingRepo, hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Сессии останавливаются до закрытия пула и Redis, начатая обработка дописывается
	manager.Close(shutdownCtx)

	cancel()
	select {
	case <-notificationWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("Notification worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}
