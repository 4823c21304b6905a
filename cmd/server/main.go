package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"thumbnail-server/internal/config"
	"thumbnail-server/internal/generator"
	"thumbnail-server/internal/handler"
	"thumbnail-server/internal/logger"
	"thumbnail-server/internal/messaging"
	"thumbnail-server/internal/middleware"
	"thumbnail-server/internal/prompt"
	"thumbnail-server/internal/repository"
	"thumbnail-server/internal/service"
	"thumbnail-server/pkg/migration"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Starting thumbnail server",
		zap.String("env", cfg.AppEnv),
		zap.String("provider", cfg.Generator.Provider),
		zap.String("storage", cfg.Storage.Backend),
	)

	ctx := context.Background()

	// --- Хранилище записей ---
	repo, cleanupStore, err := setupRepository(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize thumbnail repository", zap.Error(err))
	}
	defer cleanupStore()

	// --- Провайдер генерации изображений ---
	var gen generator.Generator
	switch cfg.Generator.Provider {
	case "openai":
		gen = generator.NewOpenAIGenerator(appLogger, cfg.Generator.OpenAI, cfg.Generator.DumpDir)
	default:
		gen = generator.NewGeminiGenerator(appLogger, cfg.Generator.Gemini, cfg.Generator.DumpDir)
	}

	// --- Публикация событий (best-effort, опционально) ---
	var events messaging.EventPublisher = messaging.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher, err := messaging.NewRabbitMQPublisher(cfg.Events.URL, cfg.Events.Queue, appLogger)
		if err != nil {
			// События вспомогательные: без брокера стартуем с noop
			appLogger.Warn("Failed to connect to RabbitMQ, events disabled", zap.Error(err))
		} else {
			events = publisher
			defer publisher.Close()
		}
	}

	thumbnailService := service.NewThumbnailService(repo, gen, prompt.NewBuilder(), events, appLogger)
	thumbnailHandler := handler.NewThumbnailHandler(thumbnailService, appLogger)

	// --- HTTP сервер ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.ZapLogging(appLogger), gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.Metrics.Enabled {
		ginprometheus.NewPrometheus("gin").Use(engine)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	thumbnailHandler.RegisterRoutes(engine)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	go func() {
		appLogger.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSec)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

// setupRepository создает хранилище записей по конфигурации и возвращает
// функцию освобождения ресурсов.
func setupRepository(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) (repository.ThumbnailRepository, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		appLogger.Info("Redis connection established", zap.String("addr", cfg.Storage.Redis.Addr))
		repo := repository.NewRedisRepository(client, appLogger, cfg.Storage.Redis.RecentLimit)
		return repo, func() { client.Close() }, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Storage.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		appLogger.Info("Postgres connection established")

		migrator := migration.NewMigrator(migration.Config{
			MigrationsPath: "migrations",
			MigrationsFS:   repository.MigrationsFS,
		}, pool, appLogger)
		if err := migrator.Up(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}

		repo := repository.NewPostgresRepository(pool, appLogger)
		return repo, func() { pool.Close() }, nil

	default:
		appLogger.Info("Using in-memory thumbnail store")
		return repository.NewMemoryRepository(), func() {}, nil
	}
}
