// @title Quiz Forge API
// @version 1.0
// @description Generates multiple-choice quizzes from uploaded PDF documents and grades submissions.
// @host localhost:8000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/pdf"
	"quiz-forge/internal/adapter/quizgen"
	"quiz-forge/internal/adapter/storage"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/middleware"
	"quiz-forge/internal/monitoring"
	"quiz-forge/internal/repository"
	"quiz-forge/internal/service"
	"quiz-forge/internal/tracing"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			appLogger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				appLogger.Warn("Failed to flush traces", zap.Error(err))
			}
		}()
		appLogger.Info("Tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
	}
	if cfg.Metrics.Enabled {
		monitoring.Init()
	}

	// Redis is optional unless it is the quiz store
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	}

	var cacheAdapter domain.Cache
	if redisClient != nil {
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		cacheAdapter = adapter.NewMemoryCacheAdapter()
		appLogger.Info("Redis not configured, results are cached in memory")
	}

	quizRepository, closeStore, err := newQuizRepository(ctx, cfg, cacheAdapter)
	if err != nil {
		appLogger.Fatal("Failed to initialize quiz store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStore()

	generator, err := newQuestionGenerator(cfg.QuizGen)
	if err != nil {
		appLogger.Fatal("Failed to initialize question generator", zap.String("provider", cfg.QuizGen.Provider), zap.Error(err))
	}
	appLogger.Info("Question generator initialized", zap.String("provider", cfg.QuizGen.Provider))

	var archive domain.DocumentArchive = storage.NoopArchive{}
	if cfg.Archive.Enabled {
		archive, err = storage.NewMinioArchive(ctx, cfg.Archive)
		if err != nil {
			appLogger.Fatal("Failed to initialize document archive", zap.Error(err))
		}
		appLogger.Info("Document archive enabled", zap.String("bucket", cfg.Archive.Bucket))
	}

	resultTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Result, 24*time.Hour)
	resultCache := service.NewResultCacheService(cacheAdapter, resultTTL)
	validator := validation.NewValidator(cfg.Upload.MaxSizeBytes)

	quizService := service.NewQuizService(quizRepository, pdf.NewExtractor(), generator, archive, resultCache, validator, cfg.QuizGen.Provider)

	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"store": quizRepository,
		"cache": cacheAdapter,
	})

	app := fiber.New(fiber.Config{
		AppName:      "quiz-forge",
		ErrorHandler: middleware.ErrorHandler(cfg.Upload.MaxSizeBytes),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	if cfg.Tracing.Enabled {
		app.Use(tracing.FiberMiddleware())
	}
	if cfg.Metrics.Enabled {
		app.Use(monitoring.MetricsMiddleware())
		app.Get("/metrics", monitoring.PrometheusHandler())
	}
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	handler.SetupRoutes(app,
		quizHandler,
		healthHandler,
		middleware.NewValidationMiddleware(validator),
		middleware.RateLimiter(cfg.Upload.RateLimitRequests, cfg.Upload.RateLimitWindow),
	)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

// newQuizRepository opens the configured quiz store. The returned func releases it.
func newQuizRepository(ctx context.Context, cfg *config.Config, c domain.Cache) (domain.QuizRepository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return repository.NewMemoryQuizRepository(), func() {}, nil
	case config.StoreRedis:
		return repository.NewCacheQuizRepository(c), func() {}, nil
	case config.StoreOracle:
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(ctx, db.DB); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repository.NewQuizDatabaseAdapter(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

func newQuestionGenerator(cfg config.QuizGenConfig) (domain.QuestionGenerator, error) {
	opts := quizgen.LLMOptions{
		Provider:     cfg.Provider,
		Temperature:  cfg.Temperature,
		MaxTextChars: cfg.MaxTextChars,
	}
	switch cfg.Provider {
	case config.ProviderMock:
		return quizgen.NewMockGenerator(), nil
	case config.ProviderOpenAI:
		return quizgen.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.Model, opts)
	case config.ProviderOllama:
		return quizgen.NewOllamaGenerator(cfg.LLMServer, cfg.Model, opts)
	default:
		return nil, fmt.Errorf("unsupported quiz generator %q", cfg.Provider)
	}
}
