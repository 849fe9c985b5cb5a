package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/profile-scorer/internal/config"
	"github.com/fadilmartias/profile-scorer/internal/domain/fiber/handler"
	"github.com/fadilmartias/profile-scorer/internal/logging"
	"github.com/fadilmartias/profile-scorer/internal/middleware"
	"github.com/fadilmartias/profile-scorer/internal/repository"
	"github.com/fadilmartias/profile-scorer/internal/service"
	"github.com/fadilmartias/profile-scorer/internal/usecase"
	"github.com/fadilmartias/profile-scorer/internal/util"
	"github.com/fadilmartias/profile-scorer/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	appLogger := logging.Setup(logging.Options{
		Level:  appConfig.LogLevel,
		Format: appConfig.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newJobStore(config.LoadDBConfig(), appConfig)
	if err != nil {
		appLogger.Error("could not open job store", "error", err)
		os.Exit(1)
	}

	scorer, err := newScorer(ctx, config.LoadScorerConfig(), config.LoadGeminiConfig(), appLogger)
	if err != nil {
		appLogger.Error("could not build scorer", "error", err)
		os.Exit(1)
	}

	runnerConfig := config.LoadRunnerConfig()
	runner := worker.NewJobRunner(worker.JobRunnerOptions{
		Workers:   runnerConfig.MaxWorkers,
		QueueSize: runnerConfig.QueueSize,
		Logger:    appLogger.With("component", "job_runner"),
	})

	uc := usecase.NewJobUsecase(usecase.JobUsecaseOptions{
		Store:   store,
		Runner:  runner,
		Fetcher: service.NewLinkedInScraperService(config.LoadRapidAPIConfig(), appLogger),
		Scorer:  scorer,
		Logger:  appLogger.With("component", "job_usecase"),
	})

	app := newApp(appConfig, runner)
	handler.NewJobHandler(uc, middleware.RateLimiter("submit", appConfig.SubmitRateLimitMax, appConfig.SubmitRateLimitWindow)).
		RegisterRoutes(app)

	appLogger.Info("server running",
		"port", appConfig.Port,
		"env", appConfig.Env,
		"workers", runnerConfig.MaxWorkers,
		"queue_size", runnerConfig.QueueSize,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(appConfig.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("shutting down", "timeout", appConfig.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.ShutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		appLogger.Error("server stopped", "error", err)
	}

	// Let in-flight jobs finish before exiting.
	runner.Shutdown(true)
	appLogger.Info("job runner stopped")
}

func newApp(appConfig *config.AppConfig, runner *worker.JobRunner) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		ErrorHandler: util.ErrorHandler,
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			return !runner.Stats().Closed
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter("global", appConfig.RateLimitMax, appConfig.RateLimitWindow))
	return app
}

func newJobStore(dbConfig *config.DBConfig, appConfig *config.AppConfig) (repository.JobStore, error) {
	switch dbConfig.StoreBackend {
	case config.StoreBackendPostgres:
		db, err := ConnectDB(dbConfig, appConfig)
		if err != nil {
			return nil, err
		}
		repo := repository.NewJobRepository(db)
		if err := repo.Migrate(); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return repo, nil
	case config.StoreBackendRedis:
		client, err := ConnectRedis(dbConfig)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisJobStore(client, dbConfig.RedisJobTTL), nil
	case config.StoreBackendMemory, "":
		return repository.NewMemoryJobStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", dbConfig.StoreBackend)
	}
}

func newScorer(ctx context.Context, scorerConfig *config.ScorerConfig, geminiConfig *config.GeminiConfig, appLogger *slog.Logger) (service.ProfileScorer, error) {
	switch scorerConfig.Backend {
	case config.ScorerBackendGemini:
		gemini, err := service.NewGeminiService(ctx, geminiConfig, appLogger)
		if err != nil {
			return nil, err
		}
		return gemini, nil
	case config.ScorerBackendLocal:
		return service.NewHeuristicScorer(), nil
	case config.ScorerBackendHTTP:
		if scorerConfig.APIURL == "" {
			return nil, errors.New("SCORER_BACKEND=http requires MODEL_API_URL")
		}
		return service.NewModelService(scorerConfig, appLogger), nil
	default:
		return service.NewHeuristicScorer(), nil
	}
}

func ConnectRedis(dbConfig *config.DBConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(dbConfig.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return client, nil
}

func ConnectDB(dbConfig *config.DBConfig, appConfig *config.AppConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}
