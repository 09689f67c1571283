package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/adityarahmanda/careerisk/internal/config"
	"github.com/adityarahmanda/careerisk/internal/domain/fiber/handler"
	"github.com/adityarahmanda/careerisk/internal/middleware"
	"github.com/adityarahmanda/careerisk/internal/model"
	"github.com/adityarahmanda/careerisk/internal/repository"
	"github.com/adityarahmanda/careerisk/internal/service"
	"github.com/adityarahmanda/careerisk/internal/usecase"
	"github.com/adityarahmanda/careerisk/internal/worker"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	logger := newLogger(appConfig.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background jobs must outlive the signal: they are cancelled only
	// after the drain deadline, never by the SIGINT itself.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := connectDB(logger)

	profileRepo := repository.NewProfileRepository(db)
	reportRepo := repository.NewReportRepository(db)
	userRepo := repository.NewUserRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)

	provider := newProvider(ctx, appConfig, logger)

	pool := worker.NewPool(4, 64, logger)
	pool.Start(jobCtx)

	analysisUC := usecase.NewAnalysisUsecase(profileRepo, reportRepo, provider, logger)
	researchUC := usecase.NewResearchUsecase(profileRepo, benchmarkRepo, provider, analysisUC, pool, logger)
	reportUC := usecase.NewReportUsecase(reportRepo, logger)
	userUC := usecase.NewUserUsecase(userRepo, logger)
	benchmarkUC := usecase.NewBenchmarkUsecase(benchmarkRepo, provider, logger)

	authMW := middleware.NewAuthMiddleware(config.LoadAuthConfig(), logger)

	assessmentHandler := handler.NewAssessmentHandler(researchUC, analysisUC, reportUC)
	assessmentHandler.RegisterRoutes(app, authMW.Required(), authMW.Optional())
	webhookHandler := handler.NewWebhookHandler(userUC, config.LoadWebhookConfig().Secret)
	webhookHandler.RegisterRoutes(app)
	benchmarkHandler := handler.NewBenchmarkHandler(benchmarkUC)
	benchmarkHandler.RegisterRoutes(app, authMW.Required())

	go func() {
		logger.Info("server running", zap.String("port", appConfig.Port))
		if err := app.Listen(appConfig.Port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// Let in-flight analysis pipelines finish; they run for minutes.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Error("worker pool shutdown timed out", zap.Error(err))
	}
	cancelJobs()
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	return logger
}

func newProvider(ctx context.Context, appConfig *config.AppConfig, logger *zap.Logger) service.TextProvider {
	if appConfig.TextProvider == "openrouter" {
		return service.NewOpenRouterService(logger)
	}
	gemini, err := service.NewGeminiService(ctx, logger)
	if err != nil {
		logger.Fatal("could not create gemini client", zap.Error(err))
	}
	return gemini
}

func connectDB(logger *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		logger.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Profile{},
		&model.Report{},
		&model.User{},
		&model.OccupationBenchmark{},
	)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	return db
}
