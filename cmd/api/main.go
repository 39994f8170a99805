// @title Nerd Math API
// @version 1.0
// @description Gamification, progress tracking and diagnostic testing for the Nerd Math learning app.
// @contact.name API Support
// @host localhost:8090
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "nerd-math/cmd/api/docs"
	"nerd-math/internal/adapter"
	"nerd-math/internal/adapter/analysis"
	"nerd-math/internal/cache"
	"nerd-math/internal/config"
	"nerd-math/internal/database"
	"nerd-math/internal/domain"
	"nerd-math/internal/handler"
	"nerd-math/internal/logger"
	"nerd-math/internal/middleware"
	"nerd-math/internal/repository"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.DB, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// The API keeps serving without Redis; caches fall back to no-ops.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	var analysisClient domain.AnalysisClient
	if client, err := analysis.NewHTTPClient(cfg.Analysis); err != nil {
		appLogger.Warn("Analysis client disabled", zap.Error(err))
	} else {
		analysisClient = client
	}

	txManager := repository.NewTransactionManagerAdapter(db)
	ledgerRepo := repository.NewSQLXXPLedgerRepository(db)
	stateRepo := repository.NewSQLXGamificationStateRepository(db)
	progressRepo := repository.NewSQLXUnitProgressRepository(db)
	unitRepo := repository.NewSQLXUnitRepository(db)
	characterRepo := repository.NewSQLXCharacterRepository(db)
	problemRepo := repository.NewSQLXProblemRepository(db)
	problemSetRepo := repository.NewSQLXProblemSetRepository(db)
	vocabRepo := repository.NewSQLXVocabularyRepository(db)
	attemptRepo := repository.NewSQLXAnswerAttemptRepository(db)
	testRepo := repository.NewSQLXDiagnosticTestRepository(db)
	analysisRepo := repository.NewSQLXDiagnosticAnalysisRepository(db)

	authService, err := service.NewAuthService(cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	gamificationService := service.NewGamificationService(ledgerRepo, stateRepo, characterRepo, txManager, cfg.Gamification)
	progressService := service.NewProgressService(progressRepo, unitRepo,
		service.NewProgressSummaryCache(cacheAdapter, cfg.Progress.SummaryTTL), cfg.Progress)
	answerService := service.NewAnswerService(problemRepo, problemSetRepo, vocabRepo, unitRepo, attemptRepo,
		progressService, gamificationService)
	diagnosticService := service.NewDiagnosticService(testRepo, attemptRepo, problemRepo, problemSetRepo, analysisRepo,
		analysisClient, service.NewAnalysisTracker(cacheAdapter, 0), txManager, cfg.Diagnostic, cfg.Analysis)
	appLogger.Info("Services initialized")

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app, handler.Handlers{
		Gamification: handler.NewGamificationHandler(gamificationService),
		Progress:     handler.NewProgressHandler(progressService),
		Answers:      handler.NewAnswerHandler(answerService),
		Diagnostics:  handler.NewDiagnosticHandler(diagnosticService),
		Health:       handler.NewHealthHandler(db, cacheAdapter),
	}, authService, cfg.Analysis.ServiceToken)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
