package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/Killer2OO0/CarePlanner.AI/pkg/config"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/database"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/handlers"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/llm"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/logging"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/middleware"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/repositories"
	"github.com/Killer2OO0/CarePlanner.AI/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// golang-migrate needs database/sql, not pgxpool.
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	_ = sqlDB.Close()

	client, err := newTransport(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create generative transport", zap.Error(err))
	}

	breaker := llm.NewCircuitBreaker(llm.CircuitBreakerConfig{
		Threshold:  cfg.AI.BreakerThreshold,
		ResetAfter: time.Duration(cfg.AI.BreakerResetSeconds) * time.Second,
	})

	patientRepo := repositories.NewPatientRepository(db)
	logRepo := repositories.NewLogRepository(db)
	articleRepo := repositories.NewArticleRepository(db)

	planSvc := services.NewPlanService(client, breaker, logger)
	factsSvc := services.NewFactsService(client, logger)
	articleSvc := services.NewArticleService(client, logger)
	chatSvc := services.NewChatService(client, logger)
	dashboardSvc := services.NewDashboardService(patientRepo, logRepo, articleRepo, planSvc, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewDashboardHandler(dashboardSvc, cfg.DefaultLanguage, logger).RegisterRoutes(mux)
	handlers.NewLogsHandler(dashboardSvc, logger).RegisterRoutes(mux)
	handlers.NewKnowledgeHandler(articleRepo, articleSvc, cfg.DefaultLanguage, logger).RegisterRoutes(mux)
	handlers.NewFactsHandler(patientRepo, factsSvc, cfg.DefaultLanguage, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(patientRepo, logRepo, chatSvc, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting careplanner", zap.String("addr", addr), zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newTransport builds the configured generative client.
func newTransport(cfg *config.Config, logger *zap.Logger) (llm.Client, error) {
	llmCfg := &llm.Config{
		BaseURL: cfg.AI.BaseURL,
		Model:   cfg.AI.Model,
		APIKey:  cfg.AI.APIKey,
	}

	switch cfg.AI.Provider {
	case config.ProviderAnthropic:
		return llm.NewAnthropicClient(llmCfg, logger)
	default:
		return llm.NewOpenAIClient(llmCfg, logger)
	}
}
