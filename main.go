package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/config"
	"github.com/platewise/platewise-engine/pkg/database"
	"github.com/platewise/platewise-engine/pkg/handlers"
	"github.com/platewise/platewise-engine/pkg/logging"
	"github.com/platewise/platewise-engine/pkg/middleware"
	"github.com/platewise/platewise-engine/pkg/repositories"
	"github.com/platewise/platewise-engine/pkg/services"
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
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())))

	ctx := context.Background()

	// Migrations run over database/sql; the pool below is pgx-native.
	migrationDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(migrationDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := migrationDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:             cfg.Database.ConnectionString(),
		MaxConnections:  cfg.Database.MaxConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	authMiddleware := auth.NewMiddleware(jwksClient, logger)

	// Repositories
	categoryRepo := repositories.NewCategoryRepository(db)
	unitRepo := repositories.NewUnitRepository(db)
	ingredientRepo := repositories.NewIngredientRepository(db)
	dishRepo := repositories.NewDishRepository(db)
	mealPlanRepo := repositories.NewMealPlanRepository(db)

	// Services
	categoryService := services.NewCategoryService(categoryRepo, logger)
	unitService := services.NewUnitService(unitRepo, logger)
	ingredientService := services.NewIngredientService(ingredientRepo, logger)
	dishService := services.NewDishService(dishRepo, logger)
	mealPlanService := services.NewMealPlanService(mealPlanRepo, logger)
	plannerService := services.NewPlannerService(mealPlanRepo, logger)
	shoppingListService := services.NewShoppingListService(mealPlanRepo, logger)

	mux := http.NewServeMux()

	// Handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewCategoryHandler(categoryService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewUnitHandler(unitService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewIngredientHandler(ingredientService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewDishHandler(dishService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewMealPlanHandler(mealPlanService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewWeeklyPlanHandler(plannerService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewShoppingListHandler(shoppingListService, logger).RegisterRoutes(mux, authMiddleware)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	if cfg.TLSCertPath != "" && cfg.TLSKeyPath != "" {
		logger.Info("Starting platewise-engine with TLS",
			zap.String("addr", addr),
			zap.String("version", cfg.Version))
		if err := http.ListenAndServeTLS(addr, cfg.TLSCertPath, cfg.TLSKeyPath, handler); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
		return
	}

	logger.Info("Starting platewise-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
