package main

import (
	"fmt"
	"net/http"
	"os"

	"centavo/internal/config"
	"centavo/internal/database"
	"centavo/internal/handlers"
	"centavo/internal/logger"
	"centavo/internal/middleware"
	"centavo/internal/services"
	"centavo/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Centavo API
// @version         1.0
// @description     Centavo is a personal finance tracker: record income and expense transactions against categories, set monthly budgets, and review spending summaries.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session JWT.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	transactionService := services.NewTransactionService(db, budgetService)
	savingsGoalService := services.NewSavingsGoalService(db)
	recurringService := services.NewRecurringService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewSavingsGoalHandler(savingsGoalService, auditService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group; every route requires a verified session and a
	// provisioned local user.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(appConfig))
	v1.Use(middleware.ProvisionUser(userService))

	// User profile
	v1.GET("/me", userHandler.GetCurrentUser)
	v1.PUT("/me", userHandler.UpdateProfile)

	// Category routes
	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/monthly", transactionHandler.GetMonthly)
	transactions.GET("/stats", transactionHandler.GetStats)
	transactions.POST("/bulk-delete", transactionHandler.BulkDeleteTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetMonthlyBudgets)
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.POST("/copy", budgetHandler.CopyFromPreviousMonth)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Savings goal routes
	goals := v1.Group("/goals")
	goals.GET("", goalHandler.GetGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contribute", goalHandler.Contribute)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Recurring transaction routes
	recurring := v1.Group("/recurring")
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)

	log.Infof("Starting Centavo backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
