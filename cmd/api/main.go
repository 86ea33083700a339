package main

import (
	"fmt"
	"net/http"
	"os"

	"finpro/internal/config"
	"finpro/internal/database"
	"finpro/internal/handlers"
	"finpro/internal/logger"
	"finpro/internal/middleware"
	"finpro/internal/quotes"
	"finpro/internal/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finpro/internal/docs" // Import swagger docs
)

// @title           FinPro API
// @version         1.0
// @description     FinPro is a personal finance backend for managing budgets, transactions, savings goals, and stock investments.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

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

	// Stock quote provider
	fetcher := quotes.NewAlphaVantageFetcher(appConfig.AlphaVantageAPIKey, appConfig.AlphaVantageBaseURL)
	quoteProvider := quotes.NewProvider(fetcher, appConfig.QuoteCacheDuration, appConfig.QuoteUseMock)

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db, budgetService, transactionService)
	investmentService := services.NewInvestmentService(db, quoteProvider)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)

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

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// User routes
	users := protected.Group("/users")
	users.GET("/:id", userHandler.GetUser)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/type/:type", transactionHandler.GetTransactionsByType)
	transactions.GET("/daterange", transactionHandler.GetTransactionsByDateRange)
	transactions.GET("/income/sum", transactionHandler.GetIncomeSum)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudget)
	budgets.GET("/period/:period", budgetHandler.GetBudgetByPeriod)
	budgets.GET("/remaining", budgetHandler.GetRemainingBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoal)
	goals.GET("/progress", goalHandler.GetGoalProgress)
	goals.PUT("/:id", goalHandler.UpdateGoal)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/stock/:symbol", investmentHandler.GetStockQuote)
	investments.GET("/portfolio/performance", investmentHandler.GetPortfolioPerformance)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Start the server
	logger.Get().Infof("Starting server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
