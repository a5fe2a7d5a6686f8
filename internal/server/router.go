// Package server wires services, handlers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"pocketbudget/internal/charts"
	"pocketbudget/internal/config"
	_ "pocketbudget/internal/docs" // Import swagger docs
	"pocketbudget/internal/handlers"
	"pocketbudget/internal/middleware"
	"pocketbudget/internal/services"
	"pocketbudget/internal/session"
)

// New builds the API router. Budget state is resolved per request from the
// session registry; users and audit logs are persisted through db.
func New(cfg *config.Config, db *gorm.DB, sessions *session.Registry) *gin.Engine {
	// Initialize services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	budgetService := services.NewBudgetService(sessions)
	expenseService := services.NewExpenseService(sessions)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessions, auditService, cfg.JWTExpirationDur)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	chartHandler := handlers.NewChartHandler(budgetService, charts.NewGenerator())
	categoryHandler := handlers.NewCategoryHandler()
	auditHandler := handlers.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": sessions.Len()})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/audit-logs", auditHandler.GetAuditLogs)
	protected.GET("/categories", categoryHandler.GetCategories)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/summary", budgetHandler.GetSummary)
	budgets.GET("/chart", chartHandler.GetBudgetsChart)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/progress", budgetHandler.GetBudgetProgress)
	budgets.GET("/:id/breakdown", budgetHandler.GetCategoryBreakdown)
	budgets.GET("/:id/chart", chartHandler.GetBreakdownChart)
	budgets.GET("/:id/expenses", expenseHandler.GetBudgetExpenses)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}
