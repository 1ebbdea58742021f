package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/handlers"
)

// SetupRouter собирает все маршруты API
func SetupRouter(pool *pgxpool.Pool) *gin.Engine {
	r := gin.Default()
	r.Use(CORSMiddleware())

	api := r.Group("/api")

	api.GET("/health", handlers.HealthHandler())

	api.POST("/auth/register", handlers.RegisterHandler(pool))
	api.POST("/auth/login", handlers.LoginHandler(pool))
	api.POST("/auth/logout", handlers.LogoutHandler())

	authorized := api.Group("")
	authorized.Use(auth.AuthRequired())

	authorized.GET("/user/profile", handlers.GetProfileHandler(pool))
	authorized.PUT("/user/profile", handlers.UpdateProfileHandler(pool))
	authorized.PUT("/user/password", handlers.ChangePasswordHandler(pool))
	authorized.GET("/user/settings", handlers.GetUserSettingsHandler(pool))
	authorized.PUT("/user/settings", handlers.UpdateUserSettingsHandler(pool))

	authorized.GET("/accounts", handlers.GetAccountsHandler(pool))
	authorized.POST("/accounts", handlers.CreateAccountHandler(pool))
	authorized.GET("/accounts/:id", handlers.GetAccountHandler(pool))
	authorized.PUT("/accounts/:id", handlers.UpdateAccountHandler(pool))
	authorized.DELETE("/accounts/:id", handlers.DeleteAccountHandler(pool))

	authorized.GET("/categories", handlers.GetCategoriesHandler(pool))
	authorized.POST("/categories", handlers.CreateCategoryHandler(pool))
	authorized.GET("/categories/:id", handlers.GetCategoryHandler(pool))
	authorized.PUT("/categories/:id", handlers.UpdateCategoryHandler(pool))
	authorized.DELETE("/categories/:id", handlers.DeleteCategoryHandler(pool))

	authorized.GET("/transactions", handlers.GetTransactionsHandler(pool))
	authorized.POST("/transactions", handlers.CreateTransactionHandler(pool))
	authorized.POST("/transactions/import", handlers.ImportTransactionsHandler(pool))
	authorized.GET("/transactions/export", handlers.ExportTransactionsHandler(pool))
	authorized.GET("/transactions/:id", handlers.GetTransactionHandler(pool))
	authorized.PUT("/transactions/:id", handlers.UpdateTransactionHandler(pool))
	authorized.DELETE("/transactions/:id", handlers.DeleteTransactionHandler(pool))

	authorized.GET("/budgets", handlers.GetBudgetsHandler(pool))
	authorized.POST("/budgets", handlers.CreateBudgetHandler(pool))
	authorized.GET("/budgets/:id", handlers.GetBudgetHandler(pool))
	authorized.PUT("/budgets/:id", handlers.UpdateBudgetHandler(pool))
	authorized.DELETE("/budgets/:id", handlers.DeleteBudgetHandler(pool))

	authorized.GET("/goals", handlers.GetGoalsHandler(pool))
	authorized.POST("/goals", handlers.CreateGoalHandler(pool))
	authorized.GET("/goals/:id", handlers.GetGoalHandler(pool))
	authorized.PUT("/goals/:id", handlers.UpdateGoalHandler(pool))
	authorized.DELETE("/goals/:id", handlers.DeleteGoalHandler(pool))
	authorized.PATCH("/goals/:id/progress", handlers.UpdateGoalProgressHandler(pool))

	authorized.GET("/dashboard/stats", handlers.GetDashboardStatsHandler(pool))

	return r
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}
