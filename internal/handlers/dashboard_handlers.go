package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
)

// GetDashboardStatsHandler отдаёт агрегаты по пользователю за период
func GetDashboardStatsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		startDate, err := parseDateParam(c.Query("start_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная начальная дата"})
			return
		}
		endDate, err := parseDateParam(c.Query("end_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная конечная дата"})
			return
		}

		stats, err := database.GetDashboardStats(pool, auth.CurrentUserID(c), startDate, endDate)
		if err != nil {
			respondError(c, err, "Ошибка получения статистики")
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// HealthHandler — проверка живости сервиса
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
