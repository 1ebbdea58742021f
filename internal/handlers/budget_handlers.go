package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

type budgetRequest struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	CategoryID int             `json:"category_id"`
	IsActive   *bool           `json:"is_active"`
}

func GetBudgetsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		budgets, err := database.GetBudgetsByUserID(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения списка бюджетов")
			return
		}
		c.JSON(http.StatusOK, budgets)
	}
}

func GetBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор бюджета"})
			return
		}
		budget, err := database.GetBudgetByID(pool, id, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения бюджета")
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

func CreateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload budgetRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных бюджета"})
			return
		}
		if payload.Name == "" || payload.Period == "" || payload.CategoryID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: name, period, category_id"})
			return
		}
		if payload.Amount.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма должна быть больше нуля"})
			return
		}

		startDate, err := parseDateParam(payload.StartDate)
		if err != nil || startDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная начальная дата"})
			return
		}
		endDate, err := parseDateParam(payload.EndDate)
		if err != nil || endDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная конечная дата"})
			return
		}

		budget := &models.Budget{
			UserID:     auth.CurrentUserID(c),
			CategoryID: payload.CategoryID,
			Name:       payload.Name,
			Amount:     payload.Amount,
			Period:     payload.Period,
			StartDate:  *startDate,
			EndDate:    *endDate,
		}
		if err := database.CreateBudget(pool, budget); err != nil {
			respondError(c, err, "Ошибка создания бюджета")
			return
		}
		c.JSON(http.StatusCreated, budget)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор бюджета"})
			return
		}

		var payload budgetRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных бюджета"})
			return
		}
		if payload.Name == "" || payload.Period == "" || payload.CategoryID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: name, period, category_id"})
			return
		}

		userID := auth.CurrentUserID(c)
		existing, err := database.GetBudgetByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения бюджета")
			return
		}

		startDate, err := parseDateParam(payload.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная начальная дата"})
			return
		}
		if startDate == nil {
			startDate = &existing.StartDate
		}
		endDate, err := parseDateParam(payload.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная конечная дата"})
			return
		}
		if endDate == nil {
			endDate = &existing.EndDate
		}
		isActive := existing.IsActive
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		budget := &models.Budget{
			ID:         id,
			UserID:     userID,
			CategoryID: payload.CategoryID,
			Name:       payload.Name,
			Amount:     payload.Amount,
			Period:     payload.Period,
			StartDate:  *startDate,
			EndDate:    *endDate,
			IsActive:   isActive,
		}
		if err := database.UpdateBudget(pool, budget); err != nil {
			respondError(c, err, "Ошибка обновления бюджета")
			return
		}

		updated, err := database.GetBudgetByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения бюджета")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор бюджета"})
			return
		}
		if err := database.DeleteBudget(pool, id, auth.CurrentUserID(c)); err != nil {
			respondError(c, err, "Ошибка удаления бюджета")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Бюджет успешно удалён"})
	}
}
