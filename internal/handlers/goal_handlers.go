package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

type goalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
}

func GetGoalsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := database.GetAllGoals(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения списка целей")
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

func GetGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор цели"})
			return
		}
		goal, err := database.GetGoalByID(pool, id, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения цели")
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

func CreateGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload goalRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.Printf("Ошибка привязки JSON: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных цели"})
			return
		}
		if payload.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Название цели обязательно"})
			return
		}
		if payload.TargetAmount.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Целевая сумма должна быть больше нуля"})
			return
		}

		targetDate, err := parseDateParam(payload.TargetDate)
		if err != nil || targetDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная целевая дата"})
			return
		}

		goal := &models.Goal{
			UserID:        auth.CurrentUserID(c),
			Name:          payload.Name,
			TargetAmount:  payload.TargetAmount,
			CurrentAmount: payload.CurrentAmount,
			TargetDate:    *targetDate,
			Description:   payload.Description,
		}
		if err := database.CreateGoal(pool, goal); err != nil {
			respondError(c, err, "Ошибка создания цели")
			return
		}
		c.JSON(http.StatusCreated, goal)
	}
}

func UpdateGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор цели"})
			return
		}

		var payload goalRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных цели"})
			return
		}
		if payload.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Название цели обязательно"})
			return
		}

		userID := auth.CurrentUserID(c)
		existing, err := database.GetGoalByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения цели")
			return
		}

		targetDate, err := parseDateParam(payload.TargetDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная целевая дата"})
			return
		}
		if targetDate == nil {
			targetDate = &existing.TargetDate
		}
		status := payload.Status
		if status == "" {
			status = existing.Status
		}

		goal := &models.Goal{
			ID:            id,
			UserID:        userID,
			Name:          payload.Name,
			TargetAmount:  payload.TargetAmount,
			CurrentAmount: payload.CurrentAmount,
			TargetDate:    *targetDate,
			Description:   payload.Description,
			Status:        status,
		}
		if err := database.UpdateGoal(pool, goal); err != nil {
			respondError(c, err, "Ошибка обновления цели")
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}

func DeleteGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор цели"})
			return
		}
		if err := database.DeleteGoal(pool, id, auth.CurrentUserID(c)); err != nil {
			respondError(c, err, "Ошибка удаления цели")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Цель успешно удалена"})
	}
}

// UpdateGoalProgressHandler прибавляет взнос к накопленной сумме цели
func UpdateGoalProgressHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор цели"})
			return
		}

		var progress struct {
			Amount decimal.Decimal `json:"amount"`
		}
		if err := c.ShouldBindJSON(&progress); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных прогресса"})
			return
		}
		if progress.Amount.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Прогресс должен быть положительным числом"})
			return
		}

		goal, err := database.UpdateGoalProgress(pool, id, auth.CurrentUserID(c), progress.Amount)
		if err != nil {
			respondError(c, err, "Ошибка обновления прогресса")
			return
		}
		c.JSON(http.StatusOK, goal)
	}
}
