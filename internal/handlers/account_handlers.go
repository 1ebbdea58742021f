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

type accountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Currency       string          `json:"currency"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Description    string          `json:"description"`
	IsActive       *bool           `json:"is_active"`
}

func GetAccountsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := database.GetAccountsByUserID(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения списка счетов")
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

func GetAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор счёта"})
			return
		}
		account, err := database.GetAccountByID(pool, id, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения счёта")
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

func CreateAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload accountRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных счёта"})
			return
		}
		if payload.Name == "" || payload.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: name, type"})
			return
		}
		if !models.ValidAccountTypes[payload.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип. Используйте: checking, savings, credit или investment"})
			return
		}
		if payload.Currency == "" {
			payload.Currency = "BRL"
		}

		account := &models.Account{
			UserID:         auth.CurrentUserID(c),
			Name:           payload.Name,
			Type:           payload.Type,
			Currency:       payload.Currency,
			OpeningBalance: payload.OpeningBalance,
			Description:    payload.Description,
		}
		if err := database.CreateAccount(pool, account); err != nil {
			respondError(c, err, "Ошибка создания счёта")
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

func UpdateAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор счёта"})
			return
		}

		var payload accountRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных счёта"})
			return
		}
		if payload.Name == "" || payload.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: name, type"})
			return
		}
		if !models.ValidAccountTypes[payload.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип. Используйте: checking, savings, credit или investment"})
			return
		}

		userID := auth.CurrentUserID(c)
		existing, err := database.GetAccountByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения счёта")
			return
		}

		if payload.Currency == "" {
			payload.Currency = existing.Currency
		}
		isActive := existing.IsActive
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		account := &models.Account{
			ID:          id,
			UserID:      userID,
			Name:        payload.Name,
			Type:        payload.Type,
			Currency:    payload.Currency,
			Description: payload.Description,
			IsActive:    isActive,
		}
		if err := database.UpdateAccount(pool, account); err != nil {
			respondError(c, err, "Ошибка обновления счёта")
			return
		}

		updated, err := database.GetAccountByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения счёта")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteAccountHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор счёта"})
			return
		}
		if err := database.DeleteAccount(pool, id, auth.CurrentUserID(c)); err != nil {
			respondError(c, err, "Ошибка удаления счёта")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Счёт успешно удалён"})
	}
}
