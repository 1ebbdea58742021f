package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

var validCurrencies = map[string]bool{
	"BRL": true, "USD": true, "EUR": true, "RUB": true,
	"BYN": true, "PLN": true, "JPY": true,
}

func GetUserSettingsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := database.GetUserSettings(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения настроек пользователя")
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

type updateSettingsRequest struct {
	Currency      string `json:"currency"`
	Theme         string `json:"theme"`
	WeeklyReports *bool  `json:"weekly_reports"`
	AutoUpdates   *bool  `json:"auto_updates"`
}

func UpdateUserSettingsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload updateSettingsRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные"})
			return
		}
		if payload.Currency != "" && !validCurrencies[payload.Currency] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неподдерживаемая валюта"})
			return
		}

		userID := auth.CurrentUserID(c)
		existing, err := database.GetUserSettings(pool, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения настроек пользователя")
			return
		}

		settings := &models.UserSettings{
			UserID:        userID,
			Currency:      existing.Currency,
			Theme:         existing.Theme,
			WeeklyReports: existing.WeeklyReports,
			AutoUpdates:   existing.AutoUpdates,
		}
		if payload.Currency != "" {
			settings.Currency = payload.Currency
		}
		if payload.Theme != "" {
			settings.Theme = payload.Theme
		}
		if payload.WeeklyReports != nil {
			settings.WeeklyReports = *payload.WeeklyReports
		}
		if payload.AutoUpdates != nil {
			settings.AutoUpdates = *payload.AutoUpdates
		}

		if err := database.UpdateUserSettings(pool, settings); err != nil {
			respondError(c, err, "Ошибка обновления настроек пользователя")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Настройки успешно обновлены", "settings": settings})
	}
}
