package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func GetProfileHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := database.GetUserByID(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения профиля")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UpdateProfileHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload updateProfileRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if payload.Name == "" || payload.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Имя и email обязательны"})
			return
		}
		if !auth.IsValidEmail(payload.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный email"})
			return
		}

		user := &models.User{
			ID:    auth.CurrentUserID(c),
			Name:  payload.Name,
			Email: payload.Email,
		}
		if err := database.UpdateUserProfile(pool, user); err != nil {
			respondError(c, err, "Ошибка обновления профиля")
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID, "name": user.Name, "email": user.Email})
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePasswordHandler меняет пароль после проверки текущего.
// Здесь исторически действует более мягкое правило длины, чем при регистрации.
func ChangePasswordHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload changePasswordRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if payload.CurrentPassword == "" || payload.NewPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Текущий и новый пароль обязательны"})
			return
		}
		if len(payload.NewPassword) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Новый пароль должен содержать минимум 6 символов"})
			return
		}

		err := database.ChangeUserPassword(pool, auth.CurrentUserID(c), payload.CurrentPassword, payload.NewPassword)
		if err != nil {
			if errors.Is(err, database.ErrWrongPassword) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Текущий пароль неверен"})
				return
			}
			respondError(c, err, "Ошибка смены пароля")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Пароль успешно изменён"})
	}
}
