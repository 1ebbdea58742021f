package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

const sessionMaxAge = 24 * 60 * 60

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler регистрирует нового пользователя
func RegisterHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload registerRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.Printf("Ошибка привязки JSON: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}

		if payload.Email == "" || payload.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: email, password"})
			return
		}
		if !auth.IsValidEmail(payload.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный email"})
			return
		}
		if !auth.IsValidPassword(payload.Password) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Пароль должен содержать минимум 8 символов и хотя бы один спецсимвол",
			})
			return
		}

		user := &models.User{
			Name:     payload.Name,
			Email:    payload.Email,
			Password: payload.Password,
		}
		if err := database.RegisterUser(pool, user); err != nil {
			respondError(c, err, "Ошибка регистрации пользователя")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email, "name": user.Name})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler проверяет учётные данные и выдаёт cookie сессии
func LoginHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload loginRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}
		if payload.Email == "" || payload.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: email, password"})
			return
		}

		user, err := database.AuthenticateUser(pool, payload.Email, payload.Password)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) || errors.Is(err, database.ErrWrongPassword) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный email или пароль"})
				return
			}
			respondError(c, err, "Ошибка авторизации")
			return
		}

		token, err := auth.IssueToken(user)
		if err != nil {
			log.Printf("Ошибка выпуска токена: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка авторизации"})
			return
		}

		c.SetCookie(auth.SessionCookie, token, sessionMaxAge, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Авторизация успешна", "token": token, "user": user})
	}
}

// LogoutHandler сбрасывает cookie сессии
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Выход выполнен"})
	}
}
