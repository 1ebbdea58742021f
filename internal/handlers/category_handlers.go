package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func GetCategoriesHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := database.GetCategoriesByUserID(pool, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения списка категорий")
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func GetCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}
		category, err := database.GetCategoryByID(pool, id, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения категории")
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func CreateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload categoryRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат категории"})
			return
		}
		if payload.Name == "" || payload.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: name, type"})
			return
		}
		if !models.ValidTransactionTypes[payload.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип. Используйте: income, expense или transfer"})
			return
		}

		category := &models.Category{
			UserID:      auth.CurrentUserID(c),
			Name:        payload.Name,
			Type:        payload.Type,
			Color:       payload.Color,
			Icon:        payload.Icon,
			Description: payload.Description,
		}
		if err := database.CreateCategory(pool, category); err != nil {
			respondError(c, err, "Ошибка создания категории")
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}

		var payload categoryRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат категории"})
			return
		}
		if payload.Name == "" || payload.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Обязательные поля: name, type"})
			return
		}
		if !models.ValidTransactionTypes[payload.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип. Используйте: income, expense или transfer"})
			return
		}

		userID := auth.CurrentUserID(c)
		existing, err := database.GetCategoryByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения категории")
			return
		}

		isActive := existing.IsActive
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}

		category := &models.Category{
			ID:          id,
			UserID:      userID,
			Name:        payload.Name,
			Type:        payload.Type,
			Color:       payload.Color,
			Icon:        payload.Icon,
			Description: payload.Description,
			IsActive:    isActive,
		}
		if err := database.UpdateCategory(pool, category); err != nil {
			respondError(c, err, "Ошибка обновления категории")
			return
		}

		updated, err := database.GetCategoryByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения категории")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteCategoryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}
		if err := database.DeleteCategory(pool, id, auth.CurrentUserID(c)); err != nil {
			respondError(c, err, "Ошибка удаления категории")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Категория успешно удалена"})
	}
}
