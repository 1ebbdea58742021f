package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
)

// respondError переводит ошибки слоя БД в HTTP-статусы
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
	case errors.Is(err, database.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Счёт не найден или не принадлежит пользователю"})
	case errors.Is(err, database.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Категория не найдена или не принадлежит пользователю"})
	case errors.Is(err, database.ErrAccountInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нельзя удалить счёт, по которому есть транзакции"})
	case errors.Is(err, database.ErrCategoryInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Нельзя удалить категорию, по которой есть транзакции"})
	case errors.Is(err, database.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Этот email уже используется"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
