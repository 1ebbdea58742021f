package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/auth"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

type transactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
	Tags        []string        `json:"tags"`
	AccountID   int             `json:"account_id"`
	CategoryID  int             `json:"category_id"`
}

func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if d, err := time.Parse(layout, value); err == nil {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("нераспознанный формат даты: %q", value)
}

func parseIDList(values []string) ([]int, error) {
	ids := []int{}
	for _, v := range values {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// validateTransactionRequest собирает список незаполненных обязательных
// полей, как это делала исходная форма ввода
func validateTransactionRequest(payload *transactionRequest) (string, bool) {
	missing := []string{}
	if strings.TrimSpace(payload.Description) == "" {
		missing = append(missing, "описание")
	}
	if payload.Amount.IsZero() {
		missing = append(missing, "сумма")
	}
	if payload.CategoryID == 0 {
		missing = append(missing, "категория")
	}
	if payload.AccountID == 0 {
		missing = append(missing, "счёт")
	}
	if len(missing) > 0 {
		return "Не заполнены обязательные поля: " + strings.Join(missing, ", "), false
	}
	return "", true
}

func GetTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := database.TransactionFilter{Type: c.Query("type")}

		var err error
		if filter.AccountIDs, err = parseIDList(c.QueryArray("account_id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор счёта"})
			return
		}
		if filter.CategoryIDs, err = parseIDList(c.QueryArray("category_id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор категории"})
			return
		}
		if filter.StartDate, err = parseDateParam(c.Query("start_date")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная начальная дата"})
			return
		}
		if filter.EndDate, err = parseDateParam(c.Query("end_date")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная конечная дата"})
			return
		}
		filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

		transactions, total, err := database.GetTransactions(pool, auth.CurrentUserID(c), filter)
		if err != nil {
			respondError(c, err, "Ошибка получения транзакций")
			return
		}

		if filter.Page < 1 {
			filter.Page = 1
		}
		if filter.Limit < 1 {
			filter.Limit = 100
		}
		pages := (total + filter.Limit - 1) / filter.Limit
		c.JSON(http.StatusOK, gin.H{
			"transactions": transactions,
			"pagination": gin.H{
				"page":  filter.Page,
				"limit": filter.Limit,
				"total": total,
				"pages": pages,
			},
		})
	}
}

func GetTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор транзакции"})
			return
		}
		transaction, err := database.GetTransactionByID(pool, id, auth.CurrentUserID(c))
		if err != nil {
			respondError(c, err, "Ошибка получения транзакции")
			return
		}
		c.JSON(http.StatusOK, transaction)
	}
}

func CreateTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload transactionRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных", "details": err.Error()})
			return
		}

		if msg, ok := validateTransactionRequest(&payload); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if payload.Type == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Тип транзакции обязателен"})
			return
		}
		if !models.ValidTransactionTypes[payload.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип. Используйте: income, expense или transfer"})
			return
		}
		if payload.Amount.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма должна быть больше нуля"})
			return
		}

		date, err := parseDateParam(payload.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата"})
			return
		}

		transaction := &models.Transaction{
			UserID:      auth.CurrentUserID(c),
			AccountID:   payload.AccountID,
			CategoryID:  payload.CategoryID,
			Amount:      payload.Amount,
			Type:        payload.Type,
			Description: strings.TrimSpace(payload.Description),
			Notes:       payload.Notes,
			Tags:        payload.Tags,
		}
		if date != nil {
			transaction.Date = *date
		}

		if err := database.CreateTransaction(pool, transaction); err != nil {
			respondError(c, err, "Ошибка создания транзакции")
			return
		}
		c.JSON(http.StatusCreated, transaction)
	}
}

func UpdateTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор транзакции"})
			return
		}

		var payload transactionRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат данных"})
			return
		}

		if msg, ok := validateTransactionRequest(&payload); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		if !models.ValidTransactionTypes[payload.Type] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип. Используйте: income, expense или transfer"})
			return
		}
		if payload.Amount.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Сумма должна быть больше нуля"})
			return
		}

		userID := auth.CurrentUserID(c)
		existing, err := database.GetTransactionByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения транзакции")
			return
		}

		date, err := parseDateParam(payload.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректная дата"})
			return
		}
		if date == nil {
			date = &existing.Date
		}

		transaction := &models.Transaction{
			ID:          id,
			UserID:      userID,
			AccountID:   payload.AccountID,
			CategoryID:  payload.CategoryID,
			Amount:      payload.Amount,
			Type:        payload.Type,
			Description: strings.TrimSpace(payload.Description),
			Date:        *date,
			Notes:       payload.Notes,
			Tags:        payload.Tags,
		}
		if err := database.UpdateTransaction(pool, transaction); err != nil {
			respondError(c, err, "Ошибка обновления транзакции")
			return
		}

		updated, err := database.GetTransactionByID(pool, id, userID)
		if err != nil {
			respondError(c, err, "Ошибка получения транзакции")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func DeleteTransactionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный идентификатор транзакции"})
			return
		}
		if err := database.DeleteTransaction(pool, id, auth.CurrentUserID(c)); err != nil {
			respondError(c, err, "Ошибка удаления транзакции")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Транзакция успешно удалена"})
	}
}

// ImportTransactionsHandler принимает CSV-файл с лёгкой построчной
// валидацией: ошибочные строки пропускаются и возвращаются в ответе
func ImportTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Не передан CSV-файл (поле file)"})
			return
		}
		defer file.Close()

		rows, rowErrors, err := database.ParseTransactionsCSV(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := database.ImportTransactions(pool, auth.CurrentUserID(c), rows, rowErrors)
		if err != nil {
			respondError(c, err, "Ошибка импорта транзакций")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func ExportTransactionsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
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

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
		if err := database.ExportTransactionsCSV(pool, auth.CurrentUserID(c), startDate, endDate, c.Writer); err != nil {
			respondError(c, err, "Ошибка экспорта транзакций")
			return
		}
	}
}
