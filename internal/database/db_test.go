package database_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

// testPool подключается к тестовой БД из .env; без настроенной БД
// интеграционные тесты пропускаются
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()
	if os.Getenv("DB_NAME") == "" {
		t.Skip("БД не настроена (нет DB_NAME), пропускаем интеграционный тест")
	}
	pool, err := database.ConnectPool()
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func newTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("test.%d@example.com", time.Now().UnixNano()),
		Password: "Secret!123",
	}
	if err := database.RegisterUser(pool, user); err != nil {
		t.Fatalf("ошибка регистрации пользователя: %v", err)
	}
	return user
}

func newTestAccount(t *testing.T, pool *pgxpool.Pool, userID int, opening decimal.Decimal) *models.Account {
	t.Helper()
	account := &models.Account{
		UserID:         userID,
		Name:           fmt.Sprintf("Счёт %d", time.Now().UnixNano()),
		Type:           "checking",
		Currency:       "BRL",
		OpeningBalance: opening,
		IsActive:       true,
	}
	if err := database.CreateAccount(pool, account); err != nil {
		t.Fatalf("ошибка создания счёта: %v", err)
	}
	return account
}

func newTestCategory(t *testing.T, pool *pgxpool.Pool, userID int, ctype string) *models.Category {
	t.Helper()
	category := &models.Category{
		UserID:   userID,
		Name:     fmt.Sprintf("Категория %d", time.Now().UnixNano()),
		Type:     ctype,
		Color:    "#3b82f6",
		IsActive: true,
	}
	if err := database.CreateCategory(pool, category); err != nil {
		t.Fatalf("ошибка создания категории: %v", err)
	}
	return category
}

func accountBalance(t *testing.T, pool *pgxpool.Pool, accountID, userID int) decimal.Decimal {
	t.Helper()
	account, err := database.GetAccountByID(pool, accountID, userID)
	if err != nil {
		t.Fatalf("ошибка получения счёта: %v", err)
	}
	return account.Balance
}
