package utils

import (
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

var demoCategories = []struct {
	name  string
	ctype string
	color string
}{
	{"Зарплата", "income", "#22c55e"},
	{"Продукты", "expense", "#ef4444"},
	{"Транспорт", "expense", "#3b82f6"},
	{"Развлечения", "expense", "#a855f7"},
	{"Коммунальные", "expense", "#f97316"},
}

// GenerateDemoData наполняет базу демо-пользователем со счетами,
// категориями и транзакциями. Транзакции создаются через обычный путь,
// поэтому балансы счетов сходятся с инвариантом.
func GenerateDemoData(pool *pgxpool.Pool, numTransactions int) error {
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, true, false, 12),
	}
	if err := database.RegisterUser(pool, user); err != nil {
		return err
	}
	log.Printf("демо-пользователь создан: %s (id=%d)", user.Email, user.ID)

	accounts := []*models.Account{
		{UserID: user.ID, Name: "Основной счёт", Type: "checking", Currency: "BRL",
			OpeningBalance: decimal.NewFromInt(1000)},
		{UserID: user.ID, Name: "Накопления", Type: "savings", Currency: "BRL",
			OpeningBalance: decimal.NewFromInt(5000)},
	}
	for _, a := range accounts {
		if err := database.CreateAccount(pool, a); err != nil {
			return err
		}
	}

	categories := []*models.Category{}
	for _, dc := range demoCategories {
		c := &models.Category{UserID: user.ID, Name: dc.name, Type: dc.ctype, Color: dc.color}
		if err := database.CreateCategory(pool, c); err != nil {
			return err
		}
		categories = append(categories, c)
	}

	for i := 0; i < numTransactions; i++ {
		category := categories[rand.Intn(len(categories))]
		account := accounts[rand.Intn(len(accounts))]
		transaction := &models.Transaction{
			UserID:      user.ID,
			AccountID:   account.ID,
			CategoryID:  category.ID,
			Amount:      decimal.NewFromFloat(gofakeit.Price(1, 1000)),
			Type:        category.Type,
			Description: gofakeit.ProductName(),
			Date:        gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
			Tags:        []string{"demo"},
		}
		if err := database.CreateTransaction(pool, transaction); err != nil {
			return err
		}
	}

	log.Printf("демо-данные созданы: счетов %d, категорий %d, транзакций %d",
		len(accounts), len(categories), numTransactions)
	return nil
}
