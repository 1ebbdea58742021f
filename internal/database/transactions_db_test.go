package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func TestTransactionLifecycleKeepsBalance(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)
	account := newTestAccount(t, pool, user.ID, decimal.NewFromInt(1000))
	income := newTestCategory(t, pool, user.ID, "income")
	expense := newTestCategory(t, pool, user.ID, "expense")

	if !account.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("стартовый баланс %s, хотели 1000", account.Balance)
	}

	// Доход увеличивает баланс
	transaction := &models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		CategoryID:  income.ID,
		Amount:      decimal.NewFromFloat(500.50),
		Type:        "income",
		Description: "Зарплата",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	if got := accountBalance(t, pool, account.ID, user.ID); !got.Equal(decimal.NewFromFloat(1500.50)) {
		t.Errorf("баланс после дохода %s, хотели 1500.50", got)
	}

	// Смена типа и суммы снимает старый эффект и применяет новый
	transaction.Type = "expense"
	transaction.CategoryID = expense.ID
	transaction.Amount = decimal.NewFromInt(200)
	transaction.Description = "Продукты"
	if err := database.UpdateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка обновления транзакции: %v", err)
	}
	if got := accountBalance(t, pool, account.ID, user.ID); !got.Equal(decimal.NewFromInt(800)) {
		t.Errorf("баланс после обновления %s, хотели 800", got)
	}

	// Удаление возвращает баланс к стартовому
	if err := database.DeleteTransaction(pool, transaction.ID, user.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	if got := accountBalance(t, pool, account.ID, user.ID); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("баланс после удаления %s, хотели 1000", got)
	}

	if _, err := database.GetTransactionByID(pool, transaction.ID, user.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("удалённая транзакция всё ещё доступна: %v", err)
	}
}

func TestMoveTransactionBetweenAccounts(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)
	first := newTestAccount(t, pool, user.ID, decimal.NewFromInt(100))
	second := newTestAccount(t, pool, user.ID, decimal.NewFromInt(100))
	category := newTestCategory(t, pool, user.ID, "expense")

	transaction := &models.Transaction{
		UserID:      user.ID,
		AccountID:   first.ID,
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(30),
		Type:        "expense",
		Description: "Обед",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	transaction.AccountID = second.ID
	if err := database.UpdateTransaction(pool, transaction); err != nil {
		t.Fatalf("ошибка переноса транзакции: %v", err)
	}

	if got := accountBalance(t, pool, first.ID, user.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("баланс исходного счёта %s, хотели 100", got)
	}
	if got := accountBalance(t, pool, second.ID, user.ID); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("баланс нового счёта %s, хотели 70", got)
	}
}

func TestGetTransactionsFilters(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)
	account := newTestAccount(t, pool, user.ID, decimal.NewFromInt(1000))
	income := newTestCategory(t, pool, user.ID, "income")
	expense := newTestCategory(t, pool, user.ID, "expense")

	fixtures := []struct {
		ctype  string
		cat    int
		amount int64
	}{
		{"income", income.ID, 500},
		{"expense", expense.ID, 100},
		{"expense", expense.ID, 50},
	}
	for _, f := range fixtures {
		tr := &models.Transaction{
			UserID:      user.ID,
			AccountID:   account.ID,
			CategoryID:  f.cat,
			Amount:      decimal.NewFromInt(f.amount),
			Type:        f.ctype,
			Description: "fixture",
			Date:        time.Now(),
		}
		if err := database.CreateTransaction(pool, tr); err != nil {
			t.Fatalf("ошибка создания транзакции: %v", err)
		}
	}

	expenses, total, err := database.GetTransactions(pool, user.ID, database.TransactionFilter{
		Type:       "expense",
		AccountIDs: []int{account.ID},
	})
	if err != nil {
		t.Fatalf("ошибка выборки: %v", err)
	}
	if total != 2 || len(expenses) != 2 {
		t.Errorf("расходов %d (total=%d), хотели 2", len(expenses), total)
	}
	for _, tr := range expenses {
		if tr.Type != "expense" {
			t.Errorf("в выборке расход типа %q", tr.Type)
		}
		if tr.Account == nil || tr.Account.ID != account.ID {
			t.Errorf("связь со счётом не заполнена: %+v", tr.Account)
		}
	}

	// Пагинация
	page1, total, err := database.GetTransactions(pool, user.ID, database.TransactionFilter{
		AccountIDs: []int{account.ID},
		Page:       1,
		Limit:      2,
	})
	if err != nil {
		t.Fatalf("ошибка выборки: %v", err)
	}
	if total != 3 || len(page1) != 2 {
		t.Errorf("страница 1: %d записей (total=%d), хотели 2 из 3", len(page1), total)
	}
}

func TestDeleteAccountWithTransactionsFails(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)
	account := newTestAccount(t, pool, user.ID, decimal.NewFromInt(100))
	category := newTestCategory(t, pool, user.ID, "expense")

	tr := &models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(10),
		Type:        "expense",
		Description: "Кофе",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	if err := database.DeleteAccount(pool, account.ID, user.ID); !errors.Is(err, database.ErrAccountInUse) {
		t.Errorf("удаление занятого счёта вернуло %v, хотели ErrAccountInUse", err)
	}
	if err := database.DeleteCategory(pool, category.ID, user.ID); !errors.Is(err, database.ErrCategoryInUse) {
		t.Errorf("удаление занятой категории вернуло %v, хотели ErrCategoryInUse", err)
	}

	if err := database.DeleteTransaction(pool, tr.ID, user.ID); err != nil {
		t.Fatalf("ошибка удаления транзакции: %v", err)
	}
	if err := database.DeleteAccount(pool, account.ID, user.ID); err != nil {
		t.Errorf("ошибка удаления пустого счёта: %v", err)
	}
}

func TestTransactionScopedToOwner(t *testing.T) {
	pool := testPool(t)

	owner := newTestUser(t, pool)
	stranger := newTestUser(t, pool)
	account := newTestAccount(t, pool, owner.ID, decimal.NewFromInt(100))
	category := newTestCategory(t, pool, owner.ID, "expense")

	tr := &models.Transaction{
		UserID:      owner.ID,
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(5),
		Type:        "expense",
		Description: "Чужое",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, tr); err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}

	if _, err := database.GetTransactionByID(pool, tr.ID, stranger.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("чужая транзакция доступна: %v", err)
	}
	if err := database.DeleteTransaction(pool, tr.ID, stranger.ID); err == nil {
		t.Error("чужая транзакция удалена")
	}

	// Создание на чужой счёт не проходит и не трогает баланс
	foreign := &models.Transaction{
		UserID:      stranger.ID,
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(50),
		Type:        "expense",
		Description: "Попытка",
		Date:        time.Now(),
	}
	if err := database.CreateTransaction(pool, foreign); !errors.Is(err, database.ErrAccountNotFound) {
		t.Errorf("транзакция на чужой счёт вернула %v, хотели ErrAccountNotFound", err)
	}
	if got := accountBalance(t, pool, account.ID, owner.ID); !got.Equal(decimal.NewFromInt(95)) {
		t.Errorf("баланс изменился после отклонённой транзакции: %s, хотели 95", got)
	}
}
