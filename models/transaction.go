package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Допустимые типы транзакций (и категорий)
var ValidTransactionTypes = map[string]bool{
	"income":   true,
	"expense":  true,
	"transfer": true,
}

type Transaction struct {
	ID          int             `json:"id" db:"id"`
	UserID      int             `json:"user_id" db:"user_id"`
	AccountID   int             `json:"account_id" db:"account_id"`
	CategoryID  int             `json:"category_id" db:"category_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Type        string          `json:"type" db:"type"`
	Description string          `json:"description" db:"description"`
	Date        time.Time       `json:"date" db:"date"`
	Notes       string          `json:"notes" db:"notes"`
	Tags        []string        `json:"tags" db:"tags"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`

	// Заполняются при выборках со связями
	Account  *AccountRef  `json:"account,omitempty" db:"-"`
	Category *CategoryRef `json:"category,omitempty" db:"-"`
}

type AccountRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CategoryRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SignedAmount возвращает эффект транзакции на баланс счёта:
// доход увеличивает баланс, расход и перевод уменьшают.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == "income" {
		return t.Amount
	}
	return t.Amount.Neg()
}
