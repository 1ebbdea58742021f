package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Допустимые типы счетов
var ValidAccountTypes = map[string]bool{
	"checking":   true,
	"savings":    true,
	"credit":     true,
	"investment": true,
}

type Account struct {
	ID             int             `json:"id" db:"id"`
	UserID         int             `json:"user_id" db:"user_id"`
	Name           string          `json:"name" db:"name"`
	Type           string          `json:"type" db:"type"`
	Currency       string          `json:"currency" db:"currency"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	OpeningBalance decimal.Decimal `json:"opening_balance" db:"opening_balance"`
	Description    string          `json:"description" db:"description"`
	IsActive       bool            `json:"is_active" db:"is_active"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
