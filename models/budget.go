package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID         int             `json:"id" db:"id"`
	UserID     int             `json:"user_id" db:"user_id"`
	CategoryID int             `json:"category_id" db:"category_id"`
	Name       string          `json:"name" db:"name"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Period     string          `json:"period" db:"period"`
	StartDate  time.Time       `json:"start_date" db:"start_date"`
	EndDate    time.Time       `json:"end_date" db:"end_date"`
	IsActive   bool            `json:"is_active" db:"is_active"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`

	Category *CategoryRef `json:"category,omitempty" db:"-"`
}
