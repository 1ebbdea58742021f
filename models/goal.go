package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Goal struct {
	ID            int             `json:"id" db:"id"`
	UserID        int             `json:"user_id" db:"user_id"`
	Name          string          `json:"name" db:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" db:"current_amount"`
	TargetDate    time.Time       `json:"target_date" db:"target_date"`
	Description   string          `json:"description" db:"description"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

func (g *Goal) RemainingAmount() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// Обновляет статус цели, если она достигнута
func (g *Goal) UpdateGoalStatus() error {
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = "completed"
		return nil
	}
	return fmt.Errorf("цель не достигнута, еще необходимо %s", g.RemainingAmount())
}
