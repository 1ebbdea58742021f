package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AuditAccountBalances сверяет баланс каждого счёта с инвариантом
// balance = opening_balance + сумма эффектов транзакций и чинит расхождения.
// Вызывается по расписанию.
func AuditAccountBalances(pool *pgxpool.Pool) error {
	query := `
		SELECT a.id, a.balance,
		       a.opening_balance + COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE -t.amount END), 0)
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		GROUP BY a.id, a.balance, a.opening_balance`

	rows, err := pool.Query(context.Background(), query)
	if err != nil {
		return fmt.Errorf("ошибка выборки балансов для сверки: %v", err)
	}
	defer rows.Close()

	type drift struct {
		id       int
		stored   decimal.Decimal
		expected decimal.Decimal
	}
	drifts := []drift{}
	for rows.Next() {
		var d drift
		if err := rows.Scan(&d.id, &d.stored, &d.expected); err != nil {
			return fmt.Errorf("ошибка чтения баланса: %v", err)
		}
		if !d.stored.Equal(d.expected) {
			drifts = append(drifts, d)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка сверки балансов: %v", err)
	}

	for _, d := range drifts {
		log.Printf("расхождение баланса счёта %d: в базе %s, по транзакциям %s", d.id, d.stored, d.expected)
		_, err := pool.Exec(context.Background(),
			`UPDATE accounts SET balance = $1 WHERE id = $2`, d.expected, d.id)
		if err != nil {
			return fmt.Errorf("ошибка исправления баланса счёта %d: %v", d.id, err)
		}
	}

	if len(drifts) > 0 {
		log.Printf("сверка балансов: исправлено счетов: %d", len(drifts))
	}
	return nil
}
