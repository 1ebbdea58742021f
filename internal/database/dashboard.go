package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

type DashboardOverview struct {
	TotalAccounts     int             `json:"total_accounts"`
	TotalTransactions int             `json:"total_transactions"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetIncome         decimal.Decimal `json:"net_income"`
}

type CategoryStat struct {
	CategoryID       int             `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	CategoryColor    string          `json:"category_color"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
}

type DashboardStats struct {
	Overview           DashboardOverview    `json:"overview"`
	Accounts           []models.Account     `json:"accounts"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	CategoryStats      []CategoryStat       `json:"category_stats"`
}

// GetDashboardStats собирает агрегаты по пользователю за период
func GetDashboardStats(pool *pgxpool.Pool, userID int, startDate, endDate *time.Time) (*DashboardStats, error) {
	dateCond := ""
	args := []interface{}{userID}
	if startDate != nil {
		args = append(args, *startDate)
		dateCond += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		dateCond += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	stats := &DashboardStats{}

	overviewQuery := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = $1%s`, dateCond)
	err := pool.QueryRow(context.Background(), overviewQuery, args...).Scan(
		&stats.Overview.TotalTransactions,
		&stats.Overview.TotalIncome,
		&stats.Overview.TotalExpenses,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении сводки транзакций: %v", err)
	}
	stats.Overview.NetIncome = stats.Overview.TotalIncome.Sub(stats.Overview.TotalExpenses)

	err = pool.QueryRow(context.Background(),
		`SELECT COUNT(*), COALESCE(SUM(balance), 0)
		 FROM accounts WHERE user_id = $1 AND is_active = true`, userID).Scan(
		&stats.Overview.TotalAccounts,
		&stats.Overview.TotalBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении сводки счетов: %v", err)
	}

	accounts, err := getActiveAccounts(pool, userID)
	if err != nil {
		return nil, err
	}
	stats.Accounts = accounts

	filter := TransactionFilter{StartDate: startDate, EndDate: endDate, Page: 1, Limit: 10}
	recent, _, err := GetTransactions(pool, userID, filter)
	if err != nil {
		return nil, err
	}
	stats.RecentTransactions = recent

	categoryStats, err := getTopExpenseCategories(pool, userID, dateCond, args)
	if err != nil {
		return nil, err
	}
	stats.CategoryStats = categoryStats

	return stats, nil
}

func getActiveAccounts(pool *pgxpool.Pool, userID int) ([]models.Account, error) {
	query := `
		SELECT id, name, balance, type, currency
		FROM accounts
		WHERE user_id = $1 AND is_active = true
		ORDER BY created_at DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении активных счетов: %v", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.Type, &a.Currency); err != nil {
			return nil, fmt.Errorf("ошибка чтения счёта: %v", err)
		}
		a.UserID = userID
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Топ-5 категорий по расходам за период
func getTopExpenseCategories(pool *pgxpool.Pool, userID int, dateCond string, args []interface{}) ([]CategoryStat, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.color, COALESCE(SUM(t.amount), 0), COUNT(t.id)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = 'expense'%s
		GROUP BY c.id, c.name, c.color
		ORDER BY SUM(t.amount) DESC
		LIMIT 5`, dateCond)

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении расходов по категориям: %v", err)
	}
	defer rows.Close()

	result := []CategoryStat{}
	for rows.Next() {
		var s CategoryStat
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.CategoryColor,
			&s.TotalAmount, &s.TransactionCount); err != nil {
			return nil, fmt.Errorf("ошибка чтения статистики категории: %v", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
