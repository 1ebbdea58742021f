package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func CreateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	var categoryName string
	err := pool.QueryRow(context.Background(),
		`SELECT name FROM categories WHERE id = $1 AND user_id = $2`,
		budget.CategoryID, budget.UserID).Scan(&categoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("ошибка проверки категории: %v", err)
	}

	query := `
		INSERT INTO budgets (user_id, category_id, name, amount, period, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING id, is_active, created_at`
	err = pool.QueryRow(context.Background(), query,
		budget.UserID,
		budget.CategoryID,
		budget.Name,
		budget.Amount,
		budget.Period,
		budget.StartDate,
		budget.EndDate).Scan(&budget.ID, &budget.IsActive, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании бюджета: %v", err)
	}
	budget.Category = &models.CategoryRef{ID: budget.CategoryID, Name: categoryName}
	return nil
}

func GetBudgetByID(pool *pgxpool.Pool, budgetID, userID int) (*models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.name, b.amount, b.period,
		       b.start_date, b.end_date, b.is_active, b.created_at, c.name, c.color
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1 AND b.user_id = $2`

	budget := &models.Budget{}
	var categoryName, categoryColor string
	err := pool.QueryRow(context.Background(), query, budgetID, userID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.Name,
		&budget.Amount,
		&budget.Period,
		&budget.StartDate,
		&budget.EndDate,
		&budget.IsActive,
		&budget.CreatedAt,
		&categoryName,
		&categoryColor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении бюджета: %v", err)
	}

	budget.Category = &models.CategoryRef{ID: budget.CategoryID, Name: categoryName, Color: categoryColor}
	return budget, nil
}

func GetBudgetsByUserID(pool *pgxpool.Pool, userID int) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.name, b.amount, b.period,
		       b.start_date, b.end_date, b.is_active, b.created_at, c.name, c.color
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка бюджетов: %v", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		var categoryName, categoryColor string
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Name, &b.Amount, &b.Period,
			&b.StartDate, &b.EndDate, &b.IsActive, &b.CreatedAt, &categoryName, &categoryColor); err != nil {
			return nil, fmt.Errorf("ошибка чтения бюджета: %v", err)
		}
		b.Category = &models.CategoryRef{ID: b.CategoryID, Name: categoryName, Color: categoryColor}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func UpdateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		budget.CategoryID, budget.UserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки категории: %v", err)
	}
	if !exists {
		return ErrCategoryNotFound
	}

	query := `
		UPDATE budgets
		SET category_id = $1, name = $2, amount = $3, period = $4,
		    start_date = $5, end_date = $6, is_active = $7
		WHERE id = $8 AND user_id = $9`
	result, err := pool.Exec(context.Background(), query,
		budget.CategoryID,
		budget.Name,
		budget.Amount,
		budget.Period,
		budget.StartDate,
		budget.EndDate,
		budget.IsActive,
		budget.ID,
		budget.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteBudget(pool *pgxpool.Pool, budgetID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateExpiredBudgets деактивирует бюджеты с истекшим периодом,
// вызывается по расписанию
func UpdateExpiredBudgets(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		`UPDATE budgets SET is_active = false WHERE is_active = true AND end_date < CURRENT_DATE`)
	if err != nil {
		return fmt.Errorf("ошибка деактивации просроченных бюджетов: %v", err)
	}
	return nil
}
