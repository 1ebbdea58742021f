package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func CreateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	if goal.Status == "" {
		goal.Status = "active"
	}
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, target_date, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Description,
		goal.Status).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании цели: %v", err)
	}
	return nil
}

func GetGoalByID(pool *pgxpool.Pool, goalID, userID int) (*models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, description, status, created_at
		FROM goals
		WHERE id = $1 AND user_id = $2`

	goal := &models.Goal{}
	err := pool.QueryRow(context.Background(), query, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Description,
		&goal.Status,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении цели: %v", err)
	}
	return goal, nil
}

func GetAllGoals(pool *pgxpool.Pool, userID int) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, description, status, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка целей: %v", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.TargetDate, &g.Description, &g.Status, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения цели: %v", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func UpdateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, current_amount = $3, target_date = $4,
		    description = $5, status = $6
		WHERE id = $7 AND user_id = $8`
	result, err := pool.Exec(context.Background(), query,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Description,
		goal.Status,
		goal.ID,
		goal.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteGoal(pool *pgxpool.Pool, goalID, userID int) error {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateGoalProgress прибавляет сумму к накопленному и помечает цель
// выполненной при достижении целевой суммы
func UpdateGoalProgress(pool *pgxpool.Pool, goalID, userID int, amount decimal.Decimal) (*models.Goal, error) {
	query := `
		UPDATE goals
		SET current_amount = current_amount + $1,
		    status = CASE WHEN current_amount + $1 >= target_amount THEN 'completed' ELSE status END
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name, target_amount, current_amount, target_date, description, status, created_at`

	goal := &models.Goal{}
	err := pool.QueryRow(context.Background(), query, amount, goalID, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Description,
		&goal.Status,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при обновлении прогресса цели: %v", err)
	}
	return goal, nil
}
