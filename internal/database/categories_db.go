package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func CreateCategory(pool *pgxpool.Pool, category *models.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type, color, icon, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, is_active, created_at`

	err := pool.QueryRow(context.Background(), query,
		category.UserID,
		category.Name,
		category.Type,
		category.Color,
		category.Icon,
		category.Description).Scan(&category.ID, &category.IsActive, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании категории: %v", err)
	}
	return nil
}

func GetCategoryByID(pool *pgxpool.Pool, categoryID, userID int) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, type, color, icon, description, is_active, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2`

	category := &models.Category{}
	err := pool.QueryRow(context.Background(), query, categoryID, userID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Color,
		&category.Icon,
		&category.Description,
		&category.IsActive,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении категории: %v", err)
	}

	return category, nil
}

func GetCategoriesByUserID(pool *pgxpool.Pool, userID int) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, type, color, icon, description, is_active, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка категорий: %v", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.Icon,
			&c.Description, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения категории: %v", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func UpdateCategory(pool *pgxpool.Pool, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, type = $2, color = $3, icon = $4, description = $5, is_active = $6
		WHERE id = $7 AND user_id = $8`

	result, err := pool.Exec(context.Background(), query,
		category.Name,
		category.Type,
		category.Color,
		category.Icon,
		category.Description,
		category.IsActive,
		category.ID,
		category.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления категории: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory удаляет категорию, если на неё не ссылаются транзакции
func DeleteCategory(pool *pgxpool.Pool, categoryID, userID int) error {
	var count int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return fmt.Errorf("ошибка проверки транзакций категории: %v", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	result, err := pool.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления категории: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
