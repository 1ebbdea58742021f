package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

// GetUserSettings возвращает настройки пользователя, создавая строку с
// умолчаниями при первом обращении
func GetUserSettings(pool *pgxpool.Pool, userID int) (*models.UserSettings, error) {
	settings := &models.UserSettings{}
	query := `
		SELECT id, user_id, currency, theme, weekly_reports, auto_updates
		FROM user_settings
		WHERE user_id = $1`
	err := pool.QueryRow(context.Background(), query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.Currency,
		&settings.Theme,
		&settings.WeeklyReports,
		&settings.AutoUpdates,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		insert := `
			INSERT INTO user_settings (user_id, currency, theme, weekly_reports, auto_updates)
			VALUES ($1, 'BRL', 'system', false, true)
			RETURNING id, user_id, currency, theme, weekly_reports, auto_updates`
		err = pool.QueryRow(context.Background(), insert, userID).Scan(
			&settings.ID,
			&settings.UserID,
			&settings.Currency,
			&settings.Theme,
			&settings.WeeklyReports,
			&settings.AutoUpdates,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения настроек пользователя: %v", err)
	}
	return settings, nil
}

func UpdateUserSettings(pool *pgxpool.Pool, settings *models.UserSettings) error {
	query := `
		UPDATE user_settings
		SET currency = $1, theme = $2, weekly_reports = $3, auto_updates = $4
		WHERE user_id = $5`
	result, err := pool.Exec(context.Background(), query,
		settings.Currency,
		settings.Theme,
		settings.WeeklyReports,
		settings.AutoUpdates,
		settings.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления настроек пользователя: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
