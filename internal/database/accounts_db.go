package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func CreateAccount(pool *pgxpool.Pool, account *models.Account) error {
	// Стартовый баланс фиксируется и дальше меняется только транзакциями
	account.Balance = account.OpeningBalance
	query := `
		INSERT INTO accounts (user_id, name, type, currency, balance, opening_balance, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING id, is_active, created_at`

	err := pool.QueryRow(context.Background(), query,
		account.UserID,
		account.Name,
		account.Type,
		account.Currency,
		account.Balance,
		account.OpeningBalance,
		account.Description).Scan(&account.ID, &account.IsActive, &account.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании счёта: %v", err)
	}
	return nil
}

func GetAccountByID(pool *pgxpool.Pool, accountID, userID int) (*models.Account, error) {
	query := `
		SELECT id, user_id, name, type, currency, balance, opening_balance, description, is_active, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2`

	account := &models.Account{}
	err := pool.QueryRow(context.Background(), query, accountID, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Type,
		&account.Currency,
		&account.Balance,
		&account.OpeningBalance,
		&account.Description,
		&account.IsActive,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении счёта: %v", err)
	}

	return account, nil
}

func GetAccountsByUserID(pool *pgxpool.Pool, userID int) ([]models.Account, error) {
	query := `
		SELECT id, user_id, name, type, currency, balance, opening_balance, description, is_active, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка счетов: %v", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &a.Currency, &a.Balance,
			&a.OpeningBalance, &a.Description, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения счёта: %v", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount меняет атрибуты счёта; баланс напрямую не обновляется
func UpdateAccount(pool *pgxpool.Pool, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type = $2, currency = $3, description = $4, is_active = $5
		WHERE id = $6 AND user_id = $7`

	result, err := pool.Exec(context.Background(), query,
		account.Name,
		account.Type,
		account.Currency,
		account.Description,
		account.IsActive,
		account.ID,
		account.UserID)
	if err != nil {
		return fmt.Errorf("ошибка обновления счёта: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount удаляет счёт, если по нему нет транзакций
func DeleteAccount(pool *pgxpool.Pool, accountID, userID int) error {
	var count int
	err := pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return fmt.Errorf("ошибка проверки транзакций счёта: %v", err)
	}
	if count > 0 {
		return ErrAccountInUse
	}

	result, err := pool.Exec(context.Background(),
		`DELETE FROM accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	if err != nil {
		return fmt.Errorf("ошибка удаления счёта: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
