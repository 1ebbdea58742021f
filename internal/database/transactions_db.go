package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

// TransactionFilter описывает параметры выборки транзакций
type TransactionFilter struct {
	AccountIDs  []int
	CategoryIDs []int
	Type        string
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

// lockAccount блокирует строку счёта до конца транзакции БД
// и возвращает текущий баланс.
func lockAccount(tx pgx.Tx, accountID, userID int) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.QueryRow(context.Background(),
		`SELECT balance FROM accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		accountID, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, fmt.Errorf("ошибка блокировки счёта: %v", err)
	}
	return balance, nil
}

func categoryBelongsToUser(tx pgx.Tx, categoryID, userID int) error {
	var exists bool
	err := tx.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)`,
		categoryID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки категории: %v", err)
	}
	if !exists {
		return ErrCategoryNotFound
	}
	return nil
}

// CreateTransaction добавляет транзакцию и применяет её эффект к балансу
// счёта в одной транзакции БД.
func CreateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	tx, err := pool.Begin(context.Background())
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции БД: %v", err)
	}
	defer tx.Rollback(context.Background())

	if _, err := lockAccount(tx, transaction.AccountID, transaction.UserID); err != nil {
		return err
	}
	if err := categoryBelongsToUser(tx, transaction.CategoryID, transaction.UserID); err != nil {
		return err
	}

	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	if transaction.Tags == nil {
		transaction.Tags = []string{}
	}

	query := `
		INSERT INTO transactions (user_id, account_id, category_id, amount, type, description, date, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err = tx.QueryRow(context.Background(), query,
		transaction.UserID,
		transaction.AccountID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Type,
		transaction.Description,
		transaction.Date,
		transaction.Notes,
		transaction.Tags).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении транзакции: %v", err)
	}

	_, err = tx.Exec(context.Background(),
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2`,
		transaction.SignedAmount(), transaction.AccountID)
	if err != nil {
		return fmt.Errorf("ошибка обновления баланса счёта: %v", err)
	}

	return tx.Commit(context.Background())
}

func GetTransactionByID(pool *pgxpool.Pool, transactionID, userID int) (*models.Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.account_id, t.category_id, t.amount, t.type,
		       t.description, t.date, t.notes, t.tags, t.created_at,
		       a.name, c.name, c.color
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.user_id = $2`

	transaction := &models.Transaction{}
	var accountName, categoryName, categoryColor string
	err := pool.QueryRow(context.Background(), query, transactionID, userID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.AccountID,
		&transaction.CategoryID,
		&transaction.Amount,
		&transaction.Type,
		&transaction.Description,
		&transaction.Date,
		&transaction.Notes,
		&transaction.Tags,
		&transaction.CreatedAt,
		&accountName,
		&categoryName,
		&categoryColor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка при получении транзакции: %v", err)
	}

	transaction.Account = &models.AccountRef{ID: transaction.AccountID, Name: accountName}
	transaction.Category = &models.CategoryRef{ID: transaction.CategoryID, Name: categoryName, Color: categoryColor}
	return transaction, nil
}

// GetTransactions возвращает страницу транзакций пользователя и общее число
// строк, попавших под фильтр.
func GetTransactions(pool *pgxpool.Pool, userID int, filter TransactionFilter) ([]models.Transaction, int, error) {
	where := `WHERE t.user_id = $1`
	args := []interface{}{userID}

	if len(filter.AccountIDs) > 0 {
		args = append(args, filter.AccountIDs)
		where += fmt.Sprintf(" AND t.account_id = ANY($%d)", len(args))
	}
	if len(filter.CategoryIDs) > 0 {
		args = append(args, filter.CategoryIDs)
		where += fmt.Sprintf(" AND t.category_id = ANY($%d)", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND t.type = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t ` + where
	if err := pool.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта транзакций: %v", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 100
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT t.id, t.user_id, t.account_id, t.category_id, t.amount, t.type,
		       t.description, t.date, t.notes, t.tags, t.created_at,
		       a.name, c.name, c.color
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN categories c ON t.category_id = c.id
		%s
		ORDER BY t.date DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения транзакций: %v", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var accountName, categoryName, categoryColor string
		if err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Amount, &t.Type,
			&t.Description, &t.Date, &t.Notes, &t.Tags, &t.CreatedAt,
			&accountName, &categoryName, &categoryColor); err != nil {
			return nil, 0, fmt.Errorf("ошибка чтения транзакции: %v", err)
		}
		t.Account = &models.AccountRef{ID: t.AccountID, Name: accountName}
		t.Category = &models.CategoryRef{ID: t.CategoryID, Name: categoryName, Color: categoryColor}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}

// UpdateTransaction обновляет транзакцию. Если поменялись счёт, сумма или
// тип — старый эффект снимается со старого счёта, новый применяется к новому,
// всё в одной транзакции БД.
func UpdateTransaction(pool *pgxpool.Pool, transaction *models.Transaction) error {
	tx, err := pool.Begin(context.Background())
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции БД: %v", err)
	}
	defer tx.Rollback(context.Background())

	old := models.Transaction{}
	err = tx.QueryRow(context.Background(),
		`SELECT id, user_id, account_id, category_id, amount, type
		 FROM transactions WHERE id = $1 AND user_id = $2`,
		transaction.ID, transaction.UserID).
		Scan(&old.ID, &old.UserID, &old.AccountID, &old.CategoryID, &old.Amount, &old.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка получения транзакции: %v", err)
	}

	// Блокируем счета в порядке возрастания id, чтобы не ловить взаимные блокировки
	first, second := old.AccountID, transaction.AccountID
	if first > second {
		first, second = second, first
	}
	if _, err := lockAccount(tx, first, transaction.UserID); err != nil {
		return err
	}
	if second != first {
		if _, err := lockAccount(tx, second, transaction.UserID); err != nil {
			return err
		}
	}
	if err := categoryBelongsToUser(tx, transaction.CategoryID, transaction.UserID); err != nil {
		return err
	}

	if transaction.Tags == nil {
		transaction.Tags = []string{}
	}

	_, err = tx.Exec(context.Background(),
		`UPDATE transactions
		 SET account_id = $1, category_id = $2, amount = $3, type = $4,
		     description = $5, date = $6, notes = $7, tags = $8
		 WHERE id = $9`,
		transaction.AccountID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Type,
		transaction.Description,
		transaction.Date,
		transaction.Notes,
		transaction.Tags,
		transaction.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления транзакции: %v", err)
	}

	changed := old.AccountID != transaction.AccountID ||
		!old.Amount.Equal(transaction.Amount) ||
		old.Type != transaction.Type
	if changed {
		_, err = tx.Exec(context.Background(),
			`UPDATE accounts SET balance = balance - $1 WHERE id = $2`,
			old.SignedAmount(), old.AccountID)
		if err != nil {
			return fmt.Errorf("ошибка отката баланса старого счёта: %v", err)
		}
		_, err = tx.Exec(context.Background(),
			`UPDATE accounts SET balance = balance + $1 WHERE id = $2`,
			transaction.SignedAmount(), transaction.AccountID)
		if err != nil {
			return fmt.Errorf("ошибка обновления баланса счёта: %v", err)
		}
	}

	return tx.Commit(context.Background())
}

// DeleteTransaction удаляет транзакцию и пересчитывает баланс счёта заново:
// из текущего баланса восстанавливается стартовый (минус эффекты всех
// транзакций счёта, включая удаляемую), затем накатываются эффекты
// оставшихся. Под блокировкой строки счёта пересчёт точен и не может
// примениться дважды.
func DeleteTransaction(pool *pgxpool.Pool, transactionID, userID int) error {
	tx, err := pool.Begin(context.Background())
	if err != nil {
		return fmt.Errorf("ошибка открытия транзакции БД: %v", err)
	}
	defer tx.Rollback(context.Background())

	target := models.Transaction{}
	err = tx.QueryRow(context.Background(),
		`SELECT id, account_id, amount, type FROM transactions WHERE id = $1 AND user_id = $2`,
		transactionID, userID).
		Scan(&target.ID, &target.AccountID, &target.Amount, &target.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка получения транзакции: %v", err)
	}

	balance, err := lockAccount(tx, target.AccountID, userID)
	if err != nil {
		return err
	}

	var sumAll decimal.Decimal
	err = tx.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		 FROM transactions WHERE account_id = $1`, target.AccountID).Scan(&sumAll)
	if err != nil {
		return fmt.Errorf("ошибка суммирования транзакций счёта: %v", err)
	}

	initial := balance.Sub(sumAll)
	remaining := sumAll.Sub(target.SignedAmount())
	newBalance := initial.Add(remaining)

	_, err = tx.Exec(context.Background(),
		`UPDATE accounts SET balance = $1 WHERE id = $2`, newBalance, target.AccountID)
	if err != nil {
		return fmt.Errorf("ошибка обновления баланса счёта: %v", err)
	}

	result, err := tx.Exec(context.Background(),
		`DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("ошибка удаления транзакции: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(context.Background())
}
