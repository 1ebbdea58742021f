package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

// ImportRow — одна разобранная строка импортируемого CSV
type ImportRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        string
	Category    string
	Account     string
	Notes       string
}

type RowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type ImportResult struct {
	BatchID  string     `json:"batch_id"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

var csvDateFormats = []string{"2006-01-02", "02/01/2006", "02.01.2006"}

func parseCSVDate(value string) (time.Time, error) {
	for _, layout := range csvDateFormats {
		if d, err := time.Parse(layout, value); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("нераспознанный формат даты: %q", value)
}

// ParseTransactionsCSV разбирает CSV с колонками
// date, description, amount, type, category, account, notes.
// Порядок колонок определяется заголовком; ошибочные строки не прерывают
// разбор, а попадают в список ошибок.
func ParseTransactionsCSV(r io.Reader) ([]ImportRow, []RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка чтения заголовка CSV: %v", err)
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "description", "amount", "type", "category", "account"} {
		if _, ok := index[required]; !ok {
			return nil, nil, fmt.Errorf("в CSV нет обязательной колонки %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := []ImportRow{}
	rowErrors := []RowError{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Error: fmt.Sprintf("ошибка разбора строки: %v", err)})
			continue
		}

		row := ImportRow{
			Description: field(record, "description"),
			Type:        field(record, "type"),
			Category:    field(record, "category"),
			Account:     field(record, "account"),
			Notes:       field(record, "notes"),
		}

		if row.Description == "" || row.Category == "" || row.Account == "" {
			rowErrors = append(rowErrors, RowError{Line: line, Error: "не заполнены обязательные поля"})
			continue
		}
		if !models.ValidTransactionTypes[row.Type] {
			rowErrors = append(rowErrors, RowError{Line: line, Error: fmt.Sprintf("недопустимый тип %q", row.Type)})
			continue
		}

		row.Date, err = parseCSVDate(field(record, "date"))
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Error: err.Error()})
			continue
		}

		row.Amount, err = decimal.NewFromString(strings.ReplaceAll(field(record, "amount"), ",", "."))
		if err != nil {
			rowErrors = append(rowErrors, RowError{Line: line, Error: fmt.Sprintf("некорректная сумма: %v", err)})
			continue
		}
		if row.Amount.LessThanOrEqual(decimal.Zero) {
			rowErrors = append(rowErrors, RowError{Line: line, Error: "сумма должна быть больше нуля"})
			continue
		}

		rows = append(rows, row)
	}

	return rows, rowErrors, nil
}

// ImportTransactions создаёт транзакции из разобранных строк через обычный
// путь создания, так что балансы счетов обновляются как при ручном вводе.
// Счета и категории ищутся по имени в рамках пользователя.
func ImportTransactions(pool *pgxpool.Pool, userID int, rows []ImportRow, rowErrors []RowError) (*ImportResult, error) {
	result := &ImportResult{
		BatchID: uuid.NewString(),
		Errors:  rowErrors,
	}
	result.Skipped = len(rowErrors)

	accountIDs := map[string]int{}
	categoryIDs := map[string]int{}

	lookup := func(table, name string) (int, error) {
		var id int
		query := fmt.Sprintf(`SELECT id FROM %s WHERE user_id = $1 AND LOWER(name) = LOWER($2)`, table)
		err := pool.QueryRow(context.Background(), query, userID, name).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("не найдено по имени %q", name)
		}
		return id, err
	}

	for i, row := range rows {
		accountID, ok := accountIDs[strings.ToLower(row.Account)]
		if !ok {
			id, err := lookup("accounts", row.Account)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, RowError{Line: i + 2, Error: fmt.Sprintf("счёт: %v", err)})
				continue
			}
			accountIDs[strings.ToLower(row.Account)] = id
			accountID = id
		}

		categoryID, ok := categoryIDs[strings.ToLower(row.Category)]
		if !ok {
			id, err := lookup("categories", row.Category)
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, RowError{Line: i + 2, Error: fmt.Sprintf("категория: %v", err)})
				continue
			}
			categoryIDs[strings.ToLower(row.Category)] = id
			categoryID = id
		}

		transaction := &models.Transaction{
			UserID:      userID,
			AccountID:   accountID,
			CategoryID:  categoryID,
			Amount:      row.Amount,
			Type:        row.Type,
			Description: row.Description,
			Date:        row.Date,
			Notes:       row.Notes,
			Tags:        []string{"import:" + result.BatchID},
		}
		if err := CreateTransaction(pool, transaction); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, RowError{Line: i + 2, Error: err.Error()})
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ExportTransactionsCSV выгружает транзакции пользователя за период в CSV
func ExportTransactionsCSV(pool *pgxpool.Pool, userID int, startDate, endDate *time.Time, w io.Writer) error {
	where := `WHERE t.user_id = $1`
	args := []interface{}{userID}
	if startDate != nil {
		args = append(args, *startDate)
		where += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		where += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT t.date, t.description, t.amount, t.type, c.name, a.name, t.notes, t.tags
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		JOIN categories c ON t.category_id = c.id
		%s
		ORDER BY t.date DESC`, where)

	rows, err := pool.Query(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("ошибка выборки транзакций для экспорта: %v", err)
	}
	defer rows.Close()

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"date", "description", "amount", "type", "category", "account", "notes", "tags"}); err != nil {
		return fmt.Errorf("ошибка записи CSV: %v", err)
	}

	for rows.Next() {
		var date time.Time
		var description, txType, category, account, notes string
		var amount decimal.Decimal
		var tags []string
		if err := rows.Scan(&date, &description, &amount, &txType, &category, &account, &notes, &tags); err != nil {
			return fmt.Errorf("ошибка чтения транзакции: %v", err)
		}
		record := []string{
			date.Format("2006-01-02"),
			description,
			amount.String(),
			txType,
			category,
			account,
			notes,
			strings.Join(tags, ";"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("ошибка записи CSV: %v", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("ошибка выборки транзакций для экспорта: %v", err)
	}

	writer.Flush()
	return writer.Error()
}
