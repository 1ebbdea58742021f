package database

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseTransactionsCSV(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount,type,category,account,notes",
		"2024-03-01,Зарплата за февраль,3500.00,income,Зарплата,Основной счёт,",
		"15/03/2024,Продукты,120.50,expense,Продукты,Основной счёт,магазин у дома",
		"20.03.2024,Кино,30,expense,Развлечения,Основной счёт,",
	}, "\n")

	rows, rowErrors, err := ParseTransactionsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ошибка разбора: %v", err)
	}
	if len(rowErrors) != 0 {
		t.Fatalf("неожиданные ошибки строк: %+v", rowErrors)
	}
	if len(rows) != 3 {
		t.Fatalf("разобрано %d строк, хотели 3", len(rows))
	}

	first := rows[0]
	if first.Description != "Зарплата за февраль" || first.Type != "income" {
		t.Errorf("первая строка разобрана неверно: %+v", first)
	}
	if !first.Amount.Equal(decimal.NewFromFloat(3500)) {
		t.Errorf("сумма первой строки %s, хотели 3500", first.Amount)
	}
	if first.Date.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("дата первой строки %s", first.Date)
	}
	// Альтернативные форматы дат
	if rows[1].Date.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("дата второй строки %s", rows[1].Date)
	}
	if rows[2].Date.Format("2006-01-02") != "2024-03-20" {
		t.Errorf("дата третьей строки %s", rows[2].Date)
	}
	if rows[1].Notes != "магазин у дома" {
		t.Errorf("заметка второй строки %q", rows[1].Notes)
	}
}

func TestParseTransactionsCSVReordersColumns(t *testing.T) {
	input := strings.Join([]string{
		"account,type,amount,description,date,category",
		"Основной счёт,expense,\"99,90\",Обед,2024-01-10,Продукты",
	}, "\n")

	rows, rowErrors, err := ParseTransactionsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ошибка разбора: %v", err)
	}
	if len(rowErrors) != 0 || len(rows) != 1 {
		t.Fatalf("rows=%d errors=%+v", len(rows), rowErrors)
	}
	if !rows[0].Amount.Equal(decimal.NewFromFloat(99.90)) {
		t.Errorf("сумма с запятой разобрана как %s", rows[0].Amount)
	}
	if rows[0].Account != "Основной счёт" {
		t.Errorf("счёт %q", rows[0].Account)
	}
}

func TestParseTransactionsCSVCollectsRowErrors(t *testing.T) {
	input := strings.Join([]string{
		"date,description,amount,type,category,account",
		"2024-01-01,Нормальная,10,income,Зарплата,Счёт",
		"не-дата,Плохая дата,10,income,Зарплата,Счёт",
		"2024-01-02,Плохая сумма,abc,expense,Продукты,Счёт",
		"2024-01-03,Плохой тип,10,withdrawal,Продукты,Счёт",
		"2024-01-04,Нулевая сумма,0,expense,Продукты,Счёт",
		"2024-01-05,,10,expense,Продукты,Счёт",
	}, "\n")

	rows, rowErrors, err := ParseTransactionsCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ошибка разбора: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("валидных строк %d, хотели 1", len(rows))
	}
	if len(rowErrors) != 5 {
		t.Fatalf("ошибок строк %d, хотели 5: %+v", len(rowErrors), rowErrors)
	}
	// Номера строк считаются от начала файла вместе с заголовком
	wantLines := []int{3, 4, 5, 6, 7}
	for i, re := range rowErrors {
		if re.Line != wantLines[i] {
			t.Errorf("ошибка %d привязана к строке %d, хотели %d", i, re.Line, wantLines[i])
		}
	}
}

func TestParseTransactionsCSVMissingColumn(t *testing.T) {
	input := "date,description,amount,type,category\n2024-01-01,X,10,income,Зарплата\n"
	if _, _, err := ParseTransactionsCSV(strings.NewReader(input)); err == nil {
		t.Error("CSV без колонки account принят")
	}
}
