package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSignedAmount(t *testing.T) {
	cases := []struct {
		txType string
		amount string
		want   string
	}{
		{"income", "150.25", "150.25"},
		{"expense", "99.90", "-99.90"},
		{"transfer", "40", "-40"},
	}
	for _, tc := range cases {
		tr := Transaction{Type: tc.txType, Amount: dec(tc.amount)}
		if got := tr.SignedAmount(); !got.Equal(dec(tc.want)) {
			t.Errorf("SignedAmount(%s, %s) = %s, хотели %s", tc.txType, tc.amount, got, tc.want)
		}
	}
}

// Проверяем инвариант: после любой последовательности операций баланс
// равен стартовому плюс сумма эффектов оставшихся транзакций.
func TestBalanceInvariantSequence(t *testing.T) {
	opening := dec("1000")
	balance := opening
	ledger := map[int]Transaction{}

	apply := func(tr Transaction) {
		balance = balance.Add(tr.SignedAmount())
		ledger[tr.ID] = tr
	}
	update := func(id int, updated Transaction) {
		old := ledger[id]
		balance = balance.Sub(old.SignedAmount()).Add(updated.SignedAmount())
		updated.ID = id
		ledger[id] = updated
	}
	// Удаление повторяет путь пересчёта: восстановить стартовый баланс,
	// накатить эффекты оставшихся транзакций.
	remove := func(id int) {
		sumAll := decimal.Zero
		for _, tr := range ledger {
			sumAll = sumAll.Add(tr.SignedAmount())
		}
		target := ledger[id]
		initial := balance.Sub(sumAll)
		remaining := sumAll.Sub(target.SignedAmount())
		balance = initial.Add(remaining)
		delete(ledger, id)
	}

	apply(Transaction{ID: 1, Type: "income", Amount: dec("500.50")})
	apply(Transaction{ID: 2, Type: "expense", Amount: dec("120.30")})
	apply(Transaction{ID: 3, Type: "transfer", Amount: dec("80")})
	update(2, Transaction{Type: "expense", Amount: dec("200.30")})
	apply(Transaction{ID: 4, Type: "income", Amount: dec("19.99")})
	remove(3)
	update(1, Transaction{Type: "expense", Amount: dec("500.50")})
	remove(4)

	expected := opening
	for _, tr := range ledger {
		expected = expected.Add(tr.SignedAmount())
	}
	if !balance.Equal(expected) {
		t.Errorf("баланс %s не совпадает с инвариантом %s", balance, expected)
	}
}

// Пересчёт при удалении алгебраически сводится к снятию эффекта удаляемой
// транзакции и не может примениться дважды.
func TestDeleteReplayEqualsReversal(t *testing.T) {
	opening := dec("250")
	transactions := []Transaction{
		{ID: 1, Type: "income", Amount: dec("100")},
		{ID: 2, Type: "expense", Amount: dec("75.50")},
		{ID: 3, Type: "expense", Amount: dec("10")},
	}

	balance := opening
	sumAll := decimal.Zero
	for _, tr := range transactions {
		balance = balance.Add(tr.SignedAmount())
		sumAll = sumAll.Add(tr.SignedAmount())
	}

	target := transactions[1]
	initial := balance.Sub(sumAll)
	remaining := sumAll.Sub(target.SignedAmount())
	replayed := initial.Add(remaining)

	reversed := balance.Sub(target.SignedAmount())
	if !replayed.Equal(reversed) {
		t.Errorf("пересчёт дал %s, прямой откат %s", replayed, reversed)
	}
	if !replayed.Equal(opening.Add(dec("100")).Sub(dec("10"))) {
		t.Errorf("баланс после удаления %s некорректен", replayed)
	}
}

func TestGoalStatus(t *testing.T) {
	goal := Goal{TargetAmount: dec("1000"), CurrentAmount: dec("400")}
	if err := goal.UpdateGoalStatus(); err == nil {
		t.Error("цель не достигнута, но UpdateGoalStatus не вернул ошибку")
	}
	if !goal.RemainingAmount().Equal(dec("600")) {
		t.Errorf("RemainingAmount = %s, хотели 600", goal.RemainingAmount())
	}

	goal.CurrentAmount = dec("1000")
	if err := goal.UpdateGoalStatus(); err != nil {
		t.Errorf("цель достигнута, но получили ошибку: %v", err)
	}
	if goal.Status != "completed" {
		t.Errorf("статус %q, хотели completed", goal.Status)
	}
}
