package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Валидация срабатывает до обращения к БД, пул не нужен
	r.GET("/transactions", GetTransactionsHandler(nil))
	r.GET("/transactions/:id", GetTransactionHandler(nil))
	r.POST("/transactions", CreateTransactionHandler(nil))
	r.PUT("/transactions/:id", UpdateTransactionHandler(nil))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("ответ не JSON: %v", err)
	}
	msg, _ := resp["error"].(string)
	return msg
}

func TestCreateTransactionRejectsMalformedJSON(t *testing.T) {
	r := newTestRouter()
	w := postJSON(r, "/transactions", "{не json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("код %d, хотели 400", w.Code)
	}
}

func TestCreateTransactionListsMissingFields(t *testing.T) {
	r := newTestRouter()
	w := postJSON(r, "/transactions", `{"type":"expense"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("код %d, хотели 400", w.Code)
	}
	msg := errorMessage(t, w)
	for _, field := range []string{"описание", "сумма", "категория", "счёт"} {
		if !strings.Contains(msg, field) {
			t.Errorf("в сообщении %q нет поля %q", msg, field)
		}
	}
}

func TestCreateTransactionRejectsInvalidType(t *testing.T) {
	r := newTestRouter()
	body := `{"description":"Обед","amount":10,"account_id":1,"category_id":2,"type":"withdrawal"}`
	w := postJSON(r, "/transactions", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("код %d, хотели 400", w.Code)
	}
	if !strings.Contains(errorMessage(t, w), "Недопустимый тип") {
		t.Errorf("неожиданное сообщение: %q", errorMessage(t, w))
	}
}

func TestCreateTransactionRejectsNegativeAmount(t *testing.T) {
	r := newTestRouter()
	body := `{"description":"Обед","amount":-5,"account_id":1,"category_id":2,"type":"expense"}`
	w := postJSON(r, "/transactions", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("код %d, хотели 400", w.Code)
	}
	if !strings.Contains(errorMessage(t, w), "больше нуля") {
		t.Errorf("неожиданное сообщение: %q", errorMessage(t, w))
	}
}

func TestCreateTransactionRejectsBadDate(t *testing.T) {
	r := newTestRouter()
	body := `{"description":"Обед","amount":10,"account_id":1,"category_id":2,"type":"expense","date":"вчера"}`
	w := postJSON(r, "/transactions", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("код %d, хотели 400", w.Code)
	}
}

func TestGetTransactionsRejectsBadQueryParams(t *testing.T) {
	r := newTestRouter()
	cases := []string{
		"/transactions?account_id=abc",
		"/transactions?category_id=x",
		"/transactions?start_date=01-2024",
		"/transactions?end_date=bad",
	}
	for _, path := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: код %d, хотели 400", path, w.Code)
		}
	}
}

func TestGetTransactionRejectsBadID(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/transactions/abc", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("код %d, хотели 400", w.Code)
	}
}
