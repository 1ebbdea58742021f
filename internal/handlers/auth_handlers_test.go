package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", RegisterHandler(nil))
	r.POST("/login", LoginHandler(nil))
	r.POST("/logout", LogoutHandler())
	return r
}

func TestRegisterValidation(t *testing.T) {
	r := newAuthRouter()
	cases := []struct {
		name string
		body string
		want string
	}{
		{"без email", `{"password":"Secret!123"}`, "Обязательные поля"},
		{"без пароля", `{"email":"user@example.com"}`, "Обязательные поля"},
		{"плохой email", `{"email":"not-an-email","password":"Secret!123"}`, "Некорректный email"},
		{"короткий пароль", `{"email":"user@example.com","password":"Ab1!"}`, "минимум 8 символов"},
		{"без спецсимвола", `{"email":"user@example.com","password":"Abcdefgh1"}`, "спецсимвол"},
	}
	for _, tc := range cases {
		w := postJSON(r, "/register", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: код %d, хотели 400", tc.name, w.Code)
			continue
		}
		if msg := errorMessage(t, w); !strings.Contains(msg, tc.want) {
			t.Errorf("%s: сообщение %q не содержит %q", tc.name, msg, tc.want)
		}
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	r := newAuthRouter()
	w := postJSON(r, "/login", `{"email":"user@example.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("код %d, хотели 400", w.Code)
	}
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	r := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("код %d, хотели 200", w.Code)
	}
	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "session=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Errorf("cookie сессии не сброшен: %q", setCookie)
	}
}
