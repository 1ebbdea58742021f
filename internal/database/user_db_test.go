package database_test

import (
	"errors"
	"testing"

	"github.com/valeriaulyamaeva/finance-tracker-api/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)
	if user.ID == 0 {
		t.Fatal("после регистрации не присвоен ID")
	}

	authenticated, err := database.AuthenticateUser(pool, user.Email, "Secret!123")
	if err != nil {
		t.Fatalf("ошибка авторизации: %v", err)
	}
	if authenticated.ID != user.ID || authenticated.Email != user.Email {
		t.Errorf("авторизовался не тот пользователь: %+v", authenticated)
	}
	if authenticated.Password != "" {
		t.Error("хеш пароля утёк в результат авторизации")
	}

	if _, err := database.AuthenticateUser(pool, user.Email, "wrong-password"); !errors.Is(err, database.ErrWrongPassword) {
		t.Errorf("неверный пароль вернул %v, хотели ErrWrongPassword", err)
	}
	if _, err := database.AuthenticateUser(pool, "nobody@example.com", "Secret!123"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("несуществующий email вернул %v, хотели ErrNotFound", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)
	duplicate := &models.User{Name: "Other", Email: user.Email, Password: "Another!123"}
	if err := database.RegisterUser(pool, duplicate); !errors.Is(err, database.ErrEmailTaken) {
		t.Errorf("повторная регистрация вернула %v, хотели ErrEmailTaken", err)
	}
}

func TestChangeUserPassword(t *testing.T) {
	pool := testPool(t)

	user := newTestUser(t, pool)

	if err := database.ChangeUserPassword(pool, user.ID, "wrong-password", "NewSecret!1"); !errors.Is(err, database.ErrWrongPassword) {
		t.Errorf("смена с неверным текущим паролем вернула %v, хотели ErrWrongPassword", err)
	}

	if err := database.ChangeUserPassword(pool, user.ID, "Secret!123", "NewSecret!1"); err != nil {
		t.Fatalf("ошибка смены пароля: %v", err)
	}
	if _, err := database.AuthenticateUser(pool, user.Email, "NewSecret!1"); err != nil {
		t.Errorf("новый пароль не принят: %v", err)
	}
	if _, err := database.AuthenticateUser(pool, user.Email, "Secret!123"); !errors.Is(err, database.ErrWrongPassword) {
		t.Errorf("старый пароль всё ещё действует: %v", err)
	}
}
