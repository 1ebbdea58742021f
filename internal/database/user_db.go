package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser регистрирует нового пользователя
func RegisterUser(pool *pgxpool.Pool, user *models.User) error {
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки email: %v", err)
	}
	if exists {
		return ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err = pool.QueryRow(context.Background(), query, user.Name, user.Email, hashedPassword).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении пользователя: %v", err)
	}
	user.Password = ""
	return nil
}

func AuthenticateUser(pool *pgxpool.Pool, email, password string) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	err := pool.QueryRow(context.Background(), query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска пользователя: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	user.Password = ""
	return &user, nil
}

func GetUserByID(pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `SELECT id, name, email, created_at FROM users WHERE id = $1`

	var user models.User
	err := pool.QueryRow(context.Background(), query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя по id: %v", err)
	}

	return &user, nil
}

// UpdateUserProfile обновляет имя и email, следя за уникальностью email
func UpdateUserProfile(pool *pgxpool.Pool, user *models.User) error {
	var taken bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		user.Email, user.ID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("ошибка проверки email: %v", err)
	}
	if taken {
		return ErrEmailTaken
	}

	result, err := pool.Exec(context.Background(),
		`UPDATE users SET name = $1, email = $2 WHERE id = $3`,
		user.Name, user.Email, user.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %v", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangeUserPassword меняет пароль после проверки текущего
func ChangeUserPassword(pool *pgxpool.Pool, userID int, currentPassword, newPassword string) error {
	var hash string
	err := pool.QueryRow(context.Background(),
		`SELECT password FROM users WHERE id = $1`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка получения пользователя: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`UPDATE users SET password = $1 WHERE id = $2`, newHash, userID)
	if err != nil {
		return fmt.Errorf("ошибка обновления пароля: %v", err)
	}
	return nil
}
