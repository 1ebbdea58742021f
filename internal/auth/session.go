package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/valeriaulyamaeva/finance-tracker-api/models"
)

// SessionCookie — имя cookie с токеном сессии
const SessionCookie = "session"

const sessionTTL = 24 * time.Hour

type SessionClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(os.Getenv("SESSION_SECRET"))
}

// IssueToken выпускает подписанный токен сессии с данными пользователя
func IssueToken(user *models.User) (string, error) {
	claims := SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret())
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %v", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия токена
func ParseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("недействительный токен: %v", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}
	return claims, nil
}
