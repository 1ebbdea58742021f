package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "current_user"

// AuthRequired извлекает пользователя из cookie сессии (или заголовка
// Authorization) и кладёт его в контекст запроса; без токена — 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				tokenString = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Не авторизован"})
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Не авторизован"})
			return
		}

		c.Set(contextUserKey, claims)
		c.Next()
	}
}

// CurrentUser возвращает данные сессии, положенные middleware
func CurrentUser(c *gin.Context) *SessionClaims {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*SessionClaims)
	return claims
}

// CurrentUserID — идентификатор текущего пользователя (0, если сессии нет)
func CurrentUserID(c *gin.Context) int {
	claims := CurrentUser(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}
