package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/geoguess/pkg/auth"
)

const (
	UsernameKey = "username"
	ClaimsKey   = "claims"
)

// AuthMiddleware проверяет сессионный JWT; валидность определяется только подписью и сроком
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		authenticate(c, jwtManager, token, false)
	}
}

// ResetTokenMiddleware пропускает только токен сброса пароля
func ResetTokenMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		authenticate(c, jwtManager, token, true)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: браузер не умеет слать заголовок
func WSAuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		authenticate(c, jwtManager, token, false)
	}
}

func authenticate(c *gin.Context, jwtManager *auth.JWTManager, token string, reset bool) {
	claims, err := jwtManager.Verify(token)
	if err != nil || claims.IsReset() != reset {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(UsernameKey, claims.Subject)
	c.Set(ClaimsKey, claims)
	c.Next()
}

func claimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return &auth.Claims{}
}

// RequireAdmin пропускает только токен суперпользователя
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !claimsFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privilege required"})
			return
		}
		c.Next()
	}
}

// RequireUser отсекает суперпользователя там, где нужна запись в таблице users
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claimsFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "superuser has no profile"})
			return
		}
		c.Next()
	}
}

// Username имя из проверенного токена
func Username(c *gin.Context) string {
	return c.GetString(UsernameKey)
}
