package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// PrivilegeAdmin выдаётся только суперпользователю из конфигурации
const PrivilegeAdmin = "admin"

// PurposeReset помечает токен сброса пароля; сессионные токены purpose не несут
const PurposeReset = "reset"

// Claims полезная нагрузка токена: subject = username
type Claims struct {
	Privilege string `json:"privilege,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
	now           func() time.Time
}

func NewJWTManager(secret string, duration time.Duration) *JWTManager {
	return &JWTManager{secretKey: secret, tokenDuration: duration, now: time.Now}
}

// Generate создаёт сессионный JWT для username; privilege может быть пустым
func (m *JWTManager) Generate(username, privilege string) (string, error) {
	return m.sign(username, privilege, "")
}

// GenerateReset создаёт токен, пригодный только для установки нового пароля
func (m *JWTManager) GenerateReset(username string) (string, error) {
	return m.sign(username, "", PurposeReset)
}

func (m *JWTManager) sign(subject, privilege, purpose string) (string, error) {
	now := m.now()
	claims := Claims{
		Privilege: privilege,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// Verify парсит и проверяет JWT
func (m *JWTManager) Verify(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// IsAdmin сообщает, несёт ли токен привилегию суперпользователя
func (c *Claims) IsAdmin() bool {
	return c.Privilege == PrivilegeAdmin
}

// IsReset токен сброса пароля
func (c *Claims) IsReset() bool {
	return c.Purpose == PurposeReset
}

// ExtractTokenFromHeader извлекает токен из Authorization header
func ExtractTokenFromHeader(r *http.Request) (string, error) {
	hdr := r.Header.Get("Authorization")
	parts := strings.SplitN(hdr, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid Authorization header")
	}
	return parts[1], nil
}
