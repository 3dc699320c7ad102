package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims — утверждения токена: стандартные плюс идентификаторы
// пользователя и арендатора. Выпуском токенов занимается внешний сервис
// аутентификации, здесь токен только проверяется.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

var signingKey []byte

func Init(key []byte) {
	signingKey = key
}

// VerifyToken проверяет bearer-токен запроса и возвращает идентификаторы
// пользователя и арендатора.
func VerifyToken(r *http.Request) (string, string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", "", fmt.Errorf("no authorization header")
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid || claims.UserID == "" || claims.TenantID == "" {
		return "", "", ErrInvalidToken
	}

	return claims.UserID, claims.TenantID, nil
}
