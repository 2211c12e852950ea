package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/travelnest/backend/internal/models"
)

// GenerateToken issues a signed session token carrying the user id and role.
// The same token authenticates both HTTP requests and websocket connects.
func GenerateToken(user *models.User, secret string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"exp":  time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
}
