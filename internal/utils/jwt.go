package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"artesania_back_end/internal/models"
)

// GenerateJWT émet le token de session (HS256, 24h). L'identité et le rôle
// voyagent dans les claims ; le middleware les replace dans le contexte.
func GenerateJWT(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
