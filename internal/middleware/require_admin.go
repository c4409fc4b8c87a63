package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artesania_back_end/internal/models"
)

// RequireAdmin protège les endpoints d'administration (statuts de commande,
// stock). S'empile après AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}
		c.Next()
	}
}
