package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/utils"
)

// ================== CHANGEMENT DE MOT DE PASSE ==================

// POST /api/auth/change-password
func ChangePassword(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.FieldErrors(err)})
		return
	}

	_, hashed, err := loadUser(userUUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if !utils.VerifyPassword(input.CurrentPassword, hashed) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe actuel incorrect"})
		return
	}

	newHash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	if err := session.Query(`
		UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?
	`, newHash, time.Now(), userUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du changement de mot de passe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe mis à jour"})
}
