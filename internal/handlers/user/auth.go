package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
	"artesania_back_end/internal/utils"
)

// ================== INSCRIPTION ==================

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var input registerRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.FieldErrors(err)})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	userID := gocql.UUID(uuid.New())

	// LWT sur la table de lookup : deux inscriptions concurrentes avec le
	// même email ne peuvent pas passer toutes les deux.
	applied, err := session.Query(`
		INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS
	`, input.Email, userID).MapScanCAS(map[string]interface{}{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'inscription"})
		return
	}
	if !applied {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			"email": "Un compte avec cet email existe déjà",
		}})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'inscription"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        userID.String(),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      models.RoleCustomer,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	insert, err := database.QueryInsertUser(userID, user.Email, hashed, user.FirstName,
		user.LastName, user.Role, user.Phone, "", "", "", "", "", now, now)
	if err == nil {
		err = insert.Exec()
	}
	if err != nil {
		// rollback du lookup pour ne pas bloquer l'email
		session.Query(`DELETE FROM users_by_email WHERE email = ?`, input.Email).Exec()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'inscription"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'inscription"})
		return
	}

	log.Printf("✅ Nouvel utilisateur inscrit: %s", user.Email)
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// ================== CONNEXION ==================

// POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.FieldErrors(err)})
		return
	}

	lookup, err := database.QueryUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	var userID gocql.UUID
	if err := lookup.Scan(&userID); err != nil {
		// même message que le mot de passe faux, on ne révèle pas
		// si l'email existe
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	user, hashed, err := loadUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if !utils.VerifyPassword(input.Password, hashed) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la connexion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// ================== PROFIL ==================

// GET /api/auth/me
func Me(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	user, _, err := loadUser(userUUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// PUT /api/auth/profile
func UpdateProfile(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		FirstName    string `json:"first_name" binding:"required"`
		LastName     string `json:"last_name" binding:"required"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
		AddressLine2 string `json:"address_line2"`
		City         string `json:"city"`
		Department   string `json:"department"`
		PostalCode   string `json:"postal_code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.FieldErrors(err)})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	if err := session.Query(`
		UPDATE users SET first_name = ?, last_name = ?, phone = ?, address = ?,
			address_line2 = ?, city = ?, department = ?, postal_code = ?, updated_at = ?
		WHERE user_id = ?
	`, input.FirstName, input.LastName, input.Phone, input.Address,
		input.AddressLine2, input.City, input.Department, input.PostalCode,
		time.Now(), userUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du profil"})
		return
	}

	user, _, err := loadUser(userUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture du profil"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func currentUserUUID(c *gin.Context) (gocql.UUID, bool) {
	parsed, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		return gocql.UUID{}, false
	}
	return gocql.UUID(parsed), true
}

// loadUser retourne l'utilisateur et son hash de mot de passe.
func loadUser(userID gocql.UUID) (models.User, string, error) {
	query, err := database.QueryUserByID(userID)
	if err != nil {
		return models.User{}, "", err
	}

	var (
		user   models.User
		hashed string
	)
	if err := query.Scan(&user.Email, &hashed, &user.FirstName, &user.LastName, &user.Role,
		&user.Phone, &user.Address, &user.AddressLine2, &user.City, &user.Department,
		&user.PostalCode, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return models.User{}, "", err
	}
	user.ID = userID.String()

	return user, hashed, nil
}
