package product

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"artesania_back_end/internal/cache"
	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
	"artesania_back_end/internal/utils"
)

// casRetries limite les boucles compare-and-set sur le stock.
const casRetries = 5

type stockUpdateRequest struct {
	Type     string `json:"type" binding:"required,oneof=restock adjustment"`
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason"`
}

//
// 📦 PUT /api/admin/products/:id/stock
//
// restock ajoute quantity au stock courant ; adjustment applique un delta
// signé, borné à zéro. Chaque application réussie laisse une ligne dans
// stock_movements.
//
func UpdateStock(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	productID := gocql.UUID(productUUID)

	var input stockUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.FieldErrors(err)})
		return
	}
	if input.Type == models.MovementRestock && input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			"quantity": "Un réapprovisionnement doit être positif",
		}})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	var prevStock, newStock int
	applied := false
	for attempt := 0; attempt < casRetries; attempt++ {
		if err := session.Query(`
			SELECT stock FROM products WHERE product_id = ?
		`, productID).Scan(&prevStock); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}

		newStock = prevStock + input.Quantity
		if newStock < 0 {
			newStock = 0
		}

		// CAS : n'écrit que si personne n'a modifié le stock entre temps
		ok, err := session.Query(`
			UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?
		`, newStock, time.Now(), productID, prevStock).ScanCAS(&prevStock)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du stock"})
			return
		}
		if ok {
			applied = true
			break
		}
	}
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "Stock modifié en parallèle, réessayez"})
		return
	}

	movement := models.StockMovement{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		PrevStock: prevStock,
		NewStock:  newStock,
		Reason:    input.Reason,
		UserID:    c.GetString("user_id"),
		CreatedAt: time.Now().UTC(),
	}
	if err := session.Query(`
		INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PrevStock, movement.NewStock, movement.Reason, movement.UserID,
		movement.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mouvement de stock non enregistré"})
		return
	}

	// le stock a bougé, les vues en cache sont périmées
	cache.InvalidateProduct(productID.String())
	database.Redis.Del(context.Background(), categoriesCacheKey)

	c.JSON(http.StatusOK, movement)
}

//
// 📜 GET /api/admin/products/stock-movements — historique, optionnel ?product=id
//
func GetStockMovements(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	var filter *gocql.UUID
	if raw := c.Query("product"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		id := gocql.UUID(parsed)
		filter = &id
	}

	iter := session.Query(`
		SELECT id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at
		FROM stock_movements
	`).Iter()

	movements := []models.StockMovement{}
	var m models.StockMovement
	for iter.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PrevStock,
		&m.NewStock, &m.Reason, &m.UserID, &m.CreatedAt) {
		if filter == nil || m.ProductID == *filter {
			movements = append(movements, m)
		}
		m = models.StockMovement{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture mouvements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements, "count": len(movements)})
}
