package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

// La liste de souhaits vit dans ScyllaDB (table wishlist, partition par
// user_id) avec un cache Redis de la vue jointe, invalidé à chaque écriture.
const wishlistCacheTTL = 10 * time.Minute

func wishlistCacheKey(userID string) string {
	return "wishlist:" + userID
}

//
// 💝 GET /api/wishlist
//
func GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := context.Background()
	if cached, err := database.Redis.Get(ctx, wishlistCacheKey(userID)).Result(); err == nil {
		var wishlist models.Wishlist
		if json.Unmarshal([]byte(cached), &wishlist) == nil {
			c.JSON(http.StatusOK, wishlist)
			return
		}
	}

	wishlist, err := loadWishlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture liste de souhaits"})
		return
	}

	if payload, err := json.Marshal(wishlist); err == nil {
		database.Redis.Set(ctx, wishlistCacheKey(userID), payload, wishlistCacheTTL)
	}

	c.JSON(http.StatusOK, wishlist)
}

//
// 🔄 POST /api/wishlist/toggle — ajoute si absent, retire si présent
//
func ToggleWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productUUID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if _, err := fetchCartProduct(input.ProductID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	// LWT : l'insert n'est appliqué que si la ligne n'existe pas encore,
	// donc deux toggles concurrents ne créent jamais de doublon.
	applied, err := session.Query(`
		INSERT INTO wishlist (user_id, product_id, added_at)
		VALUES (?, ?, ?) IF NOT EXISTS
	`, gocql.UUID(userUUID), gocql.UUID(productUUID), time.Now()).MapScanCAS(map[string]interface{}{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour liste de souhaits"})
		return
	}

	action := "added"
	inWishlist := true
	if !applied {
		// Déjà présent : le toggle retire
		if err := session.Query(`
			DELETE FROM wishlist WHERE user_id = ? AND product_id = ?
		`, gocql.UUID(userUUID), gocql.UUID(productUUID)).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour liste de souhaits"})
			return
		}
		action = "removed"
		inWishlist = false
	}

	database.Redis.Del(context.Background(), wishlistCacheKey(userID))

	c.JSON(http.StatusOK, gin.H{
		"action":      action,
		"in_wishlist": inWishlist,
	})
}

//
// ➕ POST /api/wishlist — ajout idempotent
//
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productUUID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if _, err := fetchCartProduct(input.ProductID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	if _, err := session.Query(`
		INSERT INTO wishlist (user_id, product_id, added_at)
		VALUES (?, ?, ?) IF NOT EXISTS
	`, gocql.UUID(userUUID), gocql.UUID(productUUID), time.Now()).MapScanCAS(map[string]interface{}{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour liste de souhaits"})
		return
	}

	database.Redis.Del(context.Background(), wishlistCacheKey(userID))

	c.JSON(http.StatusCreated, gin.H{"in_wishlist": true})
}

//
// ❌ DELETE /api/wishlist/:id — idempotent
//
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	if err := session.Query(`
		DELETE FROM wishlist WHERE user_id = ? AND product_id = ?
	`, gocql.UUID(userUUID), gocql.UUID(productUUID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour liste de souhaits"})
		return
	}

	database.Redis.Del(context.Background(), wishlistCacheKey(userID))
	c.Status(http.StatusNoContent)
}

// loadWishlist joint les entrées au catalogue ; les produits disparus
// sont purgés au passage.
func loadWishlist(userID string) (models.Wishlist, error) {
	wishlist := models.Wishlist{Items: []models.WishlistItem{}}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return wishlist, err
	}

	session, err := database.GetProductsSession()
	if err != nil {
		return wishlist, err
	}

	iter := session.Query(`
		SELECT product_id, added_at FROM wishlist WHERE user_id = ?
	`, gocql.UUID(userUUID)).Iter()

	var (
		productID gocql.UUID
		addedAt   time.Time
	)
	type entry struct {
		productID gocql.UUID
		addedAt   time.Time
	}
	var entries []entry
	for iter.Scan(&productID, &addedAt) {
		entries = append(entries, entry{productID, addedAt})
	}
	if err := iter.Close(); err != nil {
		return wishlist, err
	}

	for _, e := range entries {
		product, err := fetchCartProduct(e.productID.String())
		if err != nil {
			session.Query(`
				DELETE FROM wishlist WHERE user_id = ? AND product_id = ?
			`, gocql.UUID(userUUID), e.productID).Exec()
			continue
		}
		wishlist.Items = append(wishlist.Items, models.WishlistItem{
			ProductID: e.productID.String(),
			Name:      product.Name,
			Slug:      product.Slug,
			Price:     product.Price,
			ImageURL:  product.PrimaryImage(),
			InStock:   product.InStock,
			AddedAt:   e.addedAt,
		})
	}
	wishlist.Count = len(wishlist.Items)

	return wishlist, nil
}
