package user

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"artesania_back_end/internal/cache"
	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
	"artesania_back_end/internal/pricing"
)

// Le panier est un hash Redis cart:{user_id}, champ = product_id, valeur =
// quantité. HIncrBy rend l'ajout atomique : deux ajouts concurrents du même
// produit ne perdent jamais d'incrément. Les données produit (prix courant,
// nom, image) sont jointes à la lecture depuis le catalogue.
const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string {
	return "cart:" + userID
}

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := context.Background()
	entries, err := database.Redis.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	items := []models.CartItem{}
	for productID, rawQty := range entries {
		qty := parseQuantity(rawQty)
		if qty <= 0 {
			database.Redis.HDel(ctx, cartKey(userID), productID)
			continue
		}

		product, err := fetchCartProduct(productID)
		if err != nil {
			// Produit supprimé du catalogue : la ligne de panier disparaît
			database.Redis.HDel(ctx, cartKey(userID), productID)
			continue
		}

		items = append(items, models.CartItem{
			ID:        productID,
			ProductID: productID,
			Name:      product.Name,
			Slug:      product.Slug,
			Price:     product.Price,
			Quantity:  qty,
			ImageURL:  product.PrimaryImage(),
			Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	totalItems, subtotal, shipping, total := pricing.CartTotals(items)

	c.JSON(http.StatusOK, models.Cart{
		Items:      items,
		TotalItems: totalItems,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Total:      total,
	})
}

//
// 🟢 POST /api/cart
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	product, err := fetchCartProduct(input.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Upsert-et-incrémente en une opération : la quantité demandée s'ajoute
	// à l'existant, elle ne l'écrase pas.
	ctx := context.Background()
	key := cartKey(userID)
	newQty, err := database.Redis.HIncrBy(ctx, key, input.ProductID, int64(input.Quantity)).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}
	database.Redis.Expire(ctx, key, cartTTL)

	c.JSON(http.StatusCreated, models.CartItem{
		ID:        input.ProductID,
		ProductID: input.ProductID,
		Name:      product.Name,
		Slug:      product.Slug,
		Price:     product.Price,
		Quantity:  int(newQty),
		ImageURL:  product.PrimaryImage(),
		Subtotal:  product.Price.Mul(decimal.NewFromInt(newQty)),
	})
}

//
// ✏️ PUT /api/cart/:id — remplace la quantité (≤ 0 supprime la ligne)
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("id")

	// Pointeur : un corps sans quantity est refusé, seul un zéro explicite
	// vaut retrait.
	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	quantity := *input.Quantity

	ctx := context.Background()
	key := cartKey(userID)

	exists, err := database.Redis.HExists(ctx, key, productID).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}

	// Quantité nulle ou négative = retrait, pas une erreur
	if quantity <= 0 {
		database.Redis.HDel(ctx, key, productID)
		c.Status(http.StatusNoContent)
		return
	}

	if err := database.Redis.HSet(ctx, key, productID, quantity).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}
	database.Redis.Expire(ctx, key, cartTTL)

	product, err := fetchCartProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, models.CartItem{
		ID:        productID,
		ProductID: productID,
		Name:      product.Name,
		Slug:      product.Slug,
		Price:     product.Price,
		Quantity:  quantity,
		ImageURL:  product.PrimaryImage(),
		Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	})
}

//
// ❌ DELETE /api/cart/:id
//
func RemoveCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	database.Redis.HDel(context.Background(), cartKey(userID), c.Param("id"))
	c.Status(http.StatusNoContent)
}

//
// 🧹 DELETE /api/cart/clear — idempotent
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := clearUserCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.Status(http.StatusNoContent)
}

// clearUserCart supprime le hash entier ; la création de commande d'un
// client connecté passe aussi par ici.
func clearUserCart(userID string) error {
	return database.Redis.Del(context.Background(), cartKey(userID)).Err()
}

func parseQuantity(raw string) int {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return qty
}

// fetchCartProduct lit le minimum du catalogue nécessaire aux vues panier,
// via le cache produit partagé.
func fetchCartProduct(productID string) (models.Product, error) {
	product, err := cache.GetProduct(productID)
	if err != nil {
		return models.Product{}, err
	}
	return *product, nil
}
