package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

const ProductCacheTTL = 10 * time.Minute

// GetProduct récupère un produit depuis Redis, sinon depuis ScyllaDB.
// Seuls les champs servis par le panier et la liste de souhaits sont
// chargés ; la fiche complète passe par le catalogue.
func GetProduct(productID string) (*models.Product, error) {
	ctx := context.Background()
	key := "product:" + productID

	// 1. Essayer le cache Redis
	if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}

	query, err := database.QueryProductByID(gocql.UUID(pid))
	if err != nil {
		return nil, err
	}

	var (
		product  models.Product
		priceStr string
	)
	if err := query.Scan(&product.ID, &product.Name, &product.Slug, &priceStr,
		&product.Stock, &product.ImageURLs); err != nil {
		return nil, err
	}

	if product.Price, err = decimal.NewFromString(priceStr); err != nil {
		return nil, err
	}
	product.Derive()

	// 3. Mettre en cache
	if jsonData, err := json.Marshal(product); err == nil {
		database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)
	}

	return &product, nil
}

// InvalidateProduct invalide le cache d'un produit (prix ou stock modifié)
func InvalidateProduct(productID string) {
	database.Redis.Del(context.Background(), "product:"+productID)
}
