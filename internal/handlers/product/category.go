package product

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

const categoriesCacheKey = "categories:active"

//
// 🔵 GET /api/categories — catégories actives, triées, cache Redis 1h
//
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()

	if val, err := database.Redis.Get(ctx, categoriesCacheKey).Result(); err == nil {
		var cached []models.Category
		if json.Unmarshal([]byte(val), &cached) == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	categories, err := loadActiveCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	if data, err := json.Marshal(categories); err == nil {
		database.Redis.Set(ctx, categoriesCacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, categories)
}

//
// 🔵 GET /api/categories/:slug
//
func GetCategoryBySlug(c *gin.Context) {
	category, err := findCategoryBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	c.JSON(http.StatusOK, category)
}

//
// 🔵 GET /api/categories/:slug/products — produits actifs de la catégorie
//
func GetCategoryProducts(c *gin.Context) {
	category, err := findCategoryBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	products, err := loadActiveProducts(func(p *models.Product) bool {
		return p.CategoryID == category.ID
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "products": products})
}

// loadActiveCategories lit toute la table (petite, quelques dizaines de
// lignes) et filtre/trie côté application, avec le nombre de produits
// actifs par catégorie.
func loadActiveCategories() ([]models.Category, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`
		SELECT category_id, name, slug, description, image_url, icon,
			is_active, display_order, created_at, updated_at
		FROM categories
	`).Iter()

	categories := []models.Category{}
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL,
		&cat.Icon, &cat.IsActive, &cat.Order, &cat.CreatedAt, &cat.UpdatedAt) {
		if cat.IsActive {
			categories = append(categories, cat)
		}
		cat = models.Category{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	counts, err := countActiveProductsByCategory()
	if err == nil {
		for i := range categories {
			categories[i].ProductCount = counts[categories[i].ID.String()]
		}
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})

	return categories, nil
}

func findCategoryBySlug(slug string) (models.Category, error) {
	categories, err := loadActiveCategories()
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range categories {
		if cat.Slug == slug {
			return cat, nil
		}
	}
	return models.Category{}, errCategoryNotFound
}

func countActiveProductsByCategory() (map[string]int, error) {
	products, err := loadActiveProducts(nil)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(products))
	for _, p := range products {
		counts[p.CategoryID.String()]++
	}
	return counts, nil
}
