package product

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"

	"artesania_back_end/internal/database"
	"artesania_back_end/internal/models"
)

var (
	errCategoryNotFound = errors.New("catégorie introuvable")
	errProductNotFound  = errors.New("produit introuvable")
)

const storefrontSectionSize = 8

//
// 🔵 GET /api/products — produits actifs, filtres ?category=slug&featured=true
//
func GetAllProducts(c *gin.Context) {
	categorySlug := c.Query("category")
	featuredOnly := c.Query("featured") == "true"

	var categoryID *gocql.UUID
	if categorySlug != "" {
		category, err := findCategoryBySlug(categorySlug)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
			return
		}
		categoryID = &category.ID
	}

	products, err := loadActiveProducts(func(p *models.Product) bool {
		if categoryID != nil && p.CategoryID != *categoryID {
			return false
		}
		if featuredOnly && !p.IsFeatured {
			return false
		}
		return true
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

//
// ⭐ GET /api/products/featured
//
func GetFeaturedProducts(c *gin.Context) {
	storefrontSection(c, func(p *models.Product) bool { return p.IsFeatured })
}

//
// 🆕 GET /api/products/new-arrivals — les plus récents d'abord
//
func GetNewArrivals(c *gin.Context) {
	products, err := loadActiveProducts(nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if len(products) > storefrontSectionSize {
		products = products[:storefrontSectionSize]
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

//
// 💸 GET /api/products/on-sale — remise effective uniquement
//
func GetOnSaleProducts(c *gin.Context) {
	storefrontSection(c, func(p *models.Product) bool {
		return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
	})
}

//
// 🔵 GET /api/products/:slug — fiche complète
//
func GetProductBySlug(c *gin.Context) {
	lookup, err := database.QueryProductBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de connexion à la base"})
		return
	}

	var productID gocql.UUID
	if err := lookup.Scan(&productID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	product, err := loadProduct(productID)
	if err != nil || !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func storefrontSection(c *gin.Context, keep func(*models.Product) bool) {
	products, err := loadActiveProducts(keep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}
	if len(products) > storefrontSectionSize {
		products = products[:storefrontSectionSize]
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// loadActiveProducts parcourt la table produits et filtre côté application.
// Le catalogue reste petit (artisanat, quelques centaines de références) ;
// si ça change, il faudra des tables de projection par filtre.
func loadActiveProducts(keep func(*models.Product) bool) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`
		SELECT product_id, name, slug, description, short_description, price,
			original_price, category_id, badge, stock, sku, is_active, is_featured,
			artisan_name, origin, materials, dimensions, weight, image_urls,
			created_at, updated_at
		FROM products
	`).Iter()

	products := []models.Product{}
	for {
		product, ok, err := scanProduct(iter)
		if err != nil {
			iter.Close()
			return nil, err
		}
		if !ok {
			break
		}
		if !product.IsActive {
			continue
		}
		if keep != nil && !keep(&product) {
			continue
		}
		products = append(products, product)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	return products, nil
}

func loadProduct(productID gocql.UUID) (models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return models.Product{}, err
	}

	iter := session.Query(`
		SELECT product_id, name, slug, description, short_description, price,
			original_price, category_id, badge, stock, sku, is_active, is_featured,
			artisan_name, origin, materials, dimensions, weight, image_urls,
			created_at, updated_at
		FROM products WHERE product_id = ?
	`, productID).Iter()

	product, ok, err := scanProduct(iter)
	if cerr := iter.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return models.Product{}, err
	}
	if !ok {
		return models.Product{}, errProductNotFound
	}

	return product, nil
}

// scanProduct lit une ligne de l'iterateur ; les montants sont stockés en
// texte décimal, vide = absent.
func scanProduct(iter *gocql.Iter) (models.Product, bool, error) {
	var (
		product       models.Product
		priceStr      string
		originalStr   string
		weightStr     string
	)
	if !iter.Scan(&product.ID, &product.Name, &product.Slug, &product.Description,
		&product.ShortDescription, &priceStr, &originalStr, &product.CategoryID,
		&product.Badge, &product.Stock, &product.SKU, &product.IsActive,
		&product.IsFeatured, &product.ArtisanName, &product.Origin,
		&product.Materials, &product.Dimensions, &weightStr, &product.ImageURLs,
		&product.CreatedAt, &product.UpdatedAt) {
		return models.Product{}, false, nil
	}

	var err error
	if product.Price, err = decimal.NewFromString(priceStr); err != nil {
		return models.Product{}, false, err
	}
	if originalStr != "" {
		original, err := decimal.NewFromString(originalStr)
		if err != nil {
			return models.Product{}, false, err
		}
		product.OriginalPrice = &original
	}
	if weightStr != "" {
		weight, err := decimal.NewFromString(weightStr)
		if err != nil {
			return models.Product{}, false, err
		}
		product.Weight = &weight
	}
	product.Derive()

	return product, true, nil
}
