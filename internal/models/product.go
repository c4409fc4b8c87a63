package models

import (
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

// Badges affichés sur les fiches produit.
const (
	BadgeNew        = "new"
	BadgeBestseller = "bestseller"
	BadgeSale       = "sale"
	BadgeLimited    = "limited"
	BadgeHandmade   = "handmade"
)

type Product struct {
	ID               gocql.UUID       `json:"id" db:"product_id"`
	Name             string           `json:"name" db:"name"`
	Slug             string           `json:"slug" db:"slug"`
	Description      string           `json:"description" db:"description"`
	ShortDescription string           `json:"short_description" db:"short_description"`
	Price            decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice    *decimal.Decimal `json:"original_price,omitempty" db:"original_price"`
	CategoryID       gocql.UUID       `json:"category_id" db:"category_id"`
	Badge            string           `json:"badge" db:"badge"`
	Stock            int              `json:"stock" db:"stock"`
	SKU              string           `json:"sku,omitempty" db:"sku"`
	IsActive         bool             `json:"is_active" db:"is_active"`
	IsFeatured       bool             `json:"is_featured" db:"is_featured"`
	ArtisanName      string           `json:"artisan_name,omitempty" db:"artisan_name"`
	Origin           string           `json:"origin,omitempty" db:"origin"`
	Materials        string           `json:"materials,omitempty" db:"materials"`
	Dimensions       string           `json:"dimensions,omitempty" db:"dimensions"`
	Weight           *decimal.Decimal `json:"weight,omitempty" db:"weight"`
	ImageURLs        []string         `json:"image_urls" db:"image_urls"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`

	// Champs dérivés, calculés à la lecture
	InStock            bool `json:"in_stock"`
	DiscountPercentage int  `json:"discount_percentage"`
}

// Derive calcule les champs exposés mais non stockés.
func (p *Product) Derive() {
	p.InStock = p.Stock > 0
	p.DiscountPercentage = 0
	if p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price) && p.OriginalPrice.IsPositive() {
		diff := p.OriginalPrice.Sub(p.Price)
		p.DiscountPercentage = int(diff.Div(*p.OriginalPrice).Mul(decimal.NewFromInt(100)).IntPart())
	}
}

// PrimaryImage retourne la première image, vide si aucune.
func (p *Product) PrimaryImage() string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return ""
}
