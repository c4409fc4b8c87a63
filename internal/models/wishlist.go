package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WishlistItem est la vue d'une entrée de liste de souhaits jointe aux
// données produit actuelles. Seuls user_id/product_id/added_at sont
// persistés (table wishlist, partition par user_id).
type WishlistItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	InStock   bool            `json:"in_stock"`
	AddedAt   time.Time       `json:"added_at"`
}

type Wishlist struct {
	Items []WishlistItem `json:"items"`
	Count int            `json:"count"`
}
