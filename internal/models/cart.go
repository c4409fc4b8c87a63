package models

import "github.com/shopspring/decimal"

// CartItem est la vue d'une ligne de panier jointe aux données produit
// actuelles. Seule la quantité est persistée (hash Redis cart:{user_id},
// champ = product_id) ; le reste vient du catalogue au moment de la lecture.
type CartItem struct {
	ID        string          `json:"id"` // = product_id, clé naturelle de la ligne
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Total      decimal.Decimal `json:"total"`
}
