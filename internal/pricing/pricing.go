// Package pricing regroupe les règles d'argent du magasin : sous-totaux en
// décimal exact, frais de port et plancher de stock. Toutes les valeurs
// monétaires sont en quetzales (GTQ), deux décimales.
package pricing

import (
	"artesania_back_end/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// Livraison gratuite à partir de 500, sinon forfait de 35.
	FreeShippingThreshold = decimal.NewFromInt(500)
	FlatShippingRate      = decimal.NewFromInt(35)
)

// Subtotal calcule Σ prix × quantité sur les lignes soumises par le client.
func Subtotal(lines []models.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ShippingCost applique la règle seuil-500 / forfait-35.
func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingRate
}

// ClampStock retire quantity du stock sans jamais passer sous zéro. Une
// commande au-delà du stock disponible n'est pas refusée, elle est écrêtée.
func ClampStock(stock, quantity int) int {
	if remaining := stock - quantity; remaining > 0 {
		return remaining
	}
	return 0
}

// CartTotals agrège un panier joint aux prix catalogue courants.
func CartTotals(items []models.CartItem) (totalItems int, subtotal, shipping, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		totalItems += item.Quantity
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	shipping = ShippingCost(subtotal)
	total = subtotal.Add(shipping)
	return totalItems, subtotal, shipping, total
}
