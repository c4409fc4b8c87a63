package pricing

import (
	"testing"

	"artesania_back_end/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(price string, qty int) models.OrderLine {
	return models.OrderLine{Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestSubtotalExactDecimal(t *testing.T) {
	lines := []models.OrderLine{line("19.99", 3), line("0.10", 7)}
	assert.Equal(t, "60.67", Subtotal(lines).StringFixed(2))
}

func TestShippingFreeAboveThreshold(t *testing.T) {
	lines := []models.OrderLine{line("300", 1), line("250", 1)}
	subtotal := Subtotal(lines)

	require.Equal(t, "550", subtotal.String())
	assert.True(t, ShippingCost(subtotal).IsZero())
	assert.Equal(t, "550.00", subtotal.Add(ShippingCost(subtotal)).StringFixed(2))
}

func TestShippingFlatBelowThreshold(t *testing.T) {
	lines := []models.OrderLine{line("100", 2)}
	subtotal := Subtotal(lines)

	require.Equal(t, "200", subtotal.String())
	assert.Equal(t, "35", ShippingCost(subtotal).String())
	assert.Equal(t, "235.00", subtotal.Add(ShippingCost(subtotal)).StringFixed(2))
}

func TestShippingExactlyAtThreshold(t *testing.T) {
	assert.True(t, ShippingCost(decimal.NewFromInt(500)).IsZero())
	assert.Equal(t, "35", ShippingCost(decimal.RequireFromString("499.99")).String())
}

func TestTotalAlwaysSubtotalPlusShipping(t *testing.T) {
	cases := []string{"0", "34.99", "35", "499.99", "500", "500.01", "10000"}
	for _, raw := range cases {
		subtotal := decimal.RequireFromString(raw)
		shipping := ShippingCost(subtotal)

		assert.True(t, shipping.IsZero() || shipping.Equal(FlatShippingRate), "shipping ∉ {0, 35} pour %s", raw)
		assert.Equal(t, shipping.IsZero(), subtotal.GreaterThanOrEqual(FreeShippingThreshold), "gratuité incohérente pour %s", raw)
	}
}

func TestClampStockNeverNegative(t *testing.T) {
	assert.Equal(t, 7, ClampStock(10, 3))
	assert.Equal(t, 0, ClampStock(10, 10))
	assert.Equal(t, 0, ClampStock(3, 10))
	assert.Equal(t, 0, ClampStock(0, 1))
}

func TestCartTotals(t *testing.T) {
	items := []models.CartItem{
		{Price: decimal.RequireFromString("120.50"), Quantity: 2},
		{Price: decimal.RequireFromString("80.00"), Quantity: 1},
	}

	totalItems, subtotal, shipping, total := CartTotals(items)

	assert.Equal(t, 3, totalItems)
	assert.Equal(t, "321.00", subtotal.StringFixed(2))
	assert.Equal(t, "35.00", shipping.StringFixed(2))
	assert.Equal(t, "356.00", total.StringFixed(2))
}

func TestCartTotalsEmpty(t *testing.T) {
	totalItems, subtotal, shipping, total := CartTotals(nil)

	assert.Zero(t, totalItems)
	assert.True(t, subtotal.IsZero())
	assert.Equal(t, "35", shipping.String())
	assert.Equal(t, "35", total.String())
}
