package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("refunded"))
	assert.False(t, ValidStatus(""))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentCard, PaymentTransfer, PaymentCash} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	assert.False(t, ValidPaymentMethod("bitcoin"))
}

func TestOrderItemComputeSubtotal(t *testing.T) {
	item := OrderItem{ProductPrice: decimal.RequireFromString("19.99"), Quantity: 3}
	item.ComputeSubtotal()
	assert.Equal(t, "59.97", item.Subtotal.StringFixed(2))
}

func TestOrderFullAddress(t *testing.T) {
	order := Order{
		Address:    "4a Calle 5-21",
		City:       "Antigua",
		Department: "Sacatepéquez",
	}
	assert.Equal(t, "4a Calle 5-21, Antigua, Sacatepéquez", order.FullAddress())

	order.AddressLine2 = "Casa 2"
	order.PostalCode = "03001"
	assert.Equal(t, "4a Calle 5-21, Casa 2, Antigua, Sacatepéquez, 03001", order.FullAddress())
}

func TestUserFullNameFallsBackToEmail(t *testing.T) {
	u := User{Email: "ana@example.com"}
	assert.Equal(t, "ana@example.com", u.FullName())

	u.FirstName = "Ana"
	assert.Equal(t, "Ana", u.FullName())

	u.LastName = "López"
	assert.Equal(t, "Ana López", u.FullName())
}
