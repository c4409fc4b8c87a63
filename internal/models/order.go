package models

import (
	"strings"
	"time"

	"github.com/gocql/gocql"
	"github.com/shopspring/decimal"
)

// Statuts de commande. delivered et cancelled sont terminaux ; les
// transitions sont posées par un administrateur sans table de garde.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCash     = "cash"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentTransfer, PaymentCash:
		return true
	}
	return false
}

type Order struct {
	OrderNumber string `json:"order_number" db:"order_number"`
	UserID      string `json:"user_id,omitempty" db:"user_id"` // vide pour une commande invité

	Email string `json:"email" db:"email"`
	Phone string `json:"phone" db:"phone"`

	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	Address      string `json:"address" db:"address"`
	AddressLine2 string `json:"address_line2,omitempty" db:"address_line2"`
	City         string `json:"city" db:"city"`
	Department   string `json:"department" db:"department"`
	PostalCode   string `json:"postal_code,omitempty" db:"postal_code"`

	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	ShippingCost decimal.Decimal `json:"shipping_cost" db:"shipping_cost"`
	Total        decimal.Decimal `json:"total" db:"total"`

	Status        string     `json:"status" db:"status"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	IsPaid        bool       `json:"is_paid" db:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty" db:"paid_at"`

	Notes string `json:"notes,omitempty" db:"notes"`

	Items []OrderItem `json:"items"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (o *Order) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

func (o *Order) FullAddress() string {
	parts := []string{o.Address}
	if o.AddressLine2 != "" {
		parts = append(parts, o.AddressLine2)
	}
	parts = append(parts, o.City+", "+o.Department)
	if o.PostalCode != "" {
		parts = append(parts, o.PostalCode)
	}
	return strings.Join(parts, ", ")
}

// OrderItem fige nom, prix et quantité au moment de la commande ; la ligne
// reste lisible même si le produit est modifié ou supprimé ensuite.
type OrderItem struct {
	ID           gocql.UUID      `json:"id" db:"item_id"`
	ProductID    string          `json:"product_id" db:"product_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price" db:"product_price"`
	Quantity     int             `json:"quantity" db:"quantity"`

	// Dérivé, jamais stocké
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (i *OrderItem) ComputeSubtotal() {
	i.Subtotal = i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderLine est une ligne soumise par le client à la création de commande.
// Le prix indiqué est celui que le client a vu ; il est persisté tel quel.
type OrderLine struct {
	ProductID string          `json:"product_id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
}
