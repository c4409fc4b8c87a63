package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Types de mouvement de stock.
const (
	MovementRestock    = "restock"
	MovementAdjustment = "adjustment"
	MovementOrder      = "order"
)

type StockMovement struct {
	ID        gocql.UUID `json:"id" db:"id"`
	ProductID gocql.UUID `json:"product_id" db:"product_id"`
	Type      string     `json:"type" db:"type"`
	Quantity  int        `json:"quantity" db:"quantity"`
	PrevStock int        `json:"prev_stock" db:"prev_stock"`
	NewStock  int        `json:"new_stock" db:"new_stock"`
	Reason    string     `json:"reason" db:"reason"`
	UserID    string     `json:"user_id" db:"user_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
