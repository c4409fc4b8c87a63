package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Category struct {
	ID          gocql.UUID `json:"id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Slug        string     `json:"slug" db:"slug"`
	Description string     `json:"description" db:"description"`
	ImageURL    string     `json:"image,omitempty" db:"image_url"`
	Icon        string     `json:"icon,omitempty" db:"icon"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	Order       int        `json:"order" db:"display_order"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	ProductCount int `json:"product_count"`
}
