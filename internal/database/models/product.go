package models

import "github.com/google/uuid"

type Product struct {
	Base
	StoreID    uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_store_product_slug;index;not null" json:"store_id"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name       string     `gorm:"not null" json:"name"`
	Slug       string     `gorm:"uniqueIndex:idx_store_product_slug;not null" json:"slug"`
	PriceCents int64      `gorm:"default:0" json:"price_cents"`
	IsActive   bool       `json:"is_active"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
