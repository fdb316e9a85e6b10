package models

import "github.com/google/uuid"

// Category is a per-store tree node. Slug is unique within a store;
// ParentID, when set, must point at another category in the same store.
// The parent-pointer graph restricted to one store is kept acyclic by
// the catalog service.
type Category struct {
	Base
	StoreID   uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_store_category_slug;index;not null" json:"store_id"`
	Name      string     `gorm:"not null" json:"name"`
	Slug      string     `gorm:"uniqueIndex:idx_store_category_slug;not null" json:"slug"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	SortOrder int        `gorm:"default:0" json:"sort_order"`
	// No column default: GORM would treat an explicit false as unset
	// and insert the default instead. Callers set the effective value.
	IsActive  bool       `json:"is_active"`
	ImageURL  string     `json:"image_url,omitempty"`

	// Children is populated by tree materialization, never persisted.
	Children []Category `gorm:"-" json:"children,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
