package dto

import "github.com/mvera/storedash/internal/api/validation"

type ProductRequest struct {
	Name       string  `json:"name"`
	CategoryID *string `json:"category_id,omitempty"`
	PriceCents int64   `json:"price_cents"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (r ProductRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.PriceCents < 0 {
		errors["price_cents"] = "Price must not be negative"
	}
	if r.CategoryID != nil && !validation.IsValidUUID(*r.CategoryID) {
		errors["category_id"] = "Category ID must be a valid UUID"
	}

	return errors
}
