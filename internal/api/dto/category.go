package dto

import "github.com/mvera/storedash/internal/api/validation"

type CategoryRequest struct {
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id,omitempty"`
	SortOrder int     `json:"sort_order"`
	IsActive  *bool   `json:"is_active,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

func (r CategoryRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.ParentID != nil && !validation.IsValidUUID(*r.ParentID) {
		errors["parent_id"] = "Parent ID must be a valid UUID"
	}

	return errors
}

type ReorderItemRequest struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

type ReorderRequest struct {
	Items []ReorderItemRequest `json:"items"`
}

func (r ReorderRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.Items) == 0 {
		errors["items"] = "At least one item is required"
	}
	for _, item := range r.Items {
		if !validation.IsValidUUID(item.ID) {
			errors["items"] = "Every item ID must be a valid UUID"
			break
		}
	}

	return errors
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r BulkDeleteRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if len(r.IDs) == 0 {
		errors["ids"] = "At least one ID is required"
	}
	for _, id := range r.IDs {
		if !validation.IsValidUUID(id) {
			errors["ids"] = "Every ID must be a valid UUID"
			break
		}
	}

	return errors
}
