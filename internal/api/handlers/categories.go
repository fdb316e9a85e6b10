package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/api/dto"
	"github.com/mvera/storedash/internal/api/middleware"
	"github.com/mvera/storedash/internal/catalog"
	"github.com/mvera/storedash/internal/database/models"
)

type CategoryHandler struct {
	catalog *catalog.Service
}

func NewCategoryHandler(svc *catalog.Service) *CategoryHandler {
	return &CategoryHandler{catalog: svc}
}

// CategoryListResponse carries both shapes the dashboard needs: the raw
// rows and the materialized forest.
type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Tree       []models.Category `json:"tree"`
}

// List handles GET /api/v1/categories/{storeID}/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	flat, tree, err := h.catalog.List(r.Context(), grant.StoreID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list categories"})
		return
	}

	writeJSON(w, http.StatusOK, CategoryListResponse{Categories: flat, Tree: tree})
}

// Create handles POST /api/v1/categories/{storeID}/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	input, ok := decodeCategoryInput(w, r)
	if !ok {
		return
	}

	cat, err := h.catalog.Create(r.Context(), grant.StoreID, *input)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cat)
}

// Update handles PUT /api/v1/categories/{storeID}/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	input, ok := decodeCategoryInput(w, r)
	if !ok {
		return
	}

	cat, err := h.catalog.Update(r.Context(), grant.StoreID, id, *input)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

// Delete handles DELETE /api/v1/categories/{storeID}/categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID"})
		return
	}

	if err := h.catalog.Delete(r.Context(), grant.StoreID, id); err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Category deleted"})
}

// Reorder handles PATCH /api/v1/categories/{storeID}/categories/bulk/reorder
func (h *CategoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var req dto.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	items := make([]catalog.ReorderItem, len(req.Items))
	for i, item := range req.Items {
		id, _ := uuid.Parse(item.ID)
		items[i] = catalog.ReorderItem{ID: id, SortOrder: item.SortOrder}
	}

	result, err := h.catalog.Reorder(r.Context(), grant.StoreID, items)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Reorder failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BulkDelete handles DELETE /api/v1/categories/{storeID}/categories/bulk/delete
func (h *CategoryHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var req dto.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	ids := make([]uuid.UUID, len(req.IDs))
	for i, raw := range req.IDs {
		ids[i], _ = uuid.Parse(raw)
	}

	result, err := h.catalog.BulkDelete(r.Context(), grant.StoreID, ids)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Bulk delete failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func decodeCategoryInput(w http.ResponseWriter, r *http.Request) (*catalog.CategoryInput, bool) {
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return nil, false
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return nil, false
	}

	input := catalog.CategoryInput{
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
		ImageURL:  req.ImageURL,
	}
	if req.ParentID != nil {
		id, _ := uuid.Parse(*req.ParentID)
		input.ParentID = &id
	}
	return &input, true
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Category not found"})
	case errors.Is(err, catalog.ErrInvalidParent):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Parent category does not belong to this store"})
	case errors.Is(err, catalog.ErrCyclicParent):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Parent assignment would create a cycle"})
	case errors.Is(err, catalog.ErrHasChildren):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Category still has child categories; move or delete them first"})
	case errors.Is(err, catalog.ErrHasProducts):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Category still has products attached; reassign them first"})
	case errors.Is(err, catalog.ErrSlugExhausted):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Could not assign a unique slug"})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Category operation failed"})
	}
}
