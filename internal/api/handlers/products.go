package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/api/dto"
	"github.com/mvera/storedash/internal/api/middleware"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/mvera/storedash/pkg/util"
	"gorm.io/gorm"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// List handles GET /api/v1/products/{storeID}/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := dto.PaginationParams{Page: page, PerPage: perPage}
	pagination.Normalize()

	query := h.db.WithContext(r.Context()).Model(&models.Product{}).Where("store_id = ?", grant.StoreID)

	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		if id, err := uuid.Parse(categoryID); err == nil {
			query = query.Where("category_id = ?", id)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to count products"})
		return
	}

	var products []models.Product
	if err := query.
		Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PerPage).
		Find(&products).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list products"})
		return
	}

	totalPages := int(total) / pagination.PerPage
	if int(total)%pagination.PerPage > 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:       products,
		Total:      total,
		Page:       pagination.Page,
		PerPage:    pagination.PerPage,
		TotalPages: totalPages,
	})
}

// Create handles POST /api/v1/products/{storeID}/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	product := models.Product{
		StoreID:    grant.StoreID,
		Name:       req.Name,
		Slug:       util.Slugify(req.Name) + "-" + util.SlugSuffix(),
		PriceCents: req.PriceCents,
		IsActive:   true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.CategoryID != nil {
		id, _ := uuid.Parse(*req.CategoryID)
		// Category must belong to the same store
		var count int64
		if err := h.db.WithContext(r.Context()).Model(&models.Category{}).
			Where("id = ? AND store_id = ?", id, grant.StoreID).
			Count(&count).Error; err != nil || count == 0 {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Category does not belong to this store"})
			return
		}
		product.CategoryID = &id
	}

	if err := h.db.WithContext(r.Context()).Create(&product).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create product"})
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Delete handles DELETE /api/v1/products/{storeID}/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.db.WithContext(r.Context()).
		Where("id = ? AND store_id = ?", id, grant.StoreID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Product not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get product"})
		return
	}

	if err := h.db.WithContext(r.Context()).Delete(&product).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete product"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Product deleted"})
}
