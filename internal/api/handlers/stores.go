package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mvera/storedash/internal/api/dto"
	"github.com/mvera/storedash/internal/api/middleware"
	"github.com/mvera/storedash/internal/database/models"
	"gorm.io/gorm"
)

type StoreHandler struct {
	db *gorm.DB
}

func NewStoreHandler(db *gorm.DB) *StoreHandler {
	return &StoreHandler{db: db}
}

// StoreListResponse splits the caller's stores by relationship.
type StoreListResponse struct {
	Owned   []dto.StoreDTO `json:"owned"`
	Staffed []dto.StoreDTO `json:"staffed"`
}

// ListMine handles GET /api/v1/stores
func (h *StoreHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	resp := StoreListResponse{Owned: []dto.StoreDTO{}, Staffed: []dto.StoreDTO{}}
	for _, s := range identity.OwnedStores {
		resp.Owned = append(resp.Owned, dto.StoreDTO{
			ID:     s.ID.String(),
			Slug:   s.Slug,
			Status: string(s.Status),
		})
	}
	for _, m := range identity.Memberships {
		if !m.IsActive {
			continue
		}
		resp.Staffed = append(resp.Staffed, dto.StoreDTO{
			ID:     m.StoreID.String(),
			Slug:   m.StoreSlug,
			Status: string(m.StoreStatus),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/stores/{storeID}
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var store models.Store
	if err := h.db.WithContext(r.Context()).First(&store, "id = ?", grant.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Store not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get store"})
		return
	}

	writeJSON(w, http.StatusOK, storeDTO(&store))
}

// Update handles PUT /api/v1/stores/{storeID}. The slug never changes.
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var req dto.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	var store models.Store
	if err := h.db.WithContext(r.Context()).First(&store, "id = ?", grant.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Store not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get store"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Status != "" {
		updates["status"] = models.StoreStatus(req.Status)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(r.Context()).Model(&store).Updates(updates).Error; err != nil {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update store"})
			return
		}
	}

	writeJSON(w, http.StatusOK, storeDTO(&store))
}
