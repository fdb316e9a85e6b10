package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/access"
	"github.com/mvera/storedash/internal/api/dto"
	"github.com/mvera/storedash/internal/api/middleware"
	"github.com/mvera/storedash/internal/auth"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/mvera/storedash/pkg/crypto"
	"gorm.io/gorm"
)

// Length of one-time credentials for invite-provisioned staff.
const tempPasswordLength = 16

type StaffHandler struct {
	db        *gorm.DB
	encryptor *crypto.Encryptor
}

func NewStaffHandler(db *gorm.DB, encryptor *crypto.Encryptor) *StaffHandler {
	return &StaffHandler{db: db, encryptor: encryptor}
}

// List handles GET /api/v1/stores/{storeID}/staff
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var memberships []models.StaffMembership
	if err := h.db.WithContext(r.Context()).
		Preload("User").
		Where("store_id = ?", grant.StoreID).
		Find(&memberships).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list staff"})
		return
	}

	out := make([]dto.StaffDTO, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, staffDTO(&m, ""))
	}
	writeJSON(w, http.StatusOK, out)
}

// Invite handles POST /api/v1/stores/{storeID}/staff. An unknown email
// provisions a new user with a one-time credential, returned exactly
// once in this response and kept encrypted at rest.
func (h *StaffHandler) Invite(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	var req dto.InviteStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	perms, err := access.ValidatePermissions(req.Permissions)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var store models.Store
	if err := h.db.WithContext(r.Context()).First(&store, "id = ?", grant.StoreID).Error; err != nil {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Store not found"})
		return
	}

	tempPassword := ""
	passwordHash := ""
	provision := false
	var user models.User
	err = h.db.WithContext(r.Context()).Where("email = ?", req.Email).First(&user).Error
	switch {
	case err == nil:
		if user.ID == store.OwnerID {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Store owner cannot be invited as staff"})
			return
		}
		var existing models.StaffMembership
		if err := h.db.WithContext(r.Context()).
			Where("store_id = ? AND user_id = ?", grant.StoreID, user.ID).
			First(&existing).Error; err == nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "User is already staff of this store"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		provision = true
		tempPassword, err = crypto.GenerateRandomString(tempPasswordLength)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to provision staff user"})
			return
		}
		passwordHash, err = auth.HashPassword(tempPassword)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to provision staff user"})
			return
		}
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to look up user"})
		return
	}

	membership := models.StaffMembership{
		StoreID:     grant.StoreID,
		Permissions: perms,
		IsActive:    true,
	}
	if provision {
		encrypted, err := h.encryptor.EncryptString(tempPassword)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to store invite credential"})
			return
		}
		membership.InviteCredential = encrypted
	}

	// User provisioning and membership creation commit together: a failed
	// membership insert must not leave an orphan account behind.
	err = h.db.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if provision {
			user = models.User{
				Email:        req.Email,
				Name:         req.Name,
				PasswordHash: passwordHash,
				Role:         models.RoleStoreStaff,
				IsActive:     true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		}
		membership.UserID = user.ID
		return tx.Create(&membership).Error
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create staff membership"})
		return
	}

	membership.User = &user
	writeJSON(w, http.StatusCreated, staffDTO(&membership, tempPassword))
}

// Update handles PUT /api/v1/stores/{storeID}/staff/{userID}
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var req dto.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var membership models.StaffMembership
	if err := h.db.WithContext(r.Context()).
		Preload("User").
		Where("store_id = ? AND user_id = ?", grant.StoreID, userID).
		First(&membership).Error; err != nil {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Staff membership not found"})
		return
	}

	if req.Permissions != nil {
		perms, err := access.ValidatePermissions(req.Permissions)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		membership.Permissions = perms
	}
	if req.IsActive != nil {
		membership.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(r.Context()).Save(&membership).Error; err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update staff membership"})
		return
	}

	writeJSON(w, http.StatusOK, staffDTO(&membership, ""))
}

// Remove handles DELETE /api/v1/stores/{storeID}/staff/{userID}
func (h *StaffHandler) Remove(w http.ResponseWriter, r *http.Request) {
	grant := middleware.GetGrant(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	// Hard delete so the user can be re-invited: the (store, user)
	// unique index spans soft-deleted rows.
	res := h.db.WithContext(r.Context()).Unscoped().
		Where("store_id = ? AND user_id = ?", grant.StoreID, userID).
		Delete(&models.StaffMembership{})
	if res.Error != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to remove staff membership"})
		return
	}
	if res.RowsAffected == 0 {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Staff membership not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Staff membership removed"})
}

func staffDTO(m *models.StaffMembership, tempPassword string) dto.StaffDTO {
	out := dto.StaffDTO{
		UserID:       m.UserID.String(),
		Permissions:  m.Permissions,
		IsActive:     m.IsActive,
		TempPassword: tempPassword,
	}
	if m.User != nil {
		out.Email = m.User.Email
		out.Name = m.User.Name
	}
	return out
}
