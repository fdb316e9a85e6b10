package dto

import "github.com/mvera/storedash/internal/api/validation"

// UpdateStoreRequest deliberately has no slug field: the slug is
// assigned once at creation and never changes.
type UpdateStoreRequest struct {
	Name     string `json:"name,omitempty"`
	Status   string `json:"status,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r UpdateStoreRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status != "" {
		switch r.Status {
		case "pending", "active", "suspended":
		default:
			errors["status"] = "Status must be one of: pending, active, suspended"
		}
	}

	return errors
}

type InviteStaffRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name,omitempty"`
	Permissions []string `json:"permissions"`
}

func (r InviteStaffRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email is not valid"
	}

	return errors
}

type UpdateStaffRequest struct {
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type StaffDTO struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	IsActive    bool     `json:"is_active"`
	// One-time credential for freshly provisioned staff, returned only
	// in the invite response.
	TempPassword string `json:"temp_password,omitempty"`
}
