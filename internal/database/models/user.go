package models

// Role is the closed set of platform-level user roles.
type Role string

const (
	RolePlatformAdmin Role = "platform_admin"
	RoleStoreOwner    Role = "store_owner"
	RoleStoreStaff    Role = "store_staff"
)

func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleStoreOwner, RoleStoreStaff:
		return true
	}
	return false
}

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Role         Role   `gorm:"default:'store_staff'" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	OwnedStores []Store           `gorm:"foreignKey:OwnerID" json:"owned_stores,omitempty"`
	Memberships []StaffMembership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}

func (User) TableName() string {
	return "users"
}
