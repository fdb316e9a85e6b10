package models

import "github.com/google/uuid"

// StoreStatus is the closed set of store lifecycle states.
type StoreStatus string

const (
	StoreStatusPending   StoreStatus = "pending"
	StoreStatusActive    StoreStatus = "active"
	StoreStatusSuspended StoreStatus = "suspended"
)

func (s StoreStatus) Valid() bool {
	switch s {
	case StoreStatusPending, StoreStatusActive, StoreStatusSuspended:
		return true
	}
	return false
}

// Store is the tenant boundary. A store is exclusively owned by one user
// and shared with zero or more staff users through StaffMembership rows.
type Store struct {
	Base
	Name     string      `gorm:"not null" json:"name"`
	Slug     string      `gorm:"uniqueIndex;not null" json:"slug"`
	Status   StoreStatus `gorm:"default:'pending'" json:"status"`
	IsActive bool        `gorm:"default:true" json:"is_active"`
	OwnerID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"owner_id"`

	// Relationships
	Owner      *User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Staff      []StaffMembership `gorm:"foreignKey:StoreID" json:"-"`
	Categories []Category        `gorm:"foreignKey:StoreID" json:"-"`
	Products   []Product         `gorm:"foreignKey:StoreID" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

// StaffMembership binds one user to one store with an ordered set of
// permission strings. Unique per (store, user) pair.
type StaffMembership struct {
	Base
	StoreID     uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_store_user;not null" json:"store_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_store_user;not null" json:"user_id"`
	Permissions StringList `gorm:"type:text" json:"permissions"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`

	// Encrypted one-time credential for staff provisioned by invite.
	// Cleared after first login.
	InviteCredential string `json:"-"`

	// Relationships
	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (StaffMembership) TableName() string {
	return "staff_memberships"
}
