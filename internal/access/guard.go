package access

import (
	"errors"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
)

var ErrStoreAccessDenied = errors.New("no access to this store")

// Grant records how an identity is allowed to act on a store.
type Grant struct {
	StoreID      uuid.UUID
	IsOwner      bool
	IsStaff      bool
	Unrestricted bool // platform admins bypass permission checks
	Permissions  models.StringList
}

// CheckStore decides whether the identity may act on the target store at
// all. Decision order: platform admin, then ownership, then an active
// staff membership; anything else is denied.
func CheckStore(identity *Identity, storeID uuid.UUID) (*Grant, error) {
	if identity.Role == models.RolePlatformAdmin {
		return &Grant{StoreID: storeID, Unrestricted: true}, nil
	}

	if identity.OwnsStore(storeID) {
		return &Grant{StoreID: storeID, IsOwner: true}, nil
	}

	if m, ok := identity.MembershipFor(storeID); ok && m.IsActive {
		return &Grant{
			StoreID:     storeID,
			IsStaff:     true,
			Permissions: m.Permissions,
		}, nil
	}

	return nil, ErrStoreAccessDenied
}
