package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStore(t *testing.T) {
	storeID := uuid.New()
	otherStoreID := uuid.New()

	t.Run("platform admin gets unrestricted grant for any store", func(t *testing.T) {
		identity := &Identity{
			UserID: uuid.New(),
			Role:   models.RolePlatformAdmin,
		}

		grant, err := CheckStore(identity, storeID)
		require.NoError(t, err)
		assert.True(t, grant.Unrestricted)
		assert.False(t, grant.IsOwner)
		assert.False(t, grant.IsStaff)
		assert.Equal(t, storeID, grant.StoreID)
	})

	t.Run("owner gets owner grant for own store", func(t *testing.T) {
		identity := &Identity{
			UserID:      uuid.New(),
			Role:        models.RoleStoreOwner,
			OwnedStores: []StoreRef{{ID: storeID}},
		}

		grant, err := CheckStore(identity, storeID)
		require.NoError(t, err)
		assert.True(t, grant.IsOwner)
		assert.False(t, grant.Unrestricted)
		assert.False(t, grant.IsStaff)
	})

	t.Run("owner is denied on a store they do not own", func(t *testing.T) {
		identity := &Identity{
			UserID:      uuid.New(),
			Role:        models.RoleStoreOwner,
			OwnedStores: []StoreRef{{ID: storeID}},
		}

		_, err := CheckStore(identity, otherStoreID)
		assert.Equal(t, ErrStoreAccessDenied, err)
	})

	t.Run("active staff gets staff grant with membership permissions", func(t *testing.T) {
		identity := &Identity{
			UserID: uuid.New(),
			Role:   models.RoleStoreStaff,
			Memberships: []Membership{{
				StoreID:     storeID,
				Permissions: models.StringList{"categories.view"},
				IsActive:    true,
			}},
		}

		grant, err := CheckStore(identity, storeID)
		require.NoError(t, err)
		assert.True(t, grant.IsStaff)
		assert.False(t, grant.IsOwner)
		assert.False(t, grant.Unrestricted)
		assert.Equal(t, models.StringList{"categories.view"}, grant.Permissions)
	})

	t.Run("inactive membership is denied", func(t *testing.T) {
		identity := &Identity{
			UserID: uuid.New(),
			Role:   models.RoleStoreStaff,
			Memberships: []Membership{{
				StoreID:     storeID,
				Permissions: models.StringList{"categories.view"},
				IsActive:    false,
			}},
		}

		_, err := CheckStore(identity, storeID)
		assert.Equal(t, ErrStoreAccessDenied, err)
	})

	t.Run("staff is denied on an unrelated store", func(t *testing.T) {
		identity := &Identity{
			UserID: uuid.New(),
			Role:   models.RoleStoreStaff,
			Memberships: []Membership{{
				StoreID:  storeID,
				IsActive: true,
			}},
		}

		_, err := CheckStore(identity, otherStoreID)
		assert.Equal(t, ErrStoreAccessDenied, err)
	})

	t.Run("no relationships at all is denied", func(t *testing.T) {
		identity := &Identity{
			UserID: uuid.New(),
			Role:   models.RoleStoreStaff,
		}

		_, err := CheckStore(identity, storeID)
		assert.Equal(t, ErrStoreAccessDenied, err)
	})

	t.Run("ownership wins over a staff membership for the same store", func(t *testing.T) {
		identity := &Identity{
			UserID:      uuid.New(),
			Role:        models.RoleStoreOwner,
			OwnedStores: []StoreRef{{ID: storeID}},
			Memberships: []Membership{{
				StoreID:     storeID,
				Permissions: models.StringList{"categories.view"},
				IsActive:    true,
			}},
		}

		grant, err := CheckStore(identity, storeID)
		require.NoError(t, err)
		assert.True(t, grant.IsOwner)
		assert.False(t, grant.IsStaff)
	})
}
