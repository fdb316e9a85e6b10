package access

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[uuid.UUID]*models.User
}

func (d *fakeDirectory) LoadUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return u, nil
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	storeID := uuid.New()
	staffStoreID := uuid.New()

	user := &models.User{
		Base:     models.Base{ID: uuid.New()},
		Email:    "owner@example.com",
		Name:     "Owner",
		Role:     models.RoleStoreOwner,
		IsActive: true,
		OwnedStores: []models.Store{{
			Base:   models.Base{ID: storeID},
			Slug:   "owned-store",
			Status: models.StoreStatusActive,
		}},
		Memberships: []models.StaffMembership{{
			StoreID:     staffStoreID,
			Permissions: models.StringList{"orders.view"},
			IsActive:    true,
			Store: &models.Store{
				Base:   models.Base{ID: staffStoreID},
				Slug:   "staffed-store",
				Status: models.StoreStatusActive,
			},
		}},
	}

	inactive := &models.User{
		Base:     models.Base{ID: uuid.New()},
		Email:    "gone@example.com",
		Role:     models.RoleStoreStaff,
		IsActive: false,
	}

	resolver := NewResolver(&fakeDirectory{users: map[uuid.UUID]*models.User{
		user.ID:     user,
		inactive.ID: inactive,
	}})

	t.Run("resolves identity with store relationships", func(t *testing.T) {
		identity, err := resolver.Resolve(ctx, user.ID)
		require.NoError(t, err)

		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, models.RoleStoreOwner, identity.Role)

		require.Len(t, identity.OwnedStores, 1)
		assert.Equal(t, storeID, identity.OwnedStores[0].ID)
		assert.Equal(t, "owned-store", identity.OwnedStores[0].Slug)

		require.Len(t, identity.Memberships, 1)
		assert.Equal(t, staffStoreID, identity.Memberships[0].StoreID)
		assert.Equal(t, "staffed-store", identity.Memberships[0].StoreSlug)
		assert.Equal(t, models.StringList{"orders.view"}, identity.Memberships[0].Permissions)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, uuid.New())
		assert.Equal(t, ErrAccountNotFound, err)
	})

	t.Run("inactive user", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, inactive.ID)
		assert.Equal(t, ErrAccountInactive, err)
	})
}
