package access

import (
	"testing"

	"github.com/mvera/storedash/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermission(t *testing.T) {
	t.Run("accepts known permissions", func(t *testing.T) {
		for p := range knownPermissions {
			parsed, err := ParsePermission(string(p))
			require.NoError(t, err)
			assert.Equal(t, p, parsed)
		}
	})

	t.Run("rejects unknown permission", func(t *testing.T) {
		_, err := ParsePermission("categories.publish")
		assert.ErrorIs(t, err, ErrUnknownPermission)
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePermission("")
		assert.ErrorIs(t, err, ErrUnknownPermission)
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := ParsePermission("Categories.View")
		assert.ErrorIs(t, err, ErrUnknownPermission)
	})
}

func TestValidatePermissions(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		out, err := ValidatePermissions([]string{"orders.view", "categories.view"})
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"orders.view", "categories.view"}, out)
	})

	t.Run("fails on a single unknown entry", func(t *testing.T) {
		_, err := ValidatePermissions([]string{"categories.view", "bogus.perm"})
		assert.ErrorIs(t, err, ErrUnknownPermission)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		out, err := ValidatePermissions(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestGrant_Allows(t *testing.T) {
	t.Run("unrestricted grant allows everything", func(t *testing.T) {
		g := &Grant{Unrestricted: true}
		for p := range knownPermissions {
			assert.True(t, g.Allows(p), "permission: %s", p)
		}
	})

	t.Run("owner grant allows everything", func(t *testing.T) {
		g := &Grant{IsOwner: true}
		for p := range knownPermissions {
			assert.True(t, g.Allows(p), "permission: %s", p)
		}
	})

	t.Run("staff grant requires literal membership", func(t *testing.T) {
		g := &Grant{
			IsStaff:     true,
			Permissions: models.StringList{"categories.view", "orders.view"},
		}

		assert.True(t, g.Allows(PermCategoriesView))
		assert.True(t, g.Allows(PermOrdersView))
		assert.False(t, g.Allows(PermCategoriesUpdate))
		assert.False(t, g.Allows(PermStaffManage))
	})

	t.Run("update does not imply view", func(t *testing.T) {
		g := &Grant{
			IsStaff:     true,
			Permissions: models.StringList{"categories.update"},
		}

		assert.True(t, g.Allows(PermCategoriesUpdate))
		assert.False(t, g.Allows(PermCategoriesView))
	})

	t.Run("empty staff grant allows nothing", func(t *testing.T) {
		g := &Grant{IsStaff: true}
		for p := range knownPermissions {
			assert.False(t, g.Allows(p), "permission: %s", p)
		}
	})
}

func TestGrant_Require(t *testing.T) {
	g := &Grant{
		IsStaff:     true,
		Permissions: models.StringList{"categories.view"},
	}

	t.Run("passes when the grant covers the permission", func(t *testing.T) {
		assert.NoError(t, g.Require(PermCategoriesView))
	})

	t.Run("names the missing permission", func(t *testing.T) {
		err := g.Require(PermCategoriesDelete)
		require.Error(t, err)

		var denied *PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, PermCategoriesDelete, denied.Permission)
		assert.Contains(t, err.Error(), "categories.delete")
	})
}
