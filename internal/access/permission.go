package access

import (
	"errors"
	"fmt"

	"github.com/mvera/storedash/internal/database/models"
)

var ErrUnknownPermission = errors.New("unknown permission")

// Permission is a namespaced capability key checked by exact match only:
// categories.update does not imply categories.view.
type Permission string

const (
	PermCategoriesView   Permission = "categories.view"
	PermCategoriesCreate Permission = "categories.create"
	PermCategoriesUpdate Permission = "categories.update"
	PermCategoriesDelete Permission = "categories.delete"
	PermProductsView     Permission = "products.view"
	PermProductsCreate   Permission = "products.create"
	PermProductsUpdate   Permission = "products.update"
	PermProductsDelete   Permission = "products.delete"
	PermOrdersView       Permission = "orders.view"
	PermOrdersUpdate     Permission = "orders.update"
	PermStaffManage      Permission = "staff.manage"
	PermStoreUpdate      Permission = "store.update"
)

var knownPermissions = map[Permission]struct{}{
	PermCategoriesView:   {},
	PermCategoriesCreate: {},
	PermCategoriesUpdate: {},
	PermCategoriesDelete: {},
	PermProductsView:     {},
	PermProductsCreate:   {},
	PermProductsUpdate:   {},
	PermProductsDelete:   {},
	PermOrdersView:       {},
	PermOrdersUpdate:     {},
	PermStaffManage:      {},
	PermStoreUpdate:      {},
}

// ParsePermission rejects unknown permission strings at the boundary
// instead of silently never matching them.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if _, ok := knownPermissions[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, s)
	}
	return p, nil
}

// ValidatePermissions parses a permission list, preserving order.
func ValidatePermissions(list []string) (models.StringList, error) {
	out := make(models.StringList, 0, len(list))
	for _, s := range list {
		p, err := ParsePermission(s)
		if err != nil {
			return nil, err
		}
		out = append(out, string(p))
	}
	return out, nil
}

// PermissionDeniedError names the missing permission so callers can
// present an actionable message.
type PermissionDeniedError struct {
	Permission Permission
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("missing permission %q", string(e.Permission))
}

// Allows reports whether the grant covers the permission. Owners and
// platform admins always pass; staff pass only on literal membership.
func (g *Grant) Allows(p Permission) bool {
	if g.Unrestricted || g.IsOwner {
		return true
	}
	return g.Permissions.Contains(string(p))
}

// Require returns a PermissionDeniedError if the grant lacks the
// permission.
func (g *Grant) Require(p Permission) error {
	if !g.Allows(p) {
		return &PermissionDeniedError{Permission: p}
	}
	return nil
}
