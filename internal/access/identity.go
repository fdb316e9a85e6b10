package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")
)

// StoreRef is the slice of store state an authorization decision needs.
type StoreRef struct {
	ID     uuid.UUID          `json:"id"`
	Slug   string             `json:"slug"`
	Status models.StoreStatus `json:"status"`
}

// Membership is a staff relationship as seen by the guard.
type Membership struct {
	StoreID     uuid.UUID          `json:"store_id"`
	StoreSlug   string             `json:"store_slug"`
	StoreStatus models.StoreStatus `json:"store_status"`
	Permissions models.StringList  `json:"permissions"`
	IsActive    bool               `json:"is_active"`
}

// Identity is the acting user plus every store relationship they hold.
// It is resolved from current database state on every authenticated
// request; there is no session cache, so permission changes propagate
// on the very next call.
type Identity struct {
	UserID      uuid.UUID    `json:"user_id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        models.Role  `json:"role"`
	OwnedStores []StoreRef   `json:"owned_stores"`
	Memberships []Membership `json:"memberships"`
}

func (id *Identity) OwnsStore(storeID uuid.UUID) bool {
	for _, s := range id.OwnedStores {
		if s.ID == storeID {
			return true
		}
	}
	return false
}

func (id *Identity) MembershipFor(storeID uuid.UUID) (*Membership, bool) {
	for i := range id.Memberships {
		if id.Memberships[i].StoreID == storeID {
			return &id.Memberships[i], true
		}
	}
	return nil, false
}

// Directory loads user rows with their store relationships. Injected so
// tests can substitute a fake without touching process-wide state.
type Directory interface {
	LoadUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) LoadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).
		Preload("OwnedStores").
		Preload("Memberships.Store").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Resolver turns a verified user id into an Identity.
type Resolver struct {
	dir Directory
}

func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir}
}

func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (*Identity, error) {
	user, err := r.dir.LoadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	identity := &Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}

	for _, s := range user.OwnedStores {
		identity.OwnedStores = append(identity.OwnedStores, StoreRef{
			ID:     s.ID,
			Slug:   s.Slug,
			Status: s.Status,
		})
	}

	for _, m := range user.Memberships {
		ref := Membership{
			StoreID:     m.StoreID,
			Permissions: m.Permissions,
			IsActive:    m.IsActive,
		}
		if m.Store != nil {
			ref.StoreSlug = m.Store.Slug
			ref.StoreStatus = m.Store.Status
		}
		identity.Memberships = append(identity.Memberships, ref)
	}

	return identity, nil
}
