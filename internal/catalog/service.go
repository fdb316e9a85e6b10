package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/mvera/storedash/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidParent    = errors.New("parent category does not belong to this store")
	ErrCyclicParent     = errors.New("parent assignment would create a cycle")
	ErrHasChildren      = errors.New("category still has child categories")
	ErrHasProducts      = errors.New("category still has products attached")
	ErrSlugExhausted    = errors.New("could not assign a unique slug")
)

// Attempts before giving up on slug collision resolution. Each attempt
// uses a fresh random suffix, so exhaustion means something is wrong
// with the database, not the input.
const maxSlugAttempts = 5

// Service maintains the per-store category tree: slug assignment,
// parent and cycle validation, deletion guards, and batch operations.
// Mutations for a store serialize on that store's lock so two concurrent
// reparents cannot both pass cycle validation against a stale snapshot.
type Service struct {
	db     *gorm.DB
	locks  *storeLocks
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		locks:  newStoreLocks(),
		logger: logger,
	}
}

type CategoryInput struct {
	Name      string
	ParentID  *uuid.UUID
	SortOrder int
	IsActive  *bool
	ImageURL  string
}

// List returns the store's flat category list ordered by
// (sort_order, name) plus the materialized forest.
func (s *Service) List(ctx context.Context, storeID uuid.UUID) ([]models.Category, []models.Category, error) {
	var flat []models.Category
	if err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("sort_order asc, name asc").
		Find(&flat).Error; err != nil {
		return nil, nil, err
	}
	return flat, BuildTree(flat), nil
}

// Get returns one category scoped to the store.
func (s *Service) Get(ctx context.Context, storeID, id uuid.UUID) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (s *Service) Create(ctx context.Context, storeID uuid.UUID, input CategoryInput) (*models.Category, error) {
	unlock := s.locks.lock(storeID)
	defer unlock()

	if input.ParentID != nil {
		if err := s.validateParent(ctx, storeID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	slug, err := s.uniqueSlug(ctx, storeID, input.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	cat := models.Category{
		StoreID:   storeID,
		Name:      input.Name,
		Slug:      slug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
		IsActive:  active,
		ImageURL:  input.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update replaces name, parent, sort order, active flag and image of a
// category. A nil ParentID moves the category to the root. The slug is
// reassigned only when the name changes.
func (s *Service) Update(ctx context.Context, storeID, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	unlock := s.locks.lock(storeID)
	defer unlock()

	cat, err := s.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrCyclicParent
		}
		if err := s.validateParent(ctx, storeID, *input.ParentID); err != nil {
			return nil, err
		}
		cycle, err := s.wouldCycle(ctx, storeID, id, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, ErrCyclicParent
		}
	}

	if input.Name != cat.Name {
		slug, err := s.uniqueSlug(ctx, storeID, input.Name, cat.ID)
		if err != nil {
			return nil, err
		}
		cat.Name = input.Name
		cat.Slug = slug
	}

	cat.ParentID = input.ParentID
	cat.SortOrder = input.SortOrder
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}
	cat.ImageURL = input.ImageURL

	if err := s.db.WithContext(ctx).Save(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

// Delete refuses to remove a category that still has children or
// attached products. Deletion never cascades.
func (s *Service) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	unlock := s.locks.lock(storeID)
	defer unlock()

	return s.deleteOne(ctx, storeID, id)
}

func (s *Service) deleteOne(ctx context.Context, storeID, id uuid.UUID) error {
	if _, err := s.Get(ctx, storeID, id); err != nil {
		return err
	}

	var children int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("store_id = ? AND parent_id = ?", storeID, id).
		Count(&children).Error; err != nil {
		return err
	}
	if children > 0 {
		return ErrHasChildren
	}

	var products int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("store_id = ? AND category_id = ?", storeID, id).
		Count(&products).Error; err != nil {
		return err
	}
	if products > 0 {
		return ErrHasProducts
	}

	// Hard delete: the (store, slug) unique index spans all rows, so a
	// soft-deleted category would block re-creating the same name.
	return s.db.WithContext(ctx).Unscoped().
		Where("store_id = ?", storeID).
		Delete(&models.Category{}, "id = ?", id).Error
}

// validateParent requires the candidate parent to be a category of the
// same store.
func (s *Service) validateParent(ctx context.Context, storeID, parentID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND store_id = ?", parentID, storeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidParent
	}
	return nil
}

// wouldCycle reports whether making newParent the parent of id creates a
// cycle, i.e. whether newParent sits in id's descendant subtree. One
// store-scoped query builds an adjacency map; the walk is an iterative
// BFS with a visited set, bounded by the store's category count.
func (s *Service) wouldCycle(ctx context.Context, storeID, id, newParent uuid.UUID) (bool, error) {
	type row struct {
		ID       uuid.UUID
		ParentID *uuid.UUID
	}
	var rows []row
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Select("id", "parent_id").
		Where("store_id = ?", storeID).
		Find(&rows).Error; err != nil {
		return false, err
	}

	children := make(map[uuid.UUID][]uuid.UUID, len(rows))
	for _, r := range rows {
		if r.ParentID != nil {
			children[*r.ParentID] = append(children[*r.ParentID], r.ID)
		}
	}

	visited := map[uuid.UUID]bool{id: true}
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if child == newParent {
				return true, nil
			}
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}
	return false, nil
}

// uniqueSlug assigns a slug unique within the store, suffixing with a
// fresh random token on each collision. A non-nil exclude id leaves the
// category being renamed out of the collision count so renaming to a
// name that slugs to its current slug keeps it unsuffixed.
func (s *Service) uniqueSlug(ctx context.Context, storeID uuid.UUID, name string, exclude uuid.UUID) (string, error) {
	base := util.Slugify(name)
	if base == "" {
		base = "category"
	}

	candidate := base
	for i := 0; i < maxSlugAttempts; i++ {
		query := s.db.WithContext(ctx).Model(&models.Category{}).
			Where("store_id = ? AND slug = ?", storeID, candidate)
		if exclude != uuid.Nil {
			query = query.Where("id <> ?", exclude)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + util.SlugSuffix()
	}
	return "", ErrSlugExhausted
}
