package catalog_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/catalog"
	"github.com/mvera/storedash/internal/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(name string, sortOrder int, parentID *uuid.UUID) models.Category {
	return models.Category{
		Base:      models.Base{ID: uuid.New()},
		Name:      name,
		SortOrder: sortOrder,
		ParentID:  parentID,
	}
}

func countNodes(nodes []models.Category) int {
	n := 0
	for _, node := range nodes {
		n += 1 + countNodes(node.Children)
	}
	return n
}

func TestBuildTree(t *testing.T) {
	t.Run("empty input yields empty forest", func(t *testing.T) {
		assert.Empty(t, catalog.BuildTree(nil))
		assert.Empty(t, catalog.BuildTree([]models.Category{}))
	})

	t.Run("builds nested forest", func(t *testing.T) {
		root := cat("Clothing", 1, nil)
		child := cat("Shirts", 1, &root.ID)
		grandchild := cat("T-Shirts", 1, &child.ID)
		other := cat("Accessories", 2, nil)

		tree := catalog.BuildTree([]models.Category{root, child, grandchild, other})

		require.Len(t, tree, 2)
		assert.Equal(t, "Clothing", tree[0].Name)
		require.Len(t, tree[0].Children, 1)
		assert.Equal(t, "Shirts", tree[0].Children[0].Name)
		require.Len(t, tree[0].Children[0].Children, 1)
		assert.Equal(t, "T-Shirts", tree[0].Children[0].Children[0].Name)
		assert.Equal(t, "Accessories", tree[1].Name)
	})

	t.Run("orders each level by sort order then name", func(t *testing.T) {
		tree := catalog.BuildTree([]models.Category{
			cat("Zebra", 1, nil),
			cat("Apple", 2, nil),
			cat("Mango", 1, nil),
		})

		require.Len(t, tree, 3)
		assert.Equal(t, "Mango", tree[0].Name)
		assert.Equal(t, "Zebra", tree[1].Name)
		assert.Equal(t, "Apple", tree[2].Name)
	})

	t.Run("every input node appears exactly once", func(t *testing.T) {
		root := cat("Root", 1, nil)
		flat := []models.Category{root}
		for i := 0; i < 10; i++ {
			flat = append(flat, cat("Child", i, &root.ID))
		}

		tree := catalog.BuildTree(flat)
		assert.Equal(t, len(flat), countNodes(tree))
	})

	t.Run("node with missing parent becomes a root", func(t *testing.T) {
		missing := uuid.New()
		orphan := cat("Orphan", 1, &missing)

		tree := catalog.BuildTree([]models.Category{orphan})
		require.Len(t, tree, 1)
		assert.Equal(t, "Orphan", tree[0].Name)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		root := cat("Root", 1, nil)
		child := cat("Child", 1, &root.ID)
		flat := []models.Category{root, child}

		_ = catalog.BuildTree(flat)

		assert.Equal(t, "Root", flat[0].Name)
		assert.Nil(t, flat[0].Children)
		assert.Equal(t, "Child", flat[1].Name)
	})
}
