package catalog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
)

// BuildTree materializes a rooted forest from a store's flat category
// list. Pure function of its input: no queries, deterministic output,
// every input node appears exactly once. Roots are categories with no
// parent (or a parent missing from the list); each level is ordered by
// (sort_order, name).
func BuildTree(flat []models.Category) []models.Category {
	present := make(map[uuid.UUID]bool, len(flat))
	for _, c := range flat {
		present[c.ID] = true
	}

	byParent := make(map[uuid.UUID][]models.Category)
	var roots []models.Category
	for _, c := range flat {
		c.Children = nil
		if c.ParentID == nil || !present[*c.ParentID] {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var attach func(nodes []models.Category) []models.Category
	attach = func(nodes []models.Category) []models.Category {
		sortLevel(nodes)
		for i := range nodes {
			if children := byParent[nodes[i].ID]; len(children) > 0 {
				nodes[i].Children = attach(children)
			}
		}
		return nodes
	}

	return attach(roots)
}

func sortLevel(nodes []models.Category) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
}
