package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/database/models"
)

// BulkResult reports the per-row outcome of a batch operation. Batches
// are best-effort, not transactions: a partial failure leaves the
// succeeded rows applied.
type BulkResult struct {
	Succeeded []uuid.UUID   `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

type ReorderItem struct {
	ID        uuid.UUID `json:"id"`
	SortOrder int       `json:"sort_order"`
}

// Reorder applies a batch of (id, sort_order) pairs. Every write is
// re-filtered by store id so guessed ids cannot touch another tenant's
// rows.
func (s *Service) Reorder(ctx context.Context, storeID uuid.UUID, items []ReorderItem) (*BulkResult, error) {
	unlock := s.locks.lock(storeID)
	defer unlock()

	result := &BulkResult{}
	for _, item := range items {
		res := s.db.WithContext(ctx).Model(&models.Category{}).
			Where("id = ? AND store_id = ?", item.ID, storeID).
			Update("sort_order", item.SortOrder)
		switch {
		case res.Error != nil:
			result.Failed = append(result.Failed, BulkFailure{ID: item.ID, Reason: res.Error.Error()})
		case res.RowsAffected == 0:
			result.Failed = append(result.Failed, BulkFailure{ID: item.ID, Reason: ErrCategoryNotFound.Error()})
		default:
			result.Succeeded = append(result.Succeeded, item.ID)
		}
	}
	return result, nil
}

// BulkDelete deletes a batch of categories, applying the same guards as
// single deletion to every row.
func (s *Service) BulkDelete(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (*BulkResult, error) {
	unlock := s.locks.lock(storeID)
	defer unlock()

	result := &BulkResult{}
	for _, id := range ids {
		if err := s.deleteOne(ctx, storeID, id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}
