package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/mvera/storedash/internal/catalog"
	"github.com/mvera/storedash/internal/database/models"
	"gorm.io/gorm"
)

// starterCategories is the seed set provisioned for every new store.
var starterCategories = []string{"Featured", "New Arrivals", "Sale"}

type Handler struct {
	db      *gorm.DB
	logger  *slog.Logger
	catalog *catalog.Service
}

func NewHandler(db *gorm.DB, logger *slog.Logger) *Handler {
	return &Handler{
		db:      db,
		logger:  logger,
		catalog: catalog.NewService(db, logger),
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeStoreProvision, h.HandleStoreProvision)
	mux.HandleFunc(TypePendingSweep, h.HandlePendingSweep)
}

// HandleStoreProvision seeds a starter category set for a new store.
// Idempotent: a store that already has categories is left alone, so a
// retried task cannot duplicate the seed.
func (h *Handler) HandleStoreProvision(ctx context.Context, t *asynq.Task) error {
	var payload StoreProvisionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	h.logger.Info("provisioning store", "store_id", payload.StoreID)

	var store models.Store
	if err := h.db.WithContext(ctx).First(&store, "id = ?", payload.StoreID).Error; err != nil {
		return fmt.Errorf("loading store: %w", err)
	}

	var existing int64
	if err := h.db.WithContext(ctx).Model(&models.Category{}).
		Where("store_id = ?", payload.StoreID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		h.logger.Info("store already provisioned", "store_id", payload.StoreID)
		return nil
	}

	for i, name := range starterCategories {
		if _, err := h.catalog.Create(ctx, payload.StoreID, catalog.CategoryInput{
			Name:      name,
			SortOrder: i,
		}); err != nil {
			return fmt.Errorf("seeding category %q: %w", name, err)
		}
	}

	return h.db.WithContext(ctx).Model(&store).
		Update("status", models.StoreStatusActive).Error
}

// HandlePendingSweep suspends stores that never finished onboarding.
func (h *Handler) HandlePendingSweep(ctx context.Context, t *asynq.Task) error {
	var payload PendingSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.CutoffHours <= 0 {
		payload.CutoffHours = 72
	}

	cutoff := time.Now().Add(-time.Duration(payload.CutoffHours) * time.Hour)

	res := h.db.WithContext(ctx).Model(&models.Store{}).
		Where("status = ? AND created_at < ?", models.StoreStatusPending, cutoff).
		Update("status", models.StoreStatusSuspended)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected > 0 {
		h.logger.Info("suspended stale pending stores", "count", res.RowsAffected)
	}
	return nil
}
