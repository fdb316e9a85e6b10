package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeStoreProvision = "store:provision"
	TypePendingSweep   = "store:sweep_pending"
)

// StoreProvisionPayload seeds a freshly registered store.
type StoreProvisionPayload struct {
	StoreID uuid.UUID `json:"store_id"`
	OwnerID uuid.UUID `json:"owner_id"`
}

func NewStoreProvisionTask(payload StoreProvisionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStoreProvision, data), nil
}

// PendingSweepPayload suspends stores stuck in pending beyond the cutoff.
type PendingSweepPayload struct {
	CutoffHours int `json:"cutoff_hours"`
}

func NewPendingSweepTask(payload PendingSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePendingSweep, data, asynq.Queue("low")), nil
}
