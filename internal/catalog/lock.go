package catalog

import (
	"sync"

	"github.com/google/uuid"
)

// storeLocks serializes tree mutations per store. Without it, two
// concurrent reparents could both pass cycle validation against a stale
// snapshot and jointly introduce a cycle.
type storeLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newStoreLocks() *storeLocks {
	return &storeLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *storeLocks) lock(storeID uuid.UUID) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[storeID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[storeID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
