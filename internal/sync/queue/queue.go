// Package queue manages the three persisted sync queues (create, update,
// delete). Queue state lives in the same store as the plans themselves, so
// a restart resumes whatever work was pending.
package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/internal/models"
)

// Manager is the queue façade used by the sync engine. Enqueue is
// idempotent: re-adding a queued id is a no-op and does not refresh its
// first-enqueued timestamp.
type Manager struct {
	mu    sync.Mutex
	store *db.DB
}

// NewManager creates a manager over the given store and verifies the
// persisted queue state.
func NewManager(store *db.DB) (*Manager, error) {
	if err := store.VerifyQueueIntegrity(); err != nil {
		return nil, fmt.Errorf("restore sync queues: %w", err)
	}
	return &Manager{store: store}, nil
}

// Enqueue adds an id to the given queue.
func (m *Manager) Enqueue(kind models.QueueKind, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.EnqueueEntry(kind, itemID, time.Now())
}

// Dequeue removes an id from the given queue. Absent ids are a no-op.
func (m *Manager) Dequeue(kind models.QueueKind, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.DequeueEntry(kind, itemID)
}

// Move transfers an id from one queue to another, keeping a single entry.
func (m *Manager) Move(from, to models.QueueKind, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.DequeueEntry(from, itemID); err != nil {
		return err
	}
	return m.store.EnqueueEntry(to, itemID, time.Now())
}

// List returns the ids of one queue in FIFO order.
func (m *Manager) List(kind models.QueueKind) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := m.store.ListQueue(kind)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ItemID
	}
	return ids, nil
}

// Contains reports whether an id is queued under kind.
func (m *Manager) Contains(kind models.QueueKind, itemID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.QueueContains(kind, itemID)
}

// Snapshot returns a point-in-time view of all three queues with their
// enqueue timestamps.
func (m *Manager) Snapshot() (models.SyncQueues, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.QueueSnapshot()
}

// ClearPlan removes a plan's local id from the create and update queues.
// Used when a plan is deleted locally: there is nothing left to push.
func (m *Manager) ClearPlan(localID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.DequeueEntry(models.QueueCreate, localID); err != nil {
		return err
	}
	return m.store.DequeueEntry(models.QueueUpdate, localID)
}
