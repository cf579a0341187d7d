package models

import (
	"fmt"
	"time"
)

// QueueKind identifies one of the three sync queues. It is a closed set:
// code switching on it must handle every constant.
type QueueKind string

const (
	QueueCreate QueueKind = "create"
	QueueUpdate QueueKind = "update"
	QueueDelete QueueKind = "delete"
)

// QueueKinds returns all queue kinds in drain order.
func QueueKinds() []QueueKind {
	return []QueueKind{QueueCreate, QueueUpdate, QueueDelete}
}

// Valid reports whether k is a known queue kind.
func (k QueueKind) Valid() bool {
	switch k {
	case QueueCreate, QueueUpdate, QueueDelete:
		return true
	}
	return false
}

// SyncQueueEntry is one persisted queue entry. ItemID is a plan's local id
// for create/update, and the decimal remote id for delete. Seq preserves
// FIFO insertion order; EnqueuedAt is the first-enqueued time and is never
// refreshed by duplicate enqueues.
type SyncQueueEntry struct {
	Kind       QueueKind `gorm:"primaryKey;size:10" json:"kind"`
	ItemID     string    `gorm:"primaryKey;size:64" json:"item_id"`
	Seq        int64     `gorm:"index" json:"seq"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// TableName specifies the table name for GORM.
func (SyncQueueEntry) TableName() string {
	return "sync_queue_entries"
}

// SyncQueues is a point-in-time snapshot of all three queues, with the
// parallel id -> enqueue-time map. Every queued id has a timestamp; the
// store verifies that pairing on load.
type SyncQueues struct {
	Create     []string             `json:"create"`
	Update     []string             `json:"update"`
	Delete     []string             `json:"delete"`
	Timestamps map[string]time.Time `json:"timestamps"`
}

// IDs returns the snapshot's id list for the given kind.
func (q SyncQueues) IDs(kind QueueKind) []string {
	switch kind {
	case QueueCreate:
		return q.Create
	case QueueUpdate:
		return q.Update
	case QueueDelete:
		return q.Delete
	}
	return nil
}

// Validate checks the list/timestamp pairing invariant.
func (q SyncQueues) Validate() error {
	for _, kind := range QueueKinds() {
		for _, id := range q.IDs(kind) {
			if ts, ok := q.Timestamps[id]; !ok || ts.IsZero() {
				return fmt.Errorf("queue %s: id %s has no enqueue timestamp", kind, id)
			}
		}
	}
	return nil
}
