package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medjourney/plansync/internal/models"
)

// EnqueueEntry inserts a queue entry if it is not already present.
// Re-enqueueing an existing id is a no-op: the first-enqueued timestamp
// and position are preserved.
func (db *DB) EnqueueEntry(kind models.QueueKind, itemID string, at time.Time) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid queue kind %q", kind)
	}

	var maxSeq int64
	if err := db.Model(&models.SyncQueueEntry{}).
		Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
		return fmt.Errorf("next queue position: %w", err)
	}

	entry := models.SyncQueueEntry{
		Kind:       kind,
		ItemID:     itemID,
		Seq:        maxSeq + 1,
		EnqueuedAt: at,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// DequeueEntry removes a queue entry. Removing an absent entry is a no-op.
func (db *DB) DequeueEntry(kind models.QueueKind, itemID string) error {
	if !kind.Valid() {
		return fmt.Errorf("invalid queue kind %q", kind)
	}
	return db.Delete(&models.SyncQueueEntry{}, "kind = ? AND item_id = ?", kind, itemID).Error
}

// ListQueue returns the entries of one queue in FIFO order.
func (db *DB) ListQueue(kind models.QueueKind) ([]models.SyncQueueEntry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid queue kind %q", kind)
	}
	var entries []models.SyncQueueEntry
	err := db.Where("kind = ?", kind).Order("seq").Find(&entries).Error
	return entries, err
}

// QueueContains reports whether the given id is queued under kind.
func (db *DB) QueueContains(kind models.QueueKind, itemID string) (bool, error) {
	var entry models.SyncQueueEntry
	err := db.First(&entry, "kind = ? AND item_id = ?", kind, itemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// QueueSnapshot builds a point-in-time snapshot of all three queues.
func (db *DB) QueueSnapshot() (models.SyncQueues, error) {
	snap := models.SyncQueues{
		Create:     []string{},
		Update:     []string{},
		Delete:     []string{},
		Timestamps: make(map[string]time.Time),
	}

	var entries []models.SyncQueueEntry
	if err := db.Order("seq").Find(&entries).Error; err != nil {
		return snap, fmt.Errorf("load queue entries: %w", err)
	}

	for _, e := range entries {
		switch e.Kind {
		case models.QueueCreate:
			snap.Create = append(snap.Create, e.ItemID)
		case models.QueueUpdate:
			snap.Update = append(snap.Update, e.ItemID)
		case models.QueueDelete:
			snap.Delete = append(snap.Delete, e.ItemID)
		}
		snap.Timestamps[e.ItemID] = e.EnqueuedAt
	}
	return snap, nil
}

// VerifyQueueIntegrity checks the persisted queues against their
// invariants: every entry carries an enqueue timestamp, and no id sits in
// both the create and update queues.
func (db *DB) VerifyQueueIntegrity() error {
	var missing int64
	if err := db.Model(&models.SyncQueueEntry{}).
		Where("enqueued_at IS NULL OR enqueued_at = ?", time.Time{}).
		Count(&missing).Error; err != nil {
		return fmt.Errorf("check queue timestamps: %w", err)
	}
	if missing > 0 {
		return fmt.Errorf("%d queue entries have no enqueue timestamp", missing)
	}

	var dupes []string
	err := db.Model(&models.SyncQueueEntry{}).
		Where("kind IN ?", []models.QueueKind{models.QueueCreate, models.QueueUpdate}).
		Group("item_id").
		Having("COUNT(DISTINCT kind) > 1").
		Pluck("item_id", &dupes).Error
	if err != nil {
		return fmt.Errorf("check create/update exclusivity: %w", err)
	}
	if len(dupes) > 0 {
		return fmt.Errorf("ids queued for both create and update: %v", dupes)
	}

	return nil
}
