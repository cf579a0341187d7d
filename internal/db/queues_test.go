package db

import (
	"testing"
	"time"

	"github.com/medjourney/plansync/internal/models"
)

func TestEnqueueDedup(t *testing.T) {
	db := testDB(t)

	first := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := db.EnqueueEntry(models.QueueCreate, "p1", first); err != nil {
		t.Fatalf("EnqueueEntry() error = %v", err)
	}
	// Re-enqueueing must neither duplicate nor refresh the timestamp
	if err := db.EnqueueEntry(models.QueueCreate, "p1", time.Now()); err != nil {
		t.Fatalf("second EnqueueEntry() error = %v", err)
	}

	entries, err := db.ListQueue(models.QueueCreate)
	if err != nil {
		t.Fatalf("ListQueue() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !entries[0].EnqueuedAt.Equal(first) {
		t.Errorf("EnqueuedAt = %v, want first-enqueued time %v", entries[0].EnqueuedAt, first)
	}
}

func TestQueueFIFOOrder(t *testing.T) {
	db := testDB(t)

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := db.EnqueueEntry(models.QueueCreate, id, time.Now()); err != nil {
			t.Fatalf("EnqueueEntry(%s) error = %v", id, err)
		}
	}

	entries, err := db.ListQueue(models.QueueCreate)
	if err != nil {
		t.Fatalf("ListQueue() error = %v", err)
	}
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.ItemID
	}
	want := []string{"p1", "p2", "p3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue order = %v, want %v", got, want)
		}
	}
}

func TestDequeue(t *testing.T) {
	db := testDB(t)

	if err := db.EnqueueEntry(models.QueueUpdate, "p1", time.Now()); err != nil {
		t.Fatalf("EnqueueEntry() error = %v", err)
	}
	if err := db.DequeueEntry(models.QueueUpdate, "p1"); err != nil {
		t.Fatalf("DequeueEntry() error = %v", err)
	}

	ok, err := db.QueueContains(models.QueueUpdate, "p1")
	if err != nil {
		t.Fatalf("QueueContains() error = %v", err)
	}
	if ok {
		t.Error("entry still queued after dequeue")
	}

	// Dequeueing an absent id is a no-op
	if err := db.DequeueEntry(models.QueueUpdate, "p1"); err != nil {
		t.Fatalf("second DequeueEntry() error = %v", err)
	}
}

func TestSameIDInDifferentQueues(t *testing.T) {
	db := testDB(t)

	// The same remote id string may sit in delete while a fresh plan with
	// a colliding local id sits in create; kinds keep them distinct
	if err := db.EnqueueEntry(models.QueueCreate, "x", time.Now()); err != nil {
		t.Fatalf("EnqueueEntry(create) error = %v", err)
	}
	if err := db.EnqueueEntry(models.QueueDelete, "x", time.Now()); err != nil {
		t.Fatalf("EnqueueEntry(delete) error = %v", err)
	}

	for _, kind := range []models.QueueKind{models.QueueCreate, models.QueueDelete} {
		ok, err := db.QueueContains(kind, "x")
		if err != nil {
			t.Fatalf("QueueContains(%s) error = %v", kind, err)
		}
		if !ok {
			t.Errorf("id missing from %s queue", kind)
		}
	}
}

func TestEnqueueInvalidKind(t *testing.T) {
	db := testDB(t)

	if err := db.EnqueueEntry(models.QueueKind("purge"), "p1", time.Now()); err == nil {
		t.Error("expected error for invalid queue kind")
	}
	if _, err := db.ListQueue(models.QueueKind("purge")); err == nil {
		t.Error("expected error for invalid queue kind")
	}
}

func TestQueueSnapshot(t *testing.T) {
	db := testDB(t)

	if err := db.EnqueueEntry(models.QueueCreate, "p1", time.Now()); err != nil {
		t.Fatalf("EnqueueEntry() error = %v", err)
	}
	if err := db.EnqueueEntry(models.QueueDelete, "42", time.Now()); err != nil {
		t.Fatalf("EnqueueEntry() error = %v", err)
	}

	snap, err := db.QueueSnapshot()
	if err != nil {
		t.Fatalf("QueueSnapshot() error = %v", err)
	}
	if len(snap.Create) != 1 || snap.Create[0] != "p1" {
		t.Errorf("Create = %v, want [p1]", snap.Create)
	}
	if len(snap.Delete) != 1 || snap.Delete[0] != "42" {
		t.Errorf("Delete = %v, want [42]", snap.Delete)
	}
	if len(snap.Update) != 0 {
		t.Errorf("Update = %v, want empty", snap.Update)
	}
	if err := snap.Validate(); err != nil {
		t.Errorf("snapshot violates pairing invariant: %v", err)
	}
}

func TestVerifyQueueIntegrity(t *testing.T) {
	db := testDB(t)

	if err := db.EnqueueEntry(models.QueueCreate, "p1", time.Now()); err != nil {
		t.Fatalf("EnqueueEntry() error = %v", err)
	}
	if err := db.VerifyQueueIntegrity(); err != nil {
		t.Fatalf("VerifyQueueIntegrity() error = %v", err)
	}

	// Force an id into both create and update, which the engine never does
	entry := models.SyncQueueEntry{Kind: models.QueueUpdate, ItemID: "p1", Seq: 99, EnqueuedAt: time.Now()}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("raw insert error = %v", err)
	}
	if err := db.VerifyQueueIntegrity(); err == nil {
		t.Error("expected integrity error for id in both create and update")
	}
}
