package queue

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/internal/models"
)

func testManager(t *testing.T) *Manager {
	t.Helper()

	store, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m, err := NewManager(store)
	require.NoError(t, err)
	return m
}

func TestEnqueueDequeue(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Enqueue(models.QueueCreate, "p1"))
	require.NoError(t, m.Enqueue(models.QueueCreate, "p2"))

	ids, err := m.List(models.QueueCreate)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)

	require.NoError(t, m.Dequeue(models.QueueCreate, "p1"))
	ids, err = m.List(models.QueueCreate)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)
}

func TestEnqueueIdempotent(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Enqueue(models.QueueUpdate, "p1"))
	require.NoError(t, m.Enqueue(models.QueueUpdate, "p1"))

	ids, err := m.List(models.QueueUpdate)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestContains(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Enqueue(models.QueueDelete, "42"))

	ok, err := m.Contains(models.QueueDelete, "42")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Contains(models.QueueCreate, "42")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMove(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Enqueue(models.QueueUpdate, "p1"))
	require.NoError(t, m.Move(models.QueueUpdate, models.QueueCreate, "p1"))

	inUpdate, err := m.Contains(models.QueueUpdate, "p1")
	require.NoError(t, err)
	assert.False(t, inUpdate)

	inCreate, err := m.Contains(models.QueueCreate, "p1")
	require.NoError(t, err)
	assert.True(t, inCreate)
}

func TestClearPlan(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Enqueue(models.QueueCreate, "p1"))
	require.NoError(t, m.Enqueue(models.QueueDelete, "42"))
	require.NoError(t, m.ClearPlan("p1"))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Create)
	assert.Empty(t, snap.Update)
	// Delete queue tracks remote ids and is untouched by local clears
	assert.Equal(t, []string{"42"}, snap.Delete)
}

func TestSnapshotTimestamps(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Enqueue(models.QueueCreate, "p1"))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	require.NoError(t, snap.Validate())
	assert.False(t, snap.Timestamps["p1"].IsZero())
}
