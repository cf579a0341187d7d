package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueKindValid(t *testing.T) {
	assert.True(t, QueueCreate.Valid())
	assert.True(t, QueueUpdate.Valid())
	assert.True(t, QueueDelete.Valid())
	assert.False(t, QueueKind("purge").Valid())
	assert.False(t, QueueKind("").Valid())
}

func TestQueueKindsDrainOrder(t *testing.T) {
	assert.Equal(t, []QueueKind{QueueCreate, QueueUpdate, QueueDelete}, QueueKinds())
}

func TestSyncQueuesValidate(t *testing.T) {
	queues := SyncQueues{
		Create:     []string{"a"},
		Delete:     []string{"42"},
		Timestamps: map[string]time.Time{"a": time.Now(), "42": time.Now()},
	}
	assert.NoError(t, queues.Validate())

	// Missing timestamp breaks the pairing invariant
	delete(queues.Timestamps, "42")
	assert.Error(t, queues.Validate())

	// Zero timestamp is as bad as a missing one
	queues.Timestamps["42"] = time.Time{}
	assert.Error(t, queues.Validate())
}

func TestSyncQueuesIDs(t *testing.T) {
	queues := SyncQueues{Create: []string{"a"}, Update: []string{"b"}, Delete: []string{"1"}}
	assert.Equal(t, []string{"a"}, queues.IDs(QueueCreate))
	assert.Equal(t, []string{"b"}, queues.IDs(QueueUpdate))
	assert.Equal(t, []string{"1"}, queues.IDs(QueueDelete))
	assert.Nil(t, queues.IDs(QueueKind("other")))
}
