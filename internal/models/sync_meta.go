package models

import "time"

// SyncMeta is a key/value record for sync bookkeeping.
type SyncMeta struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"size:500" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SyncMeta) TableName() string {
	return "sync_meta"
}

// Sync metadata keys.
const (
	SyncMetaLastSync      = "last_sync"
	SyncMetaSchemaVersion = "schema_version"
	SyncMetaTotalPlans    = "total_plans"
)

// PlanRecord is the persisted form of a StudyPlan: one row per plan keyed
// by local id, with the full entity serialized as a JSON document. The
// remote id and updated time are lifted into columns for indexing.
type PlanRecord struct {
	LocalID       string    `gorm:"primaryKey;size:36" json:"local_id"`
	RemoteID      *int64    `gorm:"index" json:"remote_id"`
	Document      string    `gorm:"type:text" json:"document"`
	PlanUpdatedAt time.Time `json:"plan_updated_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (PlanRecord) TableName() string {
	return "plan_records"
}
