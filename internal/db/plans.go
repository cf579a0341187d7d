package db

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medjourney/plansync/internal/models"
)

// LoadPlans reads the full plan collection from the store.
func (db *DB) LoadPlans() ([]*models.StudyPlan, error) {
	var records []models.PlanRecord
	if err := db.Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load plan records: %w", err)
	}

	plans := make([]*models.StudyPlan, 0, len(records))
	for _, rec := range records {
		var plan models.StudyPlan
		if err := json.Unmarshal([]byte(rec.Document), &plan); err != nil {
			return nil, fmt.Errorf("decode plan %s: %w", rec.LocalID, err)
		}
		plans = append(plans, &plan)
	}
	return plans, nil
}

// SavePlans persists the full plan collection, replacing whatever is
// stored. Plans missing from the given set are removed.
func (db *DB) SavePlans(plans []*models.StudyPlan) error {
	return db.Transaction(func(tx *DB) error {
		keep := make([]string, 0, len(plans))
		for _, plan := range plans {
			if err := tx.upsertPlan(plan); err != nil {
				return err
			}
			keep = append(keep, plan.LocalID)
		}

		q := tx.Session(&gorm.Session{})
		if len(keep) > 0 {
			q = q.Where("local_id NOT IN ?", keep)
		} else {
			q = q.Where("1 = 1")
		}
		if err := q.Delete(&models.PlanRecord{}).Error; err != nil {
			return fmt.Errorf("prune removed plans: %w", err)
		}
		return nil
	})
}

// SavePlan persists a single plan.
func (db *DB) SavePlan(plan *models.StudyPlan) error {
	return db.upsertPlan(plan)
}

func (db *DB) upsertPlan(plan *models.StudyPlan) error {
	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan %s: %w", plan.LocalID, err)
	}

	rec := models.PlanRecord{
		LocalID:       plan.LocalID,
		RemoteID:      plan.RemoteID,
		Document:      string(doc),
		PlanUpdatedAt: plan.UpdatedAt,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "local_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"remote_id", "document", "plan_updated_at", "updated_at"}),
	}).Create(&rec).Error
}

// GetPlan retrieves a single plan by local id, or nil if absent.
func (db *DB) GetPlan(localID string) (*models.StudyPlan, error) {
	var rec models.PlanRecord
	err := db.First(&rec, "local_id = ?", localID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	var plan models.StudyPlan
	if err := json.Unmarshal([]byte(rec.Document), &plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", localID, err)
	}
	return &plan, nil
}

// DeletePlan removes a plan record by local id.
func (db *DB) DeletePlan(localID string) error {
	return db.Delete(&models.PlanRecord{}, "local_id = ?", localID).Error
}
