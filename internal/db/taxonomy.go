package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medjourney/plansync/internal/models"
)

// GetDiscipline retrieves a discipline with its subjects, or nil.
func (db *DB) GetDiscipline(id int) (*models.Discipline, error) {
	var disc models.Discipline
	err := db.Preload("Subjects").First(&disc, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &disc, nil
}

// ListDisciplines returns all disciplines with their subjects.
func (db *DB) ListDisciplines() ([]models.Discipline, error) {
	var discs []models.Discipline
	err := db.Preload("Subjects").Order("id").Find(&discs).Error
	return discs, err
}

// UpsertDiscipline creates or updates a discipline and replaces its
// subject set.
func (db *DB) UpsertDiscipline(disc *models.Discipline) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).Omit("Subjects").Create(disc).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Subject{}, "discipline_id = ?", disc.ID).Error; err != nil {
			return err
		}
		for i := range disc.Subjects {
			disc.Subjects[i].DisciplineID = disc.ID
			if err := tx.Create(&disc.Subjects[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteDiscipline removes a discipline and its subjects.
func (db *DB) DeleteDiscipline(id int) error {
	return db.Transaction(func(tx *DB) error {
		if err := tx.Delete(&models.Subject{}, "discipline_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Discipline{}, "id = ?", id).Error
	})
}
