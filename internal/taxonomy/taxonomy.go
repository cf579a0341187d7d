// Package taxonomy resolves human-readable names for disciplines and
// subjects that the remote side identifies only by id. Ids 1..8 belong to
// the predefined set; higher ids are user-defined and resolved through the
// disciplines side-table.
package taxonomy

import (
	"fmt"

	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/internal/models"
)

// Service answers name lookups against the taxonomy side-table.
type Service struct {
	store *db.DB
}

// NewService creates a taxonomy service over the given store.
func NewService(store *db.DB) *Service {
	return &Service{store: store}
}

// DisciplineName resolves a discipline id to its name. The second return
// is false when the id is unknown.
func (s *Service) DisciplineName(id int) (string, bool) {
	if id <= models.PredefinedDisciplineMax {
		name, ok := models.PredefinedDisciplines[id]
		return name, ok
	}

	disc, err := s.store.GetDiscipline(id)
	if err != nil || disc == nil {
		return "", false
	}
	return disc.Name, true
}

// SubjectName resolves a subject id within its discipline. The second
// return is false when either id is unknown.
func (s *Service) SubjectName(disciplineID, subjectID int) (string, bool) {
	disc, err := s.store.GetDiscipline(disciplineID)
	if err != nil || disc == nil {
		return "", false
	}
	for _, sub := range disc.Subjects {
		if sub.ID == subjectID {
			return sub.Name, true
		}
	}
	return "", false
}

// List returns all disciplines, predefined and user-defined.
func (s *Service) List() ([]models.Discipline, error) {
	return s.store.ListDisciplines()
}

// Save creates or updates a user-defined discipline. The predefined id
// range is reserved.
func (s *Service) Save(disc *models.Discipline) error {
	if disc.ID <= models.PredefinedDisciplineMax {
		return fmt.Errorf("discipline id %d is reserved for the predefined set", disc.ID)
	}
	if disc.Name == "" {
		return fmt.Errorf("discipline name is required")
	}
	return s.store.UpsertDiscipline(disc)
}

// Remove deletes a user-defined discipline.
func (s *Service) Remove(id int) error {
	if id <= models.PredefinedDisciplineMax {
		return fmt.Errorf("discipline id %d is reserved for the predefined set", id)
	}
	return s.store.DeleteDiscipline(id)
}
