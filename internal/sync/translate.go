package sync

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medjourney/plansync/internal/models"
	"github.com/medjourney/plansync/internal/remote"
)

// NameResolver answers discipline and subject name lookups during
// translation. The second return is false when the id is unknown.
type NameResolver interface {
	DisciplineName(id int) (string, bool)
	SubjectName(disciplineID, subjectID int) (string, bool)
}

// Translator converts between the local plan representation and the wire
// payload. Translation never fails: missing names degrade to deterministic
// placeholders instead of aborting the sync pass.
type Translator struct {
	names NameResolver
}

// NewTranslator creates a translator backed by the given resolver.
func NewTranslator(names NameResolver) *Translator {
	return &Translator{names: names}
}

// ToPayload converts a local plan to its wire form. Local-only fields (the
// local id, sync status) are dropped; names are omitted because the
// authority stores taxonomy ids only.
func (t *Translator) ToPayload(plan *models.StudyPlan) *remote.PlanPayload {
	payload := &remote.PlanPayload{
		Name:        plan.Name,
		Description: plan.Description,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		Status:      string(plan.Status),
		Disciplines: make([]remote.DisciplinePayload, 0, len(plan.Disciplines)),
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	}
	if plan.RemoteID != nil {
		payload.RemoteID = *plan.RemoteID
	}

	for _, d := range plan.Disciplines {
		dp := remote.DisciplinePayload{
			ID:       d.ID,
			Priority: string(d.Priority),
			Subjects: make([]remote.SubjectPayload, 0, len(d.Subjects)),
		}
		for _, s := range d.Subjects {
			dp.Subjects = append(dp.Subjects, remote.SubjectPayload{
				ID:        s.ID,
				Hours:     s.Hours,
				Priority:  string(s.Priority),
				Completed: s.Completed,
				Progress:  s.Progress,
			})
		}
		payload.Disciplines = append(payload.Disciplines, dp)
	}

	for _, sess := range plan.Sessions {
		payload.Sessions = append(payload.Sessions, remote.SessionPayload{
			ID:              sess.ID,
			Title:           sess.Title,
			DisciplineName:  sess.DisciplineName,
			SubjectName:     sess.SubjectName,
			ScheduledAt:     sess.ScheduledAt,
			DurationMinutes: sess.DurationMinutes,
			Completed:       sess.Completed,
			ActualDuration:  sess.ActualDuration,
			Notes:           sess.Notes,
		})
	}

	return payload
}

// FromPayload materializes a local plan from a wire payload, generating a
// fresh local identity. Discipline and subject names are taken from the
// payload when present, resolved through the taxonomy otherwise, and fall
// back to "Disciplina {id}" / "Assunto {id}" placeholders.
func (t *Translator) FromPayload(payload *remote.PlanPayload, syncedAt time.Time) *models.StudyPlan {
	remoteID := payload.RemoteID
	plan := &models.StudyPlan{
		LocalID:     uuid.NewString(),
		RemoteID:    &remoteID,
		Name:        payload.Name,
		Description: payload.Description,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Status:      models.PlanStatus(payload.Status),
		Disciplines: make([]models.PlanDiscipline, 0, len(payload.Disciplines)),
		CreatedAt:   payload.CreatedAt,
		UpdatedAt:   payload.UpdatedAt,
	}
	if plan.Status == "" {
		plan.Status = models.PlanStatusActive
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = syncedAt
	}
	if plan.UpdatedAt.IsZero() {
		plan.UpdatedAt = syncedAt
	}
	plan.Sync.MarkSynced(syncedAt)

	for _, dp := range payload.Disciplines {
		disc := models.PlanDiscipline{
			ID:       dp.ID,
			Name:     t.disciplineName(dp),
			Priority: priorityOrDefault(dp.Priority),
			Subjects: make([]models.PlanSubject, 0, len(dp.Subjects)),
		}
		for _, sp := range dp.Subjects {
			disc.Subjects = append(disc.Subjects, models.PlanSubject{
				ID:        sp.ID,
				Name:      t.subjectName(dp.ID, sp),
				Hours:     hoursOrDefault(sp.Hours),
				Priority:  priorityOrDefault(sp.Priority),
				Completed: sp.Completed,
				Progress:  sp.Progress,
			})
		}
		disc.RecomputeProgress()
		plan.Disciplines = append(plan.Disciplines, disc)
	}

	for _, sp := range payload.Sessions {
		sess := models.StudySession{
			ID:              sp.ID,
			Title:           sp.Title,
			DisciplineName:  sp.DisciplineName,
			SubjectName:     sp.SubjectName,
			ScheduledAt:     sp.ScheduledAt,
			DurationMinutes: sp.DurationMinutes,
			Completed:       sp.Completed,
			ActualDuration:  sp.ActualDuration,
			Notes:           sp.Notes,
			CreatedAt:       syncedAt,
			UpdatedAt:       syncedAt,
		}
		if sess.ID == "" {
			sess.ID = uuid.NewString()
		}
		plan.Sessions = append(plan.Sessions, sess)
	}

	return plan
}

func (t *Translator) disciplineName(dp remote.DisciplinePayload) string {
	if dp.Name != "" {
		return dp.Name
	}
	if t.names != nil {
		if name, ok := t.names.DisciplineName(dp.ID); ok {
			return name
		}
	}
	return fmt.Sprintf("Disciplina %d", dp.ID)
}

func (t *Translator) subjectName(disciplineID int, sp remote.SubjectPayload) string {
	if sp.Name != "" {
		return sp.Name
	}
	if t.names != nil {
		if name, ok := t.names.SubjectName(disciplineID, sp.ID); ok {
			return name
		}
	}
	return fmt.Sprintf("Assunto %d", sp.ID)
}

func priorityOrDefault(p string) models.Priority {
	switch models.Priority(p) {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return models.Priority(p)
	}
	return models.PriorityMedium
}

func hoursOrDefault(h int) int {
	if h <= 0 {
		return 1
	}
	return h
}
