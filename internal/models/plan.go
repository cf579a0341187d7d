// Package models defines the core data structures for plansync.
package models

import (
	"errors"
	"time"
)

// PlanStatus describes the lifecycle state of a study plan.
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusPaused    PlanStatus = "paused"
	PlanStatusCompleted PlanStatus = "completed"
)

// ValidPlanStatuses returns all valid plan statuses.
func ValidPlanStatuses() []PlanStatus {
	return []PlanStatus{PlanStatusActive, PlanStatusPaused, PlanStatusCompleted}
}

// Priority levels for disciplines and subjects.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PlanSubject is a subject inside a plan discipline. Subject ids are
// meaningful only within their parent discipline.
type PlanSubject struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Hours     int      `json:"hours"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	Progress  int      `json:"progress"` // 0-100
}

// PlanDiscipline is a discipline inside a study plan, owning an ordered
// list of subjects.
type PlanDiscipline struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Priority  Priority      `json:"priority"`
	Progress  int           `json:"progress"` // 0-100, derived from subjects
	Completed bool          `json:"completed"`
	Subjects  []PlanSubject `json:"subjects"`
}

// RecomputeProgress recalculates the discipline's progress percentage and
// completed flag from its subjects.
func (d *PlanDiscipline) RecomputeProgress() {
	if len(d.Subjects) == 0 {
		d.Progress = 0
		d.Completed = false
		return
	}
	done := 0
	for _, s := range d.Subjects {
		if s.Completed {
			done++
		}
	}
	d.Progress = done * 100 / len(d.Subjects)
	d.Completed = d.Progress == 100
}

// StudySession is a scheduled study session owned by a plan. Sessions ride
// their plan's sync lifecycle: mutating one flips the plan to pending.
type StudySession struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	DisciplineName  string     `json:"discipline_name,omitempty"`
	SubjectName     string     `json:"subject_name,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Completed       bool       `json:"completed"`
	ActualDuration  int        `json:"actual_duration,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SyncStatus tracks per-plan synchronization state.
// Synced and SyncFailed are never both true.
type SyncStatus struct {
	Synced       bool       `json:"synced"`
	PendingSync  bool       `json:"pending_sync"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	SyncFailed   bool       `json:"sync_failed"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// State returns a short human-readable label for the status.
func (s SyncStatus) State() string {
	switch {
	case s.SyncFailed:
		return "failed"
	case s.PendingSync:
		return "pending"
	case s.Synced:
		return "synced"
	default:
		return "local"
	}
}

// MarkSynced records a successful sync at the given time.
func (s *SyncStatus) MarkSynced(at time.Time) {
	s.Synced = true
	s.PendingSync = false
	s.SyncFailed = false
	s.ErrorMessage = ""
	s.LastSyncedAt = &at
}

// MarkPending flags the plan as locally mutated and not yet confirmed.
func (s *SyncStatus) MarkPending() {
	s.Synced = false
	s.PendingSync = true
	s.SyncFailed = false
	s.ErrorMessage = ""
}

// MarkFailed records a per-item sync failure. The last successful sync
// time is preserved.
func (s *SyncStatus) MarkFailed(msg string) {
	s.Synced = false
	s.SyncFailed = true
	s.ErrorMessage = msg
}

// StudyPlan is the root entity. LocalID is client-generated and stable for
// the plan's whole local lifetime; RemoteID is assigned by the authority on
// first successful create and absent until then.
type StudyPlan struct {
	LocalID     string           `json:"local_id"`
	RemoteID    *int64           `json:"remote_id,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	Status      PlanStatus       `json:"status"`
	Disciplines []PlanDiscipline `json:"disciplines"`
	Sessions    []StudySession   `json:"sessions,omitempty"`
	Sync        SyncStatus       `json:"sync"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Clone returns a deep copy of the plan.
func (p *StudyPlan) Clone() *StudyPlan {
	c := *p
	c.RemoteID = cloneInt64(p.RemoteID)
	c.StartDate = cloneTime(p.StartDate)
	c.EndDate = cloneTime(p.EndDate)
	c.Sync.LastSyncedAt = cloneTime(p.Sync.LastSyncedAt)

	c.Disciplines = make([]PlanDiscipline, len(p.Disciplines))
	for i, d := range p.Disciplines {
		d.Subjects = append([]PlanSubject(nil), d.Subjects...)
		c.Disciplines[i] = d
	}

	c.Sessions = make([]StudySession, len(p.Sessions))
	for i, s := range p.Sessions {
		s.ScheduledAt = cloneTime(s.ScheduledAt)
		c.Sessions[i] = s
	}

	return &c
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// IsSyncedRemotely reports whether the plan has ever been successfully
// created on the remote authority.
func (p *StudyPlan) IsSyncedRemotely() bool {
	return p.RemoteID != nil
}

// Discipline returns the discipline with the given id, or nil.
func (p *StudyPlan) Discipline(id int) *PlanDiscipline {
	for i := range p.Disciplines {
		if p.Disciplines[i].ID == id {
			return &p.Disciplines[i]
		}
	}
	return nil
}

// Session returns the session with the given id, or nil.
func (p *StudyPlan) Session(id string) *StudySession {
	for i := range p.Sessions {
		if p.Sessions[i].ID == id {
			return &p.Sessions[i]
		}
	}
	return nil
}

// Validation errors.
var (
	ErrPlanNameRequired  = errors.New("plan name is required")
	ErrPlanNoDisciplines = errors.New("plan needs at least one discipline")
	ErrInvalidDiscipline = errors.New("discipline id must be positive")
)

// Validate checks the plan's required fields.
func (p *StudyPlan) Validate() error {
	if p.Name == "" {
		return ErrPlanNameRequired
	}
	if len(p.Disciplines) == 0 {
		return ErrPlanNoDisciplines
	}
	for _, d := range p.Disciplines {
		if d.ID <= 0 {
			return ErrInvalidDiscipline
		}
	}
	return nil
}

// PlanStats provides aggregate statistics about the local store.
type PlanStats struct {
	TotalPlans     int64     `json:"total_plans"`
	PendingPlans   int64     `json:"pending_plans"`
	QueuedEntries  int64     `json:"queued_entries"`
	LastUpdated    time.Time `json:"last_updated"`
	CacheSizeBytes int64     `json:"cache_size_bytes"`
}
