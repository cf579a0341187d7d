package sync

import (
	"context"
	"fmt"
	"strconv"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/internal/log"
	"github.com/medjourney/plansync/internal/models"
	"github.com/medjourney/plansync/internal/remote"
	"github.com/medjourney/plansync/internal/sync/queue"
	"github.com/medjourney/plansync/internal/telemetry"
)

// Engine owns the in-memory plan collection, the sync queues and the
// reconciliation loop. Mutation methods are synchronous and touch only the
// local store and queues; Synchronize is the only method that performs
// network I/O.
type Engine struct {
	mu         stdsync.Mutex
	store      *db.DB
	queues     *queue.Manager
	remote     remote.Client
	translator *Translator
	names      NameResolver
	tel        telemetry.Client
	limiter    *rate.Limiter

	plans   []*models.StudyPlan
	syncing bool
}

// NewEngine builds an engine over the given store, remote client and
// taxonomy resolver, restoring the plan collection and queue state. A nil
// client defaults to an unreachable remote; a nil telemetry client
// defaults to a no-op.
func NewEngine(store *db.DB, client remote.Client, names NameResolver, tel telemetry.Client) (*Engine, error) {
	if client == nil {
		client = remote.Unreachable()
	}
	if tel == nil {
		tel = telemetry.NewNoop()
	}

	queues, err := queue.NewManager(store)
	if err != nil {
		return nil, err
	}

	plans, err := store.LoadPlans()
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}

	return &Engine{
		store:      store,
		queues:     queues,
		remote:     client,
		translator: NewTranslator(names),
		names:      names,
		tel:        tel,
		// Coalesce bursts of mutation-triggered syncs into one pass
		limiter: rate.NewLimiter(rate.Every(30*time.Second), 1),
		plans:   plans,
	}, nil
}

// SubjectSelection picks a subject for a new plan.
type SubjectSelection struct {
	ID       int
	Hours    int
	Priority models.Priority
}

// DisciplineSelection picks a discipline (and optionally subjects) for a
// new plan.
type DisciplineSelection struct {
	ID       int
	Priority models.Priority
	Subjects []SubjectSelection
}

// CreatePlanInput carries the fields for a new study plan.
type CreatePlanInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      models.PlanStatus
	Disciplines []DisciplineSelection
}

// CreatePlan creates a plan locally and queues it for remote creation.
// It returns immediately; nothing blocks on the network.
func (e *Engine) CreatePlan(input CreatePlanInput) (*models.StudyPlan, error) {
	now := time.Now()

	plan := &models.StudyPlan{
		LocalID:     uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if plan.Status == "" {
		plan.Status = models.PlanStatusActive
	}
	if plan.StartDate == nil {
		start := now
		plan.StartDate = &start
	}

	for _, sel := range input.Disciplines {
		disc := models.PlanDiscipline{
			ID:       sel.ID,
			Name:     e.resolveDisciplineName(sel.ID),
			Priority: priorityOrDefault(string(sel.Priority)),
		}
		for _, sub := range sel.Subjects {
			disc.Subjects = append(disc.Subjects, models.PlanSubject{
				ID:       sub.ID,
				Name:     e.resolveSubjectName(sel.ID, sub.ID),
				Hours:    hoursOrDefault(sub.Hours),
				Priority: priorityOrDefault(string(sub.Priority)),
			})
		}
		plan.Disciplines = append(plan.Disciplines, disc)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	plan.Sync.MarkPending()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Enqueue before persisting so a crash can never leave a mutated but
	// unqueued plan behind
	if err := e.queues.Enqueue(models.QueueCreate, plan.LocalID); err != nil {
		return nil, fmt.Errorf("enqueue create: %w", err)
	}
	e.plans = append(e.plans, plan)
	e.persistLocked()

	e.tel.TrackPlanCreated(len(plan.Disciplines))
	return plan.Clone(), nil
}

// SubjectUpdate carries a partial update to one subject.
type SubjectUpdate struct {
	ID        int
	Hours     *int
	Priority  *models.Priority
	Completed *bool
	Progress  *int
}

// DisciplineUpdate carries a partial update to one discipline.
type DisciplineUpdate struct {
	ID       int
	Priority *models.Priority
	Subjects []SubjectUpdate
}

// UpdatePlanInput carries a partial update to a plan. Nil fields are left
// untouched.
type UpdatePlanInput struct {
	LocalID     string
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *models.PlanStatus
	Disciplines []DisciplineUpdate
}

// UpdatePlan applies a partial update and queues the plan for remote
// update (or leaves it in the create queue if it was never synced).
func (e *Engine) UpdatePlan(input UpdatePlanInput) (*models.StudyPlan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	plan := e.findLocked(input.LocalID)
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.StartDate != nil {
		plan.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		plan.EndDate = input.EndDate
	}
	if input.Status != nil {
		plan.Status = *input.Status
	}

	for _, du := range input.Disciplines {
		disc := plan.Discipline(du.ID)
		if disc == nil {
			continue
		}
		if du.Priority != nil {
			disc.Priority = *du.Priority
		}
		if disc.Name == "" {
			disc.Name = e.resolveDisciplineName(du.ID)
		}
		for _, su := range du.Subjects {
			for i := range disc.Subjects {
				if disc.Subjects[i].ID != su.ID {
					continue
				}
				sub := &disc.Subjects[i]
				if su.Hours != nil {
					sub.Hours = *su.Hours
				}
				if su.Priority != nil {
					sub.Priority = *su.Priority
				}
				if su.Completed != nil {
					sub.Completed = *su.Completed
				}
				if su.Progress != nil {
					sub.Progress = *su.Progress
				}
				if sub.Name == "" {
					sub.Name = e.resolveSubjectName(du.ID, su.ID)
				}
			}
		}
		disc.RecomputeProgress()
	}

	plan.UpdatedAt = time.Now()
	plan.Sync.MarkPending()

	if err := e.enqueueMutationLocked(plan); err != nil {
		return nil, err
	}
	e.persistLocked()

	return plan.Clone(), nil
}

// RemovePlan deletes a plan from the local store. If the plan was ever
// synced, its remote id is queued for remote deletion; a never-synced plan
// just drops out of the create/update queues. Returns false when the plan
// does not exist.
func (e *Engine) RemovePlan(localID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, p := range e.plans {
		if p.LocalID == localID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}
	plan := e.plans[idx]

	if plan.RemoteID != nil {
		if err := e.queues.Enqueue(models.QueueDelete, strconv.FormatInt(*plan.RemoteID, 10)); err != nil {
			return false, fmt.Errorf("enqueue delete: %w", err)
		}
	}
	if err := e.queues.ClearPlan(localID); err != nil {
		return false, fmt.Errorf("clear sync queues: %w", err)
	}

	e.plans = append(e.plans[:idx], e.plans[idx+1:]...)
	if err := e.store.DeletePlan(localID); err != nil {
		log.Errorf("delete plan %s from store: %v", localID, err)
	}

	e.tel.TrackPlanRemoved(plan.RemoteID != nil)
	return true, nil
}

// SessionInput carries the fields for a new study session.
type SessionInput struct {
	PlanLocalID     string
	Title           string
	DisciplineName  string
	SubjectName     string
	ScheduledAt     *time.Time
	DurationMinutes int
	Notes           string
}

// AddSession appends a session to a plan and flips the plan to pending.
func (e *Engine) AddSession(input SessionInput) (*models.StudySession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	plan := e.findLocked(input.PlanLocalID)
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	now := time.Now()
	sess := models.StudySession{
		ID:              uuid.NewString(),
		Title:           input.Title,
		DisciplineName:  input.DisciplineName,
		SubjectName:     input.SubjectName,
		ScheduledAt:     input.ScheduledAt,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	plan.Sessions = append(plan.Sessions, sess)
	plan.UpdatedAt = now
	plan.Sync.MarkPending()

	if err := e.enqueueMutationLocked(plan); err != nil {
		return nil, err
	}
	e.persistLocked()

	e.tel.TrackSessionAdded()
	return &sess, nil
}

// SessionUpdate carries a partial update to a session.
type SessionUpdate struct {
	ID              string
	Title           *string
	ScheduledAt     *time.Time
	DurationMinutes *int
	Completed       *bool
	ActualDuration  *int
	Notes           *string
}

// UpdateSession applies a partial update to a session, wherever it lives.
func (e *Engine) UpdateSession(input SessionUpdate) (*models.StudySession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, plan := range e.plans {
		sess := plan.Session(input.ID)
		if sess == nil {
			continue
		}

		if input.Title != nil {
			sess.Title = *input.Title
		}
		if input.ScheduledAt != nil {
			sess.ScheduledAt = input.ScheduledAt
		}
		if input.DurationMinutes != nil {
			sess.DurationMinutes = *input.DurationMinutes
		}
		if input.Completed != nil {
			sess.Completed = *input.Completed
		}
		if input.ActualDuration != nil {
			sess.ActualDuration = *input.ActualDuration
		}
		if input.Notes != nil {
			sess.Notes = *input.Notes
		}
		now := time.Now()
		sess.UpdatedAt = now
		plan.UpdatedAt = now
		plan.Sync.MarkPending()

		if err := e.enqueueMutationLocked(plan); err != nil {
			return nil, err
		}
		e.persistLocked()

		out := *sess
		return &out, nil
	}
	return nil, ErrSessionNotFound
}

// RemoveSession deletes a session from its plan. Returns false when no
// plan owns the session.
func (e *Engine) RemoveSession(sessionID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, plan := range e.plans {
		for i := range plan.Sessions {
			if plan.Sessions[i].ID != sessionID {
				continue
			}
			plan.Sessions = append(plan.Sessions[:i], plan.Sessions[i+1:]...)
			plan.UpdatedAt = time.Now()
			plan.Sync.MarkPending()

			if err := e.enqueueMutationLocked(plan); err != nil {
				return false, err
			}
			e.persistLocked()
			return true, nil
		}
	}
	return false, nil
}

// SetSubjectCompleted updates a subject's completion state and recomputes
// its discipline's progress.
func (e *Engine) SetSubjectCompleted(localID string, disciplineID, subjectID int, completed bool) (*models.StudyPlan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	plan := e.findLocked(localID)
	if plan == nil {
		return nil, ErrPlanNotFound
	}
	disc := plan.Discipline(disciplineID)
	if disc == nil {
		return nil, ErrSubjectNotFound
	}

	found := false
	for i := range disc.Subjects {
		if disc.Subjects[i].ID == subjectID {
			disc.Subjects[i].Completed = completed
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSubjectNotFound
	}

	disc.RecomputeProgress()
	plan.UpdatedAt = time.Now()
	plan.Sync.MarkPending()

	if err := e.enqueueMutationLocked(plan); err != nil {
		return nil, err
	}
	e.persistLocked()

	return plan.Clone(), nil
}

// Plans returns a copy of the full local collection.
func (e *Engine) Plans() []*models.StudyPlan {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*models.StudyPlan, len(e.plans))
	for i, p := range e.plans {
		out[i] = p.Clone()
	}
	return out
}

// Plan returns a copy of one plan, or nil.
func (e *Engine) Plan(localID string) *models.StudyPlan {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.findLocked(localID); p != nil {
		return p.Clone()
	}
	return nil
}

// Status projects a plan's synchronization status. The second return is
// false when the plan does not exist.
func (e *Engine) Status(localID string) (models.SyncStatus, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p := e.findLocked(localID); p != nil {
		return p.Sync, true
	}
	return models.SyncStatus{}, false
}

// Queues returns a snapshot of the three sync queues.
func (e *Engine) Queues() (models.SyncQueues, error) {
	return e.queues.Snapshot()
}

// Initialize runs a first reconciliation when the local store is empty,
// seeding it from the authority. With plans already present it does
// nothing; pending work waits for the next trigger.
func (e *Engine) Initialize(ctx context.Context) {
	e.mu.Lock()
	empty := len(e.plans) == 0
	e.mu.Unlock()

	if empty && e.remote.IsReachable(ctx) {
		_ = e.Synchronize(ctx)
	}
}

// SetSyncInterval adjusts the minimum spacing between mutation-triggered
// reconciliation passes.
func (e *Engine) SetSyncInterval(d time.Duration) {
	e.limiter.SetLimit(rate.Every(d))
}

// TrySynchronize requests a background reconciliation pass. Requests are
// rate-limited so a burst of edits coalesces into one pass; the in-flight
// guard handles the rest.
func (e *Engine) TrySynchronize(ctx context.Context) {
	if !e.limiter.Allow() {
		return
	}
	go func() {
		_ = e.Synchronize(ctx)
	}()
}

// findLocked returns the plan with the given local id. Caller holds e.mu.
func (e *Engine) findLocked(localID string) *models.StudyPlan {
	for _, p := range e.plans {
		if p.LocalID == localID {
			return p
		}
	}
	return nil
}

// findByRemoteLocked returns the plan with the given remote id. Caller
// holds e.mu.
func (e *Engine) findByRemoteLocked(remoteID int64) *models.StudyPlan {
	for _, p := range e.plans {
		if p.RemoteID != nil && *p.RemoteID == remoteID {
			return p
		}
	}
	return nil
}

// enqueueMutationLocked queues a plan's pending mutation: a plan still
// waiting in the create queue stays there, everything else goes to the
// update queue. Caller holds e.mu.
func (e *Engine) enqueueMutationLocked(plan *models.StudyPlan) error {
	inCreate, err := e.queues.Contains(models.QueueCreate, plan.LocalID)
	if err != nil {
		return fmt.Errorf("inspect create queue: %w", err)
	}
	if inCreate {
		return nil
	}
	if err := e.queues.Enqueue(models.QueueUpdate, plan.LocalID); err != nil {
		return fmt.Errorf("enqueue update: %w", err)
	}
	return nil
}

// persistLocked writes the full collection to the store. Persistence
// failure is non-fatal: the in-memory state stays authoritative for this
// process, and the failure is logged. Caller holds e.mu.
func (e *Engine) persistLocked() {
	if err := e.store.SavePlans(e.plans); err != nil {
		log.Errorf("persist plans: %v", err)
	}
}

func (e *Engine) resolveDisciplineName(id int) string {
	if e.names != nil {
		if name, ok := e.names.DisciplineName(id); ok {
			return name
		}
	}
	return fmt.Sprintf("Disciplina %d", id)
}

func (e *Engine) resolveSubjectName(disciplineID, subjectID int) string {
	if e.names != nil {
		if name, ok := e.names.SubjectName(disciplineID, subjectID); ok {
			return name
		}
	}
	return fmt.Sprintf("Assunto %d", subjectID)
}
