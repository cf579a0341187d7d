// Package remote defines the boundary to the plan authority. The engine
// only ever talks to the authority through the Client interface; HTTPClient
// is the standard transport and embedding applications can supply their own.
package remote

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by GetPlanDetail, UpdatePlan and DeletePlan when
// the remote id is unknown to the authority. For deletes the engine treats
// it as success: the desired end state already holds.
var ErrNotFound = errors.New("remote: plan not found")

// PlanSummary is one entry of the authority's roster: the remote id plus
// the server-side modification time used for staleness detection.
type PlanSummary struct {
	RemoteID  int64     `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubjectPayload is the wire form of a plan subject.
type SubjectPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name,omitempty"`
	Hours     int    `json:"hours"`
	Priority  string `json:"priority,omitempty"`
	Completed bool   `json:"completed,omitempty"`
	Progress  int    `json:"progress,omitempty"`
}

// DisciplinePayload is the wire form of a plan discipline.
type DisciplinePayload struct {
	ID       int              `json:"id"`
	Name     string           `json:"name,omitempty"`
	Priority string           `json:"priority,omitempty"`
	Subjects []SubjectPayload `json:"subjects"`
}

// SessionPayload is the wire form of a study session.
type SessionPayload struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	DisciplineName  string     `json:"discipline_name,omitempty"`
	SubjectName     string     `json:"subject_name,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Completed       bool       `json:"completed,omitempty"`
	ActualDuration  int        `json:"actual_duration,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// PlanPayload is the wire form of a full study plan. Local-only fields
// (the client-generated local id, per-plan sync status) never appear here.
type PlanPayload struct {
	RemoteID    int64               `json:"id,omitempty"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	StartDate   *time.Time          `json:"start_date,omitempty"`
	EndDate     *time.Time          `json:"end_date,omitempty"`
	Status      string              `json:"status"`
	Disciplines []DisciplinePayload `json:"disciplines"`
	Sessions    []SessionPayload    `json:"sessions,omitempty"`
	CreatedAt   time.Time           `json:"created_at,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at,omitempty"`
}

// Client is the set of remote operations the sync engine consumes. Every
// operation must tolerate duplicate or replayed calls; the engine's retry
// model is built on that idempotency.
type Client interface {
	// ListPlans fetches the authority's roster of plan summaries.
	ListPlans(ctx context.Context) ([]PlanSummary, error)

	// GetPlanDetail fetches the full payload for one remote plan.
	GetPlanDetail(ctx context.Context, remoteID int64) (*PlanPayload, error)

	// CreatePlan stores a new plan and returns its assigned remote id.
	CreatePlan(ctx context.Context, payload *PlanPayload) (int64, error)

	// UpdatePlan overwrites the remote plan identified by remoteID.
	UpdatePlan(ctx context.Context, remoteID int64, payload *PlanPayload) error

	// DeletePlan removes the remote plan. Returns ErrNotFound if the
	// authority no longer knows the id.
	DeletePlan(ctx context.Context, remoteID int64) error

	// IsReachable reports whether the authority can be reached right now.
	// It gates every reconciliation attempt.
	IsReachable(ctx context.Context) bool
}

// Unreachable returns a Client that always reports the authority as
// unreachable. It is the default for installations that have not wired a
// transport: mutations queue locally and reconciliation reports offline.
func Unreachable() Client {
	return unreachableClient{}
}

type unreachableClient struct{}

var errUnreachable = errors.New("remote: no transport configured")

func (unreachableClient) ListPlans(context.Context) ([]PlanSummary, error) {
	return nil, errUnreachable
}

func (unreachableClient) GetPlanDetail(context.Context, int64) (*PlanPayload, error) {
	return nil, errUnreachable
}

func (unreachableClient) CreatePlan(context.Context, *PlanPayload) (int64, error) {
	return 0, errUnreachable
}

func (unreachableClient) UpdatePlan(context.Context, int64, *PlanPayload) error {
	return errUnreachable
}

func (unreachableClient) DeletePlan(context.Context, int64) error {
	return errUnreachable
}

func (unreachableClient) IsReachable(context.Context) bool {
	return false
}
