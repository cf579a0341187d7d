// Package sync implements the offline-first reconciliation engine: a
// durable mutation API over the local store plus a sequential
// reconciliation pass that drains the sync queues against the remote
// authority and merges remote changes by recency.
package sync

import "errors"

// Pass-level failure reasons. Per-item failures never carry these; they
// stay isolated inside Result.Errors and the item's own sync status.
var (
	// ErrOffline means the connectivity gate reported the authority
	// unreachable; the whole pass was skipped.
	ErrOffline = errors.New("sync: remote unreachable")

	// ErrAlreadyRunning means a reconciliation pass was requested while
	// one was in flight. The caller should wait for the next trigger.
	ErrAlreadyRunning = errors.New("sync: reconciliation already running")

	// ErrRosterUnavailable means the authority's roster could not be
	// fetched; without it stale/new remote plans cannot be detected.
	ErrRosterUnavailable = errors.New("sync: remote roster unavailable")

	// ErrPlanNotFound means the referenced plan does not exist locally.
	ErrPlanNotFound = errors.New("sync: plan not found")

	// ErrSessionNotFound means the referenced session does not exist.
	ErrSessionNotFound = errors.New("sync: session not found")

	// ErrSubjectNotFound means the referenced discipline or subject does
	// not exist in the plan.
	ErrSubjectNotFound = errors.New("sync: subject not found")
)

// Abort reasons recorded in Result.Reason.
const (
	ReasonOffline        = "offline"
	ReasonAlreadyRunning = "already running"
	ReasonRosterFailure  = "roster unavailable"
)

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrOffline):
		return ReasonOffline
	case errors.Is(err, ErrAlreadyRunning):
		return ReasonAlreadyRunning
	case errors.Is(err, ErrRosterUnavailable):
		return ReasonRosterFailure
	default:
		return err.Error()
	}
}

// Result reports the outcome of one reconciliation pass.
type Result struct {
	Success bool     `json:"success"`
	Reason  string   `json:"reason,omitempty"` // set only for pass-level aborts
	Created int      `json:"created"`          // plans created remotely
	Updated int      `json:"updated"`          // plans updated remotely
	Pulled  int      `json:"pulled"`           // plans materialized or overwritten locally
	Deleted int      `json:"deleted"`          // remote deletions confirmed
	Errors  []string `json:"errors,omitempty"`
}

func abortedResult(err error) Result {
	reason := reasonFor(err)
	return Result{Success: false, Reason: reason, Errors: []string{err.Error()}}
}

// QueueResult reports the outcome of draining the delete queue.
type QueueResult struct {
	Success   bool     `json:"success"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
