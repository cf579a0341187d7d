package sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/medjourney/plansync/internal/log"
	"github.com/medjourney/plansync/internal/models"
	"github.com/medjourney/plansync/internal/remote"
)

// Synchronize runs one full reconciliation pass: gate, roster fetch, drain
// the delete/create/update queues in that order, then diff the roster
// against the local collection. Per-item failures stay isolated in
// Result.Errors and the item's queue entry; only the gate, the roster
// fetch and the reentrancy guard abort the whole pass.
func (e *Engine) Synchronize(ctx context.Context) Result {
	e.mu.Lock()
	if e.syncing {
		e.mu.Unlock()
		e.tel.TrackSyncSkipped(ReasonAlreadyRunning)
		return abortedResult(ErrAlreadyRunning)
	}
	e.syncing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	if !e.remote.IsReachable(ctx) {
		e.tel.TrackSyncSkipped(ReasonOffline)
		return abortedResult(ErrOffline)
	}

	roster, err := e.remote.ListPlans(ctx)
	if err != nil {
		log.Errorf("sync: fetch roster: %v", err)
		e.tel.TrackSyncSkipped(ReasonRosterFailure)
		return abortedResult(fmt.Errorf("%w: %v", ErrRosterUnavailable, err))
	}

	var res Result

	// Deletes first so the roster diff below cannot resurrect a plan the
	// user already removed
	skipRemote := e.drainDeletes(ctx, &res)
	e.drainCreates(ctx, &res)
	e.drainUpdates(ctx, &res)
	e.reconcileRoster(ctx, roster, skipRemote, &res)

	e.mu.Lock()
	e.persistLocked()
	e.mu.Unlock()

	if err := e.store.SetSyncMeta(models.SyncMetaLastSync, time.Now().UTC().Format(time.RFC3339)); err != nil {
		log.Errorf("sync: record last sync time: %v", err)
	}

	res.Success = len(res.Errors) == 0
	log.Infof("sync: pass finished: %d created, %d updated, %d pulled, %d deleted, %d errors",
		res.Created, res.Updated, res.Pulled, res.Deleted, len(res.Errors))
	e.tel.TrackSyncCompleted(res.Created, res.Updated, res.Pulled, res.Deleted, len(res.Errors))
	return res
}

// drainDeletes processes the delete queue and returns the set of remote
// ids the roster diff must skip: everything that was queued for deletion
// this pass, confirmed or not.
func (e *Engine) drainDeletes(ctx context.Context, res *Result) map[int64]bool {
	ids, err := e.queues.List(models.QueueDelete)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("list delete queue: %v", err))
		return nil
	}

	skip := make(map[int64]bool, len(ids))
	for _, id := range ids {
		remoteID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			// Unparseable entries can never succeed; drop them
			log.Errorf("sync: malformed delete queue entry %q, dropping", id)
			_ = e.queues.Dequeue(models.QueueDelete, id)
			continue
		}
		skip[remoteID] = true

		err = e.remote.DeletePlan(ctx, remoteID)
		if err != nil && !errors.Is(err, remote.ErrNotFound) {
			res.Errors = append(res.Errors, fmt.Sprintf("delete plan %d: %v", remoteID, err))
			continue
		}
		// Not-found means the desired end state already holds
		if err := e.queues.Dequeue(models.QueueDelete, id); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("dequeue delete %d: %v", remoteID, err))
			continue
		}
		res.Deleted++
	}
	return skip
}

func (e *Engine) drainCreates(ctx context.Context, res *Result) {
	ids, err := e.queues.List(models.QueueCreate)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("list create queue: %v", err))
		return
	}

	for _, id := range ids {
		e.mu.Lock()
		plan := e.findLocked(id)
		if plan == nil {
			// Plan was removed before it ever reached the remote
			_ = e.queues.Dequeue(models.QueueCreate, id)
			e.mu.Unlock()
			continue
		}
		payload := e.translator.ToPayload(plan)
		e.mu.Unlock()

		remoteID, err := e.remote.CreatePlan(ctx, payload)

		e.mu.Lock()
		plan = e.findLocked(id)
		if err != nil {
			if plan != nil {
				plan.Sync.MarkFailed(err.Error())
			}
			e.mu.Unlock()
			res.Errors = append(res.Errors, fmt.Sprintf("create plan %s: %v", id, err))
			continue
		}
		if plan == nil {
			// Removed while the create was in flight; undo the orphan
			_ = e.queues.Dequeue(models.QueueCreate, id)
			_ = e.queues.Enqueue(models.QueueDelete, strconv.FormatInt(remoteID, 10))
			e.mu.Unlock()
			continue
		}
		plan.RemoteID = &remoteID
		plan.Sync.MarkSynced(time.Now())
		if err := e.queues.Dequeue(models.QueueCreate, id); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("dequeue create %s: %v", id, err))
		}
		e.mu.Unlock()
		res.Created++
	}
}

func (e *Engine) drainUpdates(ctx context.Context, res *Result) {
	ids, err := e.queues.List(models.QueueUpdate)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("list update queue: %v", err))
		return
	}

	for _, id := range ids {
		e.mu.Lock()
		plan := e.findLocked(id)
		if plan == nil {
			_ = e.queues.Dequeue(models.QueueUpdate, id)
			e.mu.Unlock()
			continue
		}
		if plan.RemoteID == nil {
			// Should not happen, but an update against no remote id can
			// only ever be a create
			if err := e.queues.Move(models.QueueUpdate, models.QueueCreate, id); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("requeue %s as create: %v", id, err))
			}
			e.mu.Unlock()
			continue
		}
		remoteID := *plan.RemoteID
		payload := e.translator.ToPayload(plan)
		e.mu.Unlock()

		err := e.remote.UpdatePlan(ctx, remoteID, payload)

		e.mu.Lock()
		plan = e.findLocked(id)
		if err != nil {
			if plan != nil {
				plan.Sync.MarkFailed(err.Error())
			}
			e.mu.Unlock()
			res.Errors = append(res.Errors, fmt.Sprintf("update plan %s: %v", id, err))
			continue
		}
		if plan != nil {
			plan.Sync.MarkSynced(time.Now())
		}
		if err := e.queues.Dequeue(models.QueueUpdate, id); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("dequeue update %s: %v", id, err))
		}
		e.mu.Unlock()
		res.Updated++
	}
}

// reconcileRoster merges the authority's roster into the local collection:
// remote-only plans are materialized, and plans known on both sides are
// overwritten by strictly newer remote versions unless a local edit is
// still waiting in the update queue. Local-only plans are left alone; the
// create queue owns them.
func (e *Engine) reconcileRoster(ctx context.Context, roster []remote.PlanSummary, skipRemote map[int64]bool, res *Result) {
	now := time.Now()

	for _, summary := range roster {
		if skipRemote[summary.RemoteID] {
			continue
		}

		e.mu.Lock()
		local := e.findByRemoteLocked(summary.RemoteID)
		if local != nil {
			if !summary.UpdatedAt.After(local.UpdatedAt) {
				e.mu.Unlock()
				continue
			}
			inUpdate, err := e.queues.Contains(models.QueueUpdate, local.LocalID)
			if err != nil {
				e.mu.Unlock()
				res.Errors = append(res.Errors, fmt.Sprintf("inspect update queue for %s: %v", local.LocalID, err))
				continue
			}
			if inUpdate {
				// Unsynced local edit in flight; the local version wins
				e.mu.Unlock()
				continue
			}
		}
		e.mu.Unlock()

		payload, err := e.remote.GetPlanDetail(ctx, summary.RemoteID)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("fetch plan %d: %v", summary.RemoteID, err))
			continue
		}
		incoming := e.translator.FromPayload(payload, now)

		e.mu.Lock()
		if local = e.findByRemoteLocked(summary.RemoteID); local != nil {
			// Re-check the guard: an edit may have landed while the detail
			// fetch was in flight, and the queued local version wins
			inUpdate, err := e.queues.Contains(models.QueueUpdate, local.LocalID)
			if err != nil {
				e.mu.Unlock()
				res.Errors = append(res.Errors, fmt.Sprintf("inspect update queue for %s: %v", local.LocalID, err))
				continue
			}
			if inUpdate {
				e.mu.Unlock()
				continue
			}
			// Overwrite in place, keeping the local identity stable
			incoming.LocalID = local.LocalID
			incoming.CreatedAt = local.CreatedAt
			*local = *incoming
		} else {
			e.plans = append(e.plans, incoming)
		}
		e.mu.Unlock()
		res.Pulled++
	}
}

// ProcessDeleteQueue drains only the delete queue, outside a full
// reconciliation pass. Remote not-found counts as success. It shares the
// in-flight guard with Synchronize so the two can never drain the same
// queue concurrently.
func (e *Engine) ProcessDeleteQueue(ctx context.Context) QueueResult {
	var qr QueueResult

	e.mu.Lock()
	if e.syncing {
		e.mu.Unlock()
		qr.Errors = append(qr.Errors, ErrAlreadyRunning.Error())
		return qr
	}
	e.syncing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	if !e.remote.IsReachable(ctx) {
		qr.Errors = append(qr.Errors, ErrOffline.Error())
		return qr
	}

	var res Result
	e.drainDeletes(ctx, &res)
	qr.Processed = res.Deleted
	qr.Errors = res.Errors
	qr.Failed = len(res.Errors)
	qr.Success = len(res.Errors) == 0
	return qr
}
