// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/medjourney/plansync/internal/remote"
)

// FakeRemote is an in-memory remote.Client. It behaves like the real
// authority: assigns incrementing remote ids, stamps server-side
// timestamps, and returns remote.ErrNotFound for unknown ids. Error
// injection fields let tests fail individual operations.
type FakeRemote struct {
	mu     sync.Mutex
	nextID int64
	plans  map[int64]*remote.PlanPayload

	// Offline makes IsReachable report false.
	Offline bool

	// Error injection, applied before the operation runs.
	ListErr   error
	DetailErr error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Call counters.
	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewFakeRemote returns an empty, reachable fake authority.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{plans: make(map[int64]*remote.PlanPayload)}
}

func (f *FakeRemote) ListPlans(ctx context.Context) ([]remote.PlanSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	summaries := make([]remote.PlanSummary, 0, len(f.plans))
	for id, p := range f.plans {
		summaries = append(summaries, remote.PlanSummary{RemoteID: id, UpdatedAt: p.UpdatedAt})
	}
	return summaries, nil
}

func (f *FakeRemote) GetPlanDetail(ctx context.Context, remoteID int64) (*remote.PlanPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DetailErr != nil {
		return nil, f.DetailErr
	}
	p, ok := f.plans[remoteID]
	if !ok {
		return nil, remote.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *FakeRemote) CreatePlan(ctx context.Context, payload *remote.PlanPayload) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.CreateErr != nil {
		return 0, f.CreateErr
	}

	f.nextID++
	stored := *payload
	stored.RemoteID = f.nextID
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}
	f.plans[f.nextID] = &stored
	return f.nextID, nil
}

func (f *FakeRemote) UpdatePlan(ctx context.Context, remoteID int64, payload *remote.PlanPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if _, ok := f.plans[remoteID]; !ok {
		return remote.ErrNotFound
	}

	stored := *payload
	stored.RemoteID = remoteID
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}
	f.plans[remoteID] = &stored
	return nil
}

func (f *FakeRemote) DeletePlan(ctx context.Context, remoteID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	if _, ok := f.plans[remoteID]; !ok {
		return remote.ErrNotFound
	}
	delete(f.plans, remoteID)
	return nil
}

func (f *FakeRemote) IsReachable(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.Offline
}

// SetOffline flips connectivity.
func (f *FakeRemote) SetOffline(offline bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Offline = offline
}

// Plan returns the stored payload for a remote id, or nil.
func (f *FakeRemote) Plan(remoteID int64) *remote.PlanPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.plans[remoteID]; ok {
		copied := *p
		return &copied
	}
	return nil
}

// Seed stores a payload under the given remote id, bypassing create.
func (f *FakeRemote) Seed(remoteID int64, payload *remote.PlanPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *payload
	stored.RemoteID = remoteID
	f.plans[remoteID] = &stored
	if remoteID > f.nextID {
		f.nextID = remoteID
	}
}

// Count returns the number of stored remote plans.
func (f *FakeRemote) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.plans)
}
