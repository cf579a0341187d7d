package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeProgress(t *testing.T) {
	disc := PlanDiscipline{
		ID:   1,
		Name: "Anatomia",
		Subjects: []PlanSubject{
			{ID: 1, Completed: true},
			{ID: 2, Completed: false},
			{ID: 3, Completed: true},
			{ID: 4, Completed: false},
		},
	}

	disc.RecomputeProgress()
	assert.Equal(t, 50, disc.Progress)
	assert.False(t, disc.Completed)

	for i := range disc.Subjects {
		disc.Subjects[i].Completed = true
	}
	disc.RecomputeProgress()
	assert.Equal(t, 100, disc.Progress)
	assert.True(t, disc.Completed)
}

func TestRecomputeProgressNoSubjects(t *testing.T) {
	disc := PlanDiscipline{ID: 1, Progress: 80, Completed: true}
	disc.RecomputeProgress()
	assert.Equal(t, 0, disc.Progress)
	assert.False(t, disc.Completed)
}

func TestSyncStatusTransitions(t *testing.T) {
	var s SyncStatus
	assert.Equal(t, "local", s.State())

	s.MarkPending()
	assert.Equal(t, "pending", s.State())
	assert.True(t, s.PendingSync)
	assert.False(t, s.Synced)

	at := time.Now()
	s.MarkSynced(at)
	assert.Equal(t, "synced", s.State())
	require.NotNil(t, s.LastSyncedAt)
	assert.Equal(t, at, *s.LastSyncedAt)
	assert.Empty(t, s.ErrorMessage)

	s.MarkFailed("server rejected plan")
	assert.Equal(t, "failed", s.State())
	assert.Equal(t, "server rejected plan", s.ErrorMessage)
	// A failure does not erase the last successful sync time
	require.NotNil(t, s.LastSyncedAt)
	assert.Equal(t, at, *s.LastSyncedAt)
}

func TestStudyPlanClone(t *testing.T) {
	remoteID := int64(42)
	start := time.Now()
	plan := &StudyPlan{
		LocalID:   "abc",
		RemoteID:  &remoteID,
		Name:      "original",
		StartDate: &start,
		Disciplines: []PlanDiscipline{
			{ID: 1, Name: "Anatomia", Subjects: []PlanSubject{{ID: 1, Name: "Ossos"}}},
		},
		Sessions: []StudySession{{ID: "s1", Title: "revisão"}},
	}

	clone := plan.Clone()
	clone.Name = "changed"
	*clone.RemoteID = 99
	clone.Disciplines[0].Subjects[0].Name = "changed"
	clone.Sessions[0].Title = "changed"

	assert.Equal(t, "original", plan.Name)
	assert.Equal(t, int64(42), *plan.RemoteID)
	assert.Equal(t, "Ossos", plan.Disciplines[0].Subjects[0].Name)
	assert.Equal(t, "revisão", plan.Sessions[0].Title)
}

func TestStudyPlanValidate(t *testing.T) {
	plan := &StudyPlan{}
	assert.ErrorIs(t, plan.Validate(), ErrPlanNameRequired)

	plan.Name = "plano"
	assert.ErrorIs(t, plan.Validate(), ErrPlanNoDisciplines)

	plan.Disciplines = []PlanDiscipline{{ID: 0}}
	assert.ErrorIs(t, plan.Validate(), ErrInvalidDiscipline)

	plan.Disciplines = []PlanDiscipline{{ID: 3}}
	assert.NoError(t, plan.Validate())
}

func TestStudyPlanLookups(t *testing.T) {
	plan := &StudyPlan{
		Disciplines: []PlanDiscipline{{ID: 1}, {ID: 5}},
		Sessions:    []StudySession{{ID: "s1"}},
	}

	require.NotNil(t, plan.Discipline(5))
	assert.Nil(t, plan.Discipline(9))
	require.NotNil(t, plan.Session("s1"))
	assert.Nil(t, plan.Session("s2"))
	assert.False(t, plan.IsSyncedRemotely())

	id := int64(7)
	plan.RemoteID = &id
	assert.True(t, plan.IsSyncedRemotely())
}
