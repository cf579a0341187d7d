package taxonomy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medjourney/plansync/internal/db"
	"github.com/medjourney/plansync/internal/models"
)

func testService(t *testing.T) *Service {
	t.Helper()

	store, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store)
}

func TestPredefinedDisciplineNames(t *testing.T) {
	svc := testService(t)

	name, ok := svc.DisciplineName(1)
	assert.True(t, ok)
	assert.Equal(t, "Anatomia", name)

	name, ok = svc.DisciplineName(8)
	assert.True(t, ok)
	assert.Equal(t, "Clínica Médica", name)
}

func TestUserDefinedDiscipline(t *testing.T) {
	svc := testService(t)

	_, ok := svc.DisciplineName(9)
	assert.False(t, ok)

	require.NoError(t, svc.Save(&models.Discipline{
		ID:   9,
		Name: "Pediatria",
		Subjects: []models.Subject{
			{ID: 1, Name: "Neonatologia"},
		},
	}))

	name, ok := svc.DisciplineName(9)
	assert.True(t, ok)
	assert.Equal(t, "Pediatria", name)

	subName, ok := svc.SubjectName(9, 1)
	assert.True(t, ok)
	assert.Equal(t, "Neonatologia", subName)

	_, ok = svc.SubjectName(9, 2)
	assert.False(t, ok)
}

func TestSaveReservedID(t *testing.T) {
	svc := testService(t)

	err := svc.Save(&models.Discipline{ID: 3, Name: "Renamed"})
	assert.Error(t, err)

	err = svc.Save(&models.Discipline{ID: 9})
	assert.Error(t, err, "empty name must be rejected")
}

func TestRemove(t *testing.T) {
	svc := testService(t)

	require.NoError(t, svc.Save(&models.Discipline{ID: 9, Name: "Pediatria"}))
	require.NoError(t, svc.Remove(9))

	_, ok := svc.DisciplineName(9)
	assert.False(t, ok)

	assert.Error(t, svc.Remove(1), "predefined disciplines cannot be removed")
}

func TestList(t *testing.T) {
	svc := testService(t)

	discs, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, discs, models.PredefinedDisciplineMax)
}
