package queue

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pending.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestStoreFIFOOrder(t *testing.T) {
	store, _ := openTestStore(t)

	for _, name := range []string{"จุดเฝ้าระวังที่ 05", "จุดเฝ้าระวังที่ 02", "จุดเฝ้าระวังที่ 11"} {
		require.NoError(t, store.Enqueue(&models.PendingReport{
			PointName: name,
			Shift:     models.ShiftEvening,
			Date:      "2024-01-10",
			Images:    []string{"data:image/jpeg;base64,aGVsbG8=", "data:image/jpeg;base64,b2s="},
			Notes:     "ทดสอบ",
		}))
	}

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	reports, err := store.All()
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "จุดเฝ้าระวังที่ 05", reports[0].PointName)
	assert.Equal(t, "จุดเฝ้าระวังที่ 02", reports[1].PointName)
	assert.Equal(t, "จุดเฝ้าระวังที่ 11", reports[2].PointName)
	assert.Len(t, reports[0].Images, 2)
	assert.False(t, reports[0].EnqueuedAt.IsZero())
}

func TestStoreRemove(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.Enqueue(&models.PendingReport{PointName: "A", Shift: models.ShiftMorning, Date: "2024-01-10", Images: []string{"x"}}))
	require.NoError(t, store.Enqueue(&models.PendingReport{PointName: "B", Shift: models.ShiftMorning, Date: "2024-01-10", Images: []string{"x"}}))

	reports, err := store.All()
	require.NoError(t, err)
	require.NoError(t, store.Remove(reports[0].ID))

	reports, err = store.All()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "B", reports[0].PointName)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pending.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Enqueue(&models.PendingReport{PointName: "A", Shift: models.ShiftAfternoon, Date: "2024-01-10", Images: []string{"x"}}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
