package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func seedDistances(t *testing.T, store *Store, entries ...models.Distance) {
	t.Helper()
	_, err := store.Distances().SetBatch(context.Background(), entries, database.BatchReplace)
	require.NoError(t, err)
}

func TestStoreHealthCheck(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Distances().Upsert(ctx, &models.Distance{StartCollege: "A", EndCollege: "B", Miles: 12}))
	require.NoError(t, store.Close())

	store, err = New(path)
	require.NoError(t, err)
	defer store.Close()

	miles, ok, err := store.Distances().Lookup(ctx, "A", "B")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12.0, miles)
	assert.Equal(t, path, store.GetDBPath())
}

func TestDistanceLookupIsDirected(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seedDistances(t, store, models.Distance{StartCollege: "A", EndCollege: "B", Miles: 5})

	miles, ok, err := store.Distances().Lookup(ctx, "A", "B")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5.0, miles)

	_, ok, err = store.Distances().Lookup(ctx, "B", "A")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDistanceColleges(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seedDistances(t, store,
		models.Distance{StartCollege: "Saddleback", EndCollege: "Irvine Valley", Miles: 4},
		models.Distance{StartCollege: "Irvine Valley", EndCollege: "Saddleback", Miles: 4},
		models.Distance{StartCollege: "Saddleback", EndCollege: "UCI", Miles: 9},
	)
	require.NoError(t, store.Souvenirs().Add(ctx, &models.Souvenir{College: "Cal Poly", Name: "Mug", Price: 8}))

	colleges, err := store.Distances().Colleges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cal Poly", "Irvine Valley", "Saddleback", "UCI"}, colleges)
}

func TestDistanceListFromSorted(t *testing.T) {
	store := setupTestStore(t)
	seedDistances(t, store,
		models.Distance{StartCollege: "A", EndCollege: "C", Miles: 30},
		models.Distance{StartCollege: "A", EndCollege: "B", Miles: 10},
		models.Distance{StartCollege: "A", EndCollege: "D", Miles: 20},
		models.Distance{StartCollege: "B", EndCollege: "A", Miles: 1},
	)

	list, err := store.Distances().ListFrom(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "B", list[0].EndCollege)
	assert.Equal(t, "D", list[1].EndCollege)
	assert.Equal(t, "C", list[2].EndCollege)
}

func TestDistanceUpsertAndDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	repo := store.Distances()

	require.NoError(t, repo.Upsert(ctx, &models.Distance{StartCollege: "A", EndCollege: "B", Miles: 5}))
	require.NoError(t, repo.Upsert(ctx, &models.Distance{StartCollege: "A", EndCollege: "B", Miles: 7}))

	miles, _, err := repo.Lookup(ctx, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, 7.0, miles)

	require.NoError(t, repo.Delete(ctx, "A", "B"))
	_, ok, err := repo.Lookup(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, repo.Delete(ctx, "A", "B"), database.ErrNotFound)
}

func TestDistanceSetBatchModes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	repo := store.Distances()

	written, err := repo.SetBatch(ctx, []models.Distance{
		{StartCollege: "A", EndCollege: "B", Miles: 5},
		{StartCollege: "B", EndCollege: "A", Miles: 6},
	}, database.BatchIgnore)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	// Ignore keeps the first value
	written, err = repo.SetBatch(ctx, []models.Distance{{StartCollege: "A", EndCollege: "B", Miles: 50}}, database.BatchIgnore)
	require.NoError(t, err)
	assert.Equal(t, 0, written)
	miles, _, _ := repo.Lookup(ctx, "A", "B")
	assert.Equal(t, 5.0, miles)

	// Replace overwrites
	written, err = repo.SetBatch(ctx, []models.Distance{{StartCollege: "A", EndCollege: "B", Miles: 50}}, database.BatchReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	miles, _, _ = repo.Lookup(ctx, "A", "B")
	assert.Equal(t, 50.0, miles)
}

func TestDistanceRejectsNegative(t *testing.T) {
	store := setupTestStore(t)
	err := store.Distances().Upsert(context.Background(), &models.Distance{StartCollege: "A", EndCollege: "B", Miles: -1})
	assert.Error(t, err)
}

func TestSouvenirLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	repo := store.Souvenirs()

	require.NoError(t, repo.Add(ctx, &models.Souvenir{College: "UCI", Name: "Sweatshirt", Price: 40}))
	require.NoError(t, repo.Add(ctx, &models.Souvenir{College: "UCI", Name: "Cap", Price: 15.5}))
	assert.ErrorIs(t, repo.Add(ctx, &models.Souvenir{College: "UCI", Name: "Cap", Price: 1}), database.ErrAlreadyExists)

	list, err := repo.List(ctx, "UCI")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cap", list[0].Name)
	assert.Equal(t, 15.5, list[0].Price)

	require.NoError(t, repo.UpdatePrice(ctx, "UCI", "Cap", 17))
	got, err := repo.Get(ctx, "UCI", "Cap")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 17.0, got.Price)

	assert.ErrorIs(t, repo.UpdatePrice(ctx, "UCI", "Pennant", 3), database.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "UCI", "Cap"))
	got, err = repo.Get(ctx, "UCI", "Cap")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, repo.Delete(ctx, "UCI", "Cap"), database.ErrNotFound)
}

func TestSouvenirSetBatch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	written, err := store.Souvenirs().SetBatch(ctx, []models.Souvenir{
		{College: "A", Name: "Mug", Price: 5},
		{College: "A", Name: "Pen", Price: 1},
		{College: "B", Name: "Mug", Price: 6},
	}, database.BatchIgnore)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	list, err := store.Souvenirs().List(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCollegeRename(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seedDistances(t, store,
		models.Distance{StartCollege: "Old", EndCollege: "B", Miles: 3},
		models.Distance{StartCollege: "B", EndCollege: "Old", Miles: 4},
	)
	require.NoError(t, store.Souvenirs().Add(ctx, &models.Souvenir{College: "Old", Name: "Mug", Price: 5}))

	require.NoError(t, store.Colleges().Rename(ctx, "Old", "New"))

	miles, ok, err := store.Distances().Lookup(ctx, "New", "B")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3.0, miles)

	miles, ok, err = store.Distances().Lookup(ctx, "B", "New")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 4.0, miles)

	souvenirs, err := store.Souvenirs().List(ctx, "New")
	require.NoError(t, err)
	assert.Len(t, souvenirs, 1)

	assert.ErrorIs(t, store.Colleges().Rename(ctx, "Missing", "Other"), database.ErrNotFound)
	assert.ErrorIs(t, store.Colleges().Rename(ctx, "New", "B"), database.ErrAlreadyExists)
}

func TestCollegeDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	seedDistances(t, store,
		models.Distance{StartCollege: "A", EndCollege: "B", Miles: 3},
		models.Distance{StartCollege: "B", EndCollege: "A", Miles: 3},
		models.Distance{StartCollege: "B", EndCollege: "C", Miles: 8},
	)
	require.NoError(t, store.Souvenirs().Add(ctx, &models.Souvenir{College: "A", Name: "Mug", Price: 5}))

	require.NoError(t, store.Colleges().Delete(ctx, "A"))

	colleges, err := store.Distances().Colleges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, colleges)

	souvenirs, err := store.Souvenirs().List(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, souvenirs)

	assert.ErrorIs(t, store.Colleges().Delete(ctx, "A"), database.ErrNotFound)
}
