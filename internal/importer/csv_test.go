package importer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/models"
	"college-trip-planner/internal/sqlite"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestReadDistances(t *testing.T) {
	input := `Saddleback College, Irvine Valley College, 7.2
"University of California, Irvine",Saddleback College,12
`
	distances, report, err := ReadDistances(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Read)
	assert.Equal(t, 2, report.Imported)
	assert.Empty(t, report.Skipped)

	require.Len(t, distances, 2)
	assert.Equal(t, models.Distance{StartCollege: "Saddleback College", EndCollege: "Irvine Valley College", Miles: 7.2}, distances[0])
	assert.Equal(t, "University of California, Irvine", distances[1].StartCollege)
}

func TestReadDistancesHeader(t *testing.T) {
	input := "start,end,distance\nA,B,3\n"

	distances, report, err := ReadDistances(strings.NewReader(input), Options{HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Read)
	require.Len(t, distances, 1)
	assert.Equal(t, 3.0, distances[0].Miles)
}

func TestReadDistancesSkipsBadRows(t *testing.T) {
	input := `A,B,3
A,C
A,D,far
,E,4
F,F,1
G,H,-2

B,A,3
`
	distances, report, err := ReadDistances(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Len(t, distances, 2)
	assert.Equal(t, 7, report.Read)
	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Skipped, 5)

	assert.Equal(t, 2, report.Skipped[0].Line)
	assert.Contains(t, report.Skipped[0].Reason, "expected 3 fields")
	assert.Equal(t, 3, report.Skipped[1].Line)
	assert.Contains(t, report.Skipped[1].Reason, "not a number")
	assert.Contains(t, report.Skipped[2].Reason, "blank")
	assert.Contains(t, report.Skipped[3].Reason, "same")
	assert.Contains(t, report.Skipped[4].Reason, "negative")
}

func TestReadSouvenirs(t *testing.T) {
	input := `UCI,Sweatshirt,$39.99
UCI, Cap ,15
UCI,Pennant,cheap
`
	souvenirs, report, err := ReadSouvenirs(strings.NewReader(input), Options{})
	require.NoError(t, err)

	require.Len(t, souvenirs, 2)
	assert.Equal(t, 39.99, souvenirs[0].Price)
	assert.Equal(t, "Cap", souvenirs[1].Name)
	assert.Equal(t, 3, report.Read)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 3, report.Skipped[0].Line)
}

func TestErrBadRecord(t *testing.T) {
	var err error = &ErrBadRecord{Line: 4, Field: "price", Value: "x", Reason: "not a number"}

	var bad *ErrBadRecord
	require.True(t, errors.As(err, &bad))
	assert.Equal(t, `line 4: price "x": not a number`, err.Error())
}

func TestImportDistances(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	report, err := ImportDistances(ctx, store, strings.NewReader("A,B,5\nB,A,6\nA,C,x\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	assert.Len(t, report.Skipped, 1)

	miles, ok, err := store.Distances().Lookup(ctx, "B", "A")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 6.0, miles)
}

func TestImportDistancesModes(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := ImportDistances(ctx, store, strings.NewReader("A,B,5\n"), Options{})
	require.NoError(t, err)

	report, err := ImportDistances(ctx, store, strings.NewReader("A,B,9\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Imported)
	miles, _, _ := store.Distances().Lookup(ctx, "A", "B")
	assert.Equal(t, 5.0, miles)

	report, err = ImportDistances(ctx, store, strings.NewReader("A,B,9\n"), Options{Mode: database.BatchReplace})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	miles, _, _ = store.Distances().Lookup(ctx, "A", "B")
	assert.Equal(t, 9.0, miles)
}

func TestImportSouvenirs(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	report, err := ImportSouvenirs(ctx, store, strings.NewReader("college,souvenir,price\nA,Mug,4.5\nA,Pen,1\n"), Options{HasHeader: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)

	list, err := store.Souvenirs().List(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
