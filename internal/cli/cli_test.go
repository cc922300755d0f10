package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"college-trip-planner/internal/models"
)

// runCLI executes the root command against a fresh home directory and database
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	root.SetOut(&out)
	root.SetErr(&logs)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	distances := "A,B,5\nB,A,5\nA,C,9\nC,A,9\nB,C,10\nC,B,10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "distances.csv"), []byte(distances), 0600))

	souvenirs := "college,souvenir,price\nB,Mug,4.50\nB,Cap,12\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "souvenirs.csv"), []byte(souvenirs), 0600))

	dbPath := filepath.Join(dir, "trips.db")
	_, err := runCLI(t, dbPath, "import", "distances", filepath.Join(dir, "distances.csv"))
	require.NoError(t, err)
	_, err = runCLI(t, dbPath, "import", "souvenirs", "--header", filepath.Join(dir, "souvenirs.csv"))
	require.NoError(t, err)

	return dbPath
}

func TestPlanTable(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runCLI(t, dbPath, "plan", "A", "B", "C")
	require.NoError(t, err)
	assert.Contains(t, out, "Trip from A")
	assert.Contains(t, out, "Total distance 15.0 mi")
}

func TestPlanJSON(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runCLI(t, dbPath, "plan", "--format", "json", "C", "A", "B")
	require.NoError(t, err)

	var trip models.TripResult
	require.NoError(t, json.Unmarshal([]byte(out), &trip))
	assert.Equal(t, []string{"C", "A", "B"}, trip.Path)
	assert.Equal(t, 14.0, trip.TotalDistanceMiles)
}

func TestPlanYAMLAll(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runCLI(t, dbPath, "plan", "--all", "--format", "yaml", "--strategy", "auto", "B")
	require.NoError(t, err)

	var trip models.TripResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &trip))
	assert.Equal(t, "B", trip.Start())
	assert.Len(t, trip.Path, 3)
	assert.True(t, trip.Feasible)
}

func TestPlanErrors(t *testing.T) {
	dbPath := setupCLI(t)

	_, err := runCLI(t, dbPath, "plan", "--strategy", "guess", "A")
	assert.Error(t, err)

	_, err = runCLI(t, dbPath, "plan", "--format", "xml", "A")
	assert.Error(t, err)

	_, err = runCLI(t, dbPath, "plan", "A", "A")
	assert.Error(t, err)

	_, err = runCLI(t, dbPath, "plan", "--max-colleges", "2", "A", "B", "C")
	assert.Error(t, err)
}

func TestCollegesAndDistances(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runCLI(t, dbPath, "colleges")
	require.NoError(t, err)
	assert.Contains(t, out, "3 colleges")

	out, err = runCLI(t, dbPath, "distances", "A")
	require.NoError(t, err)
	assert.Contains(t, out, "Distances from A")
	assert.Contains(t, out, "14.0 mi")

	_, err = runCLI(t, dbPath, "distances", "set", "A", "D", "3")
	require.NoError(t, err)

	_, err = runCLI(t, dbPath, "colleges", "rename", "D", "Dee")
	require.NoError(t, err)

	out, err = runCLI(t, dbPath, "colleges")
	require.NoError(t, err)
	assert.Contains(t, out, "Dee")

	_, err = runCLI(t, dbPath, "colleges", "delete", "Dee")
	require.NoError(t, err)

	_, err = runCLI(t, dbPath, "distances", "set", "A", "B", "-4")
	assert.Error(t, err)
}

func TestSouvenirs(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := runCLI(t, dbPath, "souvenirs", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "Mug")
	assert.Contains(t, out, "$4.50")

	_, err = runCLI(t, dbPath, "souvenirs", "price", "B", "Mug", "5")
	require.NoError(t, err)
	_, err = runCLI(t, dbPath, "souvenirs", "add", "A", "Pen", "1.25")
	require.NoError(t, err)
	_, err = runCLI(t, dbPath, "souvenirs", "remove", "B", "Cap")
	require.NoError(t, err)

	out, err = runCLI(t, dbPath, "souvenirs", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "$5.00")
	assert.NotContains(t, out, "Cap")
}

func TestImportReportsSkips(t *testing.T) {
	dbPath := setupCLI(t)
	file := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(file, []byte("A,B,far\nA,B,6\n"), 0600))

	out, err := runCLI(t, dbPath, "import", "distances", "--replace", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 distances")
	assert.Contains(t, out, "line 1")
}
