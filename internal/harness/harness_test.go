package harness

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario under testdata/scenarios.
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(context.Background(), scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v\ntranscript:\n%s", result.Errors, result.Transcript)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/login_rejected.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass)
}

func TestRunReportsFailedAssertions(t *testing.T) {
	scenario := &Scenario{
		Name:  "failing",
		Today: "2024-06-01",
		Seed:  true,
		Input: []string{"n"},
		Assertions: []Assertion{
			{Type: AssertOutputContains, Text: "Goodbye."},
			{Type: AssertOutputContains, Text: "Login Success!"},
			{Type: AssertOutputNotContains, Text: "Login?"},
			{Type: AssertRowCount, Table: "tickets", Count: 5},
			{Type: AssertRowCount, Table: "owners", Count: 0},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], `assertions[1]: output_contains: expected output containing "Login Success!"`)
	assert.Contains(t, result.Errors[1], "assertions[2]: output_not_contains")
	assert.Contains(t, result.Errors[1], "1 occurrence(s)")
	assert.Contains(t, result.Errors[2], "expected 5 row(s) in tickets where true, got 2")
	assert.Contains(t, result.Errors[3], "unknown table owners")
}

func TestRunWithoutSeed(t *testing.T) {
	scenario := &Scenario{
		Name:  "empty",
		Today: "2024-06-01",
		Input: []string{"y", "jwick", "password", "n"},
		Assertions: []Assertion{
			{Type: AssertOutputContains, Text: "Invalid login credentials!"},
			{Type: AssertRowCount, Table: "persons", Count: 0},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunSeedFileError(t *testing.T) {
	scenario := &Scenario{
		Name:       "broken",
		Today:      "2024-06-01",
		SeedFile:   "/nonexistent/seed.cue",
		Input:      []string{"n"},
		Assertions: []Assertion{{Type: AssertOutputContains, Text: "Goodbye."}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load seed")
}

func TestGoldenFiles(t *testing.T) {
	assert.Equal(t,
		filepath.Join("testdata", "golden", "login_rejected.golden"),
		GoldenPath("testdata/scenarios/", "login_rejected"))

	path := filepath.Join(t.TempDir(), "golden", "x.golden")
	result := &Result{Pass: true, Transcript: "Goodbye.\n"}

	_, err := CompareGolden(path, result)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, WriteGolden(path, result))
	match, err := CompareGolden(path, result)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CompareGolden(path, &Result{Transcript: "Hello.\n"})
	require.NoError(t, err)
	assert.False(t, match)
}
