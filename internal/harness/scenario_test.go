package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: renew
description: "Renew an expired registration"
today: "2024-06-01"
seed: true
input: ["y", "jwick", "password", "c", "300", "x", "n"]
assertions:
  - type: output_contains
    text: "Expired!"
  - type: row_count
    table: registrations
    where: { regno: 300, expiry: "2025-06-01" }
    count: 1
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "renew", s.Name)
	assert.True(t, s.Seed)
	assert.Len(t, s.Input, 7)
	require.Len(t, s.Assertions, 2)
	assert.Equal(t, AssertRowCount, s.Assertions[1].Type)
	assert.Equal(t, 300, s.Assertions[1].Where["regno"])
	assert.Equal(t, "2025-06-01", s.Assertions[1].Where["expiry"])
}

func TestLoadScenario_ResolvesSeedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.cue"), []byte("persons: []\n"), 0644))
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
today: "2024-06-01"
seed_file: extra.cue
input: ["n"]
assertions:
  - type: output_contains
    text: Goodbye
`), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "extra.cue"), s.SeedFile)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
today: "2024-06-01"
input: ["n"]
assertion:
  - type: output_contains
    text: Goodbye
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
today: "2024-06-01"
input: ["n"]
assertions: [{type: output_contains, text: x}]
`,
			wantErr: "name is required",
		},
		{
			name: "bad today",
			content: `
name: s
today: "2024-02-30"
input: ["n"]
assertions: [{type: output_contains, text: x}]
`,
			wantErr: "today:",
		},
		{
			name: "no input",
			content: `
name: s
today: "2024-06-01"
assertions: [{type: output_contains, text: x}]
`,
			wantErr: "input list is required",
		},
		{
			name: "no assertions",
			content: `
name: s
today: "2024-06-01"
input: ["n"]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "seed and seed file",
			content: `
name: s
today: "2024-06-01"
seed: true
seed_file: /nonexistent.cue
input: ["n"]
assertions: [{type: output_contains, text: x}]
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "missing seed file",
			content: `
name: s
today: "2024-06-01"
seed_file: /nonexistent/seed.cue
input: ["n"]
assertions: [{type: output_contains, text: x}]
`,
			wantErr: "seed file not found",
		},
		{
			name: "unknown assertion type",
			content: `
name: s
today: "2024-06-01"
input: ["n"]
assertions: [{type: trace_contains, text: x}]
`,
			wantErr: `unknown assertion type "trace_contains"`,
		},
		{
			name: "text missing",
			content: `
name: s
today: "2024-06-01"
input: ["n"]
assertions: [{type: output_not_contains}]
`,
			wantErr: "text is required for output_not_contains",
		},
		{
			name: "table missing",
			content: `
name: s
today: "2024-06-01"
input: ["n"]
assertions: [{type: row_count, count: 1}]
`,
			wantErr: "table is required for row_count",
		},
		{
			name: "negative count",
			content: `
name: s
today: "2024-06-01"
input: ["n"]
assertions: [{type: row_count, table: tickets, count: -1}]
`,
			wantErr: "count must be non-negative",
		},
		{
			name: "list in where",
			content: `
name: s
today: "2024-06-01"
input: ["n"]
assertions: [{type: row_count, table: tickets, where: {tno: [1, 2]}, count: 1}]
`,
			wantErr: "where.tno must be a string or integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
