package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/registry/internal/domain"
)

// Scenario is a scripted operator session and what it should leave behind.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Today pins the service clock, formatted YYYY-MM-DD.
	Today string `yaml:"today"`

	// Seed loads the embedded demonstration seed before the session.
	Seed bool `yaml:"seed,omitempty"`

	// SeedFile loads a CUE seed file instead. Relative paths are resolved
	// against the scenario file's directory.
	SeedFile string `yaml:"seed_file,omitempty"`

	// Input is fed to the session one line per entry.
	Input []string `yaml:"input"`

	Assertions []Assertion `yaml:"assertions"`
}

// Assertion is a check made after the session ends.
type Assertion struct {
	// Type is one of output_contains, output_not_contains, row_count.
	Type string `yaml:"type"`

	// Text is the transcript fragment (output_contains, output_not_contains).
	Text string `yaml:"text,omitempty"`

	// Table is a listing table (row_count).
	Table string `yaml:"table,omitempty"`

	// Where holds equality filters (row_count). Values must be strings
	// or integers.
	Where map[string]any `yaml:"where,omitempty"`

	// Count is the expected number of rows (row_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains    = "output_contains"
	AssertOutputNotContains = "output_not_contains"
	AssertRowCount          = "row_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.SeedFile != "" && !filepath.IsAbs(scenario.SeedFile) {
		scenario.SeedFile = filepath.Join(filepath.Dir(path), scenario.SeedFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Today == "" {
		return fmt.Errorf("today is required")
	}
	if _, err := domain.ParseDate(s.Today); err != nil {
		return fmt.Errorf("today: %w", err)
	}
	if s.Seed && s.SeedFile != "" {
		return fmt.Errorf("seed and seed_file are mutually exclusive")
	}
	if s.SeedFile != "" {
		if _, err := os.Stat(s.SeedFile); os.IsNotExist(err) {
			return fmt.Errorf("seed file not found: %s", s.SeedFile)
		}
	}
	if len(s.Input) == 0 {
		return fmt.Errorf("input list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertOutputContains, AssertOutputNotContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertRowCount:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for row_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for row_count", index)
		}
		for field, v := range a.Where {
			switch v.(type) {
			case string, int:
			default:
				return fmt.Errorf("assertions[%d]: where.%s must be a string or integer", index, field)
			}
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
