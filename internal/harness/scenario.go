package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/brilir/internal/config"
	"github.com/roach88/brilir/internal/convert"
)

// Scenario defines one conversion check.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the bril JSON input. Relative paths are resolved against the
	// scenario file's directory by LoadScenario.
	Program string `yaml:"program"`

	// Features lists option names as accepted by config.ParseList.
	// Absent means config.Default(); [none] disables everything.
	Features []string `yaml:"features,omitempty"`

	// Expect is the required outcome.
	Expect Expect `yaml:"expect"`

	// Golden enables snapshot comparison of the outcome.
	Golden bool `yaml:"golden,omitempty"`
}

// Expect is exactly one of OK or Error.
type Expect struct {
	OK    bool         `yaml:"ok,omitempty"`
	Error *ExpectError `yaml:"error,omitempty"`
}

// ExpectError names the failure kind (e.g. "InvalidValueOps").
// When Message is set the full display text must match exactly.
type ExpectError struct {
	Kind    string `yaml:"kind"`
	Message string `yaml:"message,omitempty"`
}

// FeatureSet returns the configuration the scenario runs under.
func (s *Scenario) FeatureSet() (config.Features, error) {
	if s.Features == nil {
		return config.Default(), nil
	}
	return config.ParseList(strings.Join(s.Features, ","))
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Program != "" && !filepath.IsAbs(scenario.Program) {
		scenario.Program = filepath.Join(filepath.Dir(path), scenario.Program)
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

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Program == "" {
		return fmt.Errorf("program is required")
	}
	if _, err := os.Stat(s.Program); os.IsNotExist(err) {
		return fmt.Errorf("program file not found: %s", s.Program)
	}

	if _, err := s.FeatureSet(); err != nil {
		return fmt.Errorf("features: %w", err)
	}

	switch {
	case s.Expect.OK && s.Expect.Error != nil:
		return fmt.Errorf("expect: ok and error are mutually exclusive")
	case !s.Expect.OK && s.Expect.Error == nil:
		return fmt.Errorf("expect: one of ok or error is required")
	case s.Expect.Error != nil:
		if s.Expect.Error.Kind == "" {
			return fmt.Errorf("expect.error: kind is required")
		}
		if _, ok := convert.ParseKind(s.Expect.Error.Kind); !ok {
			return fmt.Errorf("expect.error: unknown kind %q", s.Expect.Error.Kind)
		}
	}

	return nil
}

// FindScenarios returns the YAML files under dir, sorted by path.
// A non-empty filter is a glob matched against the file name without extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
