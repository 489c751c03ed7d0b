// Package config holds the feature configuration consulted by the resolvers.
//
// A single build supports every configuration: extensions are switched at
// conversion time, not compile time.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/brilir/internal/ir"
)

// Features selects position tracking and the optional bril extensions.
type Features struct {
	Position  bool `yaml:"position" json:"position"`
	Float     bool `yaml:"float" json:"float"`
	Memory    bool `yaml:"memory" json:"memory"`
	SSA       bool `yaml:"ssa" json:"ssa"`
	Speculate bool `yaml:"speculate" json:"speculate"`
}

// Default tracks positions and enables no extensions.
func Default() Features {
	return Features{Position: true}
}

// All enables every option.
func All() Features {
	return Features{Position: true, Float: true, Memory: true, SSA: true, Speculate: true}
}

// Allows reports whether vocabulary gated by ext is enabled. Core is always allowed.
func (f Features) Allows(ext ir.Extension) bool {
	switch ext {
	case ir.Core:
		return true
	case ir.FloatExt:
		return f.Float
	case ir.MemoryExt:
		return f.Memory
	case ir.SSAExt:
		return f.SSA
	case ir.SpeculateExt:
		return f.Speculate
	default:
		return false
	}
}

// optionNames maps list names to the flag they set.
var optionNames = map[string]func(*Features){
	"position":  func(f *Features) { f.Position = true },
	"float":     func(f *Features) { f.Float = true },
	"memory":    func(f *Features) { f.Memory = true },
	"ssa":       func(f *Features) { f.SSA = true },
	"speculate": func(f *Features) { f.Speculate = true },
}

// Names returns the enabled options, sorted.
func (f Features) Names() []string {
	var names []string
	if f.Float {
		names = append(names, "float")
	}
	if f.Memory {
		names = append(names, "memory")
	}
	if f.Position {
		names = append(names, "position")
	}
	if f.SSA {
		names = append(names, "ssa")
	}
	if f.Speculate {
		names = append(names, "speculate")
	}
	sort.Strings(names)
	return names
}

// String is the canonical comma-separated option list, "none" when empty.
// It is stable and used as a cache key.
func (f Features) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseList parses a comma-separated option list such as "float,memory".
// "all" and "none" are accepted. Position tracking is off unless listed.
func ParseList(s string) (Features, error) {
	var f Features
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return f, nil
	}
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if name == "all" {
			f = All()
			continue
		}
		set, ok := optionNames[name]
		if !ok {
			return Features{}, fmt.Errorf("unknown feature %q: must be one of %v", name, KnownOptions())
		}
		set(&f)
	}
	return f, nil
}

// KnownOptions lists every recognised option name.
func KnownOptions() []string {
	names := make([]string, 0, len(optionNames))
	for name := range optionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadError reports an unreadable or invalid configuration file.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Load reads a feature configuration from a .yaml, .yml or .cue file.
// Options missing from the file keep their Default() value.
func Load(path string) (Features, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Features{}, &LoadError{Path: path, Message: fmt.Sprintf("failed to read config: %v", err)}
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		return parseYAML(path, data)
	case ".cue":
		return parseCUE(path, data)
	default:
		return Features{}, &LoadError{Path: path, Message: fmt.Sprintf("unsupported config extension %q (want .yaml, .yml or .cue)", ext)}
	}
}

func parseYAML(path string, data []byte) (Features, error) {
	f := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject typos like "flaot:"
	if err := dec.Decode(&f); err != nil {
		return Features{}, &LoadError{Path: path, Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}
	return f, nil
}

// featuresSchema closes the config struct so unknown keys are CUE errors.
const featuresSchema = `
#Features: close({
	position?:  bool
	float?:     bool
	memory?:    bool
	ssa?:       bool
	speculate?: bool
})
`

func parseCUE(path string, data []byte) (Features, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(featuresSchema)
	if err := schema.Err(); err != nil {
		return Features{}, cueLoadError(path, err)
	}

	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return Features{}, cueLoadError(path, err)
	}

	v = schema.LookupPath(cue.ParsePath("#Features")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Features{}, cueLoadError(path, err)
	}

	f := Default()
	if err := v.Decode(&f); err != nil {
		return Features{}, cueLoadError(path, err)
	}
	return f, nil
}

// cueLoadError extracts the first positioned CUE error.
func cueLoadError(path string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Path: path, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Path: path, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
