// Package patterns loads named (key, value) pattern sets from YAML
// fixtures, the reusable form of the literal test corpora the
// teacher's own tests embed inline (scanner/scanner_test.go,
// scanner/compile_test.go), following the YAML load/save shape
// endorses-lippycat uses for its own filter persistence
// (internal/pkg/processor/filter_persistence.go).
package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/huan086/acdat/ahocorasick"
)

// Set is the YAML structure for one named pattern fixture.
type Set struct {
	Name       string  `yaml:"name"`
	IgnoreCase bool    `yaml:"ignore_case"`
	Patterns   []Entry `yaml:"patterns"`
}

// Entry is one (key, value) pair within a Set.
type Entry struct {
	Key   string `yaml:"key"`
	Value int64  `yaml:"value"`
}

// Load reads a Set from a YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pattern file: %w", err)
	}
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing pattern YAML: %w", err)
	}
	return &set, nil
}

// Save writes a Set to a YAML file.
func Save(path string, set *Set) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshaling pattern YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing pattern file: %w", err)
	}
	return nil
}

// Builder builds an ahocorasick.Builder[int64] from a Set, the bridge
// between a YAML fixture and the core automaton.
func (s *Set) Builder() (*ahocorasick.Builder[int64], error) {
	b := ahocorasick.NewBuilder[int64](s.IgnoreCase)
	for _, e := range s.Patterns {
		if err := b.Add(e.Key, e.Value); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", e.Key, err)
		}
	}
	return b, nil
}
