// Package fixture loads table-driven test cases from YAML, the way
// several of the example repos keep large test tables out of Go source
// (cuelang.org/go's own test suites lean on cue/testdata's declarative
// fixtures in the same spirit, though not via YAML specifically). It
// uses gopkg.in/yaml.v3, already a dependency of this module.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one named test case. Raw is decoded lazily by the caller into
// whatever shape that package's tests need (an Environment built from
// fakes, an expected lattice.Value's textual form, and so on) via
// Decode, keeping this package ignorant of internal/core/lattice and
// internal/core/tenv so it stays a leaf.
type Case struct {
	Name string    `yaml:"name"`
	Raw  yaml.Node `yaml:"-"`
}

type rawCase struct {
	Name string    `yaml:"name"`
	Rest yaml.Node `yaml:",inline"`
}

// Load reads a YAML file containing a top-level list of cases.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	var doc struct {
		Cases []yaml.Node `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: %s: %w", path, err)
	}

	out := make([]Case, len(doc.Cases))
	for i, node := range doc.Cases {
		var rc rawCase
		if err := node.Decode(&rc); err != nil {
			return nil, fmt.Errorf("fixture: %s: case %d: %w", path, i, err)
		}
		out[i] = Case{Name: rc.Name, Raw: node}
	}
	return out, nil
}

// Decode unmarshals the case's raw document into v.
func (c Case) Decode(v interface{}) error {
	return c.Raw.Decode(v)
}
