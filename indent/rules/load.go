// Copyright © 2025 The lispindent authors

package rules

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileRule is the YAML representation of a rule.
type fileRule struct {
	Style      string `yaml:"style"`
	HeaderArgs int    `yaml:"header_args,omitempty"`
}

// Load parses a YAML rule table of the form
//
//	defun: {style: special, header_args: 2}
//	progn: {style: body}
//	thread-first: {style: align}
//
// Entries replace any default rule for the same operator.
func Load(data []byte) (*Table, error) {
	var raw map[string]fileRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "rules")
	}
	m := make(map[string]*Rule, len(raw))
	for name, fr := range raw {
		r, err := fr.rule()
		if err != nil {
			return nil, errors.Wrapf(err, "rules: %s", name)
		}
		m[name] = r
	}
	return New(m), nil
}

// LoadFile reads a YAML rule table from path.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return nil, errors.Wrap(err, "rules")
	}
	return Load(data)
}

// Merge returns a table holding t's rules overlaid with every rule in over.
func (t *Table) Merge(over *Table) *Table {
	m := make(map[string]*Rule)
	if t != nil {
		for k, v := range t.rules {
			m[k] = v
		}
	}
	if over != nil {
		for k, v := range over.rules {
			m[k] = v
		}
	}
	return New(m)
}

func (fr fileRule) rule() (*Rule, error) {
	r := &Rule{HeaderArgs: fr.HeaderArgs}
	switch fr.Style {
	case "align", "":
		r.Style = StyleAlign
	case "body":
		r.Style = StyleBody
	case "special":
		r.Style = StyleSpecial
	default:
		return nil, errors.Errorf("unknown style %q", fr.Style)
	}
	if r.HeaderArgs < 0 {
		return nil, errors.Errorf("negative header_args %d", r.HeaderArgs)
	}
	if r.Style != StyleSpecial && r.HeaderArgs != 0 {
		return nil, errors.Errorf("header_args requires special style")
	}
	return r, nil
}
