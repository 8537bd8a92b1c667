package schema

import (
	_ "embed"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed wire.yaml
var wireYAML []byte

// Contract lists the wire field names of every registered type, as
// published in the API definitions.
type Contract struct {
	Types map[string][]string `yaml:"types"`
}

// ParseContract reads a wire contract from YAML.
func ParseContract(data []byte) (*Contract, error) {
	var c Contract
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing wire contract: %w", err)
	}
	if len(c.Types) == 0 {
		return nil, fmt.Errorf("parsing wire contract: no types")
	}
	return &c, nil
}

// Mismatch describes how one type differs from the contract.
type Mismatch struct {
	Type string
	// Missing lists contract fields the Go type does not declare.
	Missing []string
	// Extra lists Go fields the contract does not know.
	Extra []string
	// Unregistered is set when the contract names a type the registry lacks.
	Unregistered bool
	// Uncontracted is set when a registered type is absent from the contract.
	Uncontracted bool
}

func (m Mismatch) String() string {
	switch {
	case m.Unregistered:
		return m.Type + ": not registered"
	case m.Uncontracted:
		return m.Type + ": not in contract"
	}
	var parts []string
	if len(m.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(m.Missing, ", "))
	}
	if len(m.Extra) > 0 {
		parts = append(parts, "extra "+strings.Join(m.Extra, ", "))
	}
	return m.Type + ": " + strings.Join(parts, "; ")
}

// Drift compares the registered types with the embedded wire contract.
// An empty result means the Go types match.
func Drift() ([]Mismatch, error) {
	c, err := ParseContract(wireYAML)
	if err != nil {
		return nil, err
	}
	return c.Drift(), nil
}

// Drift compares the registered types with c, sorted by type name.
func (c *Contract) Drift() []Mismatch {
	var out []Mismatch
	for _, name := range Names() {
		want, ok := c.Types[name]
		if !ok {
			out = append(out, Mismatch{Type: name, Uncontracted: true})
			continue
		}
		have := Fields(name)
		m := Mismatch{Type: name}
		for _, f := range want {
			if !slices.Contains(have, f) {
				m.Missing = append(m.Missing, f)
			}
		}
		for _, f := range have {
			if !slices.Contains(want, f) {
				m.Extra = append(m.Extra, f)
			}
		}
		if len(m.Missing) > 0 || len(m.Extra) > 0 {
			out = append(out, m)
		}
	}
	for name := range c.Types {
		if _, ok := types[name]; !ok {
			out = append(out, Mismatch{Type: name, Unregistered: true})
		}
	}
	slices.SortStableFunc(out, func(a, b Mismatch) int { return strings.Compare(a.Type, b.Type) })
	return out
}

// Fields returns the wire field names of the named type in declaration
// order. Slice types report the fields of their element.
func Fields(name string) []string {
	t, ok := types[name]
	if !ok {
		return nil
	}
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var fields []string
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		fname, _, _ := strings.Cut(tag, ",")
		if fname == "" {
			fname = sf.Name
		}
		fields = append(fields, fname)
	}
	return fields
}

// Required returns the wire fields of the named type that must be present.
func Required(name string) []string {
	t, ok := types[name]
	if !ok {
		return nil
	}
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var req []string
	for i := range t.NumField() {
		sf := t.Field(i)
		tag, ok := sf.Tag.Lookup("json")
		if !sf.IsExported() || !ok || tag == "-" || sf.Type.Kind() == reflect.Pointer {
			continue
		}
		fname, opts, _ := strings.Cut(tag, ",")
		if strings.Contains(opts, "omitempty") || strings.Contains(opts, "omitzero") {
			continue
		}
		req = append(req, fname)
	}
	return req
}
