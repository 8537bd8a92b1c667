package validate

import (
	_ "embed"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Supported values of Rule.Format.
const (
	FormatURL   = "url"
	FormatEmail = "email"
)

//go:embed constraints.yaml
var defaultTableYAML []byte

var defaultTable = mustParseTable(defaultTableYAML)

// Rule constrains one kind of string field.
type Rule struct {
	Min     int    `yaml:"min,omitempty"`
	Max     int    `yaml:"max,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
	Format  string `yaml:"format,omitempty"`

	re *regexp.Regexp
}

// Table is a set of named rules plus the regular expressions they refer to.
// A Table is read-only once parsed.
type Table struct {
	Patterns map[string]string `yaml:"patterns"`
	Rules    map[string]*Rule  `yaml:"rules"`
}

// DefaultTable returns the embedded constraint table used by every model type.
func DefaultTable() *Table {
	return defaultTable
}

// ParseTable reads a constraint table from YAML and compiles its patterns.
//
// Parameters:
//   - data: YAML document with patterns and rules sections
//
// Returns:
//   - *Table: Parsed table with compiled patterns
//   - error: If the YAML is malformed or a pattern or rule is invalid
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing constraint table: %w", err)
	}

	compiled := make(map[string]*regexp.Regexp, len(t.Patterns))
	for name, expr := range t.Patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", name, err)
		}
		compiled[name] = re
	}

	for name, r := range t.Rules {
		if r == nil {
			return nil, fmt.Errorf("rule %q: empty definition", name)
		}
		if r.Max > 0 && r.Min > r.Max {
			return nil, fmt.Errorf("rule %q: min %d exceeds max %d", name, r.Min, r.Max)
		}
		if r.Pattern != "" {
			re, ok := compiled[r.Pattern]
			if !ok {
				return nil, fmt.Errorf("rule %q: unknown pattern %q", name, r.Pattern)
			}
			r.re = re
		}
		switch r.Format {
		case "", FormatURL, FormatEmail:
		default:
			return nil, fmt.Errorf("rule %q: unknown format %q", name, r.Format)
		}
	}
	return &t, nil
}

func mustParseTable(data []byte) *Table {
	t, err := ParseTable(data)
	if err != nil {
		panic(fmt.Sprintf("embedded constraint table: %v", err))
	}
	return t
}

// Rule returns the named rule.
func (t *Table) Rule(name string) (*Rule, bool) {
	r, ok := t.Rules[name]
	return r, ok
}

// Names returns the rule names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Rules))
	for name := range t.Rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Check applies the named rule to value and returns every violation.
//
// Parameters:
//   - field: Field path reported in the violations
//   - rule: Rule name in the table
//   - value: String value to check
//
// Returns:
//   - []FieldError: Violations, empty when value satisfies the rule
func (t *Table) Check(field, rule, value string) []FieldError {
	r, ok := t.Rules[rule]
	if !ok {
		return []FieldError{{Field: field, Constraint: ConstraintUnknownRule, Message: fmt.Sprintf("no rule named %q", rule)}}
	}
	return r.check(field, value)
}

func (r *Rule) check(field, value string) []FieldError {
	var errs []FieldError

	n := utf8.RuneCountInString(value)
	switch {
	case r.Max > 0 && r.Min > 0 && (n < r.Min || n > r.Max):
		errs = append(errs, FieldError{Field: field, Constraint: ConstraintLength,
			Message: fmt.Sprintf("length %d is outside %d..%d characters", n, r.Min, r.Max)})
	case r.Max > 0 && n > r.Max:
		errs = append(errs, FieldError{Field: field, Constraint: ConstraintLength,
			Message: fmt.Sprintf("length %d exceeds %d characters", n, r.Max)})
	case r.Min > 0 && n < r.Min:
		errs = append(errs, FieldError{Field: field, Constraint: ConstraintLength,
			Message: fmt.Sprintf("length %d is below %d characters", n, r.Min)})
	}

	if r.re != nil && value != "" && !r.re.MatchString(value) {
		errs = append(errs, FieldError{Field: field, Constraint: ConstraintPattern,
			Message: fmt.Sprintf("does not match %s", r.re.String())})
	}

	if value != "" {
		switch r.Format {
		case FormatURL:
			if !isAbsoluteURL(value) {
				errs = append(errs, FieldError{Field: field, Constraint: ConstraintURL, Message: "must be an absolute URL"})
			}
		case FormatEmail:
			if !isEmail(value) {
				errs = append(errs, FieldError{Field: field, Constraint: ConstraintEmail, Message: "must be an email address"})
			}
		}
	}
	return errs
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
