// Package validate checks API model values against their field constraints.
//
// Length, pattern and format constraints come from a table (constraints.yaml,
// embedded at build time). Structural checks such as required fields, enum
// membership and numeric ranges are expressed directly by each model's
// Validate method through a Checker.
package validate

import (
	"errors"
	"fmt"
	"reflect"
)

// Enum is implemented by every wire enum type.
type Enum interface {
	Valid() bool
}

// Checker accumulates violations for one value. The zero value is not usable;
// create one with New.
type Checker struct {
	table *Table
	errs  Errors
}

// New returns a Checker backed by the default constraint table.
func New() *Checker {
	return &Checker{table: defaultTable}
}

// NewWithTable returns a Checker backed by t.
func NewWithTable(t *Table) *Checker {
	return &Checker{table: t}
}

// Add records a violation.
func (c *Checker) Add(field, constraint, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Constraint: constraint, Message: fmt.Sprintf(format, args...)})
}

// Rule applies a table rule to a field that is always present.
func (c *Checker) Rule(field, rule, value string) {
	c.errs = append(c.errs, c.table.Check(field, rule, value)...)
}

// OptionalRule applies a table rule only when value is set.
func (c *Checker) OptionalRule(field, rule string, value *string) {
	if value != nil {
		c.Rule(field, rule, *value)
	}
}

// RuleIfSet applies a table rule only when value is non-empty.
func (c *Checker) RuleIfSet(field, rule, value string) {
	if value != "" {
		c.Rule(field, rule, value)
	}
}

// Required records a violation when ok is false.
func (c *Checker) Required(field string, ok bool) {
	if !ok {
		c.Add(field, ConstraintRequired, "is required")
	}
}

// Token checks a required enum value.
func (c *Checker) Token(field string, v Enum) {
	if isEmptyToken(v) {
		c.Required(field, false)
		return
	}
	if !v.Valid() {
		c.Add(field, ConstraintEnum, "%q is not a known value", fmt.Sprint(reflect.Indirect(reflect.ValueOf(v)).Interface()))
	}
}

// OptionalToken checks an enum value when it is set.
func (c *Checker) OptionalToken(field string, v Enum) {
	if isEmptyToken(v) {
		return
	}
	c.Token(field, v)
}

// Range checks min <= v <= max.
func (c *Checker) Range(field string, v, lo, hi float64) {
	if v < lo || v > hi {
		c.Add(field, ConstraintRange, "%v is outside %v..%v", v, lo, hi)
	}
}

// Nested merges the violations of a nested value, prefixing their paths.
// A non-validation error is recorded against prefix itself.
func (c *Checker) Nested(prefix string, err error) {
	if err == nil {
		return
	}
	var errs Errors
	if !errors.As(err, &errs) {
		c.Add(prefix, ConstraintConsistency, "%v", err)
		return
	}
	for _, fe := range errs {
		switch {
		case prefix == "":
		case fe.Field == "":
			fe.Field = prefix
		case fe.Field[0] == '[':
			fe.Field = prefix + fe.Field
		default:
			fe.Field = prefix + "." + fe.Field
		}
		c.errs = append(c.errs, fe)
	}
}

// Err returns the collected violations, or nil.
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

func isEmptyToken(v Enum) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer:
		return rv.IsNil()
	}
	return false
}
