package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is matched by every validation failure:
//
//	if errors.Is(err, validate.ErrInvalid) {
//	    // reply with BAD_REQUEST and the field list
//	}
var ErrInvalid = errors.New("validate: invalid value")

// Constraint names reported in FieldError.Constraint.
const (
	ConstraintRequired    = "required"
	ConstraintLength      = "length"
	ConstraintPattern     = "pattern"
	ConstraintEnum        = "enum"
	ConstraintRange       = "range"
	ConstraintURL         = "url"
	ConstraintEmail       = "email"
	ConstraintConsistency = "consistency"
	ConstraintUnknownRule = "unknown_rule"
)

// FieldError is a single constraint violation.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "developer.email" or
	// "available_entities[3].entity_id".
	Field      string `json:"field" yaml:"field"`
	Constraint string `json:"constraint" yaml:"constraint"`
	Message    string `json:"message" yaml:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every violation found in one value.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return ErrInvalid
}

// FieldPath returns the path of the first violation.
func (e Errors) FieldPath() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Field
}

// Has reports whether field failed the named constraint.
func (e Errors) Has(field, constraint string) bool {
	for _, fe := range e {
		if fe.Field == field && fe.Constraint == constraint {
			return true
		}
	}
	return false
}

// AsErrors extracts the violation list from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
