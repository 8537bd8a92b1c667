package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported by Marshal and Unmarshal.
//
// A *DecodeError or *EncodeError unwraps to exactly one of these, so callers
// can branch on the failure class with errors.Is():
//
//	if errors.Is(err, codec.ErrMissingRequiredField) {
//	    // translate into a BAD_REQUEST response
//	}
var (
	// ErrUnknownField is returned by strict decoding when the payload carries
	// a field the target type does not declare.
	ErrUnknownField = errors.New("codec: unknown field")

	// ErrMissingRequiredField is returned when a required field is absent or null.
	ErrMissingRequiredField = errors.New("codec: missing required field")

	// ErrInvalidValue is returned when a field value has the wrong JSON type,
	// is not a known enum token, or violates a declared constraint.
	ErrInvalidValue = errors.New("codec: invalid value")

	// ErrMalformed is returned when the payload is not well-formed JSON.
	ErrMalformed = errors.New("codec: malformed payload")

	// ErrUnrepresentable is returned when a value cannot be encoded under
	// the wire contract (NaN, infinities, unknown enum tokens).
	ErrUnrepresentable = errors.New("codec: unrepresentable value")
)

// DecodeError describes why a payload could not be decoded into a model type.
type DecodeError struct {
	// Kind is one of ErrUnknownField, ErrMissingRequiredField, ErrInvalidValue
	// or ErrMalformed.
	Kind error
	// Field is the dotted path of the offending field, e.g. "options.brightness_range"
	// or "settings[2].id". Empty for payload-level failures.
	Field  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return describe(e.Kind, e.Field, e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// EncodeError describes a value that cannot be represented on the wire.
type EncodeError struct {
	Field  string
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	return describe(ErrUnrepresentable, e.Field, e.Reason)
}

func (e *EncodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnrepresentable}
	}
	return []error{ErrUnrepresentable, e.Err}
}

// TokenError is returned by enum types when a wire token is not part of
// their closed set.
type TokenError struct {
	Type  string
	Token string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Type, e.Token)
}

func describe(kind error, field, reason string) string {
	var b strings.Builder
	b.WriteString(kind.Error())
	if field != "" {
		fmt.Fprintf(&b, " %q", field)
	}
	if reason != "" {
		b.WriteString(": ")
		b.WriteString(reason)
	}
	return b.String()
}
