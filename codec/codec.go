// Package codec encodes and decodes API model values to and from their JSON
// wire form.
//
// encoding/json does the actual conversion. On top of it this package adds
// the rules every model type shares:
//
//   - a field without omitempty (and not a pointer) is required on the wire
//   - unknown fields are rejected under the Strict policy and ignored under Lenient
//   - enum tokens outside their closed set fail instead of defaulting
//   - failures carry the dotted path of the offending field
//
// All functions are safe for concurrent use.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// Policy selects how unknown fields are treated during decoding.
type Policy int

const (
	// Lenient ignores fields the target type does not declare. Used by the
	// Integration WebSocket API, where newer drivers may send newer fields.
	Lenient Policy = iota
	// Strict rejects unknown fields with ErrUnknownField. Used by the Core REST
	// create and patch models.
	Strict
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	default:
		return "lenient"
	}
}

// PolicyProvider is implemented by model types that document a decode policy
// other than the Lenient default.
type PolicyProvider interface {
	DecodePolicy() Policy
}

// Validator is implemented by model types with field constraints.
type Validator interface {
	Validate() error
}

// fieldPather is implemented by validation errors that know which field failed.
type fieldPather interface {
	FieldPath() string
}

// Unmarshal decodes data into v using the policy declared by v's type.
//
// When v implements Validator, its constraints are checked after decoding and
// a violation is returned as a *DecodeError of kind ErrInvalidValue that also
// wraps the validation error.
//
// Parameters:
//   - data: JSON document
//   - v: Non-nil pointer to the destination value
//
// Returns:
//   - error: *DecodeError classifying the first failure, nil on success
func Unmarshal(data []byte, v any) error {
	p := Lenient
	if pp, ok := v.(PolicyProvider); ok {
		p = pp.DecodePolicy()
	}
	return UnmarshalPolicy(data, v, p)
}

// UnmarshalPolicy decodes data into v with an explicit policy, overriding the
// one v's type declares. The policy applies to the whole value graph.
//
// Parameters:
//   - data: JSON document
//   - v: Non-nil pointer to the destination value
//   - p: Decode policy, Lenient or Strict
//
// Returns:
//   - error: *DecodeError classifying the first failure, nil on success
func UnmarshalPolicy(data []byte, v any, p Policy) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &DecodeError{Kind: ErrMalformed, Reason: fmt.Sprintf("decode target must be a non-nil pointer, got %T", v)}
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &DecodeError{Kind: ErrMalformed, Reason: err.Error(), Err: err}
	}

	c := checker{policy: p}
	if err := c.value(raw, rv.Type().Elem(), ""); err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fromJSONError(err)
	}

	if val, ok := v.(Validator); ok {
		if err := val.Validate(); err != nil {
			de := &DecodeError{Kind: ErrInvalidValue, Reason: err.Error(), Err: err}
			var fp fieldPather
			if errors.As(err, &fp) {
				de.Field = fp.FieldPath()
			}
			return de
		}
	}
	return nil
}

// Marshal encodes v into its canonical wire form.
//
// Optional fields that are unset are omitted. NaN or infinite floats and enum
// values outside their token set fail with an *EncodeError naming the field.
//
// Parameters:
//   - v: Value to encode
//
// Returns:
//   - []byte: Compact JSON document
//   - error: *EncodeError wrapping ErrUnrepresentable if a value has no wire form
func Marshal(v any) ([]byte, error) {
	if err := checkEncodable(reflect.ValueOf(v), ""); err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Reason: err.Error(), Err: err}
	}
	return data, nil
}

// fromJSONError maps errors returned by encoding/json into a DecodeError.
// The structural pass catches nearly everything first, so this is mostly
// reached by custom UnmarshalJSON implementations.
func fromJSONError(err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{
			Kind:   ErrInvalidValue,
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			Err:    err,
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &DecodeError{Kind: ErrMalformed, Reason: err.Error(), Err: err}
	}
	return &DecodeError{Kind: ErrInvalidValue, Reason: err.Error(), Err: err}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
