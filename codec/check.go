package codec

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Shaper is implemented by types whose wire object does not map one-to-one
// onto their Go fields, typically tagged unions that pick a payload variant
// from a discriminant.
//
// WireShape receives the raw top-level object and describes the fields
// expected for it.
type Shaper interface {
	WireShape(obj map[string]json.RawMessage) Shape
}

// Shape describes the wire object of a Shaper for one particular payload.
type Shape struct {
	// Of is a pointer to a struct whose fields and tags describe the object.
	Of any
	// Required names fields that Of marks optional but that this payload
	// variant requires.
	Required []string
	// Fields overrides the Go type of individual fields, keyed by wire name.
	// Each value is a zero value (or pointer to one) of the real field type.
	Fields map[string]any
}

var (
	unmarshalerType     = reflect.TypeFor[json.Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	shaperType          = reflect.TypeFor[Shaper]()
)

// wireField is one JSON member of a struct type.
type wireField struct {
	name     string
	typ      reflect.Type
	required bool
}

var fieldCache sync.Map // reflect.Type -> []wireField

// wireFields lists the JSON members of struct type t in declaration order,
// flattening embedded structs the way encoding/json does.
func wireFields(t reflect.Type) []wireField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]wireField)
	}

	var fields []wireField
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		if sf.Anonymous && name == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				fields = append(fields, wireFields(et)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if name == "" {
			name = sf.Name
		}

		optional := sf.Type.Kind() == reflect.Pointer ||
			hasOption(opts, "omitempty") || hasOption(opts, "omitzero")
		fields = append(fields, wireField{name: name, typ: sf.Type, required: !optional})
	}

	fieldCache.Store(t, fields)
	return fields
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}

// checker walks a raw JSON document alongside a Go type and reports the first
// structural problem it finds, with the path to it.
type checker struct {
	policy Policy
}

func (c *checker) value(raw json.RawMessage, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if isNull(raw) {
		return nil
	}

	pt := reflect.PointerTo(t)
	if pt.Implements(shaperType) {
		obj, err := c.object(raw, path)
		if err != nil {
			return err
		}
		shape := reflect.New(t).Interface().(Shaper).WireShape(obj)
		st := reflect.TypeOf(shape.Of)
		for st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		return c.fields(obj, st, path, shape)
	}
	if pt.Implements(unmarshalerType) || pt.Implements(textUnmarshalerType) {
		return c.leaf(raw, t, path)
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, err := c.object(raw, path)
		if err != nil {
			return err
		}
		return c.fields(obj, t, path, Shape{})

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return c.leaf(raw, t, path)
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return invalidValue(path, "expected an array", err)
		}
		for i, item := range items {
			if err := c.value(item, t.Elem(), indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		m, err := c.object(raw, path)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if err := c.value(m[k], t.Elem(), joinPath(path, k)); err != nil {
				return err
			}
		}
		return nil

	default:
		return c.leaf(raw, t, path)
	}
}

func (c *checker) fields(obj map[string]json.RawMessage, t reflect.Type, path string, shape Shape) error {
	fields := wireFields(t)

	if c.policy == Strict {
		known := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			known[f.name] = struct{}{}
		}
		var unknown []string
		for k := range obj {
			if _, ok := known[k]; !ok {
				unknown = append(unknown, k)
			}
		}
		if len(unknown) > 0 {
			slices.Sort(unknown)
			return &DecodeError{Kind: ErrUnknownField, Field: joinPath(path, unknown[0])}
		}
	}

	for _, f := range fields {
		raw, ok := obj[f.name]
		required := f.required || slices.Contains(shape.Required, f.name)
		if !ok || isNull(raw) {
			if required {
				return &DecodeError{Kind: ErrMissingRequiredField, Field: joinPath(path, f.name)}
			}
			continue
		}
		typ := f.typ
		if override, ok := shape.Fields[f.name]; ok && override != nil {
			typ = reflect.TypeOf(override)
		}
		if err := c.value(raw, typ, joinPath(path, f.name)); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) object(raw json.RawMessage, path string) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, invalidValue(path, "expected an object", err)
	}
	return obj, nil
}

// leaf decodes a scalar or self-decoding value on its own so that the error,
// if any, can be attributed to path.
func (c *checker) leaf(raw json.RawMessage, t reflect.Type, path string) error {
	if err := json.Unmarshal(raw, reflect.New(t).Interface()); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			if de.Field != "" {
				de.Field = joinPath(path, de.Field)
			} else {
				de.Field = path
			}
			return de
		}
		var tokenErr *TokenError
		if errors.As(err, &tokenErr) {
			return invalidValue(path, tokenErr.Error(), err)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return invalidValue(path, fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value), err)
		}
		return invalidValue(path, err.Error(), err)
	}
	return nil
}

func invalidValue(path, reason string, err error) *DecodeError {
	return &DecodeError{Kind: ErrInvalidValue, Field: path, Reason: reason, Err: err}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
