package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// token is implemented by enum types backed by a Tokens set.
type token interface {
	Valid() bool
}

// Representer is implemented by types with a custom MarshalJSON that can only
// encode part of their value space. Marshal reports a non-nil result as an
// EncodeError at the value's field path.
type Representer interface {
	Representable() error
}

var (
	tokenType       = reflect.TypeFor[token]()
	representerType = reflect.TypeFor[Representer]()
	rawType         = reflect.TypeFor[json.RawMessage]()
	timeType        = reflect.TypeFor[time.Time]()
)

// checkEncodable walks v looking for values encoding/json would either reject
// without a usable path (NaN, ±Inf) or that must never reach the wire
// (enum values outside their token set).
func checkEncodable(v reflect.Value, path string) error {
	if !v.IsValid() {
		return nil
	}

	t := v.Type()
	if t.Kind() == reflect.String && t.Implements(tokenType) {
		if !v.Interface().(token).Valid() {
			return &EncodeError{Field: path, Reason: fmt.Sprintf("%q is not a known %s token", v.String(), t.Name())}
		}
		return nil
	}
	if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface && t.Implements(representerType) && v.CanInterface() {
		if err := v.Interface().(Representer).Representable(); err != nil {
			return &EncodeError{Field: path, Reason: err.Error()}
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return checkEncodable(v.Elem(), path)

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &EncodeError{Field: path, Reason: fmt.Sprintf("%v is not a finite number", f)}
		}
		return nil

	case reflect.Struct:
		if t == timeType {
			return nil
		}
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			fv := v.Field(i)
			name, opts, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if hasOption(opts, "omitempty") && isEmptyValue(fv) || hasOption(opts, "omitzero") && fv.IsZero() {
				continue
			}
			// Fields hidden from encoding/json belong to types with their own
			// MarshalJSON; they are reported under the enclosing path.
			fieldPath := path
			switch {
			case sf.Anonymous && name == "", name == "-":
			case name == "":
				fieldPath = joinPath(path, sf.Name)
			default:
				fieldPath = joinPath(path, name)
			}
			if err := checkEncodable(fv, fieldPath); err != nil {
				return err
			}
		}
		return nil

	case reflect.Slice, reflect.Array:
		if t == rawType || t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		for i := range v.Len() {
			if err := checkEncodable(v.Index(i), indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := checkEncodable(iter.Value(), joinPath(path, fmt.Sprint(iter.Key().Interface()))); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// isEmptyValue matches the omitempty rule of encoding/json.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
