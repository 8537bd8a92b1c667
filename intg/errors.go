package intg

import (
	"errors"
	"fmt"
)

// ErrImmutableField is returned by Apply when an update changes a field that
// is fixed once the record exists.
var ErrImmutableField = errors.New("intg: field cannot be updated")

func immutable(field string) error {
	return fmt.Errorf("%w: %s", ErrImmutableField, field)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
