package codec

import "slices"

// Tokens is the closed set of wire tokens of one string enum type.
//
// Enum types delegate their MarshalText and UnmarshalText to a Tokens value so
// that unknown tokens fail in both directions instead of being passed through.
// A Tokens value is built once at package init and is read-only afterwards.
type Tokens[T ~string] struct {
	name string
	all  []T
	set  map[T]struct{}
}

// NewTokens builds the token set for an enum type. name is used in error messages.
func NewTokens[T ~string](name string, all ...T) *Tokens[T] {
	set := make(map[T]struct{}, len(all))
	for _, v := range all {
		set[v] = struct{}{}
	}
	return &Tokens[T]{name: name, all: all, set: set}
}

// Name returns the human readable enum name.
func (t *Tokens[T]) Name() string {
	return t.name
}

// All returns every token in declaration order.
func (t *Tokens[T]) All() []T {
	return slices.Clone(t.all)
}

// Contains reports whether v is a known token.
func (t *Tokens[T]) Contains(v T) bool {
	_, ok := t.set[v]
	return ok
}

// Parse converts a wire token into the enum type.
func (t *Tokens[T]) Parse(s string) (T, error) {
	v := T(s)
	if !t.Contains(v) {
		return "", &TokenError{Type: t.name, Token: s}
	}
	return v, nil
}

// Marshal returns the wire form of v.
func (t *Tokens[T]) Marshal(v T) ([]byte, error) {
	if !t.Contains(v) {
		return nil, &TokenError{Type: t.name, Token: string(v)}
	}
	return []byte(v), nil
}

// Unmarshal parses text into dst.
func (t *Tokens[T]) Unmarshal(dst *T, text []byte) error {
	v, err := t.Parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
