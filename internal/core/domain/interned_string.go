package domain

import "unique"

// InternedString is a canonical handle for a label component. Every label
// naming the same package shares one handle, so comparing labels compares
// pointers instead of strings.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

func (is InternedString) String() string { return is.h.Value() }

// Value returns the handle itself.
func (is InternedString) Value() unique.Handle[string] { return is.h }

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.h.Value()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
