package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Output paths and rule names
// recur across many build edges (every derived target's path reappears as an
// input somewhere), so interning keeps the graph cheap to compare and store.
type InternedString struct {
	h unique.Handle[string]
}

// Intern creates a new InternedString from a string.
func Intern(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (is InternedString) MarshalText() ([]byte, error) {
	return []byte(is.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (is *InternedString) UnmarshalText(text []byte) error {
	is.h = unique.Make(string(text))
	return nil
}
