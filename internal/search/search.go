// Package search implements free-text matching over entity fields.
package search

import "strings"

// Field is one searchable attribute of an entity.
type Field[T any] struct {
	Name  string
	Value func(T) string

	// Raw fields compare the term exactly as typed against the unmodified
	// value, with no case folding and no punctuation stripping. Phone
	// numbers are matched this way.
	Raw bool
}

// Fields is the set of attributes a term is matched against.
type Fields[T any] []Field[T]

// Text returns a case-insensitive field.
func Text[T any](name string, get func(T) string) Field[T] {
	return Field[T]{Name: name, Value: get}
}

// Phone returns a raw field: "555-01" matches "555-0192" but "55501" does not.
func Phone[T any](name string, get func(T) string) Field[T] {
	return Field[T]{Name: name, Value: get, Raw: true}
}

// Blank reports whether term disables search.
func Blank(term string) bool {
	return strings.TrimSpace(term) == ""
}

// Match reports whether term occurs in any of the fields of e. A blank term
// matches everything. The term itself is not trimmed.
func Match[T any](e T, term string, fields Fields[T]) bool {
	if Blank(term) {
		return true
	}
	lower := strings.ToLower(term)
	for _, f := range fields {
		v := f.Value(e)
		if f.Raw {
			if strings.Contains(v, term) {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(v), lower) {
			return true
		}
	}
	return false
}

// Only returns the subset of fields whose names are listed, in the order
// they appear in fields. Unknown names are ignored. With no names it
// returns fields unchanged.
func (fields Fields[T]) Only(names ...string) Fields[T] {
	if len(names) == 0 {
		return fields
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(n)] = true
	}
	out := make(Fields[T], 0, len(fields))
	for _, f := range fields {
		if want[strings.ToLower(f.Name)] {
			out = append(out, f)
		}
	}
	return out
}
