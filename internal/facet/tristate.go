package facet

import (
	"fmt"
	"strings"
)

// TriState is a boolean filter that can also be unset.
type TriState int8

// Tri-state values. Unset is the zero value and is inactive.
const (
	Unset TriState = iota
	True
	False
)

// TriStateOf converts an optional bool.
func TriStateOf(b *bool) TriState {
	switch {
	case b == nil:
		return Unset
	case *b:
		return True
	default:
		return False
	}
}

// ParseTriState parses "", "any", "true"/"yes"/"1" or "false"/"no"/"0".
func ParseTriState(s string) (TriState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return Unset, nil
	case "true", "yes", "1":
		return True, nil
	case "false", "no", "0":
		return False, nil
	}
	return Unset, fmt.Errorf("invalid boolean filter %q", s)
}

// String returns "", "true" or "false".
func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return ""
	}
}

// Is matches entities whose flag equals want. Unset is inactive.
func Is[T any](get func(T) bool, want TriState) Facet[T] {
	return triStateFacet[T]{get: get, want: want}
}

type triStateFacet[T any] struct {
	get  func(T) bool
	want TriState
}

func (f triStateFacet[T]) Active() bool { return f.want != Unset }

func (f triStateFacet[T]) Match(e T) bool {
	return f.get(e) == (f.want == True)
}
