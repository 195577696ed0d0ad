// Package facet evaluates composable filter facets against entities.
//
// A Spec is a list of facets combined with AND. Each facet is either active,
// in which case it narrows results, or inactive, in which case it matches
// every entity. Facets read entity values through accessor functions, so the
// same evaluator serves every entity kind.
package facet

// Facet decides whether an entity matches one filter dimension.
type Facet[T any] interface {
	// Active reports whether the facet narrows results at all.
	Active() bool

	// Match reports whether e satisfies the facet. It is only consulted
	// when Active returns true.
	Match(e T) bool
}

// Spec is a set of facets combined with logical AND.
type Spec[T any] []Facet[T]

// Matches reports whether e satisfies every active facet in s.
func (s Spec[T]) Matches(e T) bool {
	for _, f := range s {
		if f == nil || !f.Active() {
			continue
		}
		if !f.Match(e) {
			return false
		}
	}
	return true
}

// Active reports whether any facet in s is active.
func (s Spec[T]) Active() bool {
	for _, f := range s {
		if f != nil && f.Active() {
			return true
		}
	}
	return false
}

// Matches reports whether e satisfies spec.
func Matches[T any](e T, spec Spec[T]) bool {
	return spec.Matches(e)
}

// Equal matches entities whose value equals want. The facet is inactive
// when want is the zero value.
func Equal[T any, V comparable](get func(T) V, want V) Facet[T] {
	return equalFacet[T, V]{get: get, want: want}
}

type equalFacet[T any, V comparable] struct {
	get  func(T) V
	want V
}

func (f equalFacet[T, V]) Active() bool {
	var zero V
	return f.want != zero
}

func (f equalFacet[T, V]) Match(e T) bool {
	return f.get(e) == f.want
}

// OneOf matches entities whose value is in selected. An empty selection is
// inactive.
func OneOf[T any, V comparable](get func(T) V, selected []V) Facet[T] {
	return oneOfFacet[T, V]{get: get, set: newSet(selected)}
}

type oneOfFacet[T any, V comparable] struct {
	get func(T) V
	set map[V]struct{}
}

func (f oneOfFacet[T, V]) Active() bool { return len(f.set) > 0 }

func (f oneOfFacet[T, V]) Match(e T) bool {
	_, ok := f.set[f.get(e)]
	return ok
}

// AnyOf matches entities carrying at least one selected value, for
// set-valued fields such as tags. Value order is irrelevant. An empty
// selection is inactive.
func AnyOf[T any, V comparable](get func(T) []V, selected []V) Facet[T] {
	return anyOfFacet[T, V]{get: get, set: newSet(selected)}
}

type anyOfFacet[T any, V comparable] struct {
	get func(T) []V
	set map[V]struct{}
}

func (f anyOfFacet[T, V]) Active() bool { return len(f.set) > 0 }

func (f anyOfFacet[T, V]) Match(e T) bool {
	for _, v := range f.get(e) {
		if _, ok := f.set[v]; ok {
			return true
		}
	}
	return false
}

func newSet[V comparable](values []V) map[V]struct{} {
	set := make(map[V]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
