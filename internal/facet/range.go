package facet

import "github.com/blackwell-systems/gymdesk/internal/model"

// Comparable is a value that orders itself against another value of the
// same type, returning -1, 0 or +1.
type Comparable[V any] interface {
	Compare(V) int
}

// Bounds is an inclusive interval. A nil bound is unbounded on that side;
// when both are nil the range is inactive. From after To is the empty
// interval and matches nothing.
type Bounds[V any] struct {
	From *V `json:"from,omitempty"`
	To   *V `json:"to,omitempty"`
}

// DateRange is an inclusive calendar-date interval.
type DateRange = Bounds[model.Date]

// Between returns bounds from..to. Zero dates leave the side unbounded.
func Between(from, to model.Date) DateRange {
	var r DateRange
	if !from.IsZero() {
		r.From = &from
	}
	if !to.IsZero() {
		r.To = &to
	}
	return r
}

// Active reports whether either side is bounded.
func (b Bounds[V]) Active() bool {
	return b.From != nil || b.To != nil
}

// InRange matches entities whose value falls within b.
func InRange[T any, V Comparable[V]](get func(T) V, b Bounds[V]) Facet[T] {
	return rangeFacet[T, V]{get: get, bounds: b}
}

type rangeFacet[T any, V Comparable[V]] struct {
	get    func(T) V
	bounds Bounds[V]
}

func (f rangeFacet[T, V]) Active() bool { return f.bounds.Active() }

func (f rangeFacet[T, V]) Match(e T) bool {
	from, to := f.bounds.From, f.bounds.To
	if from != nil && to != nil && (*from).Compare(*to) > 0 {
		return false
	}
	v := f.get(e)
	if from != nil && v.Compare(*from) < 0 {
		return false
	}
	if to != nil && v.Compare(*to) > 0 {
		return false
	}
	return true
}
