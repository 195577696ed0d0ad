package facet

import (
	"sort"
	"strings"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// Params carries raw facet selections keyed by facet name, as they arrive
// from flags or query strings.
type Params map[string][]string

// Field builds a facet from raw string values.
type Field[T any] func(values []string) (Facet[T], error)

// Table maps facet names to field builders for one entity kind.
type Table[T any] map[string]Field[T]

// Build compiles params into a Spec. Keys the table does not know are
// ignored. Blank values are dropped before the field sees them.
func (t Table[T]) Build(params Params) (Spec[T], error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	spec := make(Spec[T], 0, len(keys))
	for _, k := range keys {
		field, ok := t[k]
		if !ok {
			continue
		}
		f, err := field(params[k])
		if err != nil {
			return nil, err
		}
		spec = append(spec, f)
	}
	return spec, nil
}

// Names returns the facet names in t, sorted.
func (t Table[T]) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// EqualField builds an Equal facet from the first non-blank value.
func EqualField[T any](get func(T) string) Field[T] {
	return func(values []string) (Facet[T], error) {
		want := ""
		if nb := nonBlank(values); len(nb) > 0 {
			want = nb[0]
		}
		return Equal(get, want), nil
	}
}

// OneOfField builds a OneOf facet from all non-blank values.
func OneOfField[T any](get func(T) string) Field[T] {
	return func(values []string) (Facet[T], error) {
		return OneOf(get, nonBlank(values)), nil
	}
}

// AnyOfField builds an AnyOf facet from all non-blank values.
func AnyOfField[T any](get func(T) []string) Field[T] {
	return func(values []string) (Facet[T], error) {
		return AnyOf(get, nonBlank(values)), nil
	}
}

// DateRangeField builds a date range from positional values [from, to].
// A missing or blank position is unbounded.
func DateRangeField[T any](get func(T) model.Date) Field[T] {
	return func(values []string) (Facet[T], error) {
		var bounds [2]model.Date
		for i := 0; i < len(values) && i < 2; i++ {
			s := strings.TrimSpace(values[i])
			if s == "" {
				continue
			}
			d, err := model.ParseDate(s)
			if err != nil {
				return nil, err
			}
			bounds[i] = d
		}
		return InRange(get, Between(bounds[0], bounds[1])), nil
	}
}

// TriStateField builds an Is facet from the first value.
func TriStateField[T any](get func(T) bool) Field[T] {
	return func(values []string) (Facet[T], error) {
		s := ""
		if len(values) > 0 {
			s = values[0]
		}
		want, err := ParseTriState(s)
		if err != nil {
			return nil, err
		}
		return Is(get, want), nil
	}
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
