// Package query filters, sorts and pages entity directories.
//
// Run is the one filtering primitive: a stable, pure filter combining a
// free-text term with a facet spec. The per-kind helpers (Members, Classes,
// Guests, Trainers) bind Run to each entity kind's search fields and facet
// accessor table.
package query

import (
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/search"
)

// Run returns the entities that match term on any of fields and satisfy
// spec. Survivors keep their input order. entities is never modified and the
// result never aliases it.
func Run[T any](entities []T, term string, fields search.Fields[T], spec facet.Spec[T]) []T {
	out := make([]T, 0, len(entities))
	for _, e := range entities {
		if !search.Match(e, term, fields) {
			continue
		}
		if !spec.Matches(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// strs converts a slice of string-kinded values to plain strings.
func strs[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
