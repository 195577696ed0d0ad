package query

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
)

// ErrUnknownSortColumn is returned when a sort column is not in the table.
var ErrUnknownSortColumn = errors.New("unknown sort column")

// Comparator orders two entities, returning -1, 0 or +1.
type Comparator[T any] func(a, b T) int

// SortTable maps column names to comparators for one entity kind.
type SortTable[T any] map[string]Comparator[T]

// Columns returns the sortable column names, sorted.
func (t SortTable[T]) Columns() []string {
	cols := make([]string, 0, len(t))
	for k := range t {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	return cols
}

// Sort returns a copy of items ordered by column. The sort is stable, so
// equal rows keep their input order in both directions. An empty column
// returns an unchanged copy.
func Sort[T any](items []T, table SortTable[T], column string, desc bool) ([]T, error) {
	out := slices.Clone(items)
	if column == "" {
		return out, nil
	}
	less, ok := table[column]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownSortColumn, column, strings.Join(table.Columns(), ", "))
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if desc {
			return less(b, a)
		}
		return less(a, b)
	})
	return out, nil
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// MemberSorts are the sortable member columns.
var MemberSorts = SortTable[model.Member]{
	"name":   func(a, b model.Member) int { return foldCompare(a.Name, b.Name) },
	"joined": func(a, b model.Member) int { return a.JoinDate.Compare(b.JoinDate) },
	"status": func(a, b model.Member) int { return cmp.Compare(a.MembershipStatus, b.MembershipStatus) },
	"type":   func(a, b model.Member) int { return cmp.Compare(a.MembershipType, b.MembershipType) },
}

// ClassSorts are the sortable class columns.
var ClassSorts = SortTable[model.GymClass]{
	"name": func(a, b model.GymClass) int { return foldCompare(a.Name, b.Name) },
	"schedule": func(a, b model.GymClass) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime, b.StartTime)
	},
	"capacity": func(a, b model.GymClass) int { return cmp.Compare(a.Capacity, b.Capacity) },
	"booked":   func(a, b model.GymClass) int { return cmp.Compare(len(a.Attendees), len(b.Attendees)) },
}

// GuestSorts are the sortable guest columns.
var GuestSorts = SortTable[model.Guest]{
	"name":   func(a, b model.Guest) int { return foldCompare(a.Name, b.Name) },
	"visit":  func(a, b model.Guest) int { return a.VisitDate.Compare(b.VisitDate) },
	"status": func(a, b model.Guest) int { return cmp.Compare(a.Status, b.Status) },
}

// TrainerSorts are the sortable trainer columns. Trainers without a
// performance record sort as score 0.
var TrainerSorts = SortTable[model.Trainer]{
	"name": func(a, b model.Trainer) int { return foldCompare(a.Name, b.Name) },
	"score": func(a, b model.Trainer) int {
		return cmp.Compare(scoring.ScoreOf(a), scoring.ScoreOf(b))
	},
}
