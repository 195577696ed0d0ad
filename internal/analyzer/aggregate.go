// Package analyzer computes dashboard statistics over gym records.
//
// Every reducer is a pure function of its arguments: inputs are never
// modified, and "now" is always passed in explicitly.
package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// ErrUnknownKind is returned by Aggregate for an unrecognized kind.
var ErrUnknownKind = errors.New("unknown aggregation kind")

// Kind names an aggregation.
type Kind string

const (
	KindClasses  Kind = "classes"
	KindBudget   Kind = "budget"
	KindMembers  Kind = "members"
	KindGuests   Kind = "guests"
	KindTrainers Kind = "trainers"
	KindExpenses Kind = "expenses"
)

var kinds = []Kind{KindClasses, KindBudget, KindMembers, KindGuests, KindTrainers, KindExpenses}

// Kinds returns every supported aggregation kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind validates s as an aggregation kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Context carries the records and reference time for Aggregate. Callers
// filter or window the collections beforehand; Aggregate uses them as given.
type Context struct {
	// Now is the reference day for "today", "this week" and "this month".
	Now model.Date

	// Period overrides the YYYY-MM month used by budget and expense
	// reducers. Empty means the month of Now.
	Period string

	Classes    []model.GymClass
	Members    []model.Member
	Guests     []model.Guest
	Trainers   []model.Trainer
	Expenses   []model.Expense
	Categories []model.ExpenseCategory
	Budgets    []model.ExpenseBudget
}

// Month returns the reporting period of the context.
func (c Context) Month() string {
	if c.Period != "" {
		return c.Period
	}
	return c.Now.Period()
}

// Result is the output of one aggregation.
type Result interface {
	Kind() Kind
}

// Aggregate runs the reducer named by kind over ctx.
func Aggregate(kind Kind, ctx Context) (Result, error) {
	switch kind {
	case KindClasses:
		return AnalyzeClasses(ctx.Classes, ctx.Now), nil
	case KindBudget:
		return BudgetVsActual(ctx.Expenses, ctx.Categories, ctx.Budgets, ctx.Month()), nil
	case KindMembers:
		return AnalyzeMembers(ctx.Members, ctx.Now), nil
	case KindGuests:
		return AnalyzeGuests(ctx.Guests, ctx.Now), nil
	case KindTrainers:
		return AnalyzeTrainers(ctx.Trainers), nil
	case KindExpenses:
		return AnalyzeExpenses(ctx.Expenses, ctx.Categories, ctx.Month()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Count is one bucket of a grouped count.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// sortedCounts turns a tally into buckets ordered by count desc, then key.
func sortedCounts(tally map[string]int) []Count {
	out := make([]Count, 0, len(tally))
	for k, n := range tally {
		out = append(out, Count{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// sameWeek reports whether a and b fall in the same ISO week.
func sameWeek(a, b model.Date) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}
