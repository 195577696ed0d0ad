// Package suggest provides the insight engine and rule types.
package suggest

import (
	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
)

// Priority levels for suggestions.
const (
	PriorityCritical = 1
	PriorityHigh     = 2
	PriorityMedium   = 3
	PriorityLow      = 4
)

// Suggestion categories.
const (
	CategoryBudget     = "budget"
	CategorySchedule   = "schedule"
	CategoryTrainers   = "trainers"
	CategoryMembership = "membership"
)

// Categories returns every suggestion category.
func Categories() []string {
	return []string{CategoryBudget, CategorySchedule, CategoryTrainers, CategoryMembership}
}

// Suggestion represents an actionable recommendation for the front desk.
type Suggestion struct {
	Category    string  `json:"category"`
	Priority    int     `json:"priority"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
}

// Thresholds tune when rules fire. A zero threshold disables the rule
// that reads it.
type Thresholds struct {
	// WarnAt is the budget percentage at which a category is nearing its limit.
	WarnAt float64 `json:"warn_at"`

	// LowAttendance is the per-class-type attendance rate below which
	// the schedule is flagged.
	LowAttendance float64 `json:"low_attendance"`

	// LowConversion is the guest conversion rate below which guests are flagged.
	LowConversion float64 `json:"low_conversion"`

	// RankDrop is how many places a trainer must fall to be flagged.
	RankDrop int `json:"rank_drop"`
}

// InsightContext provides all data needed by rules to generate
// recommendations.
type InsightContext struct {
	// Now is the reference day. Classes before it are history.
	Now model.Date `json:"now"`

	// Classes is the full schedule.
	Classes []model.GymClass `json:"-"`

	ClassStats analyzer.ClassStats   `json:"class_stats"`
	Budget     analyzer.BudgetReport `json:"budget"`
	Guests     analyzer.GuestStats   `json:"guests"`
	Ranking    scoring.Ranking       `json:"ranking"`

	Thresholds Thresholds `json:"thresholds"`
}

// Rule is a function that examines the insight context and produces
// zero or more suggestions.
type Rule func(ctx *InsightContext) []Suggestion

// NewInsightContext gathers what the rules read from a loaded dataset.
// Budget data is left empty when financials is false.
func NewInsightContext(ds *dataset.Dataset, now model.Date, ranking scoring.Ranking, th Thresholds, financials bool) *InsightContext {
	ctx := &InsightContext{
		Now:        now,
		Classes:    ds.Classes,
		ClassStats: analyzer.AnalyzeClasses(ds.Classes, now),
		Guests:     analyzer.AnalyzeGuests(ds.Guests, now),
		Ranking:    ranking,
		Thresholds: th,
	}
	if financials {
		ctx.Budget = analyzer.BudgetVsActual(ds.Expenses, ds.Categories, ds.Budgets, now.Period())
	}
	return ctx
}
