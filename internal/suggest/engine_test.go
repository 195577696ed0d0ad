package suggest

import (
	"testing"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

// --- Engine.Run ---

func TestEngineRun_EmptyContext(t *testing.T) {
	engine := NewEngine()
	suggestions := engine.Run(&InsightContext{})
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions for empty context, got %d", len(suggestions))
	}
}

func TestEngineRun_ReturnsSortedByImpactScore(t *testing.T) {
	engine := NewEngine()
	ctx := &InsightContext{
		Now: today,
		Classes: []model.GymClass{
			{Name: "Spin Blast", Type: model.ClassSpin, Date: today.AddDays(1), Capacity: 2, Attendees: attendees(6)},
			{Name: "Morning Flow", Type: model.ClassYoga, Date: today.AddDays(-1), Capacity: 20, Attendees: attendees(2)},
		},
		Budget: analyzer.BudgetReport{
			Period: "2026-03",
			Rows: []analyzer.BudgetRow{
				budgetRow("Rent", 1000, 1400),
				budgetRow("Utilities", 1000, 900),
			},
		},
		Guests:     analyzer.GuestStats{TotalGuests: 10, ConversionRate: 0},
		Ranking:    rankedFixture(),
		Thresholds: Thresholds{WarnAt: 85, LowAttendance: 60, LowConversion: 20, RankDrop: 2},
	}
	suggestions := engine.Run(ctx)
	if len(suggestions) < 6 {
		t.Fatalf("expected at least 6 suggestions, got %d", len(suggestions))
	}
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].ImpactScore > suggestions[i-1].ImpactScore {
			t.Errorf("suggestions not sorted: index %d (%.2f) > index %d (%.2f)",
				i, suggestions[i].ImpactScore, i-1, suggestions[i-1].ImpactScore)
		}
	}
	if suggestions[0].Category != CategoryBudget {
		t.Errorf("expected over-budget suggestion first, got %q", suggestions[0].Title)
	}
}

func TestNewEngineWith_RunsOnlyGivenRules(t *testing.T) {
	engine := NewEngineWith(UnrankedTrainers)
	ctx := &InsightContext{
		Ranking:    rankedFixture(),
		Guests:     analyzer.GuestStats{TotalGuests: 10},
		Thresholds: Thresholds{LowConversion: 20},
	}
	suggestions := engine.Run(ctx)
	if len(suggestions) != 1 || suggestions[0].Category != CategoryTrainers {
		t.Errorf("expected only the unranked suggestion, got %v", suggestions)
	}
}

// --- RankSuggestions ---

func TestRankSuggestions_TiesBreakOnPriority(t *testing.T) {
	in := []Suggestion{
		{Title: "a", Priority: PriorityLow, ImpactScore: 5},
		{Title: "b", Priority: PriorityHigh, ImpactScore: 5},
		{Title: "c", Priority: PriorityHigh, ImpactScore: 5},
		{Title: "d", Priority: PriorityLow, ImpactScore: 9},
	}
	got := RankSuggestions(in)
	want := []string{"d", "b", "c", "a"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, w)
		}
	}
	if in[0].Title != "a" {
		t.Error("RankSuggestions modified its input")
	}
}

// --- ComputeImpact ---

func TestComputeImpact(t *testing.T) {
	if got := ComputeImpact(10, 0.5, 4, 2); got != 10 {
		t.Errorf("ComputeImpact = %v, want 10", got)
	}
	if got := ComputeImpact(10, 1, 1, 0); got != 0 {
		t.Errorf("ComputeImpact with zero effort = %v, want 0", got)
	}
}

func TestTop(t *testing.T) {
	s := []Suggestion{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	if got := Top(s, 2); len(got) != 2 {
		t.Errorf("Top(2) len = %d, want 2", len(got))
	}
	if got := Top(s, 0); len(got) != 3 {
		t.Errorf("Top(0) len = %d, want 3", len(got))
	}
}

func TestFilterCategory(t *testing.T) {
	s := []Suggestion{
		{Title: "a", Category: CategoryBudget},
		{Title: "b", Category: CategorySchedule},
		{Title: "c", Category: CategoryBudget},
	}
	got := FilterCategory(s, CategoryBudget)
	if len(got) != 2 || got[0].Title != "a" || got[1].Title != "c" {
		t.Errorf("FilterCategory(budget) = %+v, want a, c", got)
	}
	if got := FilterCategory(s, CategoryTrainers); len(got) != 0 {
		t.Errorf("FilterCategory(trainers) len = %d, want 0", len(got))
	}
}

func TestCategories(t *testing.T) {
	if got := len(Categories()); got != 4 {
		t.Errorf("len(Categories()) = %d, want 4", got)
	}
}
