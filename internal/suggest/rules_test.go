package suggest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
)

var today = model.MustParseDate("2026-03-11")

func attendees(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "m" + string(rune('a'+i%26))
	}
	return out
}

func budgetRow(name string, budget, actual int64) analyzer.BudgetRow {
	b := decimal.NewFromInt(budget)
	a := decimal.NewFromInt(actual)
	ratio, _ := a.Div(b).Mul(decimal.NewFromInt(100)).Float64()
	return analyzer.BudgetRow{
		CategoryID: strings.ToLower(name),
		Category:   name,
		Budget:     b,
		Actual:     a,
		Ratio:      ratio,
		Percentage: min(ratio, 100),
		OverBudget: ratio > 100,
	}
}

// --- OverBudget ---

func TestOverBudget_FlagsOnlyOverCategories(t *testing.T) {
	ctx := &InsightContext{
		Budget: analyzer.BudgetReport{
			Period: "2026-03",
			Rows: []analyzer.BudgetRow{
				budgetRow("Rent", 1000, 1500),
				budgetRow("Utilities", 500, 200),
			},
		},
	}
	suggestions := OverBudget(ctx)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if s.Priority != PriorityCritical {
		t.Errorf("expected priority %d, got %d", PriorityCritical, s.Priority)
	}
	if s.Category != CategoryBudget {
		t.Errorf("expected category %q, got %q", CategoryBudget, s.Category)
	}
	if !strings.Contains(s.Title, "Rent") {
		t.Errorf("expected title to contain category, got %q", s.Title)
	}
	if !strings.Contains(s.Description, "$500.00 over") {
		t.Errorf("expected description to state overspend, got %q", s.Description)
	}
	if s.ImpactScore != 50 {
		t.Errorf("ImpactScore = %v, want 50", s.ImpactScore)
	}
}

func TestOverBudget_ExactlyAtBudget(t *testing.T) {
	ctx := &InsightContext{
		Budget: analyzer.BudgetReport{Rows: []analyzer.BudgetRow{budgetRow("Rent", 1000, 1000)}},
	}
	if got := OverBudget(ctx); len(got) != 0 {
		t.Errorf("expected no suggestion at exactly 100%%, got %d", len(got))
	}
}

// --- NearingBudget ---

func TestNearingBudget_Threshold(t *testing.T) {
	ctx := &InsightContext{
		Budget: analyzer.BudgetReport{
			Period: "2026-03",
			Rows: []analyzer.BudgetRow{
				budgetRow("Rent", 1000, 900),
				budgetRow("Utilities", 1000, 800),
				budgetRow("Marketing", 1000, 1200),
			},
		},
		Thresholds: Thresholds{WarnAt: 85},
	}
	suggestions := NearingBudget(ctx)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if !strings.Contains(suggestions[0].Title, "Rent") {
		t.Errorf("expected Rent, got %q", suggestions[0].Title)
	}
	if !strings.Contains(suggestions[0].Description, "$100.00 remains") {
		t.Errorf("expected remaining amount in description, got %q", suggestions[0].Description)
	}
}

func TestNearingBudget_DisabledAtZero(t *testing.T) {
	ctx := &InsightContext{
		Budget: analyzer.BudgetReport{Rows: []analyzer.BudgetRow{budgetRow("Rent", 1000, 990)}},
	}
	if got := NearingBudget(ctx); got != nil {
		t.Errorf("expected nil with WarnAt 0, got %v", got)
	}
}

// --- WaitlistedClasses ---

func TestWaitlistedClasses_UpcomingOnly(t *testing.T) {
	ctx := &InsightContext{
		Now: today,
		Classes: []model.GymClass{
			{ID: "c1", Name: "Morning Flow", Date: today.AddDays(-1), Capacity: 2, Attendees: attendees(4)},
			{ID: "c2", Name: "Spin Blast", Date: today, StartTime: model.NewClock(18, 0), Capacity: 2, Attendees: attendees(5)},
			{ID: "c3", Name: "Core Burn", Date: today.AddDays(2), Capacity: 10, Attendees: attendees(3)},
		},
	}
	suggestions := WaitlistedClasses(ctx)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if !strings.Contains(s.Title, "Spin Blast") {
		t.Errorf("expected Spin Blast, got %q", s.Title)
	}
	if !strings.Contains(s.Description, "3 member(s) waitlisted") {
		t.Errorf("expected waitlist size in description, got %q", s.Description)
	}
	if !strings.Contains(s.Description, "18:00") {
		t.Errorf("expected start time in description, got %q", s.Description)
	}
}

// --- LowAttendance ---

func TestLowAttendance_PerClassType(t *testing.T) {
	ctx := &InsightContext{
		Now: today,
		Classes: []model.GymClass{
			{Type: model.ClassYoga, Date: today.AddDays(-3), Capacity: 10, Attendees: attendees(2)},
			{Type: model.ClassYoga, Date: today.AddDays(-2), Capacity: 10, Attendees: attendees(4)},
			{Type: model.ClassHIIT, Date: today.AddDays(-2), Capacity: 10, Attendees: attendees(9)},
			// Upcoming classes are not counted.
			{Type: model.ClassSpin, Date: today.AddDays(1), Capacity: 10},
		},
		Thresholds: Thresholds{LowAttendance: 60},
	}
	suggestions := LowAttendance(ctx)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if !strings.Contains(suggestions[0].Title, "Yoga") {
		t.Errorf("expected Yoga, got %q", suggestions[0].Title)
	}
	if !strings.Contains(suggestions[0].Description, "30%") {
		t.Errorf("expected 30%% fill rate, got %q", suggestions[0].Description)
	}
}

func TestLowAttendance_WaitlistDoesNotInflateRate(t *testing.T) {
	ctx := &InsightContext{
		Now: today,
		Classes: []model.GymClass{
			{Type: model.ClassBoxing, Date: today.AddDays(-1), Capacity: 10, Attendees: attendees(12)},
			{Type: model.ClassBoxing, Date: today.AddDays(-2), Capacity: 10},
		},
		Thresholds: Thresholds{LowAttendance: 60},
	}
	if got := LowAttendance(ctx); len(got) != 1 {
		t.Errorf("expected 50%% fill to be flagged, got %d suggestions", len(got))
	}
}

// --- TrainerRankDrops ---

func rankedFixture() scoring.Ranking {
	perf := func(classes int, attendance, feedback float64, last int) *model.Performance {
		return &model.Performance{
			ClassesCount:   classes,
			AttendanceRate: attendance,
			MemberFeedback: feedback,
			RankLastMonth:  model.IntPtr(last),
		}
	}
	return scoring.Rank([]model.Trainer{
		{ID: "t1", Name: "Avery", Performance: perf(10, 50, 3, 1)},
		{ID: "t2", Name: "Blake", Performance: perf(25, 95, 5, 3)},
		{ID: "t3", Name: "Casey", Performance: perf(20, 90, 4.5, 2)},
		{ID: "t4", Name: "Devon"},
	})
}

func TestTrainerRankDrops(t *testing.T) {
	ctx := &InsightContext{Ranking: rankedFixture(), Thresholds: Thresholds{RankDrop: 2}}
	suggestions := TrainerRankDrops(ctx)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	s := suggestions[0]
	if s.Title != "Avery dropped 2 places" {
		t.Errorf("Title = %q, want %q", s.Title, "Avery dropped 2 places")
	}
	if !strings.Contains(s.Description, "from #1 to #3") {
		t.Errorf("expected positions in description, got %q", s.Description)
	}
}

func TestTrainerRankDrops_OneStepThreshold(t *testing.T) {
	ctx := &InsightContext{Ranking: rankedFixture(), Thresholds: Thresholds{RankDrop: 1}}
	// Avery falls 2 and Casey stays at #2; only Avery moved down.
	if got := TrainerRankDrops(ctx); len(got) != 1 {
		t.Errorf("expected 1 suggestion, got %d", len(got))
	}
}

// --- UnrankedTrainers ---

func TestUnrankedTrainers(t *testing.T) {
	ctx := &InsightContext{Ranking: rankedFixture()}
	suggestions := UnrankedTrainers(ctx)
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if !strings.Contains(suggestions[0].Description, "Devon") {
		t.Errorf("expected unranked name in description, got %q", suggestions[0].Description)
	}
	if got := UnrankedTrainers(&InsightContext{}); got != nil {
		t.Errorf("expected nil with no unranked trainers, got %v", got)
	}
}

// --- LowGuestConversion ---

func TestLowGuestConversion(t *testing.T) {
	tests := []struct {
		name   string
		guests analyzer.GuestStats
		want   int
	}{
		{"below threshold", analyzer.GuestStats{TotalGuests: 10, Converted: 1, ConversionRate: 10}, 1},
		{"at threshold", analyzer.GuestStats{TotalGuests: 10, Converted: 2, ConversionRate: 20}, 0},
		{"no guests", analyzer.GuestStats{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &InsightContext{Guests: tt.guests, Thresholds: Thresholds{LowConversion: 20}}
			if got := LowGuestConversion(ctx); len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
