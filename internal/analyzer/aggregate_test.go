package analyzer

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

func TestAggregate_DispatchesEveryKind(t *testing.T) {
	ctx := Context{Now: refDay}
	for _, k := range Kinds() {
		res, err := Aggregate(k, ctx)
		if err != nil {
			t.Fatalf("Aggregate(%s) error: %v", k, err)
		}
		if res.Kind() != k {
			t.Errorf("Aggregate(%s).Kind() = %s", k, res.Kind())
		}
	}
}

func TestAggregate_UnknownKind(t *testing.T) {
	_, err := Aggregate("revenue", Context{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
}

func TestAggregate_PeriodOverride(t *testing.T) {
	ctx := Context{
		Now:      refDay,
		Period:   "2026-02",
		Expenses: []model.Expense{expense("e1", "2026-02-10", "30", "rent")},
	}
	res, err := Aggregate(KindExpenses, ctx)
	if err != nil {
		t.Fatal(err)
	}
	stats := res.(ExpenseStats)
	if stats.Period != "2026-02" || stats.Count != 1 {
		t.Errorf("stats = %+v, want period 2026-02 with 1 expense", stats)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("budget"); err != nil || k != KindBudget {
		t.Errorf("ParseKind(budget) = %q, %v", k, err)
	}
	if _, err := ParseKind("Budget"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(Budget) err = %v, want ErrUnknownKind", err)
	}
}

func TestKinds_ReturnsCopy(t *testing.T) {
	ks := Kinds()
	ks[0] = "mutated"
	if Kinds()[0] != KindClasses {
		t.Error("Kinds() exposes the internal slice")
	}
}
