package analyzer

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

var hundred = decimal.NewFromInt(100)

// BudgetRow compares one category's spending with its budget.
type BudgetRow struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Actual     decimal.Decimal `json:"actual"`

	// Ratio is Actual / Budget * 100, unclamped.
	Ratio float64 `json:"ratio"`

	// Percentage is Ratio clamped to [0, 100] for display.
	Percentage float64 `json:"percentage"`

	// OverBudget is true when Ratio exceeds 100.
	OverBudget bool `json:"over_budget"`
}

// Remaining returns how much budget is left; negative when over budget.
func (r BudgetRow) Remaining() decimal.Decimal {
	return r.Budget.Sub(r.Actual)
}

// BudgetReport is the budget-vs-actual result for one month.
type BudgetReport struct {
	Period string      `json:"period"`
	Rows   []BudgetRow `json:"rows"`

	TotalBudget decimal.Decimal `json:"total_budget"`
	TotalActual decimal.Decimal `json:"total_actual"`

	// OverBudgetCount is the number of rows with OverBudget set.
	OverBudgetCount int `json:"over_budget_count"`
}

// Kind implements Result.
func (BudgetReport) Kind() Kind { return KindBudget }

// BudgetVsActual compares spending in period (YYYY-MM) with each category's
// budget. Categories without a budget for the period, or with a budget
// amount <= 0, are left out of the report. Rows are ordered by Percentage,
// highest first, keeping category order on ties.
func BudgetVsActual(expenses []model.Expense, categories []model.ExpenseCategory, budgets []model.ExpenseBudget, period string) BudgetReport {
	report := BudgetReport{Period: period}
	names := model.CategoryLookup(categories)

	actual := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.Date.Period() != period {
			continue
		}
		actual[e.CategoryID] = actual[e.CategoryID].Add(e.Amount)
	}

	for _, id := range budgetCategoryOrder(categories, budgets) {
		budget, ok := BudgetFor(budgets, id, period)
		if !ok || !budget.IsPositive() {
			continue
		}

		spent := actual[id]
		ratio := spent.Div(budget).Mul(hundred).InexactFloat64()
		row := BudgetRow{
			CategoryID: id,
			Category:   names.Name(id),
			Budget:     budget,
			Actual:     spent,
			Ratio:      ratio,
			Percentage: clampPercent(ratio),
			OverBudget: ratio > 100,
		}
		if row.OverBudget {
			report.OverBudgetCount++
		}
		report.TotalBudget = report.TotalBudget.Add(budget)
		report.TotalActual = report.TotalActual.Add(spent)
		report.Rows = append(report.Rows, row)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Percentage > report.Rows[j].Percentage
	})
	return report
}

// BudgetFor returns the budget amount for category in period. A budget for
// the exact period wins over one with an empty period.
func BudgetFor(budgets []model.ExpenseBudget, categoryID, period string) (decimal.Decimal, bool) {
	var fallback decimal.Decimal
	found := false
	for _, b := range budgets {
		if b.CategoryID != categoryID {
			continue
		}
		if b.Period == period {
			return b.Amount, true
		}
		if b.Period == "" && !found {
			fallback = b.Amount
			found = true
		}
	}
	return fallback, found
}

// budgetCategoryOrder lists category IDs in category order, followed by
// budgeted IDs with no category record.
func budgetCategoryOrder(categories []model.ExpenseCategory, budgets []model.ExpenseBudget) []string {
	seen := make(map[string]bool, len(categories))
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		if !seen[c.ID] {
			seen[c.ID] = true
			ids = append(ids, c.ID)
		}
	}
	for _, b := range budgets {
		if !seen[b.CategoryID] {
			seen[b.CategoryID] = true
			ids = append(ids, b.CategoryID)
		}
	}
	return ids
}

// UtilizationPercent returns the overall spend percentage of the report,
// clamped for display.
func (r BudgetReport) UtilizationPercent() float64 {
	if !r.TotalBudget.IsPositive() {
		return 0
	}
	return clampPercent(math.Round(r.TotalActual.Div(r.TotalBudget).Mul(hundred).InexactFloat64()))
}
