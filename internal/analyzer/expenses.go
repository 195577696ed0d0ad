package analyzer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`

	// Share is Total as a percentage of the month's spending.
	Share float64 `json:"share"`
}

// ExpenseStats summarizes one month of spending.
type ExpenseStats struct {
	Period string          `json:"period"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`

	// ByCategory is ordered by Total, largest first.
	ByCategory []CategoryTotal `json:"by_category"`
}

// Kind implements Result.
func (ExpenseStats) Kind() Kind { return KindExpenses }

// AnalyzeExpenses totals expenses dated in period (YYYY-MM) by category.
// Expenses in unknown categories are grouped under their raw ID and shown
// as Unknown.
func AnalyzeExpenses(expenses []model.Expense, categories []model.ExpenseCategory, period string) ExpenseStats {
	stats := ExpenseStats{Period: period}
	names := model.CategoryLookup(categories)

	index := make(map[string]int)
	for _, e := range expenses {
		if e.Date.Period() != period {
			continue
		}
		stats.Count++
		stats.Total = stats.Total.Add(e.Amount)

		i, ok := index[e.CategoryID]
		if !ok {
			i = len(stats.ByCategory)
			index[e.CategoryID] = i
			stats.ByCategory = append(stats.ByCategory, CategoryTotal{
				CategoryID: e.CategoryID,
				Category:   names.Name(e.CategoryID),
			})
		}
		stats.ByCategory[i].Total = stats.ByCategory[i].Total.Add(e.Amount)
		stats.ByCategory[i].Count++
	}

	for i := range stats.ByCategory {
		ct := &stats.ByCategory[i]
		if stats.Total.IsPositive() {
			ct.Share = round2(ct.Total.Div(stats.Total).Mul(hundred).InexactFloat64())
		}
	}

	sort.SliceStable(stats.ByCategory, func(i, j int) bool {
		return stats.ByCategory[i].Total.GreaterThan(stats.ByCategory[j].Total)
	})
	return stats
}
