package suggest

import "sort"

// RankSuggestions sorts suggestions by ImpactScore in descending order.
// Equal scores fall back to priority, then keep rule order.
func RankSuggestions(suggestions []Suggestion) []Suggestion {
	sorted := make([]Suggestion, len(suggestions))
	copy(sorted, suggestions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ImpactScore != sorted[j].ImpactScore {
			return sorted[i].ImpactScore > sorted[j].ImpactScore
		}
		return sorted[i].Priority < sorted[j].Priority
	})
	return sorted
}

// ComputeImpact calculates an impact score for a suggestion.
// Formula: (affected * severity * gain) / effort
//
// Parameters:
//   - affected: number of members, seats or dollars touched by the issue
//   - severity: how far past its threshold the issue is (0.0-1.0 typical)
//   - gain: relative benefit of acting on the suggestion
//   - effort: relative cost of acting on the suggestion
//
// Returns 0 if effort is zero to avoid division by zero.
func ComputeImpact(affected int, severity float64, gain float64, effort float64) float64 {
	if effort <= 0 {
		return 0
	}
	return (float64(affected) * severity * gain) / effort
}

// Top returns at most n suggestions. n <= 0 returns all of them.
func Top(suggestions []Suggestion, n int) []Suggestion {
	if n <= 0 || n >= len(suggestions) {
		return suggestions
	}
	return suggestions[:n]
}

// FilterCategory returns the suggestions in category, keeping their order.
func FilterCategory(suggestions []Suggestion, category string) []Suggestion {
	var out []Suggestion
	for _, s := range suggestions {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}
