package app

import "github.com/blackwell-systems/gymdesk/internal/suggest"

type suggestionFixture struct {
	title  string
	impact float64
}

func fixtures(in []suggestionFixture) []suggest.Suggestion {
	out := make([]suggest.Suggestion, len(in))
	for i, f := range in {
		out[i] = suggest.Suggestion{
			Category:    "test",
			Priority:    suggest.PriorityMedium,
			Title:       f.title,
			ImpactScore: f.impact,
		}
	}
	return out
}
