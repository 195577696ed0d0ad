package suggest

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// OverBudget flags every category whose spending exceeds its budget for
// the reporting period.
func OverBudget(ctx *InsightContext) []Suggestion {
	var suggestions []Suggestion
	for _, row := range ctx.Budget.Rows {
		if !row.OverBudget {
			continue
		}
		over := row.Actual.Sub(row.Budget)
		suggestions = append(suggestions, Suggestion{
			Category: CategoryBudget,
			Priority: PriorityCritical,
			Title:    fmt.Sprintf("%s is over budget", row.Category),
			Description: fmt.Sprintf(
				"%s spending for %s is $%s against a budget of $%s (%.0f%%), "+
					"$%s over. Review recent expenses or raise the budget.",
				row.Category, ctx.Budget.Period,
				row.Actual.StringFixed(2), row.Budget.StringFixed(2), row.Ratio,
				over.StringFixed(2),
			),
			ImpactScore: ComputeImpact(int(over.IntPart()), 1.0, 1.0, 10.0),
		})
	}
	return suggestions
}

// NearingBudget flags categories at or past Thresholds.WarnAt that have
// not yet gone over.
func NearingBudget(ctx *InsightContext) []Suggestion {
	warnAt := ctx.Thresholds.WarnAt
	if warnAt <= 0 {
		return nil
	}

	var suggestions []Suggestion
	for _, row := range ctx.Budget.Rows {
		if row.OverBudget || row.Ratio < warnAt {
			continue
		}
		left := row.Remaining()
		suggestions = append(suggestions, Suggestion{
			Category: CategoryBudget,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("%s is nearing its budget", row.Category),
			Description: fmt.Sprintf(
				"%s has used %.0f%% of its %s budget; $%s remains.",
				row.Category, row.Ratio, ctx.Budget.Period, left.StringFixed(2),
			),
			ImpactScore: ComputeImpact(int(row.Budget.IntPart()), row.Ratio/100, 0.5, 20.0),
		})
	}
	return suggestions
}

// WaitlistedClasses suggests adding capacity for upcoming classes that
// have members on the waitlist.
func WaitlistedClasses(ctx *InsightContext) []Suggestion {
	var suggestions []Suggestion
	for _, c := range ctx.Classes {
		if c.Date.Before(ctx.Now) {
			continue
		}
		waiting := len(c.Waitlist())
		if waiting == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Category: CategorySchedule,
			Priority: PriorityHigh,
			Title:    fmt.Sprintf("Add a session of %s (%s)", c.Name, c.Date),
			Description: fmt.Sprintf(
				"%s on %s at %s has %d member(s) waitlisted beyond its %d seats. "+
					"Consider a larger room or a second session.",
				c.Name, c.Date, c.StartTime, waiting, c.Capacity,
			),
			ImpactScore: ComputeImpact(waiting, 1.0, 5.0, 10.0),
		})
	}
	return suggestions
}

// LowAttendance flags class types whose past sessions fill fewer seats
// than Thresholds.LowAttendance percent.
func LowAttendance(ctx *InsightContext) []Suggestion {
	threshold := ctx.Thresholds.LowAttendance
	if threshold <= 0 {
		return nil
	}

	type fill struct{ attendees, capacity, sessions int }
	byType := make(map[model.ClassType]*fill)
	for _, c := range ctx.Classes {
		if !c.Date.Before(ctx.Now) || c.Capacity <= 0 {
			continue
		}
		f := byType[c.Type]
		if f == nil {
			f = &fill{}
			byType[c.Type] = f
		}
		f.attendees += min(len(c.Attendees), c.Capacity)
		f.capacity += c.Capacity
		f.sessions++
	}

	var suggestions []Suggestion
	for _, ct := range model.ClassTypes {
		f := byType[ct]
		if f == nil {
			continue
		}
		rate := float64(f.attendees) / float64(f.capacity) * 100
		if rate >= threshold {
			continue
		}
		empty := f.capacity - f.attendees
		suggestions = append(suggestions, Suggestion{
			Category: CategorySchedule,
			Priority: PriorityMedium,
			Title:    fmt.Sprintf("Low attendance in %s classes", ct),
			Description: fmt.Sprintf(
				"%s classes filled %.0f%% of seats over %d past session(s), below the %.0f%% target. "+
					"Consider moving the time slot or merging sessions.",
				ct, rate, f.sessions, threshold,
			),
			ImpactScore: ComputeImpact(empty, 1-rate/100, 2.0, 10.0),
		})
	}
	return suggestions
}

// TrainerRankDrops flags trainers who fell at least Thresholds.RankDrop
// places since the previous period.
func TrainerRankDrops(ctx *InsightContext) []Suggestion {
	drop := ctx.Thresholds.RankDrop
	if drop <= 0 {
		return nil
	}

	var suggestions []Suggestion
	for _, rt := range ctx.Ranking.Ranked {
		if rt.RankChange == nil || -*rt.RankChange < drop {
			continue
		}
		fell := -*rt.RankChange
		suggestions = append(suggestions, Suggestion{
			Category: CategoryTrainers,
			Priority: PriorityHigh,
			Title:    fmt.Sprintf("%s dropped %d places", rt.Trainer.Name, fell),
			Description: fmt.Sprintf(
				"%s moved from #%d to #%d with a score of %.2f. "+
					"Check recent class feedback and attendance with them.",
				rt.Trainer.Name, rt.Rank-fell, rt.Rank, rt.Score,
			),
			ImpactScore: ComputeImpact(fell, 1.0, 3.0, 5.0),
		})
	}
	return suggestions
}

// UnrankedTrainers lists trainers with no performance record, who are
// left off the leaderboard.
func UnrankedTrainers(ctx *InsightContext) []Suggestion {
	n := len(ctx.Ranking.Unranked)
	if n == 0 {
		return nil
	}
	names := make([]string, n)
	for i, t := range ctx.Ranking.Unranked {
		names[i] = t.Name
	}
	return []Suggestion{{
		Category: CategoryTrainers,
		Priority: PriorityLow,
		Title:    "Record performance for unranked trainers",
		Description: fmt.Sprintf(
			"%d trainer(s) have no performance record and are left off the leaderboard: %s.",
			n, strings.Join(names, ", "),
		),
		ImpactScore: ComputeImpact(n, 0.5, 1.0, 5.0),
	}}
}

// LowGuestConversion flags a guest-to-member conversion rate below
// Thresholds.LowConversion.
func LowGuestConversion(ctx *InsightContext) []Suggestion {
	threshold := ctx.Thresholds.LowConversion
	g := ctx.Guests
	if threshold <= 0 || g.TotalGuests == 0 || g.ConversionRate >= threshold {
		return nil
	}
	return []Suggestion{{
		Category: CategoryMembership,
		Priority: PriorityMedium,
		Title:    "Follow up with guests",
		Description: fmt.Sprintf(
			"Only %d of %d guests (%.0f%%) became members, below the %.0f%% target. "+
				"Offer trial passes or schedule follow-up calls.",
			g.Converted, g.TotalGuests, g.ConversionRate, threshold,
		),
		ImpactScore: ComputeImpact(g.TotalGuests-g.Converted, 1-g.ConversionRate/100, 2.0, 10.0),
	}}
}
