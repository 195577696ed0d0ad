// Package scoring computes trainer performance scores and leaderboard ranks.
package scoring

import (
	"math"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// Score weights and normalizers.
const (
	AttendanceWeight = 0.4
	ClassesWeight    = 0.3
	FeedbackWeight   = 0.3

	// MaxClasses is the class count that earns the full classes term.
	MaxClasses = 25

	// MaxFeedback is the top member feedback rating.
	MaxFeedback = 5
)

// Score calculates a trainer's performance score, rounded to 2 decimals.
//
// Scoring breakdown:
//   - Attendance:  AttendanceRate (0-100) * 0.4
//   - Classes:     ClassesCount / 25 * 0.3
//   - Feedback:    MemberFeedback / 5 * 0.3
//
// Attendance enters as a percentage while the other two terms are 0-1
// fractions, so attendance dominates the score by roughly 100x. Keep the
// scales as they are: stored ranks from earlier periods were computed with
// this formula and would no longer be comparable.
func Score(p model.Performance) float64 {
	score := p.AttendanceRate * AttendanceWeight
	score += (float64(p.ClassesCount) / MaxClasses) * ClassesWeight
	score += (p.MemberFeedback / MaxFeedback) * FeedbackWeight
	return round2(score)
}

// ScoreOf scores t, or returns 0 when t has no performance record.
func ScoreOf(t model.Trainer) float64 {
	if t.Performance == nil {
		return 0
	}
	return Score(*t.Performance)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
