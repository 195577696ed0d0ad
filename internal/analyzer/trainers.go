package analyzer

import (
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
)

// TrainerStats summarizes coaching staff performance.
type TrainerStats struct {
	TotalTrainers int `json:"total_trainers"`

	// WithPerformance counts trainers that have a performance record.
	// Averages below are taken over these trainers only.
	WithPerformance int `json:"with_performance"`

	AvgScore      float64 `json:"avg_score"`
	AvgFeedback   float64 `json:"avg_feedback"`
	AvgAttendance float64 `json:"avg_attendance"`
	AvgRetention  float64 `json:"avg_retention"`

	TotalClasses    int     `json:"total_classes"`
	TotalPTSessions int     `json:"total_pt_sessions"`
	TotalRevenue    float64 `json:"total_revenue"`

	// TopTrainerID is the rank-1 trainer, empty when nobody is ranked.
	TopTrainerID string `json:"top_trainer_id,omitempty"`
}

// Kind implements Result.
func (TrainerStats) Kind() Kind { return KindTrainers }

// AnalyzeTrainers aggregates performance records across trainers.
func AnalyzeTrainers(trainers []model.Trainer) TrainerStats {
	stats := TrainerStats{TotalTrainers: len(trainers)}

	var score, feedback, attendance, retention float64
	for _, t := range trainers {
		p := t.Performance
		if p == nil {
			continue
		}
		stats.WithPerformance++
		score += scoring.Score(*p)
		feedback += p.MemberFeedback
		attendance += p.AttendanceRate
		retention += p.ClientRetentionRate
		stats.TotalClasses += p.ClassesCount
		stats.TotalPTSessions += p.PTSessionsCount
		stats.TotalRevenue += p.RevenueGenerated
	}

	if stats.WithPerformance == 0 {
		return stats
	}

	n := float64(stats.WithPerformance)
	stats.AvgScore = round2(score / n)
	stats.AvgFeedback = round2(feedback / n)
	stats.AvgAttendance = round2(attendance / n)
	stats.AvgRetention = round2(retention / n)
	stats.TotalRevenue = round2(stats.TotalRevenue)

	if top := scoring.Rank(trainers).Top(1); len(top) == 1 {
		stats.TopTrainerID = top[0].Trainer.ID
	}
	return stats
}
