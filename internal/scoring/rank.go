package scoring

import (
	"sort"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// RankedTrainer is a trainer's position on the leaderboard.
type RankedTrainer struct {
	Trainer model.Trainer `json:"trainer"`
	Score   float64       `json:"score"`
	Rank    int           `json:"rank"`

	// RankChange is RankLastMonth - Rank: positive means the trainer moved
	// up. Nil when there is no previous rank.
	RankChange *int `json:"rank_change,omitempty"`
}

// Ranking is the result of ranking a set of trainers.
type Ranking struct {
	// Ranked holds trainers with a performance record, best first.
	Ranked []RankedTrainer `json:"ranked"`

	// Unranked holds trainers without a performance record, in input
	// order. They are never given a placeholder score.
	Unranked []model.Trainer `json:"unranked,omitempty"`
}

// Rank scores every trainer that has a performance record and sorts them by
// score, highest first. Ties keep their input order. Ranks are 1-based.
//
// The returned trainers are copies: each ranked trainer carries its own
// Performance with RankChange filled in, and the input is left untouched.
func Rank(trainers []model.Trainer) Ranking {
	var r Ranking
	for _, t := range trainers {
		if t.Performance == nil {
			r.Unranked = append(r.Unranked, t)
			continue
		}
		perf := *t.Performance
		t.Performance = &perf
		r.Ranked = append(r.Ranked, RankedTrainer{Trainer: t, Score: Score(perf)})
	}

	sort.SliceStable(r.Ranked, func(i, j int) bool {
		return r.Ranked[i].Score > r.Ranked[j].Score
	})

	for i := range r.Ranked {
		rt := &r.Ranked[i]
		rt.Rank = i + 1
		rt.RankChange = RankChange(rt.Trainer.Performance.RankLastMonth, rt.Rank)
		rt.Trainer.Performance.RankChange = rt.RankChange
	}
	return r
}

// RankChange returns last - current, or nil when last is absent or not a
// valid 1-based rank.
func RankChange(last *int, current int) *int {
	if last == nil || *last < 1 {
		return nil
	}
	change := *last - current
	return &change
}

// Top returns at most n ranked trainers. n <= 0 returns all of them.
func (r Ranking) Top(n int) []RankedTrainer {
	if n <= 0 || n >= len(r.Ranked) {
		return r.Ranked
	}
	return r.Ranked[:n]
}

// Positions maps trainer IDs to their rank.
func (r Ranking) Positions() map[string]int {
	m := make(map[string]int, len(r.Ranked))
	for _, rt := range r.Ranked {
		m[rt.Trainer.ID] = rt.Rank
	}
	return m
}

// ApplyPreviousRanks returns copies of trainers with RankLastMonth filled
// from previous wherever the record does not already carry one. Trainers
// without a performance record, or absent from previous, are copied as is.
func ApplyPreviousRanks(trainers []model.Trainer, previous map[string]int) []model.Trainer {
	out := make([]model.Trainer, len(trainers))
	for i, t := range trainers {
		out[i] = t
		if t.Performance == nil || t.Performance.RankLastMonth != nil {
			continue
		}
		rank, ok := previous[t.ID]
		if !ok {
			continue
		}
		perf := *t.Performance
		perf.RankLastMonth = model.IntPtr(rank)
		out[i].Performance = &perf
	}
	return out
}

// HideRevenue returns copies of rows with revenue cleared, for roles that
// may not see financial figures.
func HideRevenue(rows []RankedTrainer) []RankedTrainer {
	out := make([]RankedTrainer, len(rows))
	for i, rt := range rows {
		if rt.Trainer.Performance != nil {
			perf := *rt.Trainer.Performance
			perf.RevenueGenerated = 0
			rt.Trainer.Performance = &perf
		}
		out[i] = rt
	}
	return out
}
