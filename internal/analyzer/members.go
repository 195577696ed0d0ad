package analyzer

import "github.com/blackwell-systems/gymdesk/internal/model"

// MemberStats summarizes the member directory.
type MemberStats struct {
	TotalMembers int `json:"total_members"`

	// ActiveMembers counts members with an Active membership.
	ActiveMembers int `json:"active_members"`

	// ActiveRate is the share of active members as a 0-100 percentage.
	ActiveRate float64 `json:"active_rate"`

	// NewThisMonth counts members who joined in the reference month.
	NewThisMonth int `json:"new_this_month"`

	ByStatus []Count `json:"by_status"`
	ByType   []Count `json:"by_type"`
	ByTag    []Count `json:"by_tag,omitempty"`
}

// Kind implements Result.
func (MemberStats) Kind() Kind { return KindMembers }

// AnalyzeMembers computes membership counts relative to now.
func AnalyzeMembers(members []model.Member, now model.Date) MemberStats {
	stats := MemberStats{TotalMembers: len(members)}

	byStatus := make(map[string]int)
	byType := make(map[string]int)
	byTag := make(map[string]int)
	month := now.Period()

	for _, m := range members {
		byStatus[string(m.MembershipStatus)]++
		byType[string(m.MembershipType)]++
		for _, tag := range m.Tags {
			byTag[tag]++
		}
		if m.MembershipStatus == model.StatusActive {
			stats.ActiveMembers++
		}
		if !m.JoinDate.IsZero() && m.JoinDate.Period() == month {
			stats.NewThisMonth++
		}
	}

	stats.ActiveRate = round2(percentOf(float64(stats.ActiveMembers), float64(stats.TotalMembers)))
	stats.ByStatus = sortedCounts(byStatus)
	stats.ByType = sortedCounts(byType)
	if len(byTag) > 0 {
		stats.ByTag = sortedCounts(byTag)
	}
	return stats
}
