package analyzer

import "github.com/blackwell-systems/gymdesk/internal/model"

// GuestStats summarizes guest visits.
type GuestStats struct {
	TotalGuests int `json:"total_guests"`

	// VisitsToday counts guests whose visit date is the reference day.
	VisitsToday int `json:"visits_today"`

	// CheckedIn counts guests currently on the premises.
	CheckedIn int `json:"checked_in"`

	// Converted counts guests who went on to become members.
	Converted int `json:"converted"`

	// ConversionRate is Converted / TotalGuests as a 0-100 percentage.
	ConversionRate float64 `json:"conversion_rate"`

	ByStatus  []Count `json:"by_status"`
	ByPurpose []Count `json:"by_purpose"`
}

// Kind implements Result.
func (GuestStats) Kind() Kind { return KindGuests }

// AnalyzeGuests computes visit and conversion counts relative to now.
func AnalyzeGuests(guests []model.Guest, now model.Date) GuestStats {
	stats := GuestStats{TotalGuests: len(guests)}

	byStatus := make(map[string]int)
	byPurpose := make(map[string]int)

	for _, g := range guests {
		byStatus[string(g.Status)]++
		byPurpose[string(g.VisitPurpose)]++

		if g.VisitDate.Compare(now) == 0 {
			stats.VisitsToday++
		}
		if g.Status == model.GuestCheckedIn {
			stats.CheckedIn++
		}
		if g.ConvertedToMember {
			stats.Converted++
		}
	}

	stats.ConversionRate = round2(percentOf(float64(stats.Converted), float64(stats.TotalGuests)))
	stats.ByStatus = sortedCounts(byStatus)
	stats.ByPurpose = sortedCounts(byPurpose)
	return stats
}
