package analyzer

import (
	"math"

	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

// ClassStats summarizes a class schedule relative to a reference day.
type ClassStats struct {
	// TotalClasses is the number of classes analyzed.
	TotalClasses int `json:"total_classes"`

	// ClassesToday counts classes dated on the reference day.
	ClassesToday int `json:"classes_today"`

	// ClassesThisWeek counts classes in the reference day's ISO week.
	ClassesThisWeek int `json:"classes_this_week"`

	TotalAttendees int `json:"total_attendees"`
	TotalCapacity  int `json:"total_capacity"`

	// AttendanceRate is round(TotalAttendees / TotalCapacity * 100),
	// clamped to 100. Zero when there is no capacity.
	AttendanceRate float64 `json:"attendance_rate"`

	// RawAttendanceRate is the rounded rate before clamping; it exceeds
	// 100 when waitlists outgrow spare seats.
	RawAttendanceRate float64 `json:"raw_attendance_rate"`

	// FullClasses counts classes with at least as many attendees as seats.
	FullClasses int `json:"full_classes"`

	// WaitlistedClasses counts classes with more attendees than seats.
	WaitlistedClasses int `json:"waitlisted_classes"`

	// WaitlistedMembers is the total number of attendees past capacity.
	WaitlistedMembers int `json:"waitlisted_members"`
}

// Kind implements Result.
func (ClassStats) Kind() Kind { return KindClasses }

// AnalyzeClasses computes schedule counts and attendance for classes.
func AnalyzeClasses(classes []model.GymClass, now model.Date) ClassStats {
	stats := ClassStats{TotalClasses: len(classes)}

	for _, c := range classes {
		if c.Date.Compare(now) == 0 {
			stats.ClassesToday++
		}
		if sameWeek(c.Date, now) {
			stats.ClassesThisWeek++
		}

		stats.TotalAttendees += len(c.Attendees)
		stats.TotalCapacity += c.Capacity

		if len(c.Attendees) >= c.Capacity {
			stats.FullClasses++
		}
		if facet.ClassAvailability(c) == facet.Waitlist {
			stats.WaitlistedClasses++
			stats.WaitlistedMembers += len(c.Waitlist())
		}
	}

	stats.RawAttendanceRate = math.Round(percentOf(float64(stats.TotalAttendees), float64(stats.TotalCapacity)))
	stats.AttendanceRate = clampPercent(stats.RawAttendanceRate)
	return stats
}
