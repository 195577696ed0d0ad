package facet

import "github.com/blackwell-systems/gymdesk/internal/model"

// TimeOfDay is the part of the day a class starts in.
type TimeOfDay string

// Parts of the day.
const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// DayParts holds the boundaries between parts of the day. A start time
// before MorningEnd is morning, before AfternoonEnd is afternoon, and
// anything later is evening.
type DayParts struct {
	MorningEnd   model.Clock
	AfternoonEnd model.Clock
}

// DefaultDayParts splits the day at 12:00 and 17:00.
var DefaultDayParts = DayParts{
	MorningEnd:   model.NewClock(12, 0),
	AfternoonEnd: model.NewClock(17, 0),
}

// Classify returns the part of the day c falls in.
func (p DayParts) Classify(c model.Clock) TimeOfDay {
	switch {
	case c < p.MorningEnd:
		return Morning
	case c < p.AfternoonEnd:
		return Afternoon
	default:
		return Evening
	}
}

// Availability is the booking state of a class.
type Availability string

// Booking states.
const (
	Available Availability = "available"
	Full      Availability = "full"
	Waitlist  Availability = "waitlist"
)

// AvailabilityOf classifies a class by attendee count against capacity.
func AvailabilityOf(attendees, capacity int) Availability {
	switch {
	case attendees < capacity:
		return Available
	case attendees == capacity:
		return Full
	default:
		return Waitlist
	}
}

// ClassAvailability classifies c.
func ClassAvailability(c model.GymClass) Availability {
	return AvailabilityOf(len(c.Attendees), c.Capacity)
}
