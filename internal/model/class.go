package model

// ClassType is the category of a scheduled class.
type ClassType string

// Class types.
const (
	ClassYoga     ClassType = "Yoga"
	ClassPilates  ClassType = "Pilates"
	ClassHIIT     ClassType = "HIIT"
	ClassSpin     ClassType = "Spin"
	ClassStrength ClassType = "Strength"
	ClassCardio   ClassType = "Cardio"
	ClassBoxing   ClassType = "Boxing"
	ClassDance    ClassType = "Dance"
	ClassCrossFit ClassType = "CrossFit"
	ClassOther    ClassType = "Other"
)

// ClassTypes lists every class type in display order.
var ClassTypes = []ClassType{
	ClassYoga, ClassPilates, ClassHIIT, ClassSpin, ClassStrength,
	ClassCardio, ClassBoxing, ClassDance, ClassCrossFit, ClassOther,
}

// Room is a bookable space.
type Room string

// Rooms.
const (
	RoomStudioA   Room = "Studio A"
	RoomStudioB   Room = "Studio B"
	RoomMainFloor Room = "Main Floor"
	RoomSpin      Room = "Spin Room"
	RoomPool      Room = "Pool"
	RoomOutdoor   Room = "Outdoor"
)

// Rooms lists every room in display order.
var Rooms = []Room{RoomStudioA, RoomStudioB, RoomMainFloor, RoomSpin, RoomPool, RoomOutdoor}

// GymClass is one scheduled occurrence of a class.
type GymClass struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Date        Date      `json:"date" yaml:"date"`
	StartTime   Clock     `json:"startTime" yaml:"startTime"`
	EndTime     Clock     `json:"endTime" yaml:"endTime"`
	Type        ClassType `json:"type" yaml:"type"`
	Room        Room      `json:"room" yaml:"room"`

	// TrainerID references a Trainer; it may not resolve.
	TrainerID string `json:"trainerId" yaml:"trainerId"`

	Capacity int `json:"capacity" yaml:"capacity"`

	// Attendees holds member IDs in booking order. Entries past Capacity
	// are the waitlist.
	Attendees []string `json:"attendees,omitempty" yaml:"attendees,omitempty"`
}

// Waitlist returns the attendees booked beyond capacity.
func (c GymClass) Waitlist() []string {
	if c.Capacity < 0 || len(c.Attendees) <= c.Capacity {
		return nil
	}
	return c.Attendees[c.Capacity:]
}
