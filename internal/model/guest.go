package model

// GuestStatus is where a guest is in their visit.
type GuestStatus string

// Guest statuses.
const (
	GuestCheckedIn  GuestStatus = "Checked In"
	GuestCheckedOut GuestStatus = "Checked Out"
	GuestScheduled  GuestStatus = "Scheduled"
)

// GuestStatuses lists every guest status in display order.
var GuestStatuses = []GuestStatus{GuestCheckedIn, GuestCheckedOut, GuestScheduled}

// VisitPurpose is why a guest came in.
type VisitPurpose string

// Visit purposes.
const (
	PurposeTrial       VisitPurpose = "Trial"
	PurposeDayPass     VisitPurpose = "DayPass"
	PurposeTour        VisitPurpose = "Tour"
	PurposeEvent       VisitPurpose = "Event"
	PurposeMemberGuest VisitPurpose = "MemberGuest"
)

// VisitPurposes lists every visit purpose in display order.
var VisitPurposes = []VisitPurpose{PurposeTrial, PurposeDayPass, PurposeTour, PurposeEvent, PurposeMemberGuest}

// Guest is a non-member visitor.
type Guest struct {
	ID                string       `json:"id" yaml:"id"`
	Name              string       `json:"name" yaml:"name"`
	Email             string       `json:"email,omitempty" yaml:"email,omitempty"`
	Phone             string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	VisitDate         Date         `json:"visitDate" yaml:"visitDate"`
	Status            GuestStatus  `json:"status" yaml:"status"`
	VisitPurpose      VisitPurpose `json:"visitPurpose" yaml:"visitPurpose"`
	ConvertedToMember bool         `json:"convertedToMember" yaml:"convertedToMember"`

	// RelatedMemberID is the hosting member for MemberGuest visits.
	RelatedMemberID string `json:"relatedMemberId,omitempty" yaml:"relatedMemberId,omitempty"`
}
