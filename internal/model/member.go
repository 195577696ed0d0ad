// Package model defines the entity records the query, aggregation and
// scoring engines read. Records are plain data; the engines never mutate them.
package model

// MembershipStatus is the lifecycle state of a membership.
type MembershipStatus string

// Membership statuses.
const (
	StatusActive    MembershipStatus = "Active"
	StatusInactive  MembershipStatus = "Inactive"
	StatusPending   MembershipStatus = "Pending"
	StatusExpired   MembershipStatus = "Expired"
	StatusFrozen    MembershipStatus = "Frozen"
	StatusCancelled MembershipStatus = "Cancelled"
)

// MembershipStatuses lists every membership status in display order.
var MembershipStatuses = []MembershipStatus{
	StatusActive, StatusInactive, StatusPending, StatusExpired, StatusFrozen, StatusCancelled,
}

// MembershipType is the plan a member is on.
type MembershipType string

// Membership types.
const (
	TypeBasic     MembershipType = "Basic"
	TypeStandard  MembershipType = "Standard"
	TypePremium   MembershipType = "Premium"
	TypeStudent   MembershipType = "Student"
	TypeSenior    MembershipType = "Senior"
	TypeFamily    MembershipType = "Family"
	TypeCorporate MembershipType = "Corporate"
	TypeTrial     MembershipType = "Trial"
)

// MembershipTypes lists every membership type in display order.
var MembershipTypes = []MembershipType{
	TypeBasic, TypeStandard, TypePremium, TypeStudent, TypeSenior, TypeFamily, TypeCorporate, TypeTrial,
}

// Member is a gym member.
type Member struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Email            string           `json:"email" yaml:"email"`
	Phone            string           `json:"phone" yaml:"phone"`
	JoinDate         Date             `json:"joinDate" yaml:"joinDate"`
	MembershipStatus MembershipStatus `json:"membershipStatus" yaml:"membershipStatus"`
	MembershipType   MembershipType   `json:"membershipType" yaml:"membershipType"`

	// Tags keep their display order; filtering treats them as a set.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}
