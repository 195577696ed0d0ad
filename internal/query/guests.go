package query

import (
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/search"
)

func guestStatus(g model.Guest) string { return string(g.Status) }
func guestPurpose(g model.Guest) string { return string(g.VisitPurpose) }
func guestConverted(g model.Guest) bool { return g.ConvertedToMember }

// GuestSearchFields are the guest attributes a search term is matched against.
var GuestSearchFields = search.Fields[model.Guest]{
	search.Text("name", func(g model.Guest) string { return g.Name }),
	search.Text("email", func(g model.Guest) string { return g.Email }),
	search.Phone("phone", func(g model.Guest) string { return g.Phone }),
}

// GuestFacets is the guest facet accessor table.
var GuestFacets = facet.Table[model.Guest]{
	"status":            facet.EqualField(guestStatus),
	"visitPurpose":      facet.EqualField(guestPurpose),
	"convertedToMember": facet.TriStateField(guestConverted),
}

// GuestFilter selects guests. The zero value matches everyone.
type GuestFilter struct {
	Status            model.GuestStatus  `json:"status,omitempty"`
	VisitPurpose      model.VisitPurpose `json:"visitPurpose,omitempty"`
	ConvertedToMember facet.TriState     `json:"convertedToMember,omitempty"`
}

// Spec compiles f against the guest accessor table.
func (f GuestFilter) Spec() facet.Spec[model.Guest] {
	return facet.Spec[model.Guest]{
		facet.Equal(guestStatus, string(f.Status)),
		facet.Equal(guestPurpose, string(f.VisitPurpose)),
		facet.Is(guestConverted, f.ConvertedToMember),
	}
}

// Guests returns the guests matching term and f, in input order.
func Guests(guests []model.Guest, term string, f GuestFilter) []model.Guest {
	return Run(guests, term, GuestSearchFields, f.Spec())
}
