package query

import (
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/search"
)

func memberStatus(m model.Member) string { return string(m.MembershipStatus) }
func memberType(m model.Member) string { return string(m.MembershipType) }
func memberTags(m model.Member) []string { return m.Tags }

// MemberSearchFields are the member attributes a search term is matched against.
var MemberSearchFields = search.Fields[model.Member]{
	search.Text("name", func(m model.Member) string { return m.Name }),
	search.Text("email", func(m model.Member) string { return m.Email }),
	search.Phone("phone", func(m model.Member) string { return m.Phone }),
}

// MemberFacets is the member facet accessor table.
var MemberFacets = facet.Table[model.Member]{
	"status": facet.EqualField(memberStatus),
	"type":   facet.EqualField(memberType),
	"tags":   facet.AnyOfField(memberTags),
}

// MemberFilter selects members. The zero value matches everyone.
type MemberFilter struct {
	Status model.MembershipStatus `json:"status,omitempty"`
	Type   model.MembershipType   `json:"type,omitempty"`
	Tags   []string               `json:"tags,omitempty"`
}

// Spec compiles f against the member accessor table.
func (f MemberFilter) Spec() facet.Spec[model.Member] {
	return facet.Spec[model.Member]{
		facet.Equal(memberStatus, string(f.Status)),
		facet.Equal(memberType, string(f.Type)),
		facet.AnyOf(memberTags, f.Tags),
	}
}

// Members returns the members matching term and f, in input order.
func Members(members []model.Member, term string, f MemberFilter) []model.Member {
	return Run(members, term, MemberSearchFields, f.Spec())
}
