package query

import (
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/search"
)

func trainerSpecialties(t model.Trainer) []string { return t.Specialties }

func trainerHasPerformance(t model.Trainer) bool { return t.Performance != nil }

// TrainerSearchFields are the trainer attributes a search term is matched against.
var TrainerSearchFields = search.Fields[model.Trainer]{
	search.Text("name", func(t model.Trainer) string { return t.Name }),
	search.Text("email", func(t model.Trainer) string { return t.Email }),
	search.Phone("phone", func(t model.Trainer) string { return t.Phone }),
}

// TrainerFacets is the trainer facet accessor table.
var TrainerFacets = facet.Table[model.Trainer]{
	"specialties":    facet.AnyOfField(trainerSpecialties),
	"hasPerformance": facet.TriStateField(trainerHasPerformance),
}

// TrainerFilter selects trainers. The zero value matches everyone.
type TrainerFilter struct {
	Specialties    []string       `json:"specialties,omitempty"`
	HasPerformance facet.TriState `json:"hasPerformance,omitempty"`
}

// Spec compiles f against the trainer accessor table.
func (f TrainerFilter) Spec() facet.Spec[model.Trainer] {
	return facet.Spec[model.Trainer]{
		facet.AnyOf(trainerSpecialties, f.Specialties),
		facet.Is(trainerHasPerformance, f.HasPerformance),
	}
}

// Trainers returns the trainers matching term and f, in input order.
func Trainers(trainers []model.Trainer, term string, f TrainerFilter) []model.Trainer {
	return Run(trainers, term, TrainerSearchFields, f.Spec())
}
