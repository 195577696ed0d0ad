package query

import (
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/search"
)

func classDate(c model.GymClass) model.Date { return c.Date }
func classType(c model.GymClass) string { return string(c.Type) }
func classTrainer(c model.GymClass) string { return c.TrainerID }
func classRoom(c model.GymClass) string { return string(c.Room) }

func classAvailability(c model.GymClass) string {
	return string(facet.ClassAvailability(c))
}

func classTimeOfDay(parts facet.DayParts) func(model.GymClass) string {
	return func(c model.GymClass) string {
		return string(parts.Classify(c.StartTime))
	}
}

// ClassSearchFields are the class attributes a search term is matched against.
var ClassSearchFields = search.Fields[model.GymClass]{
	search.Text("name", func(c model.GymClass) string { return c.Name }),
	search.Text("description", func(c model.GymClass) string { return c.Description }),
}

// ClassFacets returns the class facet accessor table. Time of day is
// derived from the start time using parts.
func ClassFacets(parts facet.DayParts) facet.Table[model.GymClass] {
	return facet.Table[model.GymClass]{
		"dateRange":    facet.DateRangeField(classDate),
		"timeOfDay":    facet.OneOfField(classTimeOfDay(parts)),
		"classType":    facet.OneOfField(classType),
		"trainerId":    facet.OneOfField(classTrainer),
		"room":         facet.OneOfField(classRoom),
		"availability": facet.OneOfField(classAvailability),
	}
}

// ClassFilter selects scheduled classes. The zero value matches every class.
type ClassFilter struct {
	DateRange    facet.DateRange      `json:"dateRange"`
	TimeOfDay    []facet.TimeOfDay    `json:"timeOfDay,omitempty"`
	ClassType    []model.ClassType    `json:"classType,omitempty"`
	TrainerID    []string             `json:"trainerId,omitempty"`
	Room         []model.Room         `json:"room,omitempty"`
	Availability []facet.Availability `json:"availability,omitempty"`
}

// Spec compiles f against the class accessor table.
func (f ClassFilter) Spec(parts facet.DayParts) facet.Spec[model.GymClass] {
	return facet.Spec[model.GymClass]{
		facet.InRange(classDate, f.DateRange),
		facet.OneOf(classTimeOfDay(parts), strs(f.TimeOfDay)),
		facet.OneOf(classType, strs(f.ClassType)),
		facet.OneOf(classTrainer, f.TrainerID),
		facet.OneOf(classRoom, strs(f.Room)),
		facet.OneOf(classAvailability, strs(f.Availability)),
	}
}

// Classes returns the classes matching term and f, in input order.
func Classes(classes []model.GymClass, term string, f ClassFilter, parts facet.DayParts) []model.GymClass {
	return Run(classes, term, ClassSearchFields, f.Spec(parts))
}
