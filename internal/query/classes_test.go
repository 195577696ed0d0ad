package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

func attendees(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "m"
	}
	return out
}

func sampleClasses() []model.GymClass {
	return []model.GymClass{
		{ID: "c1", Name: "Sunrise Yoga", Date: model.NewDate(2026, 10, 12), StartTime: model.NewClock(6, 30), Type: model.ClassYoga, Room: model.RoomStudioA, TrainerID: "t1", Capacity: 10, Attendees: attendees(9)},
		{ID: "c2", Name: "Lunch HIIT", Date: model.NewDate(2026, 10, 13), StartTime: model.NewClock(12, 15), Type: model.ClassHIIT, Room: model.RoomMainFloor, TrainerID: "t2", Capacity: 10, Attendees: attendees(10)},
		{ID: "c3", Name: "Evening Spin", Date: model.NewDate(2026, 10, 14), StartTime: model.NewClock(18, 0), Type: model.ClassSpin, Room: model.RoomSpin, TrainerID: "t1", Capacity: 10, Attendees: attendees(11)},
		{ID: "c4", Name: "Power Yoga", Date: model.NewDate(2026, 10, 20), StartTime: model.NewClock(17, 30), Type: model.ClassYoga, Room: model.RoomStudioB, TrainerID: "ghost", Capacity: 0},
	}
}

func classID(c model.GymClass) string { return c.ID }

func TestClasses_Facets(t *testing.T) {
	classes := sampleClasses()
	from := model.NewDate(2026, 10, 13)
	to := model.NewDate(2026, 10, 14)

	tests := []struct {
		name   string
		term   string
		filter ClassFilter
		want   []string
	}{
		{"inactive", "", ClassFilter{}, []string{"c1", "c2", "c3", "c4"}},
		{"date range inclusive", "", ClassFilter{DateRange: facet.DateRange{From: &from, To: &to}}, []string{"c2", "c3"}},
		{"date range inverted", "", ClassFilter{DateRange: facet.DateRange{From: &to, To: &from}}, []string{}},
		{"date from only", "", ClassFilter{DateRange: facet.DateRange{From: &to}}, []string{"c3", "c4"}},
		{"morning", "", ClassFilter{TimeOfDay: []facet.TimeOfDay{facet.Morning}}, []string{"c1"}},
		{"afternoon or evening", "", ClassFilter{TimeOfDay: []facet.TimeOfDay{facet.Afternoon, facet.Evening}}, []string{"c2", "c3", "c4"}},
		{"class type", "", ClassFilter{ClassType: []model.ClassType{model.ClassYoga}}, []string{"c1", "c4"}},
		{"trainer", "", ClassFilter{TrainerID: []string{"t1"}}, []string{"c1", "c3"}},
		{"room", "", ClassFilter{Room: []model.Room{model.RoomSpin, model.RoomStudioB}}, []string{"c3", "c4"}},
		{"available", "", ClassFilter{Availability: []facet.Availability{facet.Available}}, []string{"c1"}},
		{"full", "", ClassFilter{Availability: []facet.Availability{facet.Full}}, []string{"c2", "c4"}},
		{"waitlist", "", ClassFilter{Availability: []facet.Availability{facet.Waitlist}}, []string{"c3"}},
		{"search and type", "power", ClassFilter{ClassType: []model.ClassType{model.ClassYoga}}, []string{"c4"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classes(classes, tc.term, tc.filter, facet.DefaultDayParts)
			assert.Equal(t, tc.want, ids(got, classID))
		})
	}
}

func TestClasses_Idempotent(t *testing.T) {
	classes := sampleClasses()
	f := ClassFilter{ClassType: []model.ClassType{model.ClassYoga, model.ClassSpin}, Availability: []facet.Availability{facet.Available, facet.Waitlist}}
	once := Classes(classes, "", f, facet.DefaultDayParts)
	twice := Classes(once, "", f, facet.DefaultDayParts)
	assert.Equal(t, once, twice)
}

func TestClassFacets_FromParams(t *testing.T) {
	table := ClassFacets(facet.DefaultDayParts)
	spec, err := table.Build(facet.Params{
		"dateRange":    {"2026-10-12", "2026-10-14"},
		"availability": {"waitlist", "available"},
		"colour":       {"blue"},
	})
	require.NoError(t, err)

	got := Run(sampleClasses(), "", ClassSearchFields, spec)
	assert.Equal(t, []string{"c1", "c3"}, ids(got, classID))
}

func TestClassFacets_CustomDayParts(t *testing.T) {
	parts := facet.DayParts{MorningEnd: model.NewClock(7, 0), AfternoonEnd: model.NewClock(18, 0)}
	got := Classes(sampleClasses(), "", ClassFilter{TimeOfDay: []facet.TimeOfDay{facet.Afternoon}}, parts)
	assert.Equal(t, []string{"c2", "c4"}, ids(got, classID))
}
