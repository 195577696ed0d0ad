package dataset

import "fmt"

// Dangling is a record field that names an ID missing from the dataset.
type Dangling struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Field      string `json:"field"`
	Ref        string `json:"ref"`
}

func (d Dangling) String() string {
	return fmt.Sprintf("%s %s: %s %q not found", d.Collection, d.ID, d.Field, d.Ref)
}

// DanglingRefs reports references between collections that do not resolve:
// class trainers and attendees, guest hosts, and expense and budget
// categories. Empty references are ignored. Results follow collection order.
func (d *Dataset) DanglingRefs() []Dangling {
	members := idsOf(d.Members, func(i int) string { return d.Members[i].ID })
	trainers := idsOf(d.Trainers, func(i int) string { return d.Trainers[i].ID })
	categories := idsOf(d.Categories, func(i int) string { return d.Categories[i].ID })

	var out []Dangling
	check := func(known map[string]bool, collection, id, field, ref string) {
		if ref != "" && !known[ref] {
			out = append(out, Dangling{Collection: collection, ID: id, Field: field, Ref: ref})
		}
	}

	for _, c := range d.Classes {
		check(trainers, Classes, c.ID, "trainerId", c.TrainerID)
		for _, m := range c.Attendees {
			check(members, Classes, c.ID, "attendees", m)
		}
	}
	for _, g := range d.Guests {
		check(members, Guests, g.ID, "relatedMemberId", g.RelatedMemberID)
	}
	for _, e := range d.Expenses {
		check(categories, Expenses, e.ID, "categoryId", e.CategoryID)
	}
	for _, b := range d.Budgets {
		period := b.Period
		if period == "" {
			period = "default"
		}
		check(categories, Budgets, period, "categoryId", b.CategoryID)
	}
	return out
}

func idsOf[T any](items []T, id func(int) string) map[string]bool {
	set := make(map[string]bool, len(items))
	for i := range items {
		set[id(i)] = true
	}
	return set
}
