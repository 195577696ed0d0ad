package seed

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

var (
	firstNames = []string{
		"Alex", "Jordan", "Sam", "Riley", "Casey", "Morgan", "Taylor", "Jamie",
		"Avery", "Quinn", "Rowan", "Noa", "Kai", "Robin", "Sasha", "Devon",
	}
	lastNames = []string{
		"Nguyen", "Okafor", "Garcia", "Kowalski", "Haddad", "Silva", "Tanaka",
		"Murphy", "Patel", "Larsen", "Moreau", "O'Neill", "Rossi", "Kim",
	}
	memberTags = []string{"vip", "pt-client", "early-bird", "student", "referral", "corporate"}

	// statusWeights skews the roster towards active members.
	statusWeights = []model.MembershipStatus{
		model.StatusActive, model.StatusActive, model.StatusActive, model.StatusActive,
		model.StatusActive, model.StatusInactive, model.StatusPending, model.StatusExpired,
		model.StatusFrozen, model.StatusCancelled,
	}

	classNames = map[model.ClassType][]string{
		model.ClassYoga:     {"Sunrise Flow", "Yin Yoga", "Power Vinyasa"},
		model.ClassPilates:  {"Mat Pilates", "Core Reformer"},
		model.ClassHIIT:     {"Tabata Blast", "Metcon 30"},
		model.ClassSpin:     {"Rhythm Ride", "Hill Climb"},
		model.ClassStrength: {"Barbell Basics", "Total Body Strength"},
		model.ClassCardio:   {"Cardio Kick", "Step Up"},
		model.ClassBoxing:   {"Boxing Fundamentals", "Bag Work"},
		model.ClassDance:    {"Dance Fit", "Latin Cardio"},
		model.ClassCrossFit: {"WOD", "Engine Builder"},
		model.ClassOther:    {"Mobility Lab", "Aqua Fit"},
	}

	// slots are the daily class start times with their length in minutes.
	slots = []struct {
		start    model.Clock
		duration int
	}{
		{model.NewClock(6, 30), 45},
		{model.NewClock(9, 0), 60},
		{model.NewClock(12, 15), 45},
		{model.NewClock(17, 30), 60},
		{model.NewClock(19, 0), 60},
	}

	categoryNames = []string{"Rent", "Utilities", "Equipment", "Maintenance", "Marketing", "Supplies", "Cleaning"}

	// monthlyBudgets is the budget per category, indexed like categoryNames.
	// Cleaning has no budget.
	monthlyBudgets = []int{8000, 1500, 2500, 1200, 900, 600, 0}
)

func (g *generator) trainers() []model.Trainer {
	roster := []struct {
		name        string
		specialties []string
	}{
		{"Maya Brooks", []string{string(model.ClassYoga), string(model.ClassPilates)}},
		{"Theo Grant", []string{string(model.ClassStrength), string(model.ClassHIIT)}},
		{"Lena Fischer", []string{string(model.ClassSpin), string(model.ClassCardio)}},
		{"Omar Aziz", []string{string(model.ClassBoxing), string(model.ClassHIIT)}},
		{"Priya Raman", []string{string(model.ClassDance), string(model.ClassCardio)}},
		{"Jonas Berg", []string{string(model.ClassCrossFit)}},
		{"Ines Duarte", []string{string(model.ClassPilates), string(model.ClassOther)}},
	}

	// Previous ranks are a permutation over every trainer but the newest.
	prev := g.rng.Perm(len(roster) - 1)

	trainers := make([]model.Trainer, len(roster))
	for i, r := range roster {
		t := model.Trainer{
			ID:          g.id(),
			Name:        r.name,
			Email:       email(r.name, i+1),
			Phone:       g.phone(),
			Specialties: r.specialties,
		}
		// The newest hire has no performance history yet.
		if i < len(roster)-1 {
			t.Performance = &model.Performance{
				ClassesCount:        g.between(8, 30),
				AttendanceRate:      float64(g.between(550, 980)) / 10,
				ClientRetentionRate: float64(g.between(600, 950)) / 10,
				PTSessionsCount:     g.between(0, 40),
				MemberFeedback:      float64(g.between(30, 50)) / 10,
				RevenueGenerated:    float64(g.between(1500, 9000)),
				RankLastMonth:       model.IntPtr(prev[i] + 1),
			}
		}
		trainers[i] = t
	}
	return trainers
}

func (g *generator) members(n int, now model.Date) []model.Member {
	members := make([]model.Member, n)
	for i := range members {
		name := g.name()
		m := model.Member{
			ID:               g.id(),
			Name:             name,
			Email:            email(name, i+1),
			Phone:            g.phone(),
			JoinDate:         now.AddDays(-g.intn(730)),
			MembershipStatus: pick(g, statusWeights),
			MembershipType:   pick(g, model.MembershipTypes),
		}
		for _, tag := range memberTags {
			if g.chance(0.2) {
				m.Tags = append(m.Tags, tag)
			}
		}
		members[i] = m
	}
	return members
}

func (g *generator) classes(now model.Date, trainers []model.Trainer, members []model.Member) []model.GymClass {
	var classes []model.GymClass
	for day := -7; day <= 14; day++ {
		date := now.AddDays(day)
		for _, slot := range slots {
			if g.chance(0.35) {
				continue
			}
			trainer := pick(g, trainers)
			classType := g.classTypeFor(trainer)
			capacity := g.between(6, 20)

			classes = append(classes, model.GymClass{
				ID:          g.id(),
				Name:        pick(g, classNames[classType]),
				Description: string(classType) + " session with " + trainer.Name,
				Date:        date,
				StartTime:   slot.start,
				EndTime:     slot.start + model.Clock(slot.duration),
				Type:        classType,
				Room:        roomFor(g, classType),
				TrainerID:   trainer.ID,
				Capacity:    capacity,
				Attendees:   g.attendees(members, g.between(capacity/3, capacity+3)),
			})
		}
	}
	return classes
}

func (g *generator) classTypeFor(t model.Trainer) model.ClassType {
	if len(t.Specialties) == 0 {
		return pick(g, model.ClassTypes)
	}
	ct := model.ClassType(pick(g, t.Specialties))
	if _, ok := classNames[ct]; !ok {
		return model.ClassOther
	}
	return ct
}

func roomFor(g *generator, ct model.ClassType) model.Room {
	switch ct {
	case model.ClassSpin:
		return model.RoomSpin
	case model.ClassOther:
		return model.RoomPool
	case model.ClassStrength, model.ClassHIIT, model.ClassBoxing, model.ClassCrossFit:
		return pick(g, []model.Room{model.RoomMainFloor, model.RoomOutdoor})
	default:
		return pick(g, []model.Room{model.RoomStudioA, model.RoomStudioB})
	}
}

// attendees draws n distinct member IDs, or every member when n exceeds
// the roster.
func (g *generator) attendees(members []model.Member, n int) []string {
	if n > len(members) {
		n = len(members)
	}
	ids := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(members))[:n] {
		ids = append(ids, members[i].ID)
	}
	return ids
}

func (g *generator) guests(n int, now model.Date, members []model.Member) []model.Guest {
	guests := make([]model.Guest, n)
	for i := range guests {
		name := g.name()
		visit := now.AddDays(g.between(-10, 7))
		guest := model.Guest{
			ID:           g.id(),
			Name:         name,
			Email:        email(name, 100+i),
			Phone:        g.phone(),
			VisitDate:    visit,
			VisitPurpose: pick(g, model.VisitPurposes),
		}

		switch visit.Compare(now) {
		case -1:
			guest.Status = model.GuestCheckedOut
			guest.ConvertedToMember = g.chance(0.3)
		case 0:
			guest.Status = model.GuestCheckedIn
		default:
			guest.Status = model.GuestScheduled
		}

		if guest.VisitPurpose == model.PurposeMemberGuest && len(members) > 0 {
			guest.RelatedMemberID = pick(g, members).ID
		}
		guests[i] = guest
	}
	return guests
}

func categories(g *generator) []model.ExpenseCategory {
	out := make([]model.ExpenseCategory, len(categoryNames))
	for i, name := range categoryNames {
		out[i] = model.ExpenseCategory{ID: g.id(), Name: name}
	}
	return out
}

// budgets gives every budgeted category a standing monthly budget, and the
// current month a tighter equipment budget.
func budgets(categories []model.ExpenseCategory, now model.Date) []model.ExpenseBudget {
	var out []model.ExpenseBudget
	for i, c := range categories {
		if monthlyBudgets[i] == 0 {
			continue
		}
		out = append(out, model.ExpenseBudget{CategoryID: c.ID, Amount: decimal.NewFromInt(int64(monthlyBudgets[i]))})
	}
	if i := slices.Index(categoryNames, "Equipment"); i >= 0 {
		out = append(out, model.ExpenseBudget{
			CategoryID: categories[i].ID,
			Period:     now.Period(),
			Amount:     decimal.NewFromInt(1800),
		})
	}
	return out
}

func (g *generator) expenses(now model.Date, categories []model.ExpenseCategory) []model.Expense {
	var out []model.Expense
	monthStart := model.NewDate(now.Year(), now.Month(), 1)
	for back := 2; back >= 0; back-- {
		start := model.DateOf(monthStart.Time().AddDate(0, -back, 0))
		days := 28
		if back == 0 {
			days = now.Day()
		}
		for i, c := range categories {
			limit := monthlyBudgets[i]
			if limit == 0 {
				limit = 400
			}
			for n := g.between(1, 4); n > 0; n-- {
				out = append(out, model.Expense{
					ID:          g.id(),
					Date:        start.AddDays(g.intn(days)),
					Amount:      g.money(limit/10, limit/3),
					CategoryID:  c.ID,
					Description: c.Name,
				})
			}
		}
	}
	return out
}
