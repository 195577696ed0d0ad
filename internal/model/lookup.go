package model

// UnknownName is shown for references that do not resolve.
const UnknownName = "Unknown"

// Lookup resolves entity IDs to display names.
type Lookup map[string]string

// Name returns the name for id, or UnknownName if id does not resolve.
func (l Lookup) Name(id string) string {
	if name, ok := l[id]; ok && name != "" {
		return name
	}
	return UnknownName
}

// TrainerLookup indexes trainer names by ID.
func TrainerLookup(trainers []Trainer) Lookup {
	l := make(Lookup, len(trainers))
	for _, t := range trainers {
		l[t.ID] = t.Name
	}
	return l
}

// MemberLookup indexes member names by ID.
func MemberLookup(members []Member) Lookup {
	l := make(Lookup, len(members))
	for _, m := range members {
		l[m.ID] = m.Name
	}
	return l
}

// CategoryLookup indexes expense category names by ID.
func CategoryLookup(categories []ExpenseCategory) Lookup {
	l := make(Lookup, len(categories))
	for _, c := range categories {
		l[c.ID] = c.Name
	}
	return l
}
