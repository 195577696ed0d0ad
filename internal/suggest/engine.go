package suggest

// Engine runs all registered rules against an InsightContext and collects
// the resulting suggestions.
type Engine struct {
	rules []Rule
}

// NewEngine creates a new engine with all built-in rules registered.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			OverBudget,
			NearingBudget,
			WaitlistedClasses,
			LowAttendance,
			TrainerRankDrops,
			UnrankedTrainers,
			LowGuestConversion,
		},
	}
}

// NewEngineWith creates an engine running only the given rules.
func NewEngineWith(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Run executes all registered rules against the given context and returns
// the collected suggestions sorted by impact score (highest first).
func (e *Engine) Run(ctx *InsightContext) []Suggestion {
	var all []Suggestion
	for _, rule := range e.rules {
		results := rule(ctx)
		all = append(all, results...)
	}
	return RankSuggestions(all)
}
