package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/query"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
	"github.com/blackwell-systems/gymdesk/internal/search"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

// Options configure what the tools read and who they answer for.
type Options struct {
	DataDir    string
	Role       model.Role
	Parts      facet.DayParts
	Thresholds suggest.Thresholds
	Top        int               // leaderboard length when the caller gives none
	Today      func() model.Date // reference day; defaults to the clock
	Version    string
	Log        *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Role == "" {
		o.Role = model.RoleStaff
	}
	if o.Parts == (facet.DayParts{}) {
		o.Parts = facet.DefaultDayParts
	}
	if o.Today == nil {
		o.Today = func() model.Date { return model.DateOf(time.Now()) }
	}
	if o.Version == "" {
		o.Version = "dev"
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

// Page is one page of a directory search.
type Page[T any] struct {
	Page  query.PageInfo `json:"page"`
	Items []T            `json:"items"`
}

// ClassRow is a class with its derived fields resolved.
type ClassRow struct {
	model.GymClass
	TrainerName  string             `json:"trainerName"`
	Availability facet.Availability `json:"availability"`
	TimeOfDay    facet.TimeOfDay    `json:"timeOfDay"`
}

// LeaderboardResult is the trainer ranking for the reference month.
type LeaderboardResult struct {
	Period   string                  `json:"period"`
	Ranked   []scoring.RankedTrainer `json:"ranked"`
	Unranked []string                `json:"unranked,omitempty"`
}

// InsightsResult lists the open insights, best first.
type InsightsResult struct {
	Today    model.Date           `json:"today"`
	Insights []suggest.Suggestion `json:"insights"`
}

// searchArgs are the arguments shared by the directory search tools.
type searchArgs struct {
	Query   string       `json:"query"`
	Filters facet.Params `json:"filters"`
	Sort    string       `json:"sort"`
	Desc    bool         `json:"desc"`
	Page    int          `json:"page"`
	PerPage *int         `json:"per_page"`
}

func (a searchArgs) perPage() int {
	if a.PerPage == nil {
		return query.DefaultPerPage
	}
	return *a.PerPage
}

var (
	noArgsSchema  = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	searchSchema  = json.RawMessage(`{"type":"object","properties":{"query":{"type":"string","description":"Case-insensitive search term"},"filters":{"type":"object","description":"Facet name to selected values","additionalProperties":{"type":"array","items":{"type":"string"}}},"sort":{"type":"string","description":"Sort column"},"desc":{"type":"boolean"},"page":{"type":"integer","description":"Page number (default 1)"},"per_page":{"type":"integer","description":"Rows per page; 0 returns every row (default 20)"}},"additionalProperties":false}`)
	periodSchema  = json.RawMessage(`{"type":"object","properties":{"period":{"type":"string","description":"Month as YYYY-MM (default: current month)"}},"additionalProperties":false}`)
	topSchema     = json.RawMessage(`{"type":"object","properties":{"top":{"type":"integer","description":"Number of trainers to return; 0 returns all"}},"additionalProperties":false}`)
	limitSchema   = json.RawMessage(`{"type":"object","properties":{"limit":{"type":"integer","description":"Maximum insights to return; 0 returns all"}},"additionalProperties":false}`)
	statsSchema   = json.RawMessage(`{"type":"object","properties":{"kind":{"type":"string","description":"Aggregation kind"},"period":{"type":"string","description":"Month as YYYY-MM for budget and expenses"}},"required":["kind"],"additionalProperties":false}`)
	financialKind = map[analyzer.Kind]bool{analyzer.KindBudget: true, analyzer.KindExpenses: true}
)

// addTools registers the directory tools on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "search_members",
		Description: fmt.Sprintf("Search the member directory. Filters: %v. Sort columns: %v.", query.MemberFacets.Names(), query.MemberSorts.Columns()),
		InputSchema: searchSchema,
		Handler:     s.handleSearchMembers,
	})
	s.registerTool(toolDef{
		Name:        "search_classes",
		Description: fmt.Sprintf("Search the class schedule. Filters: %v (dateRange takes [from, to]). Sort columns: %v.", query.ClassFacets(s.opts.Parts).Names(), query.ClassSorts.Columns()),
		InputSchema: searchSchema,
		Handler:     s.handleSearchClasses,
	})
	s.registerTool(toolDef{
		Name:        "search_guests",
		Description: fmt.Sprintf("Search guest visits. Filters: %v. Sort columns: %v.", query.GuestFacets.Names(), query.GuestSorts.Columns()),
		InputSchema: searchSchema,
		Handler:     s.handleSearchGuests,
	})
	s.registerTool(toolDef{
		Name:        "trainer_leaderboard",
		Description: "Trainers ranked by weighted performance score, best first.",
		InputSchema: topSchema,
		Handler:     s.handleLeaderboard,
	})
	s.registerTool(toolDef{
		Name:        "budget_report",
		Description: "Expense budget vs actual per category for a month. Requires the admin or manager role.",
		InputSchema: periodSchema,
		Handler:     s.handleBudgetReport,
	})
	s.registerTool(toolDef{
		Name:        "get_insights",
		Description: "Open front-desk insights ranked by impact.",
		InputSchema: limitSchema,
		Handler:     s.handleInsights,
	})
	s.registerTool(toolDef{
		Name:        "get_stats",
		Description: fmt.Sprintf("One raw aggregation over the full data set. Kinds: %v.", analyzer.Kinds()),
		InputSchema: statsSchema,
		Handler:     s.handleStats,
	})
	s.registerTool(toolDef{
		Name:        "list_facets",
		Description: "Filter names accepted by each search tool.",
		InputSchema: noArgsSchema,
		Handler:     s.handleListFacets,
	})
}

// load reads the dataset fresh on every call so edits show up without a restart.
func (s *Server) load(ctx context.Context) (*dataset.Dataset, error) {
	ds, err := dataset.Load(ctx, s.opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	return ds, nil
}

func decodeArgs(args json.RawMessage, dst any) error {
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) financials() error {
	if !s.opts.Role.CanViewFinancials() {
		return fmt.Errorf("role %q cannot view financial reports", s.opts.Role)
	}
	return nil
}

// runSearch runs term and filters over entities, then sorts and pages.
func runSearch[T any](entities []T, a searchArgs, table facet.Table[T], fields search.Fields[T], sorts query.SortTable[T]) (Page[T], error) {
	spec, err := table.Build(a.Filters)
	if err != nil {
		return Page[T]{}, err
	}
	matched := query.Run(entities, a.Query, fields, spec)
	sorted, err := query.Sort(matched, sorts, a.Sort, a.Desc)
	if err != nil {
		return Page[T]{}, err
	}
	items, info := query.Paginate(sorted, a.Page, a.perPage())
	return Page[T]{Page: info, Items: items}, nil
}

func (s *Server) handleSearchMembers(ctx context.Context, args json.RawMessage) (any, error) {
	var a searchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return runSearch(ds.Members, a, query.MemberFacets, query.MemberSearchFields, query.MemberSorts)
}

func (s *Server) handleSearchClasses(ctx context.Context, args json.RawMessage) (any, error) {
	var a searchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	page, err := runSearch(ds.Classes, a, query.ClassFacets(s.opts.Parts), query.ClassSearchFields, query.ClassSorts)
	if err != nil {
		return nil, err
	}

	trainers := model.TrainerLookup(ds.Trainers)
	rows := make([]ClassRow, len(page.Items))
	for i, c := range page.Items {
		rows[i] = ClassRow{
			GymClass:     c,
			TrainerName:  trainers.Name(c.TrainerID),
			Availability: facet.ClassAvailability(c),
			TimeOfDay:    s.opts.Parts.Classify(c.StartTime),
		}
	}
	return Page[ClassRow]{Page: page.Page, Items: rows}, nil
}

func (s *Server) handleSearchGuests(ctx context.Context, args json.RawMessage) (any, error) {
	var a searchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return runSearch(ds.Guests, a, query.GuestFacets, query.GuestSearchFields, query.GuestSorts)
}

func (s *Server) handleLeaderboard(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Top *int `json:"top"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	top := s.opts.Top
	if a.Top != nil {
		top = *a.Top
	}

	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ranking := scoring.Rank(ds.Trainers)
	result := LeaderboardResult{
		Period: s.opts.Today().Period(),
		Ranked: ranking.Top(top),
	}
	for _, t := range ranking.Unranked {
		result.Unranked = append(result.Unranked, t.Name)
	}
	if !s.opts.Role.CanViewFinancials() {
		result.Ranked = scoring.HideRevenue(result.Ranked)
	}
	return result, nil
}

func (s *Server) handleBudgetReport(ctx context.Context, args json.RawMessage) (any, error) {
	if err := s.financials(); err != nil {
		return nil, err
	}
	var a struct {
		Period string `json:"period"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	period, err := resolvePeriod(a.Period, s.opts.Today())
	if err != nil {
		return nil, err
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analyzer.BudgetVsActual(ds.Expenses, ds.Categories, ds.Budgets, period), nil
}

func (s *Server) handleInsights(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Limit int `json:"limit"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	today := s.opts.Today()
	ictx := suggest.NewInsightContext(ds, today, scoring.Rank(ds.Trainers), s.opts.Thresholds, s.opts.Role.CanViewFinancials())
	insights := suggest.Top(suggest.NewEngine().Run(ictx), a.Limit)
	if insights == nil {
		insights = []suggest.Suggestion{}
	}
	return InsightsResult{Today: today, Insights: insights}, nil
}

func (s *Server) handleStats(ctx context.Context, args json.RawMessage) (any, error) {
	var a struct {
		Kind   string `json:"kind"`
		Period string `json:"period"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	kind, err := analyzer.ParseKind(a.Kind)
	if err != nil {
		return nil, err
	}
	if financialKind[kind] {
		if err := s.financials(); err != nil {
			return nil, err
		}
	}
	today := s.opts.Today()
	period, err := resolvePeriod(a.Period, today)
	if err != nil {
		return nil, err
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := analyzer.Aggregate(kind, analyzer.Context{
		Now:        today,
		Period:     period,
		Classes:    ds.Classes,
		Members:    ds.Members,
		Guests:     ds.Guests,
		Trainers:   ds.Trainers,
		Expenses:   ds.Expenses,
		Categories: ds.Categories,
		Budgets:    ds.Budgets,
	})
	if err != nil {
		return nil, err
	}
	if ts, ok := result.(analyzer.TrainerStats); ok && !s.opts.Role.CanViewFinancials() {
		ts.TotalRevenue = 0
		result = ts
	}
	return result, nil
}

func (s *Server) handleListFacets(ctx context.Context, args json.RawMessage) (any, error) {
	return map[string][]string{
		"search_members": query.MemberFacets.Names(),
		"search_classes": query.ClassFacets(s.opts.Parts).Names(),
		"search_guests":  query.GuestFacets.Names(),
	}, nil
}

// resolvePeriod returns period when it is a valid YYYY-MM month, or the
// month of today when it is empty.
func resolvePeriod(period string, today model.Date) (string, error) {
	if period == "" {
		return today.Period(), nil
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return "", fmt.Errorf("invalid period %q: want YYYY-MM", period)
	}
	return period, nil
}
