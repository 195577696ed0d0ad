package app

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/store"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

const trackCommand = "track"

var (
	trackCompare int
	trackHistory int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot and compare gym metrics over time",
	Long: `Track computes the dashboard metrics, stores them with this month's
trainer ranks as a new snapshot, and compares against an earlier snapshot
with trend arrows. Insights are stored too: ones whose condition no longer
holds are resolved, new ones are opened.`,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "Show metric trends across N most recent snapshots")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if trackCompare < 1 {
		return fmt.Errorf("--compare must be at least 1, got %d", trackCompare)
	}

	ds, err := s.loadData(cmd.Context())
	if err != nil {
		return err
	}

	db, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	period := s.now.Period()
	ranking, err := s.rankTrainers(db, ds.Trainers, period)
	if err != nil {
		return err
	}
	ictx := buildInsightContext(s, ds, ranking)

	metrics := buildAggregateMetrics(
		ictx.ClassStats,
		analyzer.AnalyzeMembers(ds.Members, s.now),
		ictx.Guests,
		analyzer.AnalyzeTrainers(ds.Trainers),
		ictx.Budget,
		s.role.CanViewFinancials(),
	)
	snapshotID, err := db.Save(store.Record{
		Period:  period,
		Command: trackCommand,
		Version: appVersion,
		Ranks:   trainerRanks(ranking),
		Metrics: metrics,
	})
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}

	suggestions := suggest.NewEngine().Run(ictx)
	opened, resolved, err := syncInsights(db, snapshotID, suggestions)
	if err != nil {
		return fmt.Errorf("syncing insights: %w", err)
	}
	s.log.Debug("snapshot recorded",
		zap.Int64("snapshot", snapshotID),
		zap.Int("metrics", len(metrics)),
		zap.Int("insights_opened", opened),
		zap.Int("insights_resolved", resolved),
	)

	// --history shows trends across N snapshots instead of a comparison.
	if trackHistory > 0 {
		if flagJSON {
			return outputHistoryJSON(s.out, db, trackHistory)
		}
		return renderHistory(s.out, db, trackHistory)
	}

	// trackCompare=1 means compare against the immediate predecessor (offset 2 from newest).
	prevSnapshot, err := db.NthSnapshot(trackCommand, trackCompare+1)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}
	currentSnapshot, err := db.GetSnapshot(snapshotID)
	if err != nil {
		return fmt.Errorf("loading current snapshot: %w", err)
	}

	var diff *store.SnapshotDiff
	if prevSnapshot != nil {
		prevMetrics, err := db.GetAggregateMetrics(prevSnapshot.ID)
		if err != nil {
			return fmt.Errorf("loading previous metrics: %w", err)
		}
		currMetrics, err := db.GetAggregateMetrics(snapshotID)
		if err != nil {
			return fmt.Errorf("loading current metrics: %w", err)
		}
		diff = &store.SnapshotDiff{
			Previous: prevSnapshot,
			Current:  currentSnapshot,
			Deltas:   computeDeltas(prevMetrics, currMetrics),
		}
	}

	open, err := db.GetOpenInsights()
	if err != nil {
		return fmt.Errorf("loading insights: %w", err)
	}

	if flagJSON {
		result := map[string]any{
			"snapshot": currentSnapshot,
			"insights": open,
			"opened":   opened,
			"resolved": resolved,
		}
		if diff != nil {
			result["diff"] = diff
		}
		return writeJSON(s.out, result)
	}

	renderTrackOutput(s.out, currentSnapshot, diff)
	renderOpenInsights(s.out, open, opened, resolved)
	return nil
}

// buildAggregateMetrics flattens analyzer results into snapshot metrics in
// display order. Financial metrics are only included when financials is set.
func buildAggregateMetrics(
	classes analyzer.ClassStats,
	members analyzer.MemberStats,
	guests analyzer.GuestStats,
	trainers analyzer.TrainerStats,
	budget analyzer.BudgetReport,
	financials bool,
) []store.AggregateMetric {
	m := []store.AggregateMetric{
		{MetricName: "total_members", MetricValue: float64(members.TotalMembers)},
		{MetricName: "active_members", MetricValue: float64(members.ActiveMembers)},
		{MetricName: "active_rate", MetricValue: members.ActiveRate},
		{MetricName: "new_members", MetricValue: float64(members.NewThisMonth)},
		{MetricName: "classes_this_week", MetricValue: float64(classes.ClassesThisWeek)},
		{MetricName: "attendance_rate", MetricValue: classes.AttendanceRate},
		{MetricName: "full_classes", MetricValue: float64(classes.FullClasses)},
		{MetricName: "waitlisted_members", MetricValue: float64(classes.WaitlistedMembers)},
		{MetricName: "total_guests", MetricValue: float64(guests.TotalGuests)},
		{MetricName: "guest_conversion_rate", MetricValue: guests.ConversionRate},
		{MetricName: "ranked_trainers", MetricValue: float64(trainers.WithPerformance)},
		{MetricName: "avg_trainer_score", MetricValue: trainers.AvgScore},
		{MetricName: "avg_feedback", MetricValue: trainers.AvgFeedback},
	}
	if financials {
		m = append(m,
			store.AggregateMetric{MetricName: "trainer_revenue", MetricValue: trainers.TotalRevenue},
			store.AggregateMetric{MetricName: "budget_utilization", MetricValue: budget.UtilizationPercent()},
			store.AggregateMetric{MetricName: "month_spend", MetricValue: budget.TotalActual.InexactFloat64()},
			store.AggregateMetric{MetricName: "over_budget_categories", MetricValue: float64(budget.OverBudgetCount)},
		)
	}
	return m
}

// metricDirection maps metric names to whether higher values are better.
var metricDirection = map[string]bool{
	"total_members":          true,
	"active_members":         true,
	"active_rate":            true,
	"new_members":            true,
	"classes_this_week":      true,
	"attendance_rate":        true,
	"full_classes":           true,
	"waitlisted_members":     false, // members turned away
	"total_guests":           true,
	"guest_conversion_rate":  true,
	"ranked_trainers":        true,
	"avg_trainer_score":      true,
	"avg_feedback":           true,
	"trainer_revenue":        true,
	"budget_utilization":     false,
	"month_spend":            false,
	"over_budget_categories": false,
}

// metricDisplayOrder defines the order metrics appear in history output.
var metricDisplayOrder = []string{
	"total_members",
	"active_members",
	"active_rate",
	"new_members",
	"classes_this_week",
	"attendance_rate",
	"full_classes",
	"waitlisted_members",
	"total_guests",
	"guest_conversion_rate",
	"ranked_trainers",
	"avg_trainer_score",
	"avg_feedback",
	"trainer_revenue",
	"budget_utilization",
	"month_spend",
	"over_budget_categories",
}

// metricShortName returns a compact label for display in the history table.
func metricShortName(name string) string {
	short := map[string]string{
		"total_members":          "Members",
		"active_members":         "Active Members",
		"active_rate":            "Active %",
		"new_members":            "New This Month",
		"classes_this_week":      "Classes This Week",
		"attendance_rate":        "Attendance %",
		"full_classes":           "Full Classes",
		"waitlisted_members":     "Waitlisted",
		"total_guests":           "Guests",
		"guest_conversion_rate":  "Guest Conversion %",
		"ranked_trainers":        "Ranked Trainers",
		"avg_trainer_score":      "Avg Trainer Score",
		"avg_feedback":           "Avg Feedback",
		"trainer_revenue":        "Trainer Revenue",
		"budget_utilization":     "Budget Used %",
		"month_spend":            "Month Spend",
		"over_budget_categories": "Over Budget",
	}
	if s, ok := short[name]; ok {
		return s
	}
	return name
}

// computeDeltas compares two sets of aggregate metrics and returns MetricDelta entries.
func computeDeltas(prev, curr []store.AggregateMetric) []store.MetricDelta {
	prevMap := make(map[string]float64)
	for _, m := range prev {
		prevMap[m.MetricName] = m.MetricValue
	}

	var deltas []store.MetricDelta
	for _, m := range curr {
		prevVal := prevMap[m.MetricName]
		delta := m.MetricValue - prevVal

		direction := "unchanged"
		if delta != 0 {
			higherIsBetter, known := metricDirection[m.MetricName]
			if !known {
				higherIsBetter = true
			}
			if (delta > 0) == higherIsBetter {
				direction = "improved"
			} else {
				direction = "regressed"
			}
		}

		deltas = append(deltas, store.MetricDelta{
			Name:      m.MetricName,
			Previous:  prevVal,
			Current:   m.MetricValue,
			Delta:     delta,
			Direction: direction,
		})
	}
	return deltas
}

// syncInsights resolves open insights the engine no longer raises and
// opens the new ones. Insights are matched by title.
func syncInsights(db *store.DB, snapshotID int64, suggestions []suggest.Suggestion) (opened, resolved int, err error) {
	open, err := db.GetOpenInsights()
	if err != nil {
		return 0, 0, err
	}

	current := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		current[s.Title] = true
	}
	stillOpen := make(map[string]bool, len(open))
	for _, in := range open {
		if current[in.Title] {
			stillOpen[in.Title] = true
			continue
		}
		if err := db.ResolveInsight(in.ID); err != nil {
			return opened, resolved, err
		}
		resolved++
	}

	for _, s := range suggestions {
		if stillOpen[s.Title] {
			continue
		}
		in := &store.Insight{
			SnapshotID:  snapshotID,
			Category:    s.Category,
			Priority:    s.Priority,
			Title:       s.Title,
			Description: s.Description,
			ImpactScore: s.ImpactScore,
			Status:      store.InsightOpen,
		}
		if err := db.InsertInsight(in); err != nil {
			return opened, resolved, err
		}
		stillOpen[s.Title] = true
		opened++
	}
	return opened, resolved, nil
}

func renderTrackOutput(w io.Writer, current *store.Snapshot, diff *store.SnapshotDiff) {
	fmt.Fprintln(w, output.Section("Track: Snapshot Comparison"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " Snapshot #%d for %s taken at %s\n\n", current.ID, current.Period, current.TakenAt.Format("2006-01-02 15:04:05"))

	if diff == nil {
		fmt.Fprintln(w, " First snapshot recorded. Run 'gymdesk track' again later to see trends.")
		return
	}

	fmt.Fprintf(w, " Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Format("2006-01-02 15:04:05"))

	tbl := output.NewTable("Metric", "Previous", "Current", "Delta", "Trend").AlignRight(1, 2, 3)
	for _, d := range diff.Deltas {
		higherIsBetter, known := metricDirection[d.Name]
		if !known {
			higherIsBetter = true
		}
		tbl.AddRow(
			metricShortName(d.Name),
			fmt.Sprintf("%.1f", d.Previous),
			fmt.Sprintf("%.1f", d.Current),
			fmt.Sprintf("%+.1f", d.Delta),
			output.TrendArrow(d.Delta, higherIsBetter),
		)
	}
	tbl.Fprint(w)
}

func renderOpenInsights(w io.Writer, open []store.Insight, opened, resolved int) {
	suggestions := make([]suggest.Suggestion, len(open))
	for i, in := range open {
		suggestions[i] = suggest.Suggestion{
			Category:    in.Category,
			Priority:    in.Priority,
			Title:       in.Title,
			Description: in.Description,
			ImpactScore: in.ImpactScore,
		}
	}
	renderInsights(w, suggestions)
	fmt.Fprintf(w, "\n %s\n", output.StyleMuted.Render(fmt.Sprintf("%d opened, %d resolved this run", opened, resolved)))
}

// snapshotMetrics pairs a snapshot with its metric values.
type snapshotMetrics struct {
	snapshot store.Snapshot
	metrics  map[string]float64
}

// loadTimeline returns up to n track snapshots with their metrics, oldest first.
func loadTimeline(db *store.DB, n int) ([]snapshotMetrics, error) {
	snapshots, err := db.Snapshots(store.SnapshotFilter{Command: trackCommand, Limit: n})
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	slices.Reverse(snapshots)

	timeline := make([]snapshotMetrics, 0, len(snapshots))
	for _, s := range snapshots {
		m, err := db.MetricValues(s.ID)
		if err != nil {
			return nil, fmt.Errorf("loading metrics for snapshot #%d: %w", s.ID, err)
		}
		timeline = append(timeline, snapshotMetrics{snapshot: s, metrics: m})
	}
	return timeline, nil
}

// renderHistory shows a multi-snapshot timeline table.
func renderHistory(w io.Writer, db *store.DB, n int) error {
	timeline, err := loadTimeline(db, n)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, output.Section("Track: Metric History"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " Showing %d most recent snapshots\n\n", len(timeline))

	headers := []string{"Metric"}
	for _, sm := range timeline {
		headers = append(headers, fmt.Sprintf("#%d %s", sm.snapshot.ID, sm.snapshot.TakenAt.Format("Jan 02")))
	}
	headers = append(headers, "Trend")
	tbl := output.NewTable(headers...)

	for _, name := range metricDisplayOrder {
		recorded := false
		row := []string{metricShortName(name)}
		var vals []float64
		for _, sm := range timeline {
			v, ok := sm.metrics[name]
			recorded = recorded || ok
			vals = append(vals, v)
			row = append(row, fmt.Sprintf("%.1f", v))
		}
		if !recorded {
			continue
		}

		// Trend from first to last.
		trend := ""
		if len(vals) >= 2 {
			trend = output.TrendArrow(vals[len(vals)-1]-vals[0], metricDirection[name])
		}
		row = append(row, trend)
		tbl.AddRow(row...)
	}

	tbl.Fprint(w)
	return nil
}

// outputHistoryJSON writes the history data as JSON.
func outputHistoryJSON(w io.Writer, db *store.DB, n int) error {
	timeline, err := loadTimeline(db, n)
	if err != nil {
		return err
	}

	type snapshotEntry struct {
		Snapshot store.Snapshot     `json:"snapshot"`
		Metrics  map[string]float64 `json:"metrics"`
	}
	entries := make([]snapshotEntry, len(timeline))
	for i, sm := range timeline {
		entries[i] = snapshotEntry{Snapshot: sm.snapshot, Metrics: sm.metrics}
	}
	return writeJSON(w, map[string]any{"history": entries})
}
