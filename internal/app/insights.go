package app

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

var (
	insightsLimit    int
	insightsCategory string
)

var insightsCmd = &cobra.Command{
	Use:     "insights",
	Aliases: []string{"suggest"},
	Short:   "List ranked front-desk insights",
	Long: fmt.Sprintf(`Run every insight rule against the current data and list the results
from highest to lowest impact. Budget insights need the admin or manager
role. Categories: %v.`, suggest.Categories()),
	RunE: runInsights,
}

func init() {
	insightsCmd.Flags().IntVar(&insightsLimit, "limit", 10, "Maximum number of insights to show (0 shows all)")
	insightsCmd.Flags().StringVar(&insightsCategory, "category", "", "Filter by category")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	if insightsCategory != "" && !slices.Contains(suggest.Categories(), insightsCategory) {
		return fmt.Errorf("unknown category %q (want one of %v)", insightsCategory, suggest.Categories())
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ds, err := s.loadData(cmd.Context())
	if err != nil {
		return err
	}
	db, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ranking, err := s.rankTrainers(db, ds.Trainers, s.now.Period())
	if err != nil {
		return err
	}

	insights := suggest.NewEngine().Run(buildInsightContext(s, ds, ranking))
	if insightsCategory != "" {
		insights = suggest.FilterCategory(insights, insightsCategory)
	}
	insights = suggest.Top(insights, insightsLimit)

	if flagJSON {
		if insights == nil {
			insights = []suggest.Suggestion{}
		}
		return writeJSON(s.out, insights)
	}
	renderInsights(s.out, insights)
	return nil
}

// buildInsightContext gathers what the insight rules read. Budget data is
// left empty for roles that cannot view financials.
func buildInsightContext(s *session, ds *dataset.Dataset, ranking scoring.Ranking) *suggest.InsightContext {
	return suggest.NewInsightContext(ds, s.now, ranking, s.thresholds(), s.role.CanViewFinancials())
}

// thresholds returns the configured insight thresholds.
func (s *session) thresholds() suggest.Thresholds {
	return suggest.Thresholds{
		WarnAt:        s.cfg.Budget.WarnAt,
		LowAttendance: s.cfg.Insights.LowAttendance,
		LowConversion: s.cfg.Insights.LowConversion,
		RankDrop:      s.cfg.Insights.RankDrop,
	}
}

func priorityLabel(p int) string {
	switch p {
	case suggest.PriorityCritical:
		return output.StyleError.Render("critical")
	case suggest.PriorityHigh:
		return output.StyleWarning.Render("high")
	case suggest.PriorityMedium:
		return "medium"
	default:
		return output.StyleMuted.Render("low")
	}
}

func renderInsights(w io.Writer, suggestions []suggest.Suggestion) {
	fmt.Fprintln(w, output.Section("Insights"))
	fmt.Fprintln(w)

	if len(suggestions) == 0 {
		fmt.Fprintln(w, output.StyleSuccess.Render(" Nothing needs attention."))
		return
	}
	for i, s := range suggestions {
		fmt.Fprintf(w, " %d. [%s] %s\n", i+1, priorityLabel(s.Priority), output.StyleBold.Render(s.Title))
		fmt.Fprintf(w, "    %s\n", output.StyleMuted.Render(s.Description))
	}
}
