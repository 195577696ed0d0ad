package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
)

var (
	statsFlagKind   string
	statsFlagPeriod string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print one raw aggregation as JSON",
	Long: fmt.Sprintf(`Stats runs a single aggregation over the full data set and prints the
result as JSON. Kinds: %v.

The budget and expenses kinds require the admin or manager role; the
trainers kind omits revenue for other roles.`, analyzer.Kinds()),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFlagKind, "kind", "", "Aggregation kind (required)")
	statsCmd.Flags().StringVar(&statsFlagPeriod, "period", "", "Month for budget and expenses as YYYY-MM (default: current month)")
	_ = statsCmd.MarkFlagRequired("kind")
	rootCmd.AddCommand(statsCmd)
}

// financialKinds are the aggregations hidden from roles without financial access.
var financialKinds = map[analyzer.Kind]bool{
	analyzer.KindBudget:   true,
	analyzer.KindExpenses: true,
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	kind, err := analyzer.ParseKind(statsFlagKind)
	if err != nil {
		return fmt.Errorf("%w (want one of %v)", err, analyzer.Kinds())
	}
	if financialKinds[kind] {
		if err := s.requireFinancials(); err != nil {
			return err
		}
	}
	period, err := resolvePeriod(statsFlagPeriod, s.now)
	if err != nil {
		return err
	}

	ds, err := s.loadData(cmd.Context())
	if err != nil {
		return err
	}

	result, err := analyzer.Aggregate(kind, analyzer.Context{
		Now:        s.now,
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
		return err
	}

	if ts, ok := result.(analyzer.TrainerStats); ok && !s.role.CanViewFinancials() {
		ts.TotalRevenue = 0
		result = ts
	}

	return writeJSON(s.out, map[string]any{
		"kind":   kind,
		"result": result,
	})
}
