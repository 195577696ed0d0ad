package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/output"
)

var expensesFlagMonth string

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Compare spending with budgets for a month",
	Long: `Expenses reports budget against actual spending per category for
--month, flagging categories nearing (budget.warn_at) or over their budget,
followed by the month's spending by category. Requires the admin or
manager role.`,
	RunE: runExpenses,
}

func init() {
	expensesCmd.Flags().StringVar(&expensesFlagMonth, "month", "", "Month as YYYY-MM (default: current month)")
	rootCmd.AddCommand(expensesCmd)
}

// expensesResult is the JSON shape of the expenses command.
type expensesResult struct {
	Budget   analyzer.BudgetReport `json:"budget"`
	Spending analyzer.ExpenseStats `json:"spending"`
}

func runExpenses(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.requireFinancials(); err != nil {
		return err
	}
	month, err := resolvePeriod(expensesFlagMonth, s.now)
	if err != nil {
		return err
	}

	ds, err := s.loadData(cmd.Context())
	if err != nil {
		return err
	}

	result := expensesResult{
		Budget:   analyzer.BudgetVsActual(ds.Expenses, ds.Categories, ds.Budgets, month),
		Spending: analyzer.AnalyzeExpenses(ds.Expenses, ds.Categories, month),
	}

	if flagJSON {
		return writeJSON(s.out, result)
	}
	renderBudget(s.out, result.Budget, s.cfg.Budget.WarnAt)
	renderSpending(s.out, result.Spending)
	return nil
}

func renderBudget(w io.Writer, r analyzer.BudgetReport, warnAt float64) {
	fmt.Fprintln(w, output.Section("Budget vs Actual "+r.Period))
	fmt.Fprintln(w)

	if len(r.Rows) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" No budgeted categories for this month."))
		return
	}

	tbl := output.NewTable("Category", "Budget", "Actual", "Remaining", "Used").AlignRight(1, 2, 3)
	for _, row := range r.Rows {
		remaining := output.Money(row.Remaining())
		if row.OverBudget {
			remaining = output.StyleError.Render(remaining)
		}
		tbl.AddRow(
			row.Category,
			output.Money(row.Budget),
			output.Money(row.Actual),
			remaining,
			output.BudgetBar(row.Percentage, warnAt, row.OverBudget, 16),
		)
	}
	tbl.Fprint(w)

	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Total budget:"),
		output.StyleValue.Render(output.Money(r.TotalBudget)))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Total spent:"),
		output.StyleValue.Render(fmt.Sprintf("%s (%s)", output.Money(r.TotalActual), output.Percent(r.UtilizationPercent()))))
	if r.OverBudgetCount > 0 {
		fmt.Fprintf(w, " %s %s\n",
			output.StyleLabel.Render("Over budget:"),
			output.StyleError.Render(fmt.Sprintf("%d categor%s", r.OverBudgetCount, plural(r.OverBudgetCount, "y", "ies"))))
	}
}

func renderSpending(w io.Writer, st analyzer.ExpenseStats) {
	fmt.Fprintln(w, output.Section("Spending by Category "+st.Period))
	fmt.Fprintln(w)

	if st.Count == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" No expenses recorded for this month."))
		return
	}

	tbl := output.NewTable("Category", "Expenses", "Total", "Share").AlignRight(1, 2, 3)
	for _, ct := range st.ByCategory {
		tbl.AddRow(ct.Category, fmt.Sprintf("%d", ct.Count), output.Money(ct.Total), output.Percent(ct.Share))
	}
	tbl.Fprint(w)
	fmt.Fprintf(w, "\n %s %s\n",
		output.StyleLabel.Render("Month total:"),
		output.StyleValue.Render(output.Money(st.Total)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
