package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

// dashboardInsights is the number of insights shown on the dashboard.
const dashboardInsights = 5

// dashboard is the JSON shape of the dashboard.
type dashboard struct {
	Today       model.Date              `json:"today"`
	Role        model.Role              `json:"role"`
	Classes     analyzer.ClassStats     `json:"classes"`
	Members     analyzer.MemberStats    `json:"members"`
	Guests      analyzer.GuestStats     `json:"guests"`
	TopTrainers []scoring.RankedTrainer `json:"top_trainers"`
	Budget      *analyzer.BudgetReport  `json:"budget,omitempty"`
	Insights    []suggest.Suggestion    `json:"insights"`
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ds, err := s.loadData(cmd.Context())
	if errors.Is(err, dataset.ErrNoData) {
		fmt.Fprintln(s.out, "gymdesk", appVersion)
		fmt.Fprintln(s.out)
		fmt.Fprintf(s.out, "No data found in %s.\n", s.cfg.DataDir)
		fmt.Fprintln(s.out, "Run 'gymdesk seed' to write a demo data set, or pass --data DIR.")
		return nil
	}
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

	ictx := buildInsightContext(s, ds, ranking)
	d := dashboard{
		Today:       s.now,
		Role:        s.role,
		Classes:     ictx.ClassStats,
		Members:     analyzer.AnalyzeMembers(ds.Members, s.now),
		Guests:      ictx.Guests,
		TopTrainers: ranking.Top(s.cfg.Leaderboard.Top),
		Insights:    suggest.Top(suggest.NewEngine().Run(ictx), dashboardInsights),
	}
	if s.role.CanViewFinancials() {
		d.Budget = &ictx.Budget
	} else {
		d.TopTrainers = scoring.HideRevenue(d.TopTrainers)
	}

	if flagJSON {
		return writeJSON(s.out, d)
	}
	renderDashboard(s.out, d, s.cfg.Budget.WarnAt)
	return nil
}

func renderDashboard(w io.Writer, d dashboard, warnAt float64) {
	fmt.Fprintf(w, "\n %s %s\n",
		output.StyleHeader.Render("gymdesk "+appVersion),
		output.StyleMuted.Render(fmt.Sprintf("%s, %s (%s)", d.Today.Weekday(), d.Today, d.Role)))

	fmt.Fprintln(w, output.Section("Today"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Classes today:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.Classes.ClassesToday)))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Classes this week:"),
		output.StyleValue.Render(fmt.Sprintf("%d", d.Classes.ClassesThisWeek)))
	fmt.Fprintf(w, " %s %s %s\n",
		output.StyleLabel.Render("Attendance:"),
		output.StyleValue.Render(output.Percent(d.Classes.AttendanceRate)),
		output.ScoreBar(d.Classes.AttendanceRate, 20))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Active members:"),
		output.StyleValue.Render(fmt.Sprintf("%d/%d", d.Members.ActiveMembers, d.Members.TotalMembers)))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Guests today:"),
		output.StyleValue.Render(fmt.Sprintf("%d (%d checked in)", d.Guests.VisitsToday, d.Guests.CheckedIn)))

	if len(d.TopTrainers) > 0 {
		fmt.Fprintln(w, output.Section("Top Trainers"))
		fmt.Fprintln(w)
		tbl := output.NewTable("Rank", "Trainer", "Score", "Change").AlignRight(0, 2)
		for _, rt := range d.TopTrainers {
			tbl.AddRow(fmt.Sprintf("#%d", rt.Rank), rt.Trainer.Name, fmt.Sprintf("%.2f", rt.Score), output.RankChangeArrow(rt.RankChange))
		}
		tbl.Fprint(w)
	}

	if d.Budget != nil && len(d.Budget.Rows) > 0 {
		fmt.Fprintln(w, output.Section("Budget "+d.Budget.Period))
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %s %s\n",
			output.StyleLabel.Render("Spent:"),
			output.BudgetBar(d.Budget.UtilizationPercent(), warnAt, d.Budget.TotalActual.GreaterThan(d.Budget.TotalBudget), 20))
		for _, row := range d.Budget.Rows {
			if !row.OverBudget && row.Ratio < warnAt {
				continue
			}
			fmt.Fprintf(w, " %s %s\n",
				output.StyleLabel.Render(row.Category+":"),
				output.BudgetBar(row.Percentage, warnAt, row.OverBudget, 20))
		}
	}

	renderInsights(w, d.Insights)
	fmt.Fprintln(w)
}
