package app

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/query"
	"github.com/blackwell-systems/gymdesk/internal/scoring"
	"github.com/blackwell-systems/gymdesk/internal/store"
)

var (
	trainersFlagQuery     string
	trainersFlagSpecialty []string
	trainersFlagPeriod    string
	trainersFlagSave      bool
	trainersFlagTop       int
	trainersFlagSort      string
	trainersFlagDesc      bool
)

var trainersCmd = &cobra.Command{
	Use:   "trainers",
	Short: "Show the trainer leaderboard with rank changes",
	Long: `Trainers ranks every trainer with a performance record by score and
shows how far each moved since last month. When a record carries no
previous rank, the rank from the latest saved leaderboard before --period is
used. --save stores this period's leaderboard for future comparisons.

Filters narrow the rows shown; ranks are always computed over all trainers.`,
	RunE: runTrainers,
}

func init() {
	f := trainersCmd.Flags()
	f.StringVar(&trainersFlagQuery, "q", "", "Search term")
	f.StringSliceVar(&trainersFlagSpecialty, "specialty", nil, "Specialty to match (can be repeated)")
	f.StringVar(&trainersFlagPeriod, "period", "", "Leaderboard month as YYYY-MM (default: current month)")
	f.BoolVar(&trainersFlagSave, "save", false, "Save this leaderboard as the period's snapshot")
	f.IntVar(&trainersFlagTop, "top", -1, "Show at most N ranked trainers (0 shows all; default from config)")
	f.StringVar(&trainersFlagSort, "sort", "", fmt.Sprintf("Reorder rows by column: %v (default: rank)", query.TrainerSorts.Columns()))
	f.BoolVar(&trainersFlagDesc, "desc", false, "Sort in descending order")

	rootCmd.AddCommand(trainersCmd)
}

// trainersResult is the JSON shape of the trainers command.
type trainersResult struct {
	Period     string                  `json:"period"`
	Ranked     []scoring.RankedTrainer `json:"ranked"`
	Unranked   []model.Trainer         `json:"unranked,omitempty"`
	Stats      analyzer.TrainerStats   `json:"stats"`
	SnapshotID int64                   `json:"snapshot_id,omitempty"`
}

func runTrainers(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	period, err := resolvePeriod(trainersFlagPeriod, s.now)
	if err != nil {
		return err
	}

	ds, err := s.loadData(cmd.Context())
	if err != nil {
		return err
	}

	p := facet.Params{}
	addParam(p, "specialties", trainersFlagSpecialty...)
	spec, err := query.TrainerFacets.Build(p)
	if err != nil {
		return fmt.Errorf("building trainer filter: %w", err)
	}
	matched := query.Run(ds.Trainers, trainersFlagQuery, query.TrainerSearchFields, spec)

	db, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ranking, err := s.rankTrainers(db, ds.Trainers, period)
	if err != nil {
		return err
	}

	result := trainersResult{Period: period}
	if trainersFlagSave {
		id, err := db.SaveRanking(period, "trainers", appVersion, trainerRanks(ranking))
		if err != nil {
			return fmt.Errorf("saving ranking: %w", err)
		}
		result.SnapshotID = id
		s.log.Info("leaderboard saved", zap.String("period", period), zap.Int64("snapshot", id), zap.Int("ranked", len(ranking.Ranked)))
	}

	rows := selectRanked(ranking.Ranked, matched)
	if trainersFlagSort != "" {
		rows, err = sortRanked(rows, trainersFlagSort, trainersFlagDesc)
		if err != nil {
			return err
		}
	}
	top := trainersFlagTop
	if top < 0 {
		top = s.cfg.Leaderboard.Top
	}
	result.Ranked = scoring.Ranking{Ranked: rows}.Top(top)
	result.Unranked = selectUnranked(ranking.Unranked, matched)
	result.Stats = analyzer.AnalyzeTrainers(matched)

	financials := s.role.CanViewFinancials()
	if !financials {
		result.Stats.TotalRevenue = 0
		result.Ranked = scoring.HideRevenue(result.Ranked)
	}

	if flagJSON {
		return writeJSON(s.out, result)
	}
	renderLeaderboard(s.out, result, financials)
	return nil
}

// resolvePeriod validates a YYYY-MM period, defaulting to the month of now.
func resolvePeriod(period string, now model.Date) (string, error) {
	if period == "" {
		return now.Period(), nil
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return "", fmt.Errorf("invalid period %q (want YYYY-MM)", period)
	}
	return period, nil
}

// trainerRanks converts a ranking into store rows.
func trainerRanks(r scoring.Ranking) []store.TrainerRank {
	ranks := make([]store.TrainerRank, len(r.Ranked))
	for i, rt := range r.Ranked {
		ranks[i] = store.TrainerRank{
			TrainerID:   rt.Trainer.ID,
			TrainerName: rt.Trainer.Name,
			Rank:        rt.Rank,
			Score:       rt.Score,
		}
	}
	return ranks
}

func idSet(trainers []model.Trainer) map[string]bool {
	ids := make(map[string]bool, len(trainers))
	for _, t := range trainers {
		ids[t.ID] = true
	}
	return ids
}

// selectRanked keeps the ranked rows whose trainer is in matched.
func selectRanked(ranked []scoring.RankedTrainer, matched []model.Trainer) []scoring.RankedTrainer {
	ids := idSet(matched)
	var out []scoring.RankedTrainer
	for _, rt := range ranked {
		if ids[rt.Trainer.ID] {
			out = append(out, rt)
		}
	}
	return out
}

func selectUnranked(unranked, matched []model.Trainer) []model.Trainer {
	ids := idSet(matched)
	var out []model.Trainer
	for _, t := range unranked {
		if ids[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// sortRanked reorders leaderboard rows by a trainer sort column. Rows keep
// their rank numbers.
func sortRanked(rows []scoring.RankedTrainer, column string, desc bool) ([]scoring.RankedTrainer, error) {
	trainers := make([]model.Trainer, len(rows))
	byID := make(map[string]scoring.RankedTrainer, len(rows))
	for i, rt := range rows {
		trainers[i] = rt.Trainer
		byID[rt.Trainer.ID] = rt
	}
	sorted, err := query.Sort(trainers, query.TrainerSorts, column, desc)
	if err != nil {
		return nil, err
	}
	out := make([]scoring.RankedTrainer, len(sorted))
	for i, t := range sorted {
		out[i] = byID[t.ID]
	}
	return out, nil
}

func renderLeaderboard(w io.Writer, r trainersResult, financials bool) {
	fmt.Fprintln(w, output.Section("Trainer Leaderboard "+r.Period))
	fmt.Fprintln(w)

	headers := []string{"Rank", "Trainer", "Score", "Classes", "Attendance", "Feedback", "Retention", "PT"}
	if financials {
		headers = append(headers, "Revenue")
	}
	headers = append(headers, "Change")

	tbl := output.NewTable(headers...).AlignRight(0, 2, 3, 4, 5, 6, 7)
	for _, rt := range r.Ranked {
		p := rt.Trainer.Performance
		row := []string{
			fmt.Sprintf("#%d", rt.Rank),
			rt.Trainer.Name,
			fmt.Sprintf("%.2f", rt.Score),
			fmt.Sprintf("%d", p.ClassesCount),
			output.Percent(p.AttendanceRate),
			fmt.Sprintf("%.1f", p.MemberFeedback),
			output.Percent(p.ClientRetentionRate),
			fmt.Sprintf("%d", p.PTSessionsCount),
		}
		if financials {
			row = append(row, output.Dollars(p.RevenueGenerated))
		}
		row = append(row, output.RankChangeArrow(rt.RankChange))
		tbl.AddRow(row...)
	}
	tbl.Fprint(w)

	if len(r.Ranked) == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(" No ranked trainers match."))
	}
	if len(r.Unranked) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %s\n", output.StyleMuted.Render(fmt.Sprintf("Not ranked (no performance record): %d", len(r.Unranked))))
		for _, t := range r.Unranked {
			fmt.Fprintf(w, "   %s\n", t.Name)
		}
	}
	if r.SnapshotID != 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %s\n", output.StyleSuccess.Render(fmt.Sprintf("Saved as snapshot #%d", r.SnapshotID)))
	}
}
