package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the gymdesk setup and data are healthy",
	Long: `Run a series of health checks against the gymdesk configuration, the
data directory and the snapshot database. Prints a pass/fail line for each
check and a summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// maxDanglingShown caps how many unresolved references are listed.
const maxDanglingShown = 3

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	var checks []doctorCheck

	checks = append(checks, checkDataDir(s.cfg.DataDir))

	ds, err := s.loadData(cmd.Context())
	checks = append(checks, checkDataFiles(ds, err))
	if err == nil {
		checks = append(checks, checkReferences(ds))
		checks = append(checks, checkTrainerPerformance(ds.Trainers))
	}

	checks = append(checks, s.checkDatabase())

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		return writeJSON(s.out, doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		})
	}

	fmt.Fprintln(s.out, output.Section("Doctor"))
	fmt.Fprintln(s.out)
	for _, c := range checks {
		renderDoctorCheck(s.out, c)
	}
	fmt.Fprintln(s.out)
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Fprintf(s.out, " %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Fprintf(s.out, " %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(w io.Writer, c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Fprintf(w, "  %s  %-30s %s\n", indicator, label, detail)
}

// checkDataDir verifies that the data directory exists and is a directory.
func checkDataDir(dir string) doctorCheck {
	info, err := os.Stat(dir)
	if err != nil {
		return doctorCheck{
			Name:    "Data directory",
			Passed:  false,
			Message: fmt.Sprintf("not found: %s (run 'gymdesk seed' to create demo data)", dir),
		}
	}
	if !info.IsDir() {
		return doctorCheck{
			Name:    "Data directory",
			Passed:  false,
			Message: fmt.Sprintf("path exists but is not a directory: %s", dir),
		}
	}
	return doctorCheck{Name: "Data directory", Passed: true, Message: dir}
}

// checkDataFiles reports which collections loaded.
func checkDataFiles(ds *dataset.Dataset, loadErr error) doctorCheck {
	if errors.Is(loadErr, dataset.ErrNoData) {
		return doctorCheck{Name: "Data files", Passed: false, Message: "no collection files found"}
	}
	if loadErr != nil {
		return doctorCheck{Name: "Data files", Passed: false, Message: loadErr.Error()}
	}

	var missing []string
	for _, name := range dataset.CollectionNames() {
		if _, ok := ds.Sources[name]; !ok {
			missing = append(missing, name)
		}
	}
	total := len(dataset.CollectionNames())
	if len(missing) > 0 {
		return doctorCheck{
			Name:    "Data files",
			Passed:  false,
			Message: fmt.Sprintf("%d/%d collections, missing: %s", total-len(missing), total, strings.Join(missing, ", ")),
		}
	}
	return doctorCheck{
		Name:    "Data files",
		Passed:  true,
		Message: fmt.Sprintf("%d/%d collections, %s members, %s classes", total, total, humanize.Comma(int64(len(ds.Members))), humanize.Comma(int64(len(ds.Classes)))),
	}
}

// checkReferences verifies that IDs between collections resolve.
func checkReferences(ds *dataset.Dataset) doctorCheck {
	dangling := ds.DanglingRefs()
	if len(dangling) == 0 {
		return doctorCheck{Name: "References", Passed: true, Message: "all references resolve"}
	}
	shown := make([]string, 0, maxDanglingShown)
	for i, d := range dangling {
		if i == maxDanglingShown {
			break
		}
		shown = append(shown, d.String())
	}
	msg := fmt.Sprintf("%d unresolved: %s", len(dangling), strings.Join(shown, "; "))
	if len(dangling) > maxDanglingShown {
		msg += "; ..."
	}
	return doctorCheck{Name: "References", Passed: false, Message: msg}
}

// checkTrainerPerformance reports trainers left off the leaderboard.
func checkTrainerPerformance(trainers []model.Trainer) doctorCheck {
	var unranked []string
	for _, t := range trainers {
		if t.Performance == nil {
			unranked = append(unranked, t.Name)
		}
	}
	if len(trainers) == 0 {
		return doctorCheck{Name: "Trainer performance", Passed: false, Message: "no trainers"}
	}
	if len(unranked) > 0 {
		return doctorCheck{
			Name:    "Trainer performance",
			Passed:  false,
			Message: fmt.Sprintf("%d/%d without performance data: %s", len(unranked), len(trainers), strings.Join(unranked, ", ")),
		}
	}
	return doctorCheck{
		Name:    "Trainer performance",
		Passed:  true,
		Message: fmt.Sprintf("all %d trainers ranked", len(trainers)),
	}
}

// checkDatabase verifies that the snapshot database opens and reports the
// latest snapshot.
func (s *session) checkDatabase() doctorCheck {
	if _, err := os.Stat(s.cfg.DBPath); err != nil {
		return doctorCheck{
			Name:    "Snapshot database",
			Passed:  false,
			Message: fmt.Sprintf("not found at %s (run 'gymdesk track' to create)", s.cfg.DBPath),
		}
	}
	db, err := s.openStore()
	if err != nil {
		return doctorCheck{Name: "Snapshot database", Passed: false, Message: err.Error()}
	}
	defer func() { _ = db.Close() }()

	version, err := db.SchemaVersion()
	if err != nil {
		return doctorCheck{Name: "Snapshot database", Passed: false, Message: err.Error()}
	}
	latest, err := db.GetLatestSnapshot()
	if err != nil {
		return doctorCheck{Name: "Snapshot database", Passed: false, Message: err.Error()}
	}
	if latest == nil {
		return doctorCheck{
			Name:    "Snapshot database",
			Passed:  true,
			Message: fmt.Sprintf("%s (schema v%d, no snapshots yet)", s.cfg.DBPath, version),
		}
	}
	return doctorCheck{
		Name:   "Snapshot database",
		Passed: true,
		Message: fmt.Sprintf("%s (schema v%d, last %s snapshot %s)",
			s.cfg.DBPath, version, latest.Command, humanize.Time(latest.TakenAt)),
	}
}
