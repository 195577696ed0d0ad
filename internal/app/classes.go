package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/query"
)

var (
	classesFlagQuery        string
	classesFlagFrom         string
	classesFlagTo           string
	classesFlagTimeOfDay    []string
	classesFlagType         []string
	classesFlagTrainer      []string
	classesFlagRoom         []string
	classesFlagAvailability []string
	classesFlagList         listFlags
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Search the class schedule and report attendance",
	Long: `Classes matches --q against class name and description, then narrows
by date range, time of day, class type, trainer, room and availability.
Multi-valued filters match any of the given values. Attendance statistics
cover every matching class, not only the current page.`,
	RunE: runClasses,
}

func init() {
	f := classesCmd.Flags()
	f.StringVar(&classesFlagQuery, "q", "", "Search term")
	f.StringVar(&classesFlagFrom, "from", "", "Earliest class date, YYYY-MM-DD (inclusive)")
	f.StringVar(&classesFlagTo, "to", "", "Latest class date, YYYY-MM-DD (inclusive)")
	f.StringSliceVar(&classesFlagTimeOfDay, "time-of-day", nil, "morning, afternoon or evening (can be repeated)")
	f.StringSliceVar(&classesFlagType, "type", nil, "Class type, e.g. Yoga, HIIT (can be repeated)")
	f.StringSliceVar(&classesFlagTrainer, "trainer", nil, "Trainer ID (can be repeated)")
	f.StringSliceVar(&classesFlagRoom, "room", nil, "Room name (can be repeated)")
	f.StringSliceVar(&classesFlagAvailability, "availability", nil, "available, full or waitlist (can be repeated)")
	classesFlagList.register(classesCmd, query.ClassSorts.Columns())

	rootCmd.AddCommand(classesCmd)
}

// classRow is a class with its trainer resolved for display.
type classRow struct {
	model.GymClass
	TrainerName  string             `json:"trainerName"`
	Availability facet.Availability `json:"availability"`
	TimeOfDay    facet.TimeOfDay    `json:"timeOfDay"`
}

// classesResult is the JSON shape of the classes command.
type classesResult struct {
	listing[classRow]
	Stats analyzer.ClassStats `json:"stats"`
}

func runClasses(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	ds, err := s.loadData(cmd.Context())
	if err != nil {
		return err
	}

	p := facet.Params{}
	if classesFlagFrom != "" || classesFlagTo != "" {
		p["dateRange"] = []string{classesFlagFrom, classesFlagTo}
	}
	addParam(p, "timeOfDay", classesFlagTimeOfDay...)
	addParam(p, "classType", classesFlagType...)
	addParam(p, "trainerId", classesFlagTrainer...)
	addParam(p, "room", classesFlagRoom...)
	addParam(p, "availability", classesFlagAvailability...)
	spec, err := query.ClassFacets(s.parts).Build(p)
	if err != nil {
		return fmt.Errorf("building class filter: %w", err)
	}

	matched := query.Run(ds.Classes, classesFlagQuery, query.ClassSearchFields, spec)
	page, err := list(matched, query.ClassSorts, classesFlagList)
	if err != nil {
		return err
	}

	trainers := model.TrainerLookup(ds.Trainers)
	rows := make([]classRow, len(page.Items))
	for i, c := range page.Items {
		rows[i] = classRow{
			GymClass:     c,
			TrainerName:  trainers.Name(c.TrainerID),
			Availability: facet.ClassAvailability(c),
			TimeOfDay:    s.parts.Classify(c.StartTime),
		}
	}

	result := classesResult{
		listing: listing[classRow]{Page: page.Page, Items: rows},
		Stats:   analyzer.AnalyzeClasses(matched, s.now),
	}

	if flagJSON {
		return writeJSON(s.out, result)
	}
	renderClasses(s.out, result)
	return nil
}

func renderClasses(w io.Writer, r classesResult) {
	fmt.Fprintln(w, output.Section("Class Schedule"))
	fmt.Fprintln(w)

	tbl := output.NewTable("Date", "Time", "Class", "Type", "Room", "Trainer", "Booked", "Availability").AlignRight(6)
	for _, c := range r.Items {
		tbl.AddRow(
			c.Date.String(),
			fmt.Sprintf("%s-%s", c.StartTime, c.EndTime),
			c.Name,
			string(c.Type),
			string(c.Room),
			c.TrainerName,
			fmt.Sprintf("%d/%d", len(c.Attendees), c.Capacity),
			availabilityLabel(c.Availability),
		)
	}
	tbl.Fprint(w)
	renderPageFooter(w, r.Page, "classes")

	if r.Stats.TotalClasses == 0 {
		return
	}
	renderClassStats(w, r.Stats)
}

func renderClassStats(w io.Writer, st analyzer.ClassStats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Classes today:"),
		output.StyleValue.Render(fmt.Sprintf("%d", st.ClassesToday)))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Classes this week:"),
		output.StyleValue.Render(fmt.Sprintf("%d", st.ClassesThisWeek)))
	fmt.Fprintf(w, " %s %s %s\n",
		output.StyleLabel.Render("Attendance:"),
		output.StyleValue.Render(output.Percent(st.AttendanceRate)),
		output.ScoreBar(st.AttendanceRate, 20))
	if st.WaitlistedClasses > 0 {
		fmt.Fprintf(w, " %s %s\n",
			output.StyleLabel.Render("Waitlisted:"),
			output.StyleWarning.Render(fmt.Sprintf("%d member(s) across %d class(es)", st.WaitlistedMembers, st.WaitlistedClasses)))
	}
}

func availabilityLabel(a facet.Availability) string {
	switch a {
	case facet.Available:
		return output.StyleSuccess.Render(string(a))
	case facet.Full:
		return output.StyleWarning.Render(string(a))
	default:
		return output.StyleError.Render(string(a))
	}
}
