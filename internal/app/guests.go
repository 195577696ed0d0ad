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
	guestsFlagQuery     string
	guestsFlagStatus    string
	guestsFlagPurpose   string
	guestsFlagConverted string
	guestsFlagList      listFlags
)

var guestsCmd = &cobra.Command{
	Use:   "guests",
	Short: "Search guest visits and report conversions",
	Long: `Guests matches --q against name, email and phone, then narrows by
visit status, visit purpose and whether the guest became a member.`,
	RunE: runGuests,
}

func init() {
	f := guestsCmd.Flags()
	f.StringVar(&guestsFlagQuery, "q", "", "Search term")
	f.StringVar(&guestsFlagStatus, "status", "", `Visit status ("Checked In", "Checked Out", Scheduled)`)
	f.StringVar(&guestsFlagPurpose, "purpose", "", "Visit purpose (Trial, DayPass, Tour, Event, MemberGuest)")
	f.StringVar(&guestsFlagConverted, "converted", "", "Converted to member: yes, no or any")
	guestsFlagList.register(guestsCmd, query.GuestSorts.Columns())

	rootCmd.AddCommand(guestsCmd)
}

// guestRow is a guest with the hosting member resolved for display.
type guestRow struct {
	model.Guest
	HostName string `json:"hostName,omitempty"`
}

// guestsResult is the JSON shape of the guests command.
type guestsResult struct {
	listing[guestRow]
	Stats analyzer.GuestStats `json:"stats"`
}

func runGuests(cmd *cobra.Command, args []string) error {
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
	addParam(p, "status", guestsFlagStatus)
	addParam(p, "visitPurpose", guestsFlagPurpose)
	addParam(p, "convertedToMember", guestsFlagConverted)
	spec, err := query.GuestFacets.Build(p)
	if err != nil {
		return fmt.Errorf("building guest filter: %w", err)
	}

	matched := query.Run(ds.Guests, guestsFlagQuery, query.GuestSearchFields, spec)
	page, err := list(matched, query.GuestSorts, guestsFlagList)
	if err != nil {
		return err
	}

	members := model.MemberLookup(ds.Members)
	rows := make([]guestRow, len(page.Items))
	for i, g := range page.Items {
		rows[i] = guestRow{Guest: g}
		if g.RelatedMemberID != "" {
			rows[i].HostName = members.Name(g.RelatedMemberID)
		}
	}

	result := guestsResult{
		listing: listing[guestRow]{Page: page.Page, Items: rows},
		Stats:   analyzer.AnalyzeGuests(matched, s.now),
	}

	if flagJSON {
		return writeJSON(s.out, result)
	}
	renderGuests(s.out, result)
	return nil
}

func renderGuests(w io.Writer, r guestsResult) {
	fmt.Fprintln(w, output.Section("Guests"))
	fmt.Fprintln(w)

	tbl := output.NewTable("Name", "Visit", "Status", "Purpose", "Host", "Member")
	for _, g := range r.Items {
		converted := output.StyleMuted.Render("no")
		if g.ConvertedToMember {
			converted = output.StyleSuccess.Render("yes")
		}
		tbl.AddRow(g.Name, g.VisitDate.String(), string(g.Status), string(g.VisitPurpose), g.HostName, converted)
	}
	tbl.Fprint(w)
	renderPageFooter(w, r.Page, "guests")

	if r.Stats.TotalGuests == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Visits today:"),
		output.StyleValue.Render(fmt.Sprintf("%d", r.Stats.VisitsToday)))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Checked in now:"),
		output.StyleValue.Render(fmt.Sprintf("%d", r.Stats.CheckedIn)))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Converted:"),
		output.StyleValue.Render(fmt.Sprintf("%d (%s)", r.Stats.Converted, output.Percent(r.Stats.ConversionRate))))
}
