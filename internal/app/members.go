package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/analyzer"
	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/query"
)

var (
	membersFlagQuery  string
	membersFlagStatus string
	membersFlagType   string
	membersFlagTags   []string
	membersFlagList   listFlags
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Search and filter the member directory",
	Long: `Members matches --q against name, email and phone (digits only for
phone), then narrows by membership status, plan type and tags. A member
matches --tag if they carry any of the given tags.`,
	RunE: runMembers,
}

func init() {
	membersCmd.Flags().StringVar(&membersFlagQuery, "q", "", "Search term")
	membersCmd.Flags().StringVar(&membersFlagStatus, "status", "", "Membership status (Active, Inactive, Pending, Expired, Frozen, Cancelled)")
	membersCmd.Flags().StringVar(&membersFlagType, "type", "", "Membership type (Basic, Standard, Premium, ...)")
	membersCmd.Flags().StringSliceVar(&membersFlagTags, "tag", nil, "Tag to match (can be repeated)")
	membersFlagList.register(membersCmd, query.MemberSorts.Columns())

	rootCmd.AddCommand(membersCmd)
}

// membersResult is the JSON shape of the members command.
type membersResult struct {
	listing[model.Member]
	Stats analyzer.MemberStats `json:"stats"`
}

func runMembers(cmd *cobra.Command, args []string) error {
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
	addParam(p, "status", membersFlagStatus)
	addParam(p, "type", membersFlagType)
	addParam(p, "tags", membersFlagTags...)
	spec, err := query.MemberFacets.Build(p)
	if err != nil {
		return fmt.Errorf("building member filter: %w", err)
	}

	matched := query.Run(ds.Members, membersFlagQuery, query.MemberSearchFields, spec)
	page, err := list(matched, query.MemberSorts, membersFlagList)
	if err != nil {
		return err
	}
	result := membersResult{listing: page, Stats: analyzer.AnalyzeMembers(matched, s.now)}

	if flagJSON {
		return writeJSON(s.out, result)
	}
	renderMembers(s.out, result)
	return nil
}

func renderMembers(w io.Writer, r membersResult) {
	fmt.Fprintln(w, output.Section("Members"))
	fmt.Fprintln(w)

	tbl := output.NewTable("Name", "Email", "Phone", "Plan", "Status", "Joined", "Tags")
	for _, m := range r.Items {
		tbl.AddRow(m.Name, m.Email, m.Phone, string(m.MembershipType), memberStatusLabel(m.MembershipStatus), m.JoinDate.String(), strings.Join(m.Tags, ", "))
	}
	tbl.Fprint(w)
	renderPageFooter(w, r.Page, "members")

	if r.Stats.TotalMembers == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Active:"),
		output.StyleValue.Render(fmt.Sprintf("%d (%s)", r.Stats.ActiveMembers, output.Percent(r.Stats.ActiveRate))))
	fmt.Fprintf(w, " %s %s\n",
		output.StyleLabel.Render("Joined this month:"),
		output.StyleValue.Render(fmt.Sprintf("%d", r.Stats.NewThisMonth)))
}

func memberStatusLabel(status model.MembershipStatus) string {
	switch status {
	case model.StatusActive:
		return output.StyleSuccess.Render(string(status))
	case model.StatusExpired, model.StatusCancelled:
		return output.StyleError.Render(string(status))
	case model.StatusPending, model.StatusFrozen:
		return output.StyleWarning.Render(string(status))
	default:
		return output.StyleMuted.Render(string(status))
	}
}
