package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/output"
	"github.com/blackwell-systems/gymdesk/internal/query"
)

// listFlags are the sort and paging flags shared by directory commands.
type listFlags struct {
	sort    string
	desc    bool
	page    int
	perPage int
}

func (f *listFlags) register(cmd *cobra.Command, columns []string) {
	cmd.Flags().StringVar(&f.sort, "sort", "", fmt.Sprintf("Sort by column: %v", columns))
	cmd.Flags().BoolVar(&f.desc, "desc", false, "Sort in descending order")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number (1-indexed)")
	cmd.Flags().IntVar(&f.perPage, "per-page", query.DefaultPerPage, "Rows per page (0 shows all)")
}

// listing is one page of a directory query.
type listing[T any] struct {
	Page  query.PageInfo `json:"page"`
	Items []T            `json:"items"`
}

// list sorts and pages matched rows.
func list[T any](matched []T, table query.SortTable[T], f listFlags) (listing[T], error) {
	sorted, err := query.Sort(matched, table, f.sort, f.desc)
	if err != nil {
		return listing[T]{}, err
	}
	items, info := query.Paginate(sorted, f.page, f.perPage)
	return listing[T]{Page: info, Items: items}, nil
}

// renderPageFooter prints the "Showing a-b of n" line under a directory table.
func renderPageFooter(w io.Writer, info query.PageInfo, noun string) {
	if info.Total == 0 {
		fmt.Fprintln(w, output.StyleMuted.Render(fmt.Sprintf(" No %s match.", noun)))
		return
	}
	fmt.Fprintf(w, "\n %s\n", output.StyleMuted.Render(fmt.Sprintf(
		"Showing %d-%d of %d %s (page %d of %d)",
		info.StartRow(), info.EndRow(), info.Total, noun, info.Page, info.TotalPages,
	)))
}

// addParam appends the non-empty values to p[key].
func addParam(p facet.Params, key string, values ...string) {
	for _, v := range values {
		if v != "" {
			p[key] = append(p[key], v)
		}
	}
}
