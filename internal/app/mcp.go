package app

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/gymdesk/internal/mcp"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server over the directory",
	Long: `Start a Model Context Protocol stdio server that assistants can query.
The server exposes these tools:

  search_members       Member directory search with filters, sort and paging
  search_classes       Class schedule search
  search_guests        Guest visit search
  trainer_leaderboard  Trainers ranked by performance score
  budget_report        Budget vs actual per category (admin, manager)
  get_insights         Open insights ranked by impact
  get_stats            One raw aggregation
  list_facets          Filter names per search tool

The --role flag applies to every call. Add to an MCP client configuration:
  {"mcpServers":{"gymdesk":{"command":"gymdesk","args":["mcp","--role","manager"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	pinned := flagToday != ""
	today := func() model.Date {
		if pinned {
			return s.now
		}
		return model.DateOf(clock())
	}

	srv := mcp.NewServer(mcp.Options{
		DataDir:    s.cfg.DataDir,
		Role:       s.role,
		Parts:      s.parts,
		Thresholds: s.thresholds(),
		Top:        s.cfg.Leaderboard.Top,
		Today:      today,
		Version:    appVersion,
		Log:        s.log,
	})
	s.log.Info("mcp server starting", zap.String("data_dir", s.cfg.DataDir), zap.String("role", string(s.role)))
	return srv.Run(cmd.Context(), cmd.InOrStdin(), s.out)
}
