// Package app contains the Cobra command tree for gymdesk.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
	flagData    string
	flagRole    string
	flagToday   string
)

var rootCmd = &cobra.Command{
	Use:   "gymdesk",
	Short: "Front-desk console for gym directories, schedules and budgets",
	Long: `gymdesk searches and filters the member, class, guest and trainer
directories, ranks trainers on a performance leaderboard, and reports class
attendance and budget-vs-actual spending.

Run 'gymdesk' with no arguments to see the dashboard. Use 'gymdesk seed'
to write a demo data set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/gymdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "Data directory (overrides data_dir)")
	rootCmd.PersistentFlags().StringVar(&flagRole, "role", "", "Console role: admin, manager, staff, trainer (overrides role)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Reference day as YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}
