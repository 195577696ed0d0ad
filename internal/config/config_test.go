package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/gymdesk/internal/facet"
	"github.com/blackwell-systems/gymdesk/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want := filepath.Join(home, ".config/gymdesk/data"); cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(home, ".config/gymdesk", DefaultDBName); cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if cfg.Role != DefaultRole {
		t.Errorf("Role = %q, want %q", cfg.Role, DefaultRole)
	}
	if cfg.Budget.WarnAt != DefaultBudget.WarnAt {
		t.Errorf("Budget.WarnAt = %v, want %v", cfg.Budget.WarnAt, DefaultBudget.WarnAt)
	}
	if cfg.Leaderboard.Top != DefaultLeaderboard.Top {
		t.Errorf("Leaderboard.Top = %d, want %d", cfg.Leaderboard.Top, DefaultLeaderboard.Top)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}

	parts, err := cfg.DayParts()
	if err != nil {
		t.Fatalf("DayParts: %v", err)
	}
	if parts != facet.DefaultDayParts {
		t.Errorf("DayParts = %+v, want %+v", parts, facet.DefaultDayParts)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "gymdesk.yaml")
	content := `
data_dir: /srv/gym
role: staff
time_of_day:
  morning_end: "11:00"
  afternoon_end: "16:30"
budget:
  warn_at: 90
leaderboard:
  top: 3
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/srv/gym" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Role != "staff" {
		t.Errorf("Role = %q", cfg.Role)
	}
	if cfg.Budget.WarnAt != 90 || cfg.Leaderboard.Top != 3 {
		t.Errorf("Budget/Leaderboard = %+v / %+v", cfg.Budget, cfg.Leaderboard)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	// Unset keys keep their defaults.
	if cfg.Insights.RankDrop != DefaultInsights.RankDrop {
		t.Errorf("Insights.RankDrop = %d, want default", cfg.Insights.RankDrop)
	}

	parts, err := cfg.DayParts()
	if err != nil {
		t.Fatal(err)
	}
	if parts.MorningEnd != model.NewClock(11, 0) || parts.AfternoonEnd != model.NewClock(16, 30) {
		t.Errorf("DayParts = %+v", parts)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GYMDESK_DATA_DIR", "/from/env")
	t.Setenv("GYMDESK_LEADERBOARD_TOP", "10")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, want /from/env", cfg.DataDir)
	}
	if cfg.Leaderboard.Top != 10 {
		t.Errorf("Leaderboard.Top = %d, want 10", cfg.Leaderboard.Top)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
	}{
		{"unparseable clock", "time_of_day:\n  morning_end: noon\n"},
		{"inverted day parts", "time_of_day:\n  morning_end: \"18:00\"\n  afternoon_end: \"17:00\"\n"},
		{"unknown role", "role: owner\n"},
		{"warn threshold out of range", "budget:\n  warn_at: 120\n"},
		{"malformed yaml", "budget: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("Load of missing file = %v, want defaults", err)
	}
}
