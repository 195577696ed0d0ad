package output

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

func TestRankChangeArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		name   string
		change *int
		want   string
	}{
		{"no previous rank", nil, "new"},
		{"moved up", model.IntPtr(3), "▲ 3"},
		{"moved down", model.IntPtr(-2), "▼ 2"},
		{"unchanged", model.IntPtr(0), "─"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RankChangeArrow(tc.change); got != tc.want {
				t.Errorf("RankChangeArrow = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := TrendArrow(2.5, true); got != "▲ +2.5" {
		t.Errorf("TrendArrow(2.5) = %q", got)
	}
	if got := TrendArrow(-1, false); got != "▼ -1.0" {
		t.Errorf("TrendArrow(-1) = %q", got)
	}
	if got := TrendArrow(0, true); got != "─" {
		t.Errorf("TrendArrow(0) = %q", got)
	}
}

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := ScoreBar(80, 10)
	if got != "████████░░ 80/100" {
		t.Errorf("ScoreBar(80, 10) = %q", got)
	}
	if got := ScoreBar(150, 4); !strings.HasPrefix(got, "████ ") {
		t.Errorf("ScoreBar(150, 4) = %q, want full bar", got)
	}
}

func TestBudgetBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := BudgetBar(100, 85, true, 5); got != "█████ 100%" {
		t.Errorf("BudgetBar = %q", got)
	}
	if got := BudgetBar(40, 85, false, 5); got != "██░░░ 40%" {
		t.Errorf("BudgetBar = %q", got)
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"1000000", "$1,000,000.00"},
		{"-50.25", "-$50.25"},
	}
	for _, tc := range tests {
		if got := Money(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Errorf("Money(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := Dollars(2500); got != "$2,500.00" {
		t.Errorf("Dollars(2500) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(66.6); got != "67%" {
		t.Errorf("Percent(66.6) = %q, want 67%%", got)
	}
}
