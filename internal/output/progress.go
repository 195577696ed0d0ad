package output

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// bar draws filled out of width cells.
func bar(fraction float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ScoreBar renders a visual progress bar for a 0-100 value where higher is
// better.
// Example: "████████░░ 80/100"
func ScoreBar(score float64, width int) string {
	var style func(...string) string
	switch {
	case score >= 70:
		style = StyleSuccess.Render
	case score >= 40:
		style = StyleWarning.Render
	default:
		style = StyleError.Render
	}

	return fmt.Sprintf("%s %s", style(bar(score/100, width)), StyleMuted.Render(fmt.Sprintf("%.0f/100", score)))
}

// BudgetBar renders spend against budget, where pct is the clamped
// percentage. Rows at or above warnAt are yellow, over-budget rows red.
func BudgetBar(pct float64, warnAt float64, over bool, width int) string {
	var style func(...string) string
	switch {
	case over:
		style = StyleError.Render
	case pct >= warnAt:
		style = StyleWarning.Render
	default:
		style = StyleSuccess.Render
	}
	return fmt.Sprintf("%s %s", style(bar(pct/100, width)), Percent(pct))
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// higherIsBetter decides whether an increase is shown as an improvement.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// RankChangeArrow renders a leaderboard movement. Positive change means the
// trainer moved up; nil means there is no previous rank.
func RankChangeArrow(change *int) string {
	switch {
	case change == nil:
		return StyleMuted.Render("new")
	case *change > 0:
		return StyleSuccess.Render(fmt.Sprintf("▲ %d", *change))
	case *change < 0:
		return StyleError.Render(fmt.Sprintf("▼ %d", -*change))
	default:
		return StyleMuted.Render("─")
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// Percent formats a 0-100 value without decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// Money formats an amount with thousands separators and cents.
func Money(d decimal.Decimal) string {
	s := humanize.FormatFloat("#,###.##", d.Abs().InexactFloat64())
	if d.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// Dollars formats a float currency amount the way Money does.
func Dollars(v float64) string {
	return Money(decimal.NewFromFloat(v))
}
