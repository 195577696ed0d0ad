package watcher

import (
	"fmt"

	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

// Alert levels.
const (
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelCritical = "critical"
)

// Compare detects notable changes between two watch states and returns
// alerts: newly raised insights first, in ranked order, then cleared
// insights, then directory growth.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareOpened(prev, curr)...)
	alerts = append(alerts, compareCleared(prev, curr)...)
	alerts = append(alerts, compareGrowth(prev, curr)...)

	return alerts
}

// compareOpened reports insights present now but not in the previous state.
func compareOpened(prev, curr *WatchState) []Alert {
	var alerts []Alert
	for _, s := range curr.Insights {
		if prev.has(s.Title) {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   levelFor(s.Priority),
			Title:   s.Title,
			Message: s.Description,
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// compareCleared reports insights that are no longer raised.
func compareCleared(prev, curr *WatchState) []Alert {
	var alerts []Alert
	for _, s := range prev.Insights {
		if curr.has(s.Title) {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   "Resolved: " + s.Title,
			Message: "No longer raised by the latest data",
			Time:    curr.Timestamp,
		})
	}
	return alerts
}

// compareGrowth reports new members, classes and guest visits.
func compareGrowth(prev, curr *WatchState) []Alert {
	var alerts []Alert
	grew := func(title, noun string, before, after int) {
		if after <= before {
			return
		}
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Title:   title,
			Message: fmt.Sprintf("%d new %s (%d total)", after-before, noun, after),
			Time:    curr.Timestamp,
		})
	}
	grew("Members added", "member(s)", prev.Members, curr.Members)
	grew("Classes scheduled", "class(es)", prev.Classes, curr.Classes)
	grew("Guest visits logged", "visit(s)", prev.Guests, curr.Guests)
	return alerts
}

func levelFor(priority int) string {
	switch priority {
	case suggest.PriorityCritical:
		return LevelCritical
	case suggest.PriorityHigh:
		return LevelWarning
	default:
		return LevelInfo
	}
}
