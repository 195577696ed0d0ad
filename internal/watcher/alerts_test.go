package watcher

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/model"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

var at = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

func insight(title string, priority int) suggest.Suggestion {
	return suggest.Suggestion{
		Category:    suggest.CategoryBudget,
		Priority:    priority,
		Title:       title,
		Description: title + " details",
	}
}

func directory(members, classes, guests int) *dataset.Dataset {
	return &dataset.Dataset{
		Members: make([]model.Member, members),
		Classes: make([]model.GymClass, classes),
		Guests:  make([]model.Guest, guests),
	}
}

func TestCompare_IdenticalStates(t *testing.T) {
	insights := []suggest.Suggestion{insight("Over budget: Equipment", suggest.PriorityCritical)}
	prev := NewState(directory(10, 5, 2), insights, at)
	curr := NewState(directory(10, 5, 2), insights, at.Add(time.Minute))

	alerts := Compare(prev, curr)
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for identical states, got %d", len(alerts))
		for _, a := range alerts {
			t.Logf("  [%s] %s: %s", a.Level, a.Title, a.Message)
		}
	}
}

func TestCompare_OpenedInsights(t *testing.T) {
	prev := NewState(directory(10, 5, 2), nil, at)
	curr := NewState(directory(10, 5, 2), []suggest.Suggestion{
		insight("Over budget: Equipment", suggest.PriorityCritical),
		insight("Nearly over budget: Utilities", suggest.PriorityHigh),
		insight("Unranked trainers", suggest.PriorityLow),
	}, at)

	alerts := Compare(prev, curr)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}

	wantLevels := []string{LevelCritical, LevelWarning, LevelInfo}
	for i, a := range alerts {
		if a.Level != wantLevels[i] {
			t.Errorf("alert %d: expected level %q, got %q", i, wantLevels[i], a.Level)
		}
		if a.Title != curr.Insights[i].Title {
			t.Errorf("alert %d: expected title %q, got %q", i, curr.Insights[i].Title, a.Title)
		}
		if a.Message != curr.Insights[i].Description {
			t.Errorf("alert %d: expected message %q, got %q", i, curr.Insights[i].Description, a.Message)
		}
		if !a.Time.Equal(at) {
			t.Errorf("alert %d: expected time %v, got %v", i, at, a.Time)
		}
	}
}

func TestCompare_ClearedInsights(t *testing.T) {
	prev := NewState(nil, []suggest.Suggestion{
		insight("Over budget: Equipment", suggest.PriorityCritical),
		insight("Low guest conversion", suggest.PriorityMedium),
	}, at)
	curr := NewState(nil, []suggest.Suggestion{
		insight("Low guest conversion", suggest.PriorityMedium),
	}, at)

	alerts := Compare(prev, curr)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Level != LevelInfo {
		t.Errorf("expected info level, got %q", alerts[0].Level)
	}
	if alerts[0].Title != "Resolved: Over budget: Equipment" {
		t.Errorf("unexpected title %q", alerts[0].Title)
	}
}

func TestCompare_Growth(t *testing.T) {
	prev := NewState(directory(10, 5, 2), nil, at)
	curr := NewState(directory(12, 5, 3), nil, at)

	alerts := Compare(prev, curr)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Title != "Members added" {
		t.Errorf("expected members alert first, got %q", alerts[0].Title)
	}
	if !strings.Contains(alerts[0].Message, "2 new member(s) (12 total)") {
		t.Errorf("unexpected members message %q", alerts[0].Message)
	}
	if alerts[1].Title != "Guest visits logged" {
		t.Errorf("expected guests alert second, got %q", alerts[1].Title)
	}
}

func TestCompare_ShrinkIsQuiet(t *testing.T) {
	prev := NewState(directory(12, 8, 3), nil, at)
	curr := NewState(directory(10, 5, 1), nil, at)

	if alerts := Compare(prev, curr); len(alerts) != 0 {
		t.Errorf("expected no alerts when the directory shrinks, got %d", len(alerts))
	}
}

func TestCompare_Order(t *testing.T) {
	prev := NewState(directory(1, 0, 0), []suggest.Suggestion{
		insight("Old", suggest.PriorityMedium),
	}, at)
	curr := NewState(directory(2, 0, 0), []suggest.Suggestion{
		insight("New", suggest.PriorityHigh),
	}, at)

	alerts := Compare(prev, curr)
	var titles []string
	for _, a := range alerts {
		titles = append(titles, a.Title)
	}
	want := "New|Resolved: Old|Members added"
	if got := strings.Join(titles, "|"); got != want {
		t.Errorf("expected order %q, got %q", want, got)
	}
}
