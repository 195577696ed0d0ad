// Package watcher polls the gym directory data at an interval and emits
// alerts when insights open or clear and when the directory grows.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/gymdesk/internal/dataset"
	"github.com/blackwell-systems/gymdesk/internal/suggest"
)

// WatchState captures a point-in-time view of the directory.
type WatchState struct {
	Timestamp time.Time
	Members   int
	Classes   int
	Guests    int
	Trainers  int
	Insights  []suggest.Suggestion // ranked

	byTitle map[string]suggest.Suggestion
}

// NewState builds a WatchState from a loaded dataset and the insights
// raised against it.
func NewState(ds *dataset.Dataset, insights []suggest.Suggestion, at time.Time) *WatchState {
	st := &WatchState{
		Timestamp: at,
		Insights:  insights,
		byTitle:   make(map[string]suggest.Suggestion, len(insights)),
	}
	if ds != nil {
		st.Members = len(ds.Members)
		st.Classes = len(ds.Classes)
		st.Guests = len(ds.Guests)
		st.Trainers = len(ds.Trainers)
	}
	for _, s := range insights {
		st.byTitle[s.Title] = s
	}
	return st
}

func (st *WatchState) has(title string) bool {
	_, ok := st.byTitle[title]
	return ok
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Title   string
	Message string
	Time    time.Time
}

// Source produces the current state. It is called once per check.
type Source func(ctx context.Context) (*WatchState, error)

// Watcher polls a Source at a regular interval and emits alerts when
// notable changes are detected.
type Watcher struct {
	source        Source
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
	now           func() time.Time
}

// New creates a Watcher that polls source every interval.
func New(source Source, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		source:        source,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
		now:           time.Now,
	}
}

// Prime takes the baseline snapshot that later checks compare against.
func (w *Watcher) Prime(ctx context.Context) (*WatchState, error) {
	initial, err := w.source(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	w.previous = initial
	return initial, nil
}

// Run primes the watcher if needed, then checks at every interval.
// Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		if _, err := w.Prime(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, a := range w.Check(ctx) {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares it
// against the previous state, updates the previous state, and returns any
// alerts. Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr, err := w.source(ctx)
	if err != nil {
		return []Alert{{
			Level:   LevelWarning,
			Title:   "Snapshot failed",
			Message: fmt.Sprintf("Could not read directory data: %v", err),
			Time:    w.now(),
		}}
	}

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}
