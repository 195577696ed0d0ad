// Package store provides SQLite persistence for gymdesk snapshots: trainer
// rankings per period, dashboard metrics and open insights.
package store

import "time"

// Snapshot is a point-in-time capture for one reporting period.
type Snapshot struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Period  string    `json:"period"`
	Command string    `json:"command"`
	Version string    `json:"version"`
}

// TrainerRank is one trainer's leaderboard position within a snapshot.
type TrainerRank struct {
	ID          int64   `json:"id"`
	SnapshotID  int64   `json:"snapshot_id"`
	TrainerID   string  `json:"trainer_id"`
	TrainerName string  `json:"trainer_name"`
	Rank        int     `json:"rank"`
	Score       float64 `json:"score"`
}

// AggregateMetric represents a named metric value within a snapshot.
type AggregateMetric struct {
	ID          int64   `json:"id"`
	SnapshotID  int64   `json:"snapshot_id"`
	MetricName  string  `json:"metric_name"`
	MetricValue float64 `json:"metric_value"`
	Detail      string  `json:"detail,omitempty"`
}

// Insight is a stored dashboard recommendation.
type Insight struct {
	ID          int64   `json:"id"`
	SnapshotID  int64   `json:"snapshot_id"`
	Category    string  `json:"category"`
	Priority    int     `json:"priority"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImpactScore float64 `json:"impact_score"`
	Status      string  `json:"status"`
}

// Insight statuses.
const (
	InsightOpen     = "open"
	InsightResolved = "resolved"
)

// SnapshotDiff represents the comparison between two snapshots.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta represents the change in a single metric between snapshots.
type MetricDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}
