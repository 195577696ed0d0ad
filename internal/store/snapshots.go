package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const snapshotColumns = "id, taken_at, period, command, version"

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

// Record is everything written for one snapshot.
type Record struct {
	Period  string
	Command string
	Version string
	Ranks   []TrainerRank
	Metrics []AggregateMetric
}

// Save writes rec as a new snapshot in a single transaction and returns
// the snapshot ID.
func (db *DB) Save(rec Record) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	id, err := createSnapshot(tx, rec.Period, rec.Command, rec.Version)
	if err != nil {
		return 0, fmt.Errorf("creating snapshot: %w", err)
	}
	for _, r := range rec.Ranks {
		r.SnapshotID = id
		if err := insertTrainerRank(tx, &r); err != nil {
			return 0, fmt.Errorf("inserting rank for %s: %w", r.TrainerID, err)
		}
	}
	for _, m := range rec.Metrics {
		if _, err := tx.Exec(
			"INSERT INTO aggregate_metrics (snapshot_id, metric_name, metric_value, detail) VALUES (?, ?, ?, ?)",
			id, m.MetricName, m.MetricValue, m.Detail,
		); err != nil {
			return 0, fmt.Errorf("inserting metric %s: %w", m.MetricName, err)
		}
	}
	return id, tx.Commit()
}

// CreateSnapshot inserts an empty snapshot for period and returns its ID.
func (db *DB) CreateSnapshot(period, command, version string) (int64, error) {
	return createSnapshot(db.conn, period, command, version)
}

func createSnapshot(ex execer, period, command, version string) (int64, error) {
	res, err := ex.Exec(
		"INSERT INTO snapshots (taken_at, period, command, version) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), period, command, version,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SnapshotFilter narrows a snapshot listing. Results are newest first.
type SnapshotFilter struct {
	Command string // empty matches every command
	Offset  int
	Limit   int // 0 means no limit
}

// Snapshots lists the snapshots matching f.
func (db *DB) Snapshots(f SnapshotFilter) ([]Snapshot, error) {
	var b strings.Builder
	var args []any
	b.WriteString("SELECT " + snapshotColumns + " FROM snapshots")
	if f.Command != "" {
		b.WriteString(" WHERE command = ?")
		args = append(args, f.Command)
	}
	b.WriteString(" ORDER BY id DESC LIMIT ? OFFSET ?")
	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, max(f.Offset, 0))

	rows, err := db.conn.Query(b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// NthSnapshot returns the nth most recent snapshot recorded by command
// (1 = latest), or nil when there are fewer than n.
func (db *DB) NthSnapshot(command string, n int) (*Snapshot, error) {
	if n < 1 {
		return nil, fmt.Errorf("snapshot position %d: must be at least 1", n)
	}
	list, err := db.Snapshots(SnapshotFilter{Command: command, Offset: n - 1, Limit: 1})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// GetLatestSnapshot returns the most recent snapshot of any command, or nil.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	return db.NthSnapshot("", 1)
}

// GetSnapshot returns a snapshot by ID, or nil.
func (db *DB) GetSnapshot(id int64) (*Snapshot, error) {
	return scanSnapshot(db.conn.QueryRow("SELECT "+snapshotColumns+" FROM snapshots WHERE id = ?", id))
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Period, &s.Command, &s.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// GetAggregateMetrics returns a snapshot's metrics in insertion order.
func (db *DB) GetAggregateMetrics(snapshotID int64) ([]AggregateMetric, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, metric_name, metric_value, detail
		 FROM aggregate_metrics WHERE snapshot_id = ? ORDER BY id`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []AggregateMetric
	for rows.Next() {
		var m AggregateMetric
		var detail sql.NullString
		if err := rows.Scan(&m.ID, &m.SnapshotID, &m.MetricName, &m.MetricValue, &detail); err != nil {
			return nil, err
		}
		m.Detail = detail.String
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// MetricValues returns a snapshot's metrics keyed by name.
func (db *DB) MetricValues(snapshotID int64) (map[string]float64, error) {
	metrics, err := db.GetAggregateMetrics(snapshotID)
	if err != nil {
		return nil, err
	}
	values := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		values[m.MetricName] = m.MetricValue
	}
	return values, nil
}
