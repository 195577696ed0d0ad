package store

// InsertInsight inserts an insight for a snapshot.
func (db *DB) InsertInsight(in *Insight) error {
	status := in.Status
	if status == "" {
		status = InsightOpen
	}
	_, err := db.conn.Exec(
		`INSERT INTO insights
		(snapshot_id, category, priority, title, description, impact_score, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.SnapshotID, in.Category, in.Priority, in.Title, in.Description,
		in.ImpactScore, status,
	)
	return err
}

// GetOpenInsights returns all insights with status "open", highest impact first.
func (db *DB) GetOpenInsights() ([]Insight, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, category, priority, title, description, impact_score, status
		 FROM insights WHERE status = ? ORDER BY impact_score DESC, id`,
		InsightOpen,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var insights []Insight
	for rows.Next() {
		var in Insight
		if err := rows.Scan(&in.ID, &in.SnapshotID, &in.Category, &in.Priority,
			&in.Title, &in.Description, &in.ImpactScore, &in.Status); err != nil {
			return nil, err
		}
		insights = append(insights, in)
	}
	return insights, rows.Err()
}

// ResolveInsight marks an insight as resolved.
func (db *DB) ResolveInsight(id int64) error {
	_, err := db.conn.Exec("UPDATE insights SET status = ? WHERE id = ?", InsightResolved, id)
	return err
}
