package store

import "fmt"

// SaveRanking stores ranks as a new snapshot for period and returns the
// snapshot ID.
func (db *DB) SaveRanking(period, command, version string, ranks []TrainerRank) (int64, error) {
	return db.Save(Record{Period: period, Command: command, Version: version, Ranks: ranks})
}

func insertTrainerRank(ex execer, r *TrainerRank) error {
	_, err := ex.Exec(
		`INSERT INTO trainer_ranks (snapshot_id, trainer_id, trainer_name, rank, score)
		VALUES (?, ?, ?, ?, ?)`,
		r.SnapshotID, r.TrainerID, r.TrainerName, r.Rank, r.Score,
	)
	return err
}

// GetTrainerRanks returns the ranks stored in a snapshot, best first.
func (db *DB) GetTrainerRanks(snapshotID int64) ([]TrainerRank, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, trainer_id, trainer_name, rank, score
		 FROM trainer_ranks WHERE snapshot_id = ? ORDER BY rank`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ranks []TrainerRank
	for rows.Next() {
		var r TrainerRank
		if err := rows.Scan(&r.ID, &r.SnapshotID, &r.TrainerID, &r.TrainerName, &r.Rank, &r.Score); err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}

// LatestRankingBefore returns the newest snapshot holding trainer ranks for
// a period earlier than period (YYYY-MM), or nil if there is none.
func (db *DB) LatestRankingBefore(period string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		`SELECT `+snapshotColumns+` FROM snapshots
		 WHERE period < ? AND EXISTS (SELECT 1 FROM trainer_ranks r WHERE r.snapshot_id = snapshots.id)
		 ORDER BY period DESC, id DESC LIMIT 1`,
		period,
	)
	return scanSnapshot(row)
}

// PreviousRanks maps trainer IDs to their rank in the latest ranking saved
// for a period before period. The map is empty when no such ranking exists.
func (db *DB) PreviousRanks(period string) (map[string]int, error) {
	prev := make(map[string]int)

	snap, err := db.LatestRankingBefore(period)
	if err != nil {
		return nil, fmt.Errorf("finding previous ranking: %w", err)
	}
	if snap == nil {
		return prev, nil
	}

	ranks, err := db.GetTrainerRanks(snap.ID)
	if err != nil {
		return nil, fmt.Errorf("loading ranks for snapshot #%d: %w", snap.ID, err)
	}
	for _, r := range ranks {
		prev[r.TrainerID] = r.Rank
	}
	return prev, nil
}
