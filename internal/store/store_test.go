package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gymdesk.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = db.Close() }()

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}

	// Migrating again is a no-op.
	if err := db.Migrate(); err != nil {
		t.Errorf("second Migrate: %v", err)
	}
}

func TestSnapshots_Ordering(t *testing.T) {
	db := openTestDB(t)

	if s, err := db.GetLatestSnapshot(); err != nil || s != nil {
		t.Fatalf("GetLatestSnapshot on empty db = %v, %v", s, err)
	}

	first, err := db.CreateSnapshot("2026-02", "track", "test")
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.CreateSnapshot("2026-03", "track", "test")
	if err != nil {
		t.Fatal(err)
	}

	latest, err := db.GetLatestSnapshot()
	if err != nil || latest == nil {
		t.Fatalf("GetLatestSnapshot = %v, %v", latest, err)
	}
	if latest.ID != second || latest.Period != "2026-03" {
		t.Errorf("latest = %+v, want id %d period 2026-03", latest, second)
	}
	if latest.TakenAt.IsZero() {
		t.Error("TakenAt not parsed")
	}

	prev, err := db.NthSnapshot("", 2)
	if err != nil || prev == nil || prev.ID != first {
		t.Errorf("NthSnapshot(2) = %+v, %v; want id %d", prev, err, first)
	}
	if _, err := db.NthSnapshot("", 0); err == nil {
		t.Error("NthSnapshot(0) should fail")
	}

	recent, err := db.Snapshots(SnapshotFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != second {
		t.Errorf("Snapshots = %+v", recent)
	}
	skipped, err := db.Snapshots(SnapshotFilter{Offset: 1, Limit: 5})
	if err != nil || len(skipped) != 1 || skipped[0].ID != first {
		t.Errorf("Snapshots(offset 1) = %+v, %v", skipped, err)
	}
}

func TestSnapshots_ByCommand(t *testing.T) {
	db := openTestDB(t)

	track1, _ := db.CreateSnapshot("2026-03", "track", "test")
	if _, err := db.CreateSnapshot("2026-03", "trainers", "test"); err != nil {
		t.Fatal(err)
	}
	track2, _ := db.CreateSnapshot("2026-03", "track", "test")

	prev, err := db.NthSnapshot("track", 2)
	if err != nil || prev == nil || prev.ID != track1 {
		t.Errorf("NthSnapshot(track, 2) = %+v, %v; want id %d", prev, err, track1)
	}
	if s, err := db.NthSnapshot("track", 3); err != nil || s != nil {
		t.Errorf("NthSnapshot(track, 3) = %+v, %v; want nil", s, err)
	}

	recent, err := db.Snapshots(SnapshotFilter{Command: "track", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != track2 || recent[1].ID != track1 {
		t.Errorf("Snapshots(track) = %+v", recent)
	}
}

func TestSaveRanking_PreviousRanks(t *testing.T) {
	db := openTestDB(t)

	if prev, err := db.PreviousRanks("2026-03"); err != nil || len(prev) != 0 {
		t.Fatalf("PreviousRanks on empty db = %v, %v", prev, err)
	}

	feb := []TrainerRank{
		{TrainerID: "a", TrainerName: "A", Rank: 1, Score: 38.2},
		{TrainerID: "b", TrainerName: "B", Rank: 2, Score: 30.1},
	}
	if _, err := db.SaveRanking("2026-02", "trainers", "test", feb); err != nil {
		t.Fatalf("SaveRanking feb: %v", err)
	}
	febRedo := []TrainerRank{
		{TrainerID: "b", TrainerName: "B", Rank: 1, Score: 39},
		{TrainerID: "a", TrainerName: "A", Rank: 2, Score: 38.2},
	}
	if _, err := db.SaveRanking("2026-02", "trainers", "test", febRedo); err != nil {
		t.Fatalf("SaveRanking feb redo: %v", err)
	}
	marID, err := db.SaveRanking("2026-03", "trainers", "test", []TrainerRank{{TrainerID: "a", TrainerName: "A", Rank: 1}})
	if err != nil {
		t.Fatalf("SaveRanking mar: %v", err)
	}

	// The latest February snapshot wins; March itself is not "previous".
	prev, err := db.PreviousRanks("2026-03")
	if err != nil {
		t.Fatal(err)
	}
	if prev["a"] != 2 || prev["b"] != 1 {
		t.Errorf("PreviousRanks(2026-03) = %v, want a:2 b:1", prev)
	}

	prev, err = db.PreviousRanks("2026-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(prev) != 1 || prev["a"] != 1 {
		t.Errorf("PreviousRanks(2026-04) = %v, want a:1", prev)
	}

	ranks, err := db.GetTrainerRanks(marID)
	if err != nil || len(ranks) != 1 || ranks[0].SnapshotID != marID {
		t.Errorf("GetTrainerRanks = %+v, %v", ranks, err)
	}
}

func TestPreviousRanks_SkipsSnapshotsWithoutRanks(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.SaveRanking("2026-01", "trainers", "test", []TrainerRank{{TrainerID: "a", Rank: 3}}); err != nil {
		t.Fatal(err)
	}
	// A metrics-only snapshot for a later month.
	if _, err := db.CreateSnapshot("2026-02", "track", "test"); err != nil {
		t.Fatal(err)
	}

	prev, err := db.PreviousRanks("2026-03")
	if err != nil {
		t.Fatal(err)
	}
	if prev["a"] != 3 {
		t.Errorf("PreviousRanks = %v, want a:3", prev)
	}
}

func TestAggregateMetrics(t *testing.T) {
	db := openTestDB(t)
	id, err := db.Save(Record{
		Period:  "2026-03",
		Command: "track",
		Version: "test",
		Ranks:   []TrainerRank{{TrainerID: "t1", TrainerName: "Priya", Rank: 1, Score: 41.2}},
		Metrics: []AggregateMetric{
			{MetricName: "attendance_rate", MetricValue: 72},
			{MetricName: "over_budget_categories", MetricValue: 2, Detail: "Rent,Equipment"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	ranks, err := db.GetTrainerRanks(id)
	if err != nil || len(ranks) != 1 || ranks[0].SnapshotID != id {
		t.Errorf("GetTrainerRanks = %+v, %v", ranks, err)
	}
	values, err := db.MetricValues(id)
	if err != nil || values["attendance_rate"] != 72 {
		t.Errorf("MetricValues = %v, %v", values, err)
	}

	metrics, err := db.GetAggregateMetrics(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(metrics) != 2 {
		t.Fatalf("len(metrics) = %d, want 2", len(metrics))
	}
	if metrics[0].MetricName != "attendance_rate" || metrics[0].MetricValue != 72 {
		t.Errorf("metrics[0] = %+v", metrics[0])
	}
	if metrics[1].Detail != "Rent,Equipment" {
		t.Errorf("metrics[1].Detail = %q", metrics[1].Detail)
	}
}

func TestInsights_OpenAndResolve(t *testing.T) {
	db := openTestDB(t)
	id, err := db.CreateSnapshot("2026-03", "track", "test")
	if err != nil {
		t.Fatal(err)
	}

	for _, in := range []Insight{
		{SnapshotID: id, Category: "budget", Title: "low", ImpactScore: 1},
		{SnapshotID: id, Category: "classes", Title: "high", ImpactScore: 9},
	} {
		if err := db.InsertInsight(&in); err != nil {
			t.Fatal(err)
		}
	}

	open, err := db.GetOpenInsights()
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 2 || open[0].Title != "high" || open[0].Status != InsightOpen {
		t.Fatalf("GetOpenInsights = %+v", open)
	}

	if err := db.ResolveInsight(open[0].ID); err != nil {
		t.Fatal(err)
	}
	open, err = db.GetOpenInsights()
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].Title != "low" {
		t.Errorf("after resolve = %+v", open)
	}
}
