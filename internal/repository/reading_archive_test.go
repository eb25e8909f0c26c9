package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

func testArchive(t *testing.T) *ReadingArchive {
	t.Helper()

	archive, err := NewReadingArchive(filepath.Join(t.TempDir(), "readings.db"))
	if err != nil {
		t.Fatalf("Failed to initialize archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func snapshotTanks() []entities.Tank {
	return []entities.Tank{
		{
			ID:                  "tank_001",
			CurrentLevelPercent: 75,
			CurrentReadings:     entities.Reading{PH: 7.1, Turbidity: 1.2, Temperature: 22.5},
		},
		{
			ID:                  "tank_002",
			CurrentLevelPercent: 40,
			CurrentReadings:     entities.Reading{PH: 6.2, Turbidity: 6.0, Temperature: 24.0},
		},
	}
}

func TestSaveSnapshotAndQuery(t *testing.T) {
	archive := testArchive(t)

	recordedAt := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	if err := archive.SaveSnapshot(snapshotTanks(), recordedAt); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	readings, err := archive.ReadingsForTank("tank_001", recordedAt.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Failed to query readings: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("Expected 1 reading, got %d", len(readings))
	}

	r := readings[0]
	if r.TankID != "tank_001" {
		t.Errorf("Expected tank_001, got %s", r.TankID)
	}
	if r.PH != 7.1 || r.Turbidity != 1.2 || r.Temperature != 22.5 {
		t.Errorf("Unexpected readings: %+v", r)
	}
	if r.LevelPercent != 75 {
		t.Errorf("Expected level 75, got %d", r.LevelPercent)
	}

	// The cutoff excludes older rows
	none, err := archive.ReadingsForTank("tank_001", recordedAt.Add(time.Hour))
	if err != nil {
		t.Fatalf("Failed to query with late cutoff: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no readings after cutoff, got %d", len(none))
	}
}

// Re-saving the same timestamp replaces the row instead of duplicating it.
func TestSaveSnapshotUpsert(t *testing.T) {
	archive := testArchive(t)
	recordedAt := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	if err := archive.SaveSnapshot(snapshotTanks(), recordedAt); err != nil {
		t.Fatalf("Failed first snapshot: %v", err)
	}

	changed := snapshotTanks()
	changed[0].CurrentReadings.Turbidity = 3.3
	if err := archive.SaveSnapshot(changed, recordedAt); err != nil {
		t.Fatalf("Failed second snapshot: %v", err)
	}

	readings, err := archive.ReadingsForTank("tank_001", recordedAt.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Failed to query readings: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("Expected single upserted row, got %d", len(readings))
	}
	if readings[0].Turbidity != 3.3 {
		t.Errorf("Expected updated turbidity 3.3, got %v", readings[0].Turbidity)
	}
}

func TestReadingsOrderedOldestFirst(t *testing.T) {
	archive := testArchive(t)
	base := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		tanks := snapshotTanks()
		tanks[0].CurrentReadings.PH = 7.0 + float64(i)*0.1
		if err := archive.SaveSnapshot(tanks, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Failed snapshot %d: %v", i, err)
		}
	}

	readings, err := archive.ReadingsForTank("tank_001", base)
	if err != nil {
		t.Fatalf("Failed to query readings: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("Expected 3 readings, got %d", len(readings))
	}
	for i := 1; i < len(readings); i++ {
		if readings[i].RecordedAt.Before(readings[i-1].RecordedAt) {
			t.Error("Readings are not ordered oldest first")
		}
	}
}

func TestLastSnapshotTime(t *testing.T) {
	archive := testArchive(t)

	// Empty archive reports the zero time
	last, err := archive.LastSnapshotTime()
	if err != nil {
		t.Fatalf("Failed on empty archive: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("Expected zero time for empty archive, got %v", last)
	}

	first := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, time.June, 15, 11, 0, 0, 0, time.UTC)
	if err := archive.SaveSnapshot(snapshotTanks(), first); err != nil {
		t.Fatalf("Failed first snapshot: %v", err)
	}
	if err := archive.SaveSnapshot(snapshotTanks(), second); err != nil {
		t.Fatalf("Failed second snapshot: %v", err)
	}

	last, err = archive.LastSnapshotTime()
	if err != nil {
		t.Fatalf("Failed to read last snapshot time: %v", err)
	}
	if !last.Equal(second) {
		t.Errorf("Expected %v, got %v", second, last)
	}
}
