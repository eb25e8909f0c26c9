package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
	_ "github.com/mattn/go-sqlite3"
)

// ReadingArchive stores periodic snapshots of tank readings in SQLite,
// giving trend analysis more depth than the document's embedded history.
type ReadingArchive struct {
	db     *sql.DB
	DBPath string
}

// ArchivedReading is one snapshot row from the archive.
type ArchivedReading struct {
	ID           int64
	TankID       string
	PH           float64
	Turbidity    float64
	Temperature  float64
	LevelPercent int
	RecordedAt   time.Time
}

// NewReadingArchive creates and initializes a new SQLite reading archive
func NewReadingArchive(dbPath string) (*ReadingArchive, error) {
	if dbPath == "" {
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "readings.db")
	}

	log.Printf("Opening reading archive at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS tank_readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tank_id TEXT NOT NULL,
		ph REAL,
		turbidity REAL,
		temperature REAL,
		level_percent INTEGER,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(tank_id, recorded_at)
	);
	CREATE INDEX IF NOT EXISTS idx_tank_id ON tank_readings(tank_id);
	CREATE INDEX IF NOT EXISTS idx_recorded_at ON tank_readings(recorded_at);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &ReadingArchive{
		db:     db,
		DBPath: dbPath,
	}, nil
}

// Close closes the database connection
func (a *ReadingArchive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// SaveSnapshot stores the current readings of every tank with one shared
// timestamp.
func (a *ReadingArchive) SaveSnapshot(tanks []entities.Tank, recordedAt time.Time) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tank_readings(tank_id, ph, turbidity, temperature, level_percent, recorded_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(tank_id, recorded_at) DO UPDATE SET
		ph=excluded.ph,
		turbidity=excluded.turbidity,
		temperature=excluded.temperature,
		level_percent=excluded.level_percent
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %v", err)
	}
	defer stmt.Close()

	for _, tank := range tanks {
		r := tank.CurrentReadings
		_, err := stmt.Exec(tank.ID, r.PH, r.Turbidity, r.Temperature, tank.CurrentLevelPercent, recordedAt)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert reading for tank %s: %v", tank.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	log.Printf("Archived readings for %d tanks at %s", len(tanks), recordedAt.Format(time.RFC3339))
	return nil
}

// ReadingsForTank returns a tank's archived readings recorded at or after
// the cutoff, oldest first.
func (a *ReadingArchive) ReadingsForTank(tankID string, cutoff time.Time) ([]ArchivedReading, error) {
	query := `
		SELECT id, tank_id, ph, turbidity, temperature, level_percent, recorded_at
		FROM tank_readings
		WHERE tank_id = ? AND recorded_at >= ?
		ORDER BY recorded_at`

	rows, err := a.db.Query(query, tankID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings for %s: %v", tankID, err)
	}
	defer rows.Close()

	var result []ArchivedReading
	for rows.Next() {
		var ar ArchivedReading
		if err := rows.Scan(
			&ar.ID,
			&ar.TankID,
			&ar.PH,
			&ar.Turbidity,
			&ar.Temperature,
			&ar.LevelPercent,
			&ar.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan row: %v", err)
		}
		result = append(result, ar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %v", err)
	}

	return result, nil
}

// LastSnapshotTime returns the most recent snapshot timestamp in the archive.
func (a *ReadingArchive) LastSnapshotTime() (time.Time, error) {
	var ts sql.NullString
	err := a.db.QueryRow("SELECT MAX(recorded_at) FROM tank_readings").Scan(&ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get last snapshot time: %v", err)
	}

	if !ts.Valid || ts.String == "" {
		return time.Time{}, nil
	}

	// SQLite stores the timestamp as text; formats differ by driver settings.
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, ts.String); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse snapshot timestamp '%s'", ts.String)
}
