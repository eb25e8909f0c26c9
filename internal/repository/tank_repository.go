// Package repository provides data access implementations
package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// TankRepository defines the interface for tank document access. All
// methods except UpdateMaintenance and Reload are read-only.
type TankRepository interface {
	Load() (*entities.Document, error)
	Reload() (*entities.Document, error)
	ListTanks() ([]entities.Tank, error)
	FindTank(id string) (*entities.Tank, error)
	ListAlerts() ([]entities.Alert, error)
	MaintenanceSchedule() ([]entities.MaintenanceEntry, error)
	UpdateMaintenance(tankID, cleanedDate, notes string) (*entities.Tank, error)
}

// JSONTankRepository implements TankRepository over a single JSON document
// file. The document is read once and cached; UpdateMaintenance rewrites
// the whole file and swaps the cache only after a successful write, so a
// concurrent reader never observes a partially mutated document.
type JSONTankRepository struct {
	DataPath string

	mu     sync.RWMutex
	cached *entities.Document
}

// NewJSONTankRepository creates a repository backed by the given document
// file. An empty path falls back to data/data.json.
func NewJSONTankRepository(dataPath string) (*JSONTankRepository, error) {
	if dataPath == "" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
		dataPath = filepath.Join(dataDir, "data.json")
	}

	return &JSONTankRepository{DataPath: dataPath}, nil
}

// Load returns the full document, reading the backing file only on the
// first call (or the first call after Reload).
func (r *JSONTankRepository) Load() (*entities.Document, error) {
	r.mu.RLock()
	if r.cached != nil {
		doc := r.cached
		r.mu.RUnlock()
		return doc, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another goroutine may have filled the cache while we waited.
	if r.cached != nil {
		return r.cached, nil
	}

	doc, err := r.readFile()
	if err != nil {
		return nil, err
	}
	r.cached = doc
	return doc, nil
}

// Reload drops the cache and forces a fresh read from the backing store.
func (r *JSONTankRepository) Reload() (*entities.Document, error) {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()

	log.Printf("Reloading document from %s", r.DataPath)
	return r.Load()
}

// ListTanks returns every tank in fleet order.
func (r *JSONTankRepository) ListTanks() ([]entities.Tank, error) {
	doc, err := r.Load()
	if err != nil {
		return nil, err
	}
	return doc.Tanks, nil
}

// FindTank returns the tank with the given id or ErrTankNotFound.
func (r *JSONTankRepository) FindTank(id string) (*entities.Tank, error) {
	doc, err := r.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Tanks {
		if doc.Tanks[i].ID == id {
			return &doc.Tanks[i], nil
		}
	}
	return nil, fmt.Errorf("tank '%s': %w", id, entities.ErrTankNotFound)
}

// ListAlerts returns every alert in stored order.
func (r *JSONTankRepository) ListAlerts() ([]entities.Alert, error) {
	doc, err := r.Load()
	if err != nil {
		return nil, err
	}
	return doc.Alerts, nil
}

// MaintenanceSchedule returns the maintenance schedule table.
func (r *JSONTankRepository) MaintenanceSchedule() ([]entities.MaintenanceEntry, error) {
	doc, err := r.Load()
	if err != nil {
		return nil, err
	}
	return doc.MaintenanceSchedule, nil
}

// UpdateMaintenance records a completed cleaning for a tank. It updates
// the schedule entry (last_cleaned, next_scheduled = cleaned + interval)
// and the tank itself (last_cleaned, next_maintenance, notes) in one
// step, rewrites the whole document file, and only then swaps the cache.
// The exclusive lock is held for the entire read-modify-write-swap
// sequence so the update appears atomic to concurrent readers.
func (r *JSONTankRepository) UpdateMaintenance(tankID, cleanedDate, notes string) (*entities.Tank, error) {
	cleaned, err := time.Parse(entities.DateLayout, cleanedDate)
	if err != nil {
		return nil, fmt.Errorf("cleaned date '%s': %w", cleanedDate, entities.ErrInvalidDate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.cached
	if doc == nil {
		doc, err = r.readFile()
		if err != nil {
			return nil, err
		}
	}

	// Mutate a deep copy so readers holding the old snapshot, and readers
	// arriving between a failed write and the next load, never see
	// half-applied changes.
	updated, err := copyDocument(doc)
	if err != nil {
		return nil, err
	}

	var tank *entities.Tank
	for i := range updated.Tanks {
		if updated.Tanks[i].ID == tankID {
			tank = &updated.Tanks[i]
			break
		}
	}
	if tank == nil {
		return nil, fmt.Errorf("tank '%s': %w", tankID, entities.ErrTankNotFound)
	}

	var sched *entities.MaintenanceEntry
	for i := range updated.MaintenanceSchedule {
		if updated.MaintenanceSchedule[i].TankID == tankID {
			sched = &updated.MaintenanceSchedule[i]
			break
		}
	}
	if sched == nil {
		return nil, fmt.Errorf("tank '%s': %w", tankID, entities.ErrScheduleNotFound)
	}

	nextScheduled := cleaned.AddDate(0, 0, sched.Interval()).Format(entities.DateLayout)

	sched.LastCleaned = cleanedDate
	sched.NextScheduled = nextScheduled

	tank.LastCleaned = cleanedDate
	tank.NextMaintenance = nextScheduled
	if tank.Maintenance == nil {
		tank.Maintenance = &entities.MaintenanceInfo{}
	}
	tank.Maintenance.LastCleaned = cleanedDate
	if notes != "" {
		tank.Maintenance.Notes = notes
	}

	if err := r.writeFile(updated); err != nil {
		return nil, err
	}

	// Persisted successfully: publish the new snapshot.
	r.cached = updated

	log.Printf("Maintenance updated for tank %s: cleaned %s, next %s", tankID, cleanedDate, nextScheduled)
	return tank, nil
}

// readFile loads and decodes the backing document file.
func (r *JSONTankRepository) readFile() (*entities.Document, error) {
	raw, err := os.ReadFile(r.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %v", r.DataPath, err)
	}

	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %v", r.DataPath, err)
	}

	log.Printf("Loaded document: %d tanks, %d alerts, %d schedule entries",
		len(doc.Tanks), len(doc.Alerts), len(doc.MaintenanceSchedule))
	return &doc, nil
}

// writeFile persists the whole document back to the backing store.
func (r *JSONTankRepository) writeFile(doc *entities.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %v", err)
	}
	if err := os.WriteFile(r.DataPath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %v", r.DataPath, err)
	}
	return nil
}

// copyDocument deep-copies a document via a marshal round trip.
func copyDocument(doc *entities.Document) (*entities.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document: %v", err)
	}
	var out entities.Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to copy document: %v", err)
	}
	return &out, nil
}
