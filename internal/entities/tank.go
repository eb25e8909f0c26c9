// Package entities contains the core domain objects for the aquasentry system
package entities

// DateLayout is the calendar date format used throughout the system,
// for stored fields as well as API inputs and outputs.
const DateLayout = "2006-01-02"

// Health status values derived for a tank from its current readings.
const (
	StatusNormal   = "normal"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// Defaults substituted for missing sensor fields so the analytics engine
// degrades gracefully instead of failing on incomplete data.
const (
	DefaultPH          = 7.0
	DefaultTemperature = 20.0
	// DefaultTurbidity is the baseline the quality predictor assumes when a
	// tank carries no current readings at all. The classifier and trend
	// analyzer treat a missing turbidity as 0 instead.
	DefaultTurbidity = 1.0
)

// Location is a tank's geographic position
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Reading is a live sensor sample from a tank
type Reading struct {
	PH               float64  `json:"ph"`
	Turbidity        float64  `json:"turbidity"` // NTU
	Temperature      float64  `json:"temperature"`
	DissolvedOxygen  *float64 `json:"dissolved_oxygen,omitempty"`
	Chlorine         *float64 `json:"chlorine,omitempty"`
	Timestamp        string   `json:"timestamp,omitempty"`
}

// PHOrDefault returns the pH reading, substituting the default for an
// absent (zero) value. A true pH of 0 does not occur in potable storage.
func (r Reading) PHOrDefault() float64 {
	if r.PH == 0 {
		return DefaultPH
	}
	return r.PH
}

// TemperatureOrDefault returns the temperature reading, substituting the
// default for an absent (zero) value.
func (r Reading) TemperatureOrDefault() float64 {
	if r.Temperature == 0 {
		return DefaultTemperature
	}
	return r.Temperature
}

// IsZero reports whether the reading carries no data at all.
func (r Reading) IsZero() bool {
	return r.PH == 0 && r.Turbidity == 0 && r.Temperature == 0 &&
		r.DissolvedOxygen == nil && r.Chlorine == nil && r.Timestamp == ""
}

// HistoryEntry is one past sample in a tank's chronological history
type HistoryEntry struct {
	Date        string  `json:"date"`
	PH          float64 `json:"ph"`
	Turbidity   float64 `json:"turbidity"`
	Temperature float64 `json:"temperature"`
}

// MaintenanceInfo holds the free-form maintenance notes stored on a tank
type MaintenanceInfo struct {
	LastCleaned string `json:"last_cleaned,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Tank represents a monitored water storage tank as persisted in the store
type Tank struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Location            Location         `json:"location"`
	CapacityLiters      int              `json:"capacity_liters"`
	CurrentLevelPercent int              `json:"current_level_percent"`
	LastCleaned         string           `json:"last_cleaned"`
	NextMaintenance     string           `json:"next_maintenance"`
	CurrentReadings     Reading          `json:"current_readings"`
	History             []HistoryEntry   `json:"history,omitempty"`
	Maintenance         *MaintenanceInfo `json:"maintenance,omitempty"`
}

// TankView is a tank together with its derived health figures. The derived
// fields depend on the current date and are recomputed on every read,
// never persisted.
type TankView struct {
	Tank
	Status                string `json:"status"`
	DaysSinceCleaned      int    `json:"days_since_cleaned"`
	DaysUntilMaintenance  int    `json:"days_until_maintenance"`
}

// MaintenanceEntry is one row of the maintenance schedule table.
// NextScheduled always equals LastCleaned plus CleaningIntervalDays; the
// two are recomputed together and never edited independently.
type MaintenanceEntry struct {
	TankID               string `json:"tank_id"`
	CleaningIntervalDays int    `json:"cleaning_interval_days"`
	LastCleaned          string `json:"last_cleaned"`
	NextScheduled        string `json:"next_scheduled"`
}

// DefaultCleaningIntervalDays applies when a schedule entry omits its interval.
const DefaultCleaningIntervalDays = 30

// Interval returns the entry's cleaning interval in days.
func (m MaintenanceEntry) Interval() int {
	if m.CleaningIntervalDays <= 0 {
		return DefaultCleaningIntervalDays
	}
	return m.CleaningIntervalDays
}

// Document is the whole persisted dataset: the flat document the store
// reads and rewrites as a unit.
type Document struct {
	Tanks               []Tank             `json:"tanks"`
	Alerts              []Alert            `json:"alerts"`
	MaintenanceSchedule []MaintenanceEntry `json:"maintenance_schedule"`
}
