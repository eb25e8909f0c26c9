package entities

import "testing"

func TestReadingDefaults(t *testing.T) {
	var empty Reading
	if !empty.IsZero() {
		t.Error("Zero-value reading should report IsZero")
	}
	if empty.PHOrDefault() != DefaultPH {
		t.Errorf("Expected default pH %v, got %v", DefaultPH, empty.PHOrDefault())
	}
	if empty.TemperatureOrDefault() != DefaultTemperature {
		t.Errorf("Expected default temperature %v, got %v", DefaultTemperature, empty.TemperatureOrDefault())
	}

	real := Reading{PH: 6.8, Turbidity: 2.0, Temperature: 18.5}
	if real.IsZero() {
		t.Error("Populated reading must not report IsZero")
	}
	if real.PHOrDefault() != 6.8 {
		t.Errorf("Expected stored pH 6.8, got %v", real.PHOrDefault())
	}
	if real.TemperatureOrDefault() != 18.5 {
		t.Errorf("Expected stored temperature 18.5, got %v", real.TemperatureOrDefault())
	}
}

func TestMaintenanceEntryInterval(t *testing.T) {
	explicit := MaintenanceEntry{TankID: "tank_001", CleaningIntervalDays: 45}
	if explicit.Interval() != 45 {
		t.Errorf("Expected 45, got %d", explicit.Interval())
	}

	// Entries without an interval use the default
	implicit := MaintenanceEntry{TankID: "tank_002"}
	if implicit.Interval() != DefaultCleaningIntervalDays {
		t.Errorf("Expected default %d, got %d", DefaultCleaningIntervalDays, implicit.Interval())
	}
}
