package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// memoryRepository is an in-memory stand-in for the document store.
type memoryRepository struct {
	doc entities.Document
}

func (m *memoryRepository) Load() (*entities.Document, error)   { return &m.doc, nil }
func (m *memoryRepository) Reload() (*entities.Document, error) { return &m.doc, nil }
func (m *memoryRepository) ListTanks() ([]entities.Tank, error) { return m.doc.Tanks, nil }
func (m *memoryRepository) ListAlerts() ([]entities.Alert, error) {
	return m.doc.Alerts, nil
}
func (m *memoryRepository) MaintenanceSchedule() ([]entities.MaintenanceEntry, error) {
	return m.doc.MaintenanceSchedule, nil
}

func (m *memoryRepository) FindTank(id string) (*entities.Tank, error) {
	for i := range m.doc.Tanks {
		if m.doc.Tanks[i].ID == id {
			return &m.doc.Tanks[i], nil
		}
	}
	return nil, fmt.Errorf("tank '%s': %w", id, entities.ErrTankNotFound)
}

func (m *memoryRepository) UpdateMaintenance(tankID, cleanedDate, notes string) (*entities.Tank, error) {
	if _, err := time.Parse(entities.DateLayout, cleanedDate); err != nil {
		return nil, fmt.Errorf("cleaned date '%s': %w", cleanedDate, entities.ErrInvalidDate)
	}
	tank, err := m.FindTank(tankID)
	if err != nil {
		return nil, err
	}
	tank.LastCleaned = cleanedDate
	return tank, nil
}

func testUseCase() (*TankUseCase, *memoryRepository) {
	healthy := tankWith(7.1, 1.2, 10)
	healthy.ID = "tank_001"
	healthy.Name = "Central Reservoir"
	healthy.Location = entities.Location{Lat: 12.34, Lng: 56.78}
	healthy.CapacityLiters = 100000
	healthy.CurrentLevelPercent = 75
	healthy.History = []entities.HistoryEntry{
		{Date: "2025-06-13", PH: 7.0, Turbidity: 1.0, Temperature: 22.0},
		{Date: "2025-06-14", PH: 7.1, Turbidity: 1.2, Temperature: 22.5},
	}

	failing := tankWith(6.2, 6.0, 40)
	failing.ID = "tank_002"
	failing.Name = "North Tower"
	failing.Location = entities.Location{Lat: 12.44, Lng: 56.78}
	failing.CapacityLiters = 50000
	failing.CurrentLevelPercent = 40

	repo := &memoryRepository{doc: entities.Document{
		Tanks: []entities.Tank{healthy, failing},
		Alerts: []entities.Alert{
			{ID: "alert_001", TankID: "tank_002", Type: entities.AlertWarning},
		},
	}}

	engine := NewPredictionEngine(nil, nil)
	engine.now = func() time.Time { return today }

	uc := NewTankUseCase(repo, engine, nil)
	uc.now = func() time.Time { return today }
	return uc, repo
}

func TestFleetOverview(t *testing.T) {
	uc, _ := testUseCase()

	views, summary, err := uc.FleetOverview()
	if err != nil {
		t.Fatalf("FleetOverview failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("Expected 2 views, got %d", len(views))
	}
	if views[0].Status != entities.StatusNormal {
		t.Errorf("Expected tank_001 normal, got %s", views[0].Status)
	}
	// pH 6.2 and turbidity 6.0 both trip warning thresholds, cleaning 40
	// days ago trips the age threshold too, but none reach critical
	if views[1].Status != entities.StatusWarning {
		t.Errorf("Expected tank_002 warning, got %s", views[1].Status)
	}
	if summary.Total != 2 || summary.Normal != 1 || summary.Warning != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

func TestGetTankDetail(t *testing.T) {
	uc, _ := testUseCase()

	detail, err := uc.GetTankDetail("tank_001")
	if err != nil {
		t.Fatalf("GetTankDetail failed: %v", err)
	}
	if detail.Tank.ID != "tank_001" {
		t.Errorf("Expected tank_001, got %s", detail.Tank.ID)
	}
	if detail.Trend.DataPoints != 2 {
		t.Errorf("Expected trend over 2 points, got %d", detail.Trend.DataPoints)
	}
	if detail.Analysis.RiskLevel != entities.StatusNormal {
		t.Errorf("Expected normal analysis, got %s", detail.Analysis.RiskLevel)
	}

	if _, err := uc.GetTankDetail("tank_999"); err == nil {
		t.Error("Expected error for unknown tank")
	}
}

func TestTankHistoryNeverNil(t *testing.T) {
	uc, _ := testUseCase()

	history, err := uc.TankHistory("tank_002")
	if err != nil {
		t.Fatalf("TankHistory failed: %v", err)
	}
	// A tank without history serves an empty list, not null
	if history == nil {
		t.Error("Expected empty slice for tank without history")
	}
	if len(history) != 0 {
		t.Errorf("Expected no entries, got %d", len(history))
	}
}

func TestUseCasePredictions(t *testing.T) {
	uc, _ := testUseCase()
	ctx := context.Background()

	quality, err := uc.PredictWaterQuality(ctx, "tank_001")
	if err != nil {
		t.Fatalf("PredictWaterQuality failed: %v", err)
	}
	if !quality.Success || !quality.Fallback {
		t.Errorf("Expected fallback quality result, got %+v", quality)
	}

	leakage, err := uc.DetectLeakage(ctx, "tank_002")
	if err != nil {
		t.Fatalf("DetectLeakage failed: %v", err)
	}
	if leakage.Analysis.AnomalyDetected {
		t.Error("No anomaly expected at 40% level")
	}

	demand, err := uc.ForecastDemand(ctx)
	if err != nil {
		t.Fatalf("ForecastDemand failed: %v", err)
	}
	// 15% of the 150000L fleet capacity
	if demand.Forecast.AverageDailyDemandLiters != 22500 {
		t.Errorf("Expected average daily 22500, got %d", demand.Forecast.AverageDailyDemandLiters)
	}
}

func TestUseCaseWardsAndHeatmap(t *testing.T) {
	uc, _ := testUseCase()

	wards, err := uc.Wards()
	if err != nil {
		t.Fatalf("Wards failed: %v", err)
	}
	if len(wards.Features) != 2 {
		t.Errorf("Expected 2 wards, got %d", len(wards.Features))
	}

	ward, err := uc.WardDetails("ward_3_7")
	if err != nil {
		t.Fatalf("WardDetails failed: %v", err)
	}
	if ward.Properties.TankCount != 1 {
		t.Errorf("Expected 1 tank in ward_3_7, got %d", ward.Properties.TankCount)
	}

	heatmap, err := uc.Heatmap(MetricTurbidity)
	if err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}
	if len(heatmap.Points) != 2 {
		t.Errorf("Expected 2 heatmap points, got %d", len(heatmap.Points))
	}
}

func TestUseCaseUpdateMaintenance(t *testing.T) {
	uc, repo := testUseCase()

	view, err := uc.UpdateMaintenance("tank_001", daysAgo(0), "Cleaned")
	if err != nil {
		t.Fatalf("UpdateMaintenance failed: %v", err)
	}
	// Derived fields reflect the new cleaning date immediately
	if view.DaysSinceCleaned != 0 {
		t.Errorf("Expected 0 days since cleaned, got %d", view.DaysSinceCleaned)
	}

	stored, err := repo.FindTank("tank_001")
	if err != nil {
		t.Fatalf("FindTank failed: %v", err)
	}
	if stored.LastCleaned != daysAgo(0) {
		t.Errorf("Expected repo updated, got %s", stored.LastCleaned)
	}
}
