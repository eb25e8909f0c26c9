package usecases

import (
	"errors"
	"testing"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

func placedTank(id string, lat, lng float64, ph, turbidity float64) entities.TankView {
	tank := tankWith(ph, turbidity, 10)
	tank.ID = id
	tank.Name = "Tank " + id
	tank.Location = entities.Location{Lat: lat, Lng: lng}
	tank.CapacityLiters = 100000
	return BuildTankView(tank, today)
}

func TestWardID(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     string
	}{
		{12.34, 56.78, "ward_3_7"},
		{12.39, 56.79, "ward_3_7"}, // same 0.1-degree cell
		{12.44, 56.78, "ward_4_7"},
		{0, 0, "ward_0_0"},
		{-12.36, 77.61, "ward_7_6"}, // southern coordinates stay in range
	}

	for _, tc := range tests {
		if got := WardID(tc.lat, tc.lng); got != tc.want {
			t.Errorf("WardID(%v, %v) = %s, want %s", tc.lat, tc.lng, got, tc.want)
		}
	}
}

func TestBuildWardCollectionGrouping(t *testing.T) {
	tanks := []entities.TankView{
		placedTank("tank_001", 12.34, 56.78, 7.0, 1.0),
		placedTank("tank_002", 12.39, 56.79, 7.2, 2.0), // same ward
		placedTank("tank_003", 12.44, 56.78, 7.0, 1.0), // neighboring ward
	}

	collection := BuildWardCollection(tanks)

	if collection.Type != "FeatureCollection" {
		t.Errorf("Expected FeatureCollection, got %s", collection.Type)
	}
	if len(collection.Features) != 2 {
		t.Fatalf("Expected 2 wards, got %d", len(collection.Features))
	}

	// Wards appear in first-seen tank order
	first := collection.Features[0].Properties
	if first.WardID != "ward_3_7" {
		t.Errorf("Expected first ward ward_3_7, got %s", first.WardID)
	}
	if first.TankCount != 2 {
		t.Errorf("Expected 2 tanks in ward_3_7, got %d", first.TankCount)
	}
	if first.TotalCapacityLiters != 200000 {
		t.Errorf("Expected 200000L total capacity, got %d", first.TotalCapacityLiters)
	}
	if first.AvgPH != 7.1 {
		t.Errorf("Expected average pH 7.1, got %v", first.AvgPH)
	}
	if first.AvgTurbidity != 1.5 {
		t.Errorf("Expected average turbidity 1.5, got %v", first.AvgTurbidity)
	}
}

func TestWardHealthTiers(t *testing.T) {
	// All nominal
	healthy := BuildWardCollection([]entities.TankView{placedTank("tank_001", 12.34, 56.78, 7.0, 1.0)})
	if props := healthy.Features[0].Properties; props.HealthScore != 90 || props.Status != entities.StatusNormal {
		t.Errorf("Expected 90/normal, got %d/%s", props.HealthScore, props.Status)
	}

	// One warning tank caps the ward at the warning tier
	warning := BuildWardCollection([]entities.TankView{
		placedTank("tank_001", 12.34, 56.78, 7.0, 1.0),
		placedTank("tank_002", 12.34, 56.78, 7.0, 6.0),
	})
	if props := warning.Features[0].Properties; props.HealthScore != 60 || props.Status != entities.StatusWarning {
		t.Errorf("Expected 60/warning, got %d/%s", props.HealthScore, props.Status)
	}

	// Any critical tank sinks the whole ward
	critical := BuildWardCollection([]entities.TankView{
		placedTank("tank_001", 12.34, 56.78, 7.0, 1.0),
		placedTank("tank_002", 12.34, 56.78, 7.0, 6.0),
		placedTank("tank_003", 12.34, 56.78, 5.5, 8.0),
	})
	props := critical.Features[0].Properties
	if props.HealthScore != 30 || props.Status != entities.StatusCritical {
		t.Errorf("Expected 30/critical, got %d/%s", props.HealthScore, props.Status)
	}
	if props.CriticalTanks != 1 || props.WarningTanks != 1 || props.NormalTanks != 1 {
		t.Errorf("Expected 1/1/1 counts, got %d/%d/%d", props.CriticalTanks, props.WarningTanks, props.NormalTanks)
	}
}

func TestWardGeometry(t *testing.T) {
	collection := BuildWardCollection([]entities.TankView{placedTank("tank_001", 12.34, 56.78, 7.0, 1.0)})
	geometry := collection.Features[0].Geometry

	if geometry.Type != "Polygon" {
		t.Errorf("Expected Polygon, got %s", geometry.Type)
	}

	ring := geometry.Coordinates[0]
	if len(ring) != 5 {
		t.Fatalf("Expected closed 5-point ring, got %d points", len(ring))
	}
	// GeoJSON rings close back on the starting corner
	if ring[0][0] != ring[4][0] || ring[0][1] != ring[4][1] {
		t.Error("Polygon ring is not closed")
	}
	// First corner sits offset southwest of the anchor tank
	if ring[0][0] != 56.78-0.02 || ring[0][1] != 12.34-0.02 {
		t.Errorf("Unexpected first corner %v", ring[0])
	}
}

func TestFindWard(t *testing.T) {
	tanks := []entities.TankView{placedTank("tank_001", 12.34, 56.78, 7.0, 1.0)}

	ward, err := FindWard(tanks, "ward_3_7")
	if err != nil {
		t.Fatalf("Expected to find ward_3_7: %v", err)
	}
	if ward.Properties.TankCount != 1 {
		t.Errorf("Expected 1 tank, got %d", ward.Properties.TankCount)
	}

	_, err = FindWard(tanks, "ward_9_9")
	if !errors.Is(err, entities.ErrWardNotFound) {
		t.Errorf("Expected ErrWardNotFound, got %v", err)
	}
}
