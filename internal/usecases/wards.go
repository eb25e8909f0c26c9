package usecases

import (
	"fmt"
	"strings"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// Ward health tiers. Three discrete scores, no interpolation: any
// critical tank sinks the whole ward.
const (
	wardScoreCritical = 30
	wardScoreWarning  = 60
	wardScoreNormal   = 90
)

// wardPolygonOffset is the half-width of the placeholder square drawn
// around a ward's first-seen tank. Not an administrative boundary.
const wardPolygonOffset = 0.02

// WardTankRef identifies one tank inside a ward feature.
type WardTankRef struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// WardProperties is the aggregate summary attached to a ward feature.
type WardProperties struct {
	WardID              string        `json:"ward_id"`
	WardName            string        `json:"ward_name"`
	TankCount           int           `json:"tank_count"`
	TotalCapacityLiters int           `json:"total_capacity_liters"`
	AvgPH               float64       `json:"avg_ph"`
	AvgTurbidity        float64       `json:"avg_turbidity"`
	HealthScore         int           `json:"health_score"`
	Status              string        `json:"status"`
	CriticalTanks       int           `json:"critical_tanks"`
	WarningTanks        int           `json:"warning_tanks"`
	NormalTanks         int           `json:"normal_tanks"`
	Tanks               []WardTankRef `json:"tanks"`
}

// Geometry is a GeoJSON polygon geometry.
type Geometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// WardFeature is one ward as a GeoJSON feature.
type WardFeature struct {
	Type       string         `json:"type"`
	Properties WardProperties `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// WardCollection is the GeoJSON feature collection of all wards.
type WardCollection struct {
	Type     string        `json:"type"`
	Features []WardFeature `json:"features"`
}

// WardID buckets a coordinate into the synthetic 0.1-degree ward grid.
// Both indices wrap into 0-9, so the id is a visualization key, not real
// geography.
func WardID(lat, lng float64) string {
	return fmt.Sprintf("ward_%d_%d", gridIndex(lat), gridIndex(lng))
}

// gridIndex floors a coordinate onto the 0.1-degree grid and wraps the
// cell number into 0-9. Floored modulo keeps southern and western
// coordinates inside the range.
func gridIndex(coord float64) int {
	n := int(coord*10) % 10
	return (n + 10) % 10
}

type wardAccumulator struct {
	tanks         []WardTankRef
	centerLat     float64
	centerLng     float64
	totalCapacity int
	sumPH         float64
	sumTurbidity  float64
	criticalCount int
	warningCount  int
	normalCount   int
}

// BuildWardCollection bins tanks into wards and summarizes each ward's
// health and geometry. Recomputed from current tank state on every call;
// wards have no independent lifecycle.
func BuildWardCollection(tanks []entities.TankView) WardCollection {
	wards := map[string]*wardAccumulator{}
	order := []string{}

	for _, tank := range tanks {
		id := WardID(tank.Location.Lat, tank.Location.Lng)

		acc, ok := wards[id]
		if !ok {
			acc = &wardAccumulator{
				centerLat: tank.Location.Lat,
				centerLng: tank.Location.Lng,
			}
			wards[id] = acc
			order = append(order, id)
		}

		acc.tanks = append(acc.tanks, WardTankRef{ID: tank.ID, Name: tank.Name, Status: tank.Status})
		acc.totalCapacity += tank.CapacityLiters
		acc.sumPH += tank.CurrentReadings.PHOrDefault()
		acc.sumTurbidity += tank.CurrentReadings.Turbidity

		switch tank.Status {
		case entities.StatusCritical:
			acc.criticalCount++
		case entities.StatusWarning:
			acc.warningCount++
		default:
			acc.normalCount++
		}
	}

	features := make([]WardFeature, 0, len(order))
	for _, id := range order {
		acc := wards[id]
		count := len(acc.tanks)

		avgPH := 0.0
		avgTurbidity := 0.0
		if count > 0 {
			avgPH = round2(acc.sumPH / float64(count))
			avgTurbidity = round2(acc.sumTurbidity / float64(count))
		}

		status := entities.StatusNormal
		healthScore := wardScoreNormal
		if acc.criticalCount > 0 {
			status = entities.StatusCritical
			healthScore = wardScoreCritical
		} else if acc.warningCount > 0 {
			status = entities.StatusWarning
			healthScore = wardScoreWarning
		}

		features = append(features, WardFeature{
			Type: "Feature",
			Properties: WardProperties{
				WardID:              id,
				WardName:            "Ward " + strings.ReplaceAll(strings.TrimPrefix(id, "ward_"), "_", "-"),
				TankCount:           count,
				TotalCapacityLiters: acc.totalCapacity,
				AvgPH:               avgPH,
				AvgTurbidity:        avgTurbidity,
				HealthScore:         healthScore,
				Status:              status,
				CriticalTanks:       acc.criticalCount,
				WarningTanks:        acc.warningCount,
				NormalTanks:         acc.normalCount,
				Tanks:               acc.tanks,
			},
			Geometry: squarePolygon(acc.centerLat, acc.centerLng),
		})
	}

	return WardCollection{Type: "FeatureCollection", Features: features}
}

// FindWard returns the feature for one ward id or ErrWardNotFound.
func FindWard(tanks []entities.TankView, wardID string) (*WardFeature, error) {
	collection := BuildWardCollection(tanks)
	for i := range collection.Features {
		if collection.Features[i].Properties.WardID == wardID {
			return &collection.Features[i], nil
		}
	}
	return nil, fmt.Errorf("ward '%s': %w", wardID, entities.ErrWardNotFound)
}

// squarePolygon draws the fixed placeholder square centered on the ward's
// first-seen tank coordinate, closed back to the starting corner.
func squarePolygon(lat, lng float64) Geometry {
	o := wardPolygonOffset
	return Geometry{
		Type: "Polygon",
		Coordinates: [][][]float64{{
			{lng - o, lat - o},
			{lng + o, lat - o},
			{lng + o, lat + o},
			{lng - o, lat + o},
			{lng - o, lat - o},
		}},
	}
}
