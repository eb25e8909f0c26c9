package usecases

import "github.com/Deepthi2006/aquasentry/internal/entities"

// Heatmap metric names. An unknown metric falls back to a flat 50.
const (
	MetricHealthScore = "health_score"
	MetricPH          = "ph"
	MetricTurbidity   = "turbidity"
	MetricTemperature = "temperature"
	MetricWaterLevel  = "water_level"
)

// HeatmapPoint is one tank rendered as a weighted map point.
type HeatmapPoint struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Value    float64 `json:"value"`
	TankID   string  `json:"tank_id"`
	TankName string  `json:"tank_name"`
	Status   string  `json:"status"`
}

// LegendRange is one colored band of a heatmap legend.
type LegendRange struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// Legend describes how to color a heatmap metric.
type Legend struct {
	Title  string        `json:"title"`
	Ranges []LegendRange `json:"ranges"`
}

// Coordinate is a lat/lng pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox is the outer extent of a point set.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// MapBounds frames a map view. Bounds is nil for the empty-fleet fallback.
type MapBounds struct {
	Center Coordinate   `json:"center"`
	Bounds *BoundingBox `json:"bounds,omitempty"`
	Zoom   int          `json:"zoom"`
}

// Heatmap is the metric-valued point layer for one metric.
type Heatmap struct {
	Metric string         `json:"metric"`
	Points []HeatmapPoint `json:"points"`
	Legend Legend         `json:"legend"`
	Bounds MapBounds      `json:"bounds"`
}

// fallbackMapView is used when the fleet is empty and no bounds exist.
var fallbackMapView = MapBounds{
	Center: Coordinate{Lat: 40.7128, Lng: -74.006},
	Zoom:   12,
}

// BuildHeatmap emits one point per tank valued by the selected metric.
func BuildHeatmap(tanks []entities.TankView, metric string) Heatmap {
	points := make([]HeatmapPoint, 0, len(tanks))

	for _, tank := range tanks {
		var value float64
		switch metric {
		case MetricHealthScore:
			switch tank.Status {
			case entities.StatusCritical:
				value = wardScoreCritical
			case entities.StatusWarning:
				value = wardScoreWarning
			default:
				value = wardScoreNormal
			}
		case MetricPH:
			value = tank.CurrentReadings.PHOrDefault()
		case MetricTurbidity:
			value = tank.CurrentReadings.Turbidity
		case MetricTemperature:
			value = tank.CurrentReadings.TemperatureOrDefault()
		case MetricWaterLevel:
			value = float64(tank.CurrentLevelPercent)
		default:
			value = 50
		}

		points = append(points, HeatmapPoint{
			Lat:      tank.Location.Lat,
			Lng:      tank.Location.Lng,
			Value:    value,
			TankID:   tank.ID,
			TankName: tank.Name,
			Status:   tank.Status,
		})
	}

	return Heatmap{
		Metric: metric,
		Points: points,
		Legend: legendForMetric(metric),
		Bounds: boundsForPoints(points),
	}
}

// boundsForPoints frames the point set, falling back to the fixed view
// when it is empty.
func boundsForPoints(points []HeatmapPoint) MapBounds {
	if len(points) == 0 {
		return fallbackMapView
	}

	box := BoundingBox{
		North: points[0].Lat, South: points[0].Lat,
		East: points[0].Lng, West: points[0].Lng,
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
		if p.Lat > box.North {
			box.North = p.Lat
		}
		if p.Lat < box.South {
			box.South = p.Lat
		}
		if p.Lng > box.East {
			box.East = p.Lng
		}
		if p.Lng < box.West {
			box.West = p.Lng
		}
	}

	return MapBounds{
		Center: Coordinate{
			Lat: sumLat / float64(len(points)),
			Lng: sumLng / float64(len(points)),
		},
		Bounds: &box,
		Zoom:   11,
	}
}

// legendForMetric returns the coloring legend for a metric; unknown
// metrics borrow the health-score legend.
func legendForMetric(metric string) Legend {
	switch metric {
	case MetricPH:
		return Legend{
			Title: "pH Level",
			Ranges: []LegendRange{
				{Min: 0, Max: 6.5, Color: "#ef4444", Label: "Acidic"},
				{Min: 6.5, Max: 8.5, Color: "#10b981", Label: "Normal"},
				{Min: 8.5, Max: 14, Color: "#ef4444", Label: "Alkaline"},
			},
		}
	case MetricTurbidity:
		return Legend{
			Title: "Turbidity (NTU)",
			Ranges: []LegendRange{
				{Min: 0, Max: 1, Color: "#10b981", Label: "Excellent"},
				{Min: 1, Max: 5, Color: "#f59e0b", Label: "Acceptable"},
				{Min: 5, Max: 100, Color: "#ef4444", Label: "Poor"},
			},
		}
	case MetricTemperature:
		return Legend{
			Title: "Temperature (°C)",
			Ranges: []LegendRange{
				{Min: 0, Max: 15, Color: "#3b82f6", Label: "Cold"},
				{Min: 15, Max: 25, Color: "#10b981", Label: "Normal"},
				{Min: 25, Max: 50, Color: "#ef4444", Label: "Warm"},
			},
		}
	case MetricWaterLevel:
		return Legend{
			Title: "Water Level (%)",
			Ranges: []LegendRange{
				{Min: 0, Max: 30, Color: "#ef4444", Label: "Low"},
				{Min: 30, Max: 70, Color: "#f59e0b", Label: "Medium"},
				{Min: 70, Max: 100, Color: "#10b981", Label: "High"},
			},
		}
	default:
		return Legend{
			Title: "Ward Health Score",
			Ranges: []LegendRange{
				{Min: 0, Max: 40, Color: "#ef4444", Label: "Critical"},
				{Min: 40, Max: 70, Color: "#f59e0b", Label: "Warning"},
				{Min: 70, Max: 100, Color: "#10b981", Label: "Normal"},
			},
		}
	}
}
