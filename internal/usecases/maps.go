package usecases

import "github.com/Deepthi2006/aquasentry/internal/entities"

// MarkerPopup is the detail payload shown when a map marker is opened.
type MarkerPopup struct {
	Name                 string  `json:"name"`
	Status               string  `json:"status"`
	Level                int     `json:"level"`
	PH                   float64 `json:"ph"`
	Turbidity            float64 `json:"turbidity"`
	Temperature          float64 `json:"temperature"`
	DaysSinceCleaned     int     `json:"days_since_cleaned"`
	DaysUntilMaintenance int     `json:"days_until_maintenance"`
}

// MapMarker is one tank pin on the overview map.
type MapMarker struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Lat          float64     `json:"lat"`
	Lng          float64     `json:"lng"`
	Address      string      `json:"address"`
	Status       string      `json:"status"`
	Color        string      `json:"color"`
	PopupContent MarkerPopup `json:"popup_content"`
}

// MapData bundles markers with the map frame.
type MapData struct {
	Markers []MapMarker `json:"markers"`
	Bounds  MapBounds   `json:"bounds"`
}

// BuildMapData renders the fleet as status-colored markers.
func BuildMapData(tanks []entities.TankView) MapData {
	markers := make([]MapMarker, 0, len(tanks))

	for _, tank := range tanks {
		color := "green"
		switch tank.Status {
		case entities.StatusWarning:
			color = "yellow"
		case entities.StatusCritical:
			color = "red"
		}

		readings := tank.CurrentReadings
		markers = append(markers, MapMarker{
			ID:      tank.ID,
			Name:    tank.Name,
			Lat:     tank.Location.Lat,
			Lng:     tank.Location.Lng,
			Address: tank.Location.Address,
			Status:  tank.Status,
			Color:   color,
			PopupContent: MarkerPopup{
				Name:                 tank.Name,
				Status:               tank.Status,
				Level:                tank.CurrentLevelPercent,
				PH:                   readings.PH,
				Turbidity:            readings.Turbidity,
				Temperature:          readings.Temperature,
				DaysSinceCleaned:     tank.DaysSinceCleaned,
				DaysUntilMaintenance: tank.DaysUntilMaintenance,
			},
		})
	}

	return MapData{
		Markers: markers,
		Bounds:  markerBounds(tanks),
	}
}

// markerBounds frames the fleet with the marker-view zoom, using the same
// empty-fleet fallback as the heatmap.
func markerBounds(tanks []entities.TankView) MapBounds {
	if len(tanks) == 0 {
		return fallbackMapView
	}

	box := BoundingBox{
		North: tanks[0].Location.Lat, South: tanks[0].Location.Lat,
		East: tanks[0].Location.Lng, West: tanks[0].Location.Lng,
	}
	var sumLat, sumLng float64
	for _, tank := range tanks {
		lat, lng := tank.Location.Lat, tank.Location.Lng
		sumLat += lat
		sumLng += lng
		if lat > box.North {
			box.North = lat
		}
		if lat < box.South {
			box.South = lat
		}
		if lng > box.East {
			box.East = lng
		}
		if lng < box.West {
			box.West = lng
		}
	}

	return MapBounds{
		Center: Coordinate{
			Lat: sumLat / float64(len(tanks)),
			Lng: sumLng / float64(len(tanks)),
		},
		Bounds: &box,
		Zoom:   12,
	}
}
