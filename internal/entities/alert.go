package entities

// Alert type values
const (
	AlertCritical = "critical"
	AlertWarning  = "warning"
	AlertInfo     = "info"
)

// Alert is a notification raised for a tank. Alerts are read-only from
// this system's perspective; their lifecycle is owned elsewhere.
type Alert struct {
	ID           string `json:"id"`
	TankID       string `json:"tank_id"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at"`
	Acknowledged bool   `json:"acknowledged"`
}
