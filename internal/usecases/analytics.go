package usecases

import (
	"fmt"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// QualityAnalysis is the per-tank issue/recommendation breakdown.
type QualityAnalysis struct {
	TankID          string   `json:"tank_id"`
	TankName        string   `json:"tank_name"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	RiskLevel       string   `json:"risk_level"`
}

// TankRef names a tank inside an analytics rollup.
type TankRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FleetSummary is the per-status tank count shown on the dashboard header.
type FleetSummary struct {
	Total    int     `json:"total"`
	Normal   int     `json:"normal"`
	Warning  int     `json:"warning"`
	Critical int     `json:"critical"`
	AvgLevel float64 `json:"avg_level"`
}

// SystemAnalytics is the fleet-wide rollup. It is recomputed in full on
// every call; tank counts are small enough that O(n) recomputation stays
// cheap and always consistent.
type SystemAnalytics struct {
	TotalTanks          int       `json:"total_tanks"`
	TotalCapacityLiters int       `json:"total_capacity_liters"`
	AverageLevelPercent float64   `json:"average_level_percent"`
	AveragePH           float64   `json:"average_ph"`
	AverageTurbidity    float64   `json:"average_turbidity"`
	AverageTemperature  float64   `json:"average_temperature"`
	CriticalCount       int       `json:"critical_count"`
	WarningCount        int       `json:"warning_count"`
	NormalCount         int       `json:"normal_count"`
	ActiveAlerts        int       `json:"active_alerts"`
	CriticalTanks       []TankRef `json:"critical_tanks"`
	WarningTanks        []TankRef `json:"warning_tanks"`
}

// AnalyzeWaterQuality inspects one tank's readings and lists concrete
// issues with matching remediation advice. Two or more issues escalate the
// risk to critical.
func AnalyzeWaterQuality(tank entities.Tank) QualityAnalysis {
	readings := tank.CurrentReadings
	ph := readings.PHOrDefault()
	turbidity := readings.Turbidity
	temperature := readings.TemperatureOrDefault()

	issues := []string{}
	recommendations := []string{}

	if ph < phWarningLow {
		issues = append(issues, fmt.Sprintf("pH too low (%v)", ph))
		recommendations = append(recommendations, "Add pH increaser (sodium carbonate)")
	} else if ph > phWarningHigh {
		issues = append(issues, fmt.Sprintf("pH too high (%v)", ph))
		recommendations = append(recommendations, "Add pH decreaser (sodium bisulfate)")
	}

	if turbidity > 5 {
		issues = append(issues, fmt.Sprintf("High turbidity (%v NTU)", turbidity))
		recommendations = append(recommendations, "Schedule immediate tank cleaning")
		recommendations = append(recommendations, "Check filtration system")
	} else if turbidity > 3 {
		issues = append(issues, fmt.Sprintf("Elevated turbidity (%v NTU)", turbidity))
		recommendations = append(recommendations, "Monitor turbidity levels closely")
	}

	if temperature > 25 {
		issues = append(issues, fmt.Sprintf("Temperature elevated (%v°C)", temperature))
		recommendations = append(recommendations, "Check cooling systems")
	}

	risk := entities.StatusNormal
	if len(issues) >= 2 {
		risk = entities.StatusCritical
	} else if len(issues) == 1 {
		risk = entities.StatusWarning
	}

	return QualityAnalysis{
		TankID:          tank.ID,
		TankName:        tank.Name,
		Issues:          issues,
		Recommendations: recommendations,
		RiskLevel:       risk,
	}
}

// BuildFleetSummary counts tanks by derived status.
func BuildFleetSummary(tanks []entities.TankView) FleetSummary {
	summary := FleetSummary{Total: len(tanks)}

	var levelSum int
	for _, tank := range tanks {
		levelSum += tank.CurrentLevelPercent
		switch tank.Status {
		case entities.StatusCritical:
			summary.Critical++
		case entities.StatusWarning:
			summary.Warning++
		default:
			summary.Normal++
		}
	}

	if summary.Total > 0 {
		summary.AvgLevel = float64(levelSum) / float64(summary.Total)
	}
	return summary
}

// BuildSystemAnalytics computes the full fleet rollup from tanks and
// alerts. Risk here follows the per-tank quality analysis, not the
// cleaning-age classifier, so the two dashboards can disagree.
func BuildSystemAnalytics(tanks []entities.Tank, alerts []entities.Alert) SystemAnalytics {
	analytics := SystemAnalytics{
		TotalTanks:    len(tanks),
		CriticalTanks: []TankRef{},
		WarningTanks:  []TankRef{},
	}

	var levelSum int
	var phSum, turbiditySum, tempSum float64
	for _, tank := range tanks {
		analytics.TotalCapacityLiters += tank.CapacityLiters
		levelSum += tank.CurrentLevelPercent
		phSum += tank.CurrentReadings.PH
		turbiditySum += tank.CurrentReadings.Turbidity
		tempSum += tank.CurrentReadings.Temperature

		analysis := AnalyzeWaterQuality(tank)
		switch analysis.RiskLevel {
		case entities.StatusCritical:
			analytics.CriticalTanks = append(analytics.CriticalTanks, TankRef{ID: tank.ID, Name: tank.Name})
		case entities.StatusWarning:
			analytics.WarningTanks = append(analytics.WarningTanks, TankRef{ID: tank.ID, Name: tank.Name})
		}
	}

	if len(tanks) > 0 {
		n := float64(len(tanks))
		analytics.AverageLevelPercent = round1(float64(levelSum) / n)
		analytics.AveragePH = round2(phSum / n)
		analytics.AverageTurbidity = round2(turbiditySum / n)
		analytics.AverageTemperature = round1(tempSum / n)
	}

	analytics.CriticalCount = len(analytics.CriticalTanks)
	analytics.WarningCount = len(analytics.WarningTanks)
	analytics.NormalCount = len(tanks) - analytics.CriticalCount - analytics.WarningCount

	for _, alert := range alerts {
		if !alert.Acknowledged {
			analytics.ActiveAlerts++
		}
	}

	return analytics
}

// AlertSummary counts alerts by type alongside the unacknowledged total.
type AlertSummary struct {
	Total          int `json:"total"`
	Critical       int `json:"critical"`
	Warning        int `json:"warning"`
	Info           int `json:"info"`
	Unacknowledged int `json:"unacknowledged"`
}

// SummarizeAlerts rolls up the alert list for the alerts page header.
func SummarizeAlerts(alerts []entities.Alert) AlertSummary {
	summary := AlertSummary{Total: len(alerts)}
	for _, alert := range alerts {
		switch alert.Type {
		case entities.AlertCritical:
			summary.Critical++
		case entities.AlertWarning:
			summary.Warning++
		case entities.AlertInfo:
			summary.Info++
		}
		if !alert.Acknowledged {
			summary.Unacknowledged++
		}
	}
	return summary
}
