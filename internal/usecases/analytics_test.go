package usecases

import (
	"testing"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

func TestAnalyzeWaterQuality(t *testing.T) {
	// Nominal readings raise no issues
	clean := AnalyzeWaterQuality(tankWith(7.0, 1.0, 10))
	if len(clean.Issues) != 0 || clean.RiskLevel != entities.StatusNormal {
		t.Errorf("Expected clean analysis, got %+v", clean)
	}

	// One issue is a warning
	lowPH := AnalyzeWaterQuality(tankWith(6.0, 1.0, 10))
	if len(lowPH.Issues) != 1 || lowPH.RiskLevel != entities.StatusWarning {
		t.Errorf("Expected single-issue warning, got %+v", lowPH)
	}
	if len(lowPH.Recommendations) == 0 {
		t.Error("Expected remediation advice for low pH")
	}

	// Two or more issues escalate to critical
	multi := AnalyzeWaterQuality(tankWith(6.0, 6.0, 10))
	if len(multi.Issues) != 2 || multi.RiskLevel != entities.StatusCritical {
		t.Errorf("Expected two-issue critical, got %+v", multi)
	}

	// Elevated but not high turbidity gets its own advice
	elevated := AnalyzeWaterQuality(tankWith(7.0, 4.0, 10))
	if len(elevated.Issues) != 1 {
		t.Errorf("Expected elevated turbidity issue, got %+v", elevated.Issues)
	}
}

func TestBuildFleetSummary(t *testing.T) {
	tanks := []entities.TankView{
		viewWith(7.0, 1.0, 80, 10),
		viewWith(7.0, 6.0, 60, 10),
		viewWith(5.5, 8.0, 40, 10),
	}

	summary := BuildFleetSummary(tanks)

	if summary.Total != 3 || summary.Normal != 1 || summary.Warning != 1 || summary.Critical != 1 {
		t.Errorf("Unexpected counts: %+v", summary)
	}
	if summary.AvgLevel != 60 {
		t.Errorf("Expected average level 60, got %v", summary.AvgLevel)
	}
}

func TestBuildFleetSummaryEmpty(t *testing.T) {
	summary := BuildFleetSummary(nil)
	if summary.Total != 0 || summary.AvgLevel != 0 {
		t.Errorf("Expected zero summary, got %+v", summary)
	}
}

func TestBuildSystemAnalytics(t *testing.T) {
	normal := tankWith(7.0, 1.0, 10)
	normal.ID = "tank_001"
	normal.CapacityLiters = 100000
	normal.CurrentLevelPercent = 80

	risky := tankWith(6.0, 6.0, 10)
	risky.ID = "tank_002"
	risky.Name = "Risky Tank"
	risky.CapacityLiters = 50000
	risky.CurrentLevelPercent = 40

	alerts := []entities.Alert{
		{ID: "alert_001", Type: entities.AlertCritical, Acknowledged: false},
		{ID: "alert_002", Type: entities.AlertWarning, Acknowledged: true},
	}

	analytics := BuildSystemAnalytics([]entities.Tank{normal, risky}, alerts)

	if analytics.TotalTanks != 2 {
		t.Errorf("Expected 2 tanks, got %d", analytics.TotalTanks)
	}
	if analytics.TotalCapacityLiters != 150000 {
		t.Errorf("Expected 150000L capacity, got %d", analytics.TotalCapacityLiters)
	}
	if analytics.AverageLevelPercent != 60 {
		t.Errorf("Expected average level 60, got %v", analytics.AverageLevelPercent)
	}
	if analytics.AveragePH != 6.5 {
		t.Errorf("Expected average pH 6.5, got %v", analytics.AveragePH)
	}
	if analytics.AverageTurbidity != 3.5 {
		t.Errorf("Expected average turbidity 3.5, got %v", analytics.AverageTurbidity)
	}

	// The rollup follows the quality analysis: two issues on tank_002
	// make it critical even though the classifier would call it warning
	if analytics.CriticalCount != 1 || len(analytics.CriticalTanks) != 1 {
		t.Errorf("Expected one critical tank, got %+v", analytics.CriticalTanks)
	}
	if analytics.CriticalTanks[0].Name != "Risky Tank" {
		t.Errorf("Expected Risky Tank critical, got %s", analytics.CriticalTanks[0].Name)
	}
	if analytics.NormalCount != 1 {
		t.Errorf("Expected one normal tank, got %d", analytics.NormalCount)
	}

	// Only unacknowledged alerts count as active
	if analytics.ActiveAlerts != 1 {
		t.Errorf("Expected 1 active alert, got %d", analytics.ActiveAlerts)
	}
}

func TestSummarizeAlerts(t *testing.T) {
	alerts := []entities.Alert{
		{ID: "alert_001", Type: entities.AlertCritical, Acknowledged: false},
		{ID: "alert_002", Type: entities.AlertCritical, Acknowledged: true},
		{ID: "alert_003", Type: entities.AlertWarning, Acknowledged: false},
		{ID: "alert_004", Type: entities.AlertInfo, Acknowledged: false},
	}

	summary := SummarizeAlerts(alerts)

	if summary.Total != 4 {
		t.Errorf("Expected total 4, got %d", summary.Total)
	}
	if summary.Critical != 2 || summary.Warning != 1 || summary.Info != 1 {
		t.Errorf("Unexpected type counts: %+v", summary)
	}
	if summary.Unacknowledged != 3 {
		t.Errorf("Expected 3 unacknowledged, got %d", summary.Unacknowledged)
	}
}
