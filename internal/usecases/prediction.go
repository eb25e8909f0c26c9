package usecases

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// Prediction horizons. Projections extrapolate the per-sample rate one
// step for the near horizon and two steps for the far one.
const (
	horizonNear = "24h"
	horizonFar  = "48h"
)

// HorizonPrediction is a projected set of readings at one horizon.
type HorizonPrediction struct {
	PH          float64 `json:"ph"`
	Turbidity   float64 `json:"turbidity"`
	Temperature float64 `json:"temperature"`
	Confidence  float64 `json:"confidence"`
}

// QualityTrend labels the per-sample movement rates behind a projection.
type QualityTrend struct {
	PHTrend          string `json:"ph_trend"`
	TurbidityTrend   string `json:"turbidity_trend"`
	TemperatureTrend string `json:"temperature_trend"`
}

// QualityPrediction projects water quality at the near and far horizons.
type QualityPrediction struct {
	Predictions        map[string]HorizonPrediction `json:"predictions"`
	TrendAnalysis      QualityTrend                 `json:"trend_analysis"`
	RiskLevel          string                       `json:"risk_level"`
	RiskFactors        []string                     `json:"risk_factors"`
	RecommendedActions []string                     `json:"recommended_actions"`
	GovernmentImpact   string                       `json:"government_impact"`
}

// QualityResult is the envelope returned to consumers. Fallback marks
// rule-derived output so callers can tell it apart from model output.
type QualityResult struct {
	Success    bool              `json:"success"`
	Prediction QualityPrediction `json:"prediction"`
	Fallback   bool              `json:"fallback,omitempty"`
}

// LeakageDetails carries the quantitative side of an anomaly verdict.
type LeakageDetails struct {
	EstimatedLossLitersPerDay *float64 `json:"estimated_loss_liters_per_day"`
	OverflowRiskPercent       float64  `json:"overflow_risk_percent"`
	PatternDescription        string   `json:"pattern_description"`
}

// LeakageAnalysis is the leakage/overflow anomaly verdict for one tank.
type LeakageAnalysis struct {
	AnomalyDetected         bool           `json:"anomaly_detected"`
	AnomalyType             string         `json:"anomaly_type"` // none|leakage|overflow|unusual_consumption
	Severity                string         `json:"severity"`
	Confidence              float64        `json:"confidence"`
	Details                 LeakageDetails `json:"details"`
	RecommendedActions      []string       `json:"recommended_actions"`
	GovernmentAlertRequired bool           `json:"government_alert_required"`
	ImpactAssessment        string         `json:"impact_assessment"`
}

// LeakageResult is the envelope for a leakage analysis.
type LeakageResult struct {
	Success  bool            `json:"success"`
	Analysis LeakageAnalysis `json:"analysis"`
	Fallback bool            `json:"fallback,omitempty"`
}

// ComplianceFlags reports schedule compliance for a maintenance plan.
type ComplianceFlags struct {
	BISCompliant            bool `json:"bis_compliant"`
	JalJeevanMissionAligned bool `json:"jal_jeevan_mission_aligned"`
}

// MaintenancePlan is a recommended cleaning schedule for one tank.
type MaintenancePlan struct {
	RecommendedCleaningDate string          `json:"recommended_cleaning_date"`
	Urgency                 string          `json:"urgency"` // routine|soon|urgent|immediate
	DaysUntilRecommended    int             `json:"days_until_recommended"`
	CleaningType            string          `json:"cleaning_type"`
	EstimatedDurationHours  int             `json:"estimated_duration_hours"`
	ResourcesNeeded         []string        `json:"resources_needed"`
	CostEstimateINR         int             `json:"cost_estimate_inr"`
	RiskIfDelayed           string          `json:"risk_if_delayed"`
	Reason                  string          `json:"reason"`
	GovernmentCompliance    ComplianceFlags `json:"government_compliance"`
}

// MaintenanceResult is the envelope for a maintenance plan.
type MaintenanceResult struct {
	Success     bool            `json:"success"`
	Maintenance MaintenancePlan `json:"maintenance"`
	Fallback    bool            `json:"fallback,omitempty"`
}

// DailyForecast is one day of the demand forecast.
type DailyForecast struct {
	Day                   int      `json:"day"`
	Date                  string   `json:"date"`
	PredictedDemandLiters int      `json:"predicted_demand_liters"`
	PeakHours             []string `json:"peak_hours"`
	Confidence            float64  `json:"confidence"`
}

// SupplyAdequacy summarizes whether forecast demand can be met.
type SupplyAdequacy struct {
	Sufficient    bool     `json:"sufficient"`
	DeficitLiters *int     `json:"deficit_liters"`
	TanksAtRisk   []string `json:"tanks_at_risk"`
}

// DemandForecast is the 7-day fleet-wide demand outlook.
type DemandForecast struct {
	DailyForecasts             []DailyForecast `json:"daily_forecasts"`
	WeeklyTotalDemandLiters    int             `json:"weekly_total_demand_liters"`
	AverageDailyDemandLiters   int             `json:"average_daily_demand_liters"`
	PeakDemandDay              string          `json:"peak_demand_day"`
	LowDemandDay               string          `json:"low_demand_day"`
	SupplyAdequacy             SupplyAdequacy  `json:"supply_adequacy"`
	Recommendations            []string        `json:"recommendations"`
	GovernmentPlanningInsights string          `json:"government_planning_insights"`
}

// DemandResult is the envelope for a demand forecast.
type DemandResult struct {
	Success  bool           `json:"success"`
	Forecast DemandForecast `json:"forecast"`
	Fallback bool           `json:"fallback,omitempty"`
}

// HarvestTank is one tank recommended for rainwater harvesting.
type HarvestTank struct {
	Name                   string `json:"name"`
	OverflowCapacityLiters int    `json:"overflow_capacity_liters"`
	HarvestingScore        int    `json:"harvesting_score"`
}

// HarvestingPotential sums the fleet's spare capacity.
type HarvestingPotential struct {
	TotalOverflowCapacityLiters      int           `json:"total_overflow_capacity_liters"`
	RecommendedTanks                 []HarvestTank `json:"recommended_tanks"`
	EstimatedMonthlyCollectionLiters int           `json:"estimated_monthly_collection_liters"`
}

// OverflowRiskAnalysis lists tanks close to overflowing.
type OverflowRiskAnalysis struct {
	TanksAtOverflowRisk   []string `json:"tanks_at_overflow_risk"`
	RecommendedDiversions []string `json:"recommended_diversions"`
}

// MonsoonReadiness scores preparation for the wet season.
type MonsoonReadiness struct {
	Score              int      `json:"score"`
	Gaps               []string `json:"gaps"`
	PreparationsNeeded []string `json:"preparations_needed"`
}

// CostBenefit carries nominal placeholder figures, not a real cost model.
type CostBenefit struct {
	EstimatedSavingsINRMonthly int `json:"estimated_savings_inr_monthly"`
	ImplementationCostINR      int `json:"implementation_cost_inr"`
	PaybackMonths              int `json:"payback_months"`
}

// SchemeAlignment flags compatibility with government water schemes.
type SchemeAlignment struct {
	JalShaktiCompatible bool     `json:"jal_shakti_compatible"`
	SwachhBharatAligned bool     `json:"swachh_bharat_aligned"`
	Recommendations     []string `json:"recommendations"`
}

// RainwaterReport is the fleet-wide harvesting estimate.
type RainwaterReport struct {
	HarvestingPotential       HarvestingPotential  `json:"harvesting_potential"`
	OverflowRiskAnalysis      OverflowRiskAnalysis `json:"overflow_risk_analysis"`
	MonsoonReadiness          MonsoonReadiness     `json:"monsoon_readiness"`
	CostBenefit               CostBenefit          `json:"cost_benefit"`
	GovernmentSchemeAlignment SchemeAlignment      `json:"government_scheme_alignment"`
	// RegionRainfallMM is advisory context from the rainfall outlook
	// integration; nil when the outlook is unavailable. It never changes
	// the deterministic estimates above.
	RegionRainfallMM *float64 `json:"region_rainfall_mm,omitempty"`
}

// RainwaterResult is the envelope for a rainwater report.
type RainwaterResult struct {
	Success    bool            `json:"success"`
	Harvesting RainwaterReport `json:"harvesting"`
	Fallback   bool            `json:"fallback,omitempty"`
}

// PredictionEnricher is an optional model-backed predictor. Implementations
// must produce the same shapes as the fallback engine so consumers stay
// agnostic to the source. Any error routes the call to the fallback.
type PredictionEnricher interface {
	PredictWaterQuality(ctx context.Context, tank entities.TankView) (*QualityPrediction, error)
	DetectLeakage(ctx context.Context, tank entities.TankView) (*LeakageAnalysis, error)
	PredictMaintenance(ctx context.Context, tank entities.TankView) (*MaintenancePlan, error)
	ForecastDemand(ctx context.Context, tanks []entities.TankView) (*DemandForecast, error)
	PredictRainwaterHarvesting(ctx context.Context, tanks []entities.TankView) (*RainwaterReport, error)
}

// RainfallOutlook supplies the advisory regional rainfall figure for
// harvesting reports.
type RainfallOutlook interface {
	MonthlyRainfallMM(ctx context.Context) (float64, error)
}

// PredictionEngine produces maintenance, demand, leakage, quality and
// harvesting signals. With no enricher configured (or on enricher error)
// every predictor falls back to deterministic rules.
type PredictionEngine struct {
	enricher PredictionEnricher
	rainfall RainfallOutlook
	now      func() time.Time
}

// NewPredictionEngine creates a prediction engine. Both collaborators may
// be nil; the engine then runs fully rule-based.
func NewPredictionEngine(enricher PredictionEnricher, rainfall RainfallOutlook) *PredictionEngine {
	return &PredictionEngine{
		enricher: enricher,
		rainfall: rainfall,
		now:      time.Now,
	}
}

// PredictWaterQuality projects pH, turbidity and temperature at the near
// and far horizons.
func (e *PredictionEngine) PredictWaterQuality(ctx context.Context, tank entities.TankView) QualityResult {
	if e.enricher != nil {
		prediction, err := e.enricher.PredictWaterQuality(ctx, tank)
		if err == nil {
			return QualityResult{Success: true, Prediction: *prediction}
		}
		log.Printf("Quality enrichment failed for tank %s, using fallback: %v", tank.ID, err)
	}
	return e.fallbackWaterQuality(tank)
}

func (e *PredictionEngine) fallbackWaterQuality(tank entities.TankView) QualityResult {
	readings := tank.CurrentReadings
	ph := readings.PHOrDefault()
	turbidity := readings.Turbidity
	if readings.IsZero() {
		turbidity = entities.DefaultTurbidity
	}
	temp := readings.TemperatureOrDefault()

	var phRate, turbRate, tempRate float64
	if len(tank.History) >= 2 {
		n := float64(len(tank.History))
		first := tank.History[0]
		last := tank.History[len(tank.History)-1]
		phRate = (last.PH - first.PH) / n
		turbRate = (last.Turbidity - first.Turbidity) / n
		tempRate = (last.Temperature - first.Temperature) / n
	}

	prediction := QualityPrediction{
		Predictions: map[string]HorizonPrediction{
			horizonNear: {
				PH:          round2(ph + phRate),
				Turbidity:   round2(math.Max(0, turbidity+turbRate)),
				Temperature: round1(temp + tempRate),
				Confidence:  0.7,
			},
			horizonFar: {
				PH:          round2(ph + phRate*2),
				Turbidity:   round2(math.Max(0, turbidity+turbRate*2)),
				Temperature: round1(temp + tempRate*2),
				Confidence:  0.5,
			},
		},
		TrendAnalysis: QualityTrend{
			PHTrend:          rateLabel(phRate, 0.1),
			TurbidityTrend:   rateLabel(turbRate, 0.2),
			TemperatureTrend: rateLabel(tempRate, 0.3),
		},
		RiskLevel:          "low",
		RiskFactors:        []string{},
		RecommendedActions: []string{},
		GovernmentImpact:   "Fallback prediction - AI unavailable",
	}

	if turbidity > turbidityWarning || ph < phWarningLow || ph > phWarningHigh {
		prediction.RiskLevel = "high"
		prediction.RiskFactors = append(prediction.RiskFactors, "Current readings exceed safe thresholds")
	}

	return QualityResult{Success: true, Prediction: prediction, Fallback: true}
}

// DetectLeakage flags leakage, overflow and unusual-consumption anomalies.
func (e *PredictionEngine) DetectLeakage(ctx context.Context, tank entities.TankView) LeakageResult {
	if e.enricher != nil {
		analysis, err := e.enricher.DetectLeakage(ctx, tank)
		if err == nil {
			return LeakageResult{Success: true, Analysis: *analysis}
		}
		log.Printf("Leakage enrichment failed for tank %s, using fallback: %v", tank.ID, err)
	}
	return e.fallbackLeakage(tank)
}

func (e *PredictionEngine) fallbackLeakage(tank entities.TankView) LeakageResult {
	level := float64(tank.CurrentLevelPercent)

	// Mean sample-to-sample turbidity change serves as the anomaly proxy;
	// the embedded history carries no level series.
	var avgChange float64
	if len(tank.History) >= 2 {
		var sum float64
		for i := 1; i < len(tank.History); i++ {
			sum += tank.History[i].Turbidity - tank.History[i-1].Turbidity
		}
		avgChange = sum / float64(len(tank.History)-1)
	}

	anomalyDetected := level < 30 || level > 95 || math.Abs(avgChange) > 1

	anomalyType := "none"
	severity := "none"
	if anomalyDetected {
		severity = "medium"
		switch {
		case level > 95:
			anomalyType = "overflow"
		case level < 30:
			anomalyType = "leakage"
		default:
			anomalyType = "unusual_consumption"
		}
	}

	var overflowRisk float64
	if level > 85 {
		overflowRisk = math.Max(0, (level-85)*5)
	}

	return LeakageResult{
		Success: true,
		Analysis: LeakageAnalysis{
			AnomalyDetected: anomalyDetected,
			AnomalyType:     anomalyType,
			Severity:        severity,
			Confidence:      0.6,
			Details: LeakageDetails{
				EstimatedLossLitersPerDay: nil,
				OverflowRiskPercent:       overflowRisk,
				PatternDescription:        "Rule-based analysis - AI unavailable",
			},
			RecommendedActions:      []string{},
			GovernmentAlertRequired: anomalyDetected && level < 20,
			ImpactAssessment:        "Fallback analysis",
		},
		Fallback: true,
	}
}

// PredictMaintenance recommends a cleaning schedule for one tank.
func (e *PredictionEngine) PredictMaintenance(ctx context.Context, tank entities.TankView) MaintenanceResult {
	if e.enricher != nil {
		plan, err := e.enricher.PredictMaintenance(ctx, tank)
		if err == nil {
			return MaintenanceResult{Success: true, Maintenance: *plan}
		}
		log.Printf("Maintenance enrichment failed for tank %s, using fallback: %v", tank.ID, err)
	}
	return e.fallbackMaintenance(tank)
}

func (e *PredictionEngine) fallbackMaintenance(tank entities.TankView) MaintenanceResult {
	days := tank.DaysSinceCleaned
	turbidity := tank.CurrentReadings.Turbidity

	var urgency string
	var daysUntil int
	switch {
	case turbidity > 5 || days > 45:
		urgency = "immediate"
		daysUntil = 0
	case turbidity > 3 || days > 35:
		urgency = "urgent"
		daysUntil = 3
	case days > 25:
		urgency = "soon"
		daysUntil = 7
	default:
		urgency = "routine"
		daysUntil = 30 - days
		if daysUntil < 0 {
			daysUntil = 0
		}
	}

	recommendedDate := e.now().AddDate(0, 0, daysUntil).Format(entities.DateLayout)

	cleaningType := "routine"
	if urgency == "immediate" {
		cleaningType = "emergency"
	}
	riskIfDelayed := "medium"
	if urgency == "immediate" || urgency == "urgent" {
		riskIfDelayed = "high"
	}

	return MaintenanceResult{
		Success: true,
		Maintenance: MaintenancePlan{
			RecommendedCleaningDate: recommendedDate,
			Urgency:                 urgency,
			DaysUntilRecommended:    daysUntil,
			CleaningType:            cleaningType,
			EstimatedDurationHours:  4,
			ResourcesNeeded:         []string{"Cleaning crew", "Water testing kit"},
			CostEstimateINR:         15000,
			RiskIfDelayed:           riskIfDelayed,
			Reason:                  fmt.Sprintf("Based on %d days since last cleaning", days),
			GovernmentCompliance: ComplianceFlags{
				BISCompliant:            days <= 30,
				JalJeevanMissionAligned: true,
			},
		},
		Fallback: true,
	}
}

// ForecastDemand projects 7 days of fleet-wide water demand.
func (e *PredictionEngine) ForecastDemand(ctx context.Context, tanks []entities.TankView) DemandResult {
	if e.enricher != nil {
		forecast, err := e.enricher.ForecastDemand(ctx, tanks)
		if err == nil {
			return DemandResult{Success: true, Forecast: *forecast}
		}
		log.Printf("Demand enrichment failed, using fallback: %v", err)
	}
	return e.fallbackDemand(tanks)
}

func (e *PredictionEngine) fallbackDemand(tanks []entities.TankView) DemandResult {
	var totalCapacity int
	for _, tank := range tanks {
		totalCapacity += tank.CapacityLiters
	}
	avgDaily := float64(totalCapacity) * 0.15

	forecasts := make([]DailyForecast, 0, 7)
	for i := 0; i < 7; i++ {
		multiplier := 1.0
		if i >= 5 {
			multiplier = 0.85
		}
		forecasts = append(forecasts, DailyForecast{
			Day:                   i + 1,
			Date:                  e.now().AddDate(0, 0, i+1).Format(entities.DateLayout),
			PredictedDemandLiters: int(avgDaily * multiplier),
			PeakHours:             []string{"07:00", "18:00"},
			Confidence:            0.6,
		})
	}

	return DemandResult{
		Success: true,
		Forecast: DemandForecast{
			DailyForecasts: forecasts,
			// Blended 6.7-day multiplier, deliberately not the sum of the
			// seven daily figures.
			WeeklyTotalDemandLiters:  int(avgDaily * 6.7),
			AverageDailyDemandLiters: int(avgDaily),
			PeakDemandDay:            "Monday",
			LowDemandDay:             "Sunday",
			SupplyAdequacy: SupplyAdequacy{
				Sufficient:    true,
				DeficitLiters: nil,
				TanksAtRisk:   []string{},
			},
			Recommendations:            []string{"Monitor tank levels during peak hours"},
			GovernmentPlanningInsights: "Fallback forecast - AI unavailable",
		},
		Fallback: true,
	}
}

// PredictRainwaterHarvesting estimates the fleet's harvesting potential.
func (e *PredictionEngine) PredictRainwaterHarvesting(ctx context.Context, tanks []entities.TankView) RainwaterResult {
	if e.enricher != nil {
		report, err := e.enricher.PredictRainwaterHarvesting(ctx, tanks)
		if err == nil {
			result := RainwaterResult{Success: true, Harvesting: *report}
			e.attachRainfall(ctx, &result)
			return result
		}
		log.Printf("Rainwater enrichment failed, using fallback: %v", err)
	}
	result := e.fallbackRainwater(tanks)
	e.attachRainfall(ctx, &result)
	return result
}

func (e *PredictionEngine) fallbackRainwater(tanks []entities.TankView) RainwaterResult {
	var totalOverflow float64
	recommended := []HarvestTank{}
	atRisk := []string{}

	for _, tank := range tanks {
		overflowCap := float64(100-tank.CurrentLevelPercent) * float64(tank.CapacityLiters) / 100
		totalOverflow += overflowCap

		if overflowCap > 50000 && len(recommended) < 5 {
			score := int(overflowCap / 1000)
			if score > 100 {
				score = 100
			}
			recommended = append(recommended, HarvestTank{
				Name:                   tank.Name,
				OverflowCapacityLiters: int(overflowCap),
				HarvestingScore:        score,
			})
		}
		if tank.CurrentLevelPercent > 90 {
			atRisk = append(atRisk, tank.Name)
		}
	}

	return RainwaterResult{
		Success: true,
		Harvesting: RainwaterReport{
			HarvestingPotential: HarvestingPotential{
				TotalOverflowCapacityLiters:      int(totalOverflow),
				RecommendedTanks:                 recommended,
				EstimatedMonthlyCollectionLiters: int(totalOverflow * 0.3),
			},
			OverflowRiskAnalysis: OverflowRiskAnalysis{
				TanksAtOverflowRisk:   atRisk,
				RecommendedDiversions: []string{"Install overflow pipes to secondary storage"},
			},
			MonsoonReadiness: MonsoonReadiness{
				Score:              70,
				Gaps:               []string{"Check overflow drainage"},
				PreparationsNeeded: []string{"Clean intake filters"},
			},
			CostBenefit: CostBenefit{
				EstimatedSavingsINRMonthly: 50000,
				ImplementationCostINR:      200000,
				PaybackMonths:              4,
			},
			GovernmentSchemeAlignment: SchemeAlignment{
				JalShaktiCompatible: true,
				SwachhBharatAligned: true,
				Recommendations:     []string{"Apply for Jal Jeevan Mission funding"},
			},
		},
		Fallback: true,
	}
}

// attachRainfall adds the advisory regional rainfall figure when the
// outlook integration is configured and reachable.
func (e *PredictionEngine) attachRainfall(ctx context.Context, result *RainwaterResult) {
	if e.rainfall == nil {
		return
	}
	mm, err := e.rainfall.MonthlyRainfallMM(ctx)
	if err != nil {
		log.Printf("Rainfall outlook unavailable: %v", err)
		return
	}
	result.Harvesting.RegionRainfallMM = &mm
}

// rateLabel classifies a per-sample movement rate against a threshold.
func rateLabel(rate, threshold float64) string {
	if math.Abs(rate) < threshold {
		return TrendStable
	}
	if rate > 0 {
		return TrendIncreasing
	}
	return TrendDecreasing
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
