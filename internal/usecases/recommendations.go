package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Deepthi2006/aquasentry/internal/entities"
)

// RiskAssessment is one fleet-level risk call-out.
type RiskAssessment struct {
	TankName  string `json:"tank_name"`
	RiskLevel string `json:"risk_level"`
	Reason    string `json:"reason"`
}

// QualityAdvice is tank-specific advice in a recommendation set.
type QualityAdvice struct {
	TankName string `json:"tank_name"`
	Advice   string `json:"advice"`
}

// ScheduleAdvice is a recommended maintenance action for one tank.
type ScheduleAdvice struct {
	TankName          string `json:"tank_name"`
	RecommendedAction string `json:"recommended_action"`
	Priority          string `json:"priority"`
}

// RecommendationSet is the fleet-wide advisory report.
type RecommendationSet struct {
	RiskAssessment      []RiskAssessment `json:"risk_assessment"`
	ImmediateActions    []string         `json:"immediate_actions"`
	WaterQualityAdvice  []QualityAdvice  `json:"water_quality_advice"`
	MaintenanceSchedule []ScheduleAdvice `json:"maintenance_schedule"`
	TrendForecast       string           `json:"trend_forecast"`
	OverallHealthScore  int              `json:"overall_health_score"`
}

// RecommendationResult is the envelope for a recommendation set.
type RecommendationResult struct {
	Success         bool              `json:"success"`
	Recommendations RecommendationSet `json:"recommendations"`
	Fallback        bool              `json:"fallback,omitempty"`
}

// RecommendationEnricher is an optional model-backed advisor; errors route
// to the rule-based fallback.
type RecommendationEnricher interface {
	GenerateRecommendations(ctx context.Context, tanks []entities.TankView) (*RecommendationSet, error)
}

// GenerateRecommendations produces the fleet advisory report, preferring
// the enricher when one is configured.
func GenerateRecommendations(ctx context.Context, enricher RecommendationEnricher, tanks []entities.TankView) RecommendationResult {
	if enricher != nil {
		set, err := enricher.GenerateRecommendations(ctx, tanks)
		if err == nil {
			return RecommendationResult{Success: true, Recommendations: *set}
		}
		log.Printf("Recommendation enrichment failed, using fallback: %v", err)
	}
	return RecommendationResult{
		Success:         true,
		Recommendations: FallbackRecommendations(tanks),
		Fallback:        true,
	}
}

// FallbackRecommendations derives the advisory report from threshold
// rules alone. Health score loses 20 points per critical tank and 10 per
// warning tank, floored at 0.
func FallbackRecommendations(tanks []entities.TankView) RecommendationSet {
	type flagged struct {
		name   string
		issues []string
	}
	var critical, warning []flagged
	immediateActions := []string{}

	for _, tank := range tanks {
		readings := tank.CurrentReadings
		ph := readings.PHOrDefault()
		turbidity := readings.Turbidity

		var issues []string
		if ph < phWarningLow || ph > phWarningHigh {
			issues = append(issues, fmt.Sprintf("pH imbalance (%v)", ph))
		}
		if turbidity > turbidityWarning {
			issues = append(issues, fmt.Sprintf("High turbidity (%v NTU)", turbidity))
		}
		if tank.DaysSinceCleaned > cleanedDaysWarning {
			issues = append(issues, fmt.Sprintf("Overdue cleaning (%d days)", tank.DaysSinceCleaned))
		}

		if len(issues) >= 2 || turbidity > turbidityCritical || ph < phCriticalLow || ph > phCriticalHigh {
			critical = append(critical, flagged{name: tank.Name, issues: issues})
			for _, issue := range issues {
				immediateActions = append(immediateActions, fmt.Sprintf("%s: Address %s", tank.Name, issue))
			}
		} else if len(issues) > 0 {
			warning = append(warning, flagged{name: tank.Name, issues: issues})
		}
	}

	assessments := []RiskAssessment{}
	for _, t := range critical {
		assessments = append(assessments, RiskAssessment{
			TankName:  t.name,
			RiskLevel: entities.StatusCritical,
			Reason:    joinIssues(t.issues),
		})
	}
	for _, t := range warning {
		assessments = append(assessments, RiskAssessment{
			TankName:  t.name,
			RiskLevel: entities.StatusWarning,
			Reason:    joinIssues(t.issues),
		})
	}

	score := 100 - len(critical)*20 - len(warning)*10
	if score < 0 {
		score = 0
	}

	return RecommendationSet{
		RiskAssessment:      assessments,
		ImmediateActions:    immediateActions,
		WaterQualityAdvice:  []QualityAdvice{},
		MaintenanceSchedule: []ScheduleAdvice{},
		TrendForecast:       "Analysis based on rule-based fallback system",
		OverallHealthScore:  score,
	}
}

func joinIssues(issues []string) string {
	return strings.Join(issues, ", ")
}
