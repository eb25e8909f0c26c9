// Package openai provides the model-backed prediction enrichment service.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Deepthi2006/aquasentry/internal/entities"
	"github.com/Deepthi2006/aquasentry/internal/usecases"
)

// EnrichmentService answers prediction queries with a chat model
// constrained to the exact JSON shapes the fallback engine produces, so
// downstream consumers cannot tell the two sources apart.
type EnrichmentService struct {
	client openai.Client
	model  openai.ChatModel
}

// GenerateSchema generates a JSON schema for a given type.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// NewEnrichmentService creates and initializes a new EnrichmentService.
// It fails when OPENAI_API_KEY is not set; callers treat that as "no
// enrichment configured" and run rule-based.
func NewEnrichmentService() (*EnrichmentService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	return &EnrichmentService{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4o,
	}, nil
}

// completeJSON sends one system+user exchange and decodes the strictly
// schema-constrained response into T.
func completeJSON[T any](ctx context.Context, s *EnrichmentService, name, systemPrompt string, payload interface{}) (*T, error) {
	userMessage, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %v", err)
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   name,
		Schema: GenerateSchema[T](),
		Strict: openai.Bool(true),
	}

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(string(userMessage)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: s.model,
	})
	if err != nil {
		return nil, fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("received empty response from OpenAI")
	}

	var out T
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &out); err != nil {
		log.Printf("Failed to unmarshal OpenAI response: %s\nRaw response: %s", err, chat.Choices[0].Message.Content)
		return nil, fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}
	return &out, nil
}

// PredictWaterQuality projects tank water quality at 24h/48h horizons.
func (s *EnrichmentService) PredictWaterQuality(ctx context.Context, tank entities.TankView) (*usecases.QualityPrediction, error) {
	systemPrompt := `You are an expert water quality prediction system for a government water
tank monitoring platform. Given a tank's current readings and history,
predict pH, turbidity (NTU, non-negative) and temperature for the next 24
and 48 hours, label the trends, and assess the risk level against BIS
standards (pH 6.5-8.5, turbidity <5 NTU, temperature 15-25 C).
Respond strictly in the requested JSON shape.`

	return completeJSON[usecases.QualityPrediction](ctx, s, "quality_prediction", systemPrompt, map[string]interface{}{
		"tank":    tank,
		"history": tank.History,
	})
}

// DetectLeakage analyzes a tank for leakage/overflow anomalies.
func (s *EnrichmentService) DetectLeakage(ctx context.Context, tank entities.TankView) (*usecases.LeakageAnalysis, error) {
	systemPrompt := `You are an anomaly detection system for water tank leakage and overflow.
Look for unexplained water loss, rapid level changes and abnormal
consumption. anomaly_type must be one of none, leakage, overflow or
unusual_consumption. Respond strictly in the requested JSON shape.`

	return completeJSON[usecases.LeakageAnalysis](ctx, s, "leakage_analysis", systemPrompt, map[string]interface{}{
		"tank":    tank,
		"history": tank.History,
	})
}

// PredictMaintenance recommends a cleaning schedule for a tank.
func (s *EnrichmentService) PredictMaintenance(ctx context.Context, tank entities.TankView) (*usecases.MaintenancePlan, error) {
	systemPrompt := `You are a predictive maintenance system for government water tanks.
Tanks should be cleaned every 30-45 days; high turbidity needs more
frequent cleaning. urgency must be one of routine, soon, urgent or
immediate. Dates use YYYY-MM-DD. Respond strictly in the requested JSON
shape.`

	return completeJSON[usecases.MaintenancePlan](ctx, s, "maintenance_plan", systemPrompt, map[string]interface{}{
		"tank":    tank,
		"history": tank.History,
	})
}

// ForecastDemand predicts 7 days of fleet-wide demand.
func (s *EnrichmentService) ForecastDemand(ctx context.Context, tanks []entities.TankView) (*usecases.DemandForecast, error) {
	systemPrompt := `You are a water demand forecasting system for urban water utilities.
Predict daily demand in liters for the next 7 days from the fleet's
capacities and levels, accounting for weekday/weekend patterns and peak
hours (morning 6-9, evening 5-8). Dates use YYYY-MM-DD. Respond strictly
in the requested JSON shape.`

	return completeJSON[usecases.DemandForecast](ctx, s, "demand_forecast", systemPrompt, map[string]interface{}{
		"tanks": tanks,
	})
}

// PredictRainwaterHarvesting estimates fleet harvesting potential.
func (s *EnrichmentService) PredictRainwaterHarvesting(ctx context.Context, tanks []entities.TankView) (*usecases.RainwaterReport, error) {
	systemPrompt := `You are a rainwater harvesting advisor for water utilities. Estimate
each tank's overflow capacity from its spare level and the fleet's total
harvesting potential, considering monsoon rainfall patterns. Respond
strictly in the requested JSON shape.`

	return completeJSON[usecases.RainwaterReport](ctx, s, "rainwater_report", systemPrompt, map[string]interface{}{
		"tanks": tanks,
	})
}

// GenerateRecommendations produces the fleet advisory report.
func (s *EnrichmentService) GenerateRecommendations(ctx context.Context, tanks []entities.TankView) (*usecases.RecommendationSet, error) {
	systemPrompt := `You are a water quality management advisor for a tank monitoring
system. Review the fleet (pH ideal 6.5-8.5, critical outside 6.0-9.0;
turbidity warning >3 NTU, critical >5 NTU; cleaning due every 30 days)
and produce a risk assessment, immediate actions, per-tank advice, a
maintenance schedule, a trend forecast and an overall health score from
0 to 100. Respond strictly in the requested JSON shape.`

	return completeJSON[usecases.RecommendationSet](ctx, s, "recommendation_set", systemPrompt, map[string]interface{}{
		"tanks": tanks,
	})
}
