package usecases

import (
	"context"
	"time"

	"github.com/Deepthi2006/aquasentry/internal/entities"
	"github.com/Deepthi2006/aquasentry/internal/repository"
)

// TankUseCase wires the document store, the classifiers and the
// prediction engine behind the operations the transports expose.
type TankUseCase struct {
	repo        repository.TankRepository
	engine      *PredictionEngine
	recommender RecommendationEnricher
	now         func() time.Time
}

// NewTankUseCase creates a new tank use case. recommender may be nil;
// recommendations then always come from the rule-based fallback.
func NewTankUseCase(repo repository.TankRepository, engine *PredictionEngine, recommender RecommendationEnricher) *TankUseCase {
	return &TankUseCase{
		repo:        repo,
		engine:      engine,
		recommender: recommender,
		now:         time.Now,
	}
}

// FleetOverview returns every tank with derived status plus the header
// summary. Status is derived fresh on every call.
func (uc *TankUseCase) FleetOverview() ([]entities.TankView, FleetSummary, error) {
	tanks, err := uc.repo.ListTanks()
	if err != nil {
		return nil, FleetSummary{}, err
	}
	views := BuildTankViews(tanks, uc.now())
	return views, BuildFleetSummary(views), nil
}

// TankDetail is one tank with its quality analysis and trend verdict.
type TankDetail struct {
	Tank     entities.TankView `json:"tank"`
	Analysis QualityAnalysis   `json:"analysis"`
	Trend    TrendAnalysis     `json:"trend"`
}

// GetTankDetail returns one tank's full detail or ErrTankNotFound.
func (uc *TankUseCase) GetTankDetail(id string) (*TankDetail, error) {
	tank, err := uc.repo.FindTank(id)
	if err != nil {
		return nil, err
	}
	return &TankDetail{
		Tank:     BuildTankView(*tank, uc.now()),
		Analysis: AnalyzeWaterQuality(*tank),
		Trend:    AnalyzeTrend(*tank),
	}, nil
}

// GetTankView returns one tank with derived status or ErrTankNotFound.
func (uc *TankUseCase) GetTankView(id string) (*entities.TankView, error) {
	tank, err := uc.repo.FindTank(id)
	if err != nil {
		return nil, err
	}
	view := BuildTankView(*tank, uc.now())
	return &view, nil
}

// TankHistory returns a tank's stored history or ErrTankNotFound.
func (uc *TankUseCase) TankHistory(id string) ([]entities.HistoryEntry, error) {
	tank, err := uc.repo.FindTank(id)
	if err != nil {
		return nil, err
	}
	if tank.History == nil {
		return []entities.HistoryEntry{}, nil
	}
	return tank.History, nil
}

// Alerts returns the alert list with its summary.
func (uc *TankUseCase) Alerts() ([]entities.Alert, AlertSummary, error) {
	alerts, err := uc.repo.ListAlerts()
	if err != nil {
		return nil, AlertSummary{}, err
	}
	return alerts, SummarizeAlerts(alerts), nil
}

// Analytics recomputes the fleet-wide rollup.
func (uc *TankUseCase) Analytics() (SystemAnalytics, error) {
	tanks, err := uc.repo.ListTanks()
	if err != nil {
		return SystemAnalytics{}, err
	}
	alerts, err := uc.repo.ListAlerts()
	if err != nil {
		return SystemAnalytics{}, err
	}
	return BuildSystemAnalytics(tanks, alerts), nil
}

// Map renders the marker map for the fleet.
func (uc *TankUseCase) Map() (MapData, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return MapData{}, err
	}
	return BuildMapData(views), nil
}

// Wards aggregates the fleet into the synthetic ward grid.
func (uc *TankUseCase) Wards() (WardCollection, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return WardCollection{}, err
	}
	return BuildWardCollection(views), nil
}

// WardDetails returns one ward feature or ErrWardNotFound.
func (uc *TankUseCase) WardDetails(wardID string) (*WardFeature, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return nil, err
	}
	return FindWard(views, wardID)
}

// Heatmap renders the per-tank heatmap for one metric.
func (uc *TankUseCase) Heatmap(metric string) (Heatmap, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return Heatmap{}, err
	}
	return BuildHeatmap(views, metric), nil
}

// PredictWaterQuality runs the quality predictor for one tank.
func (uc *TankUseCase) PredictWaterQuality(ctx context.Context, id string) (QualityResult, error) {
	view, err := uc.GetTankView(id)
	if err != nil {
		return QualityResult{}, err
	}
	return uc.engine.PredictWaterQuality(ctx, *view), nil
}

// DetectLeakage runs the anomaly detector for one tank.
func (uc *TankUseCase) DetectLeakage(ctx context.Context, id string) (LeakageResult, error) {
	view, err := uc.GetTankView(id)
	if err != nil {
		return LeakageResult{}, err
	}
	return uc.engine.DetectLeakage(ctx, *view), nil
}

// PredictMaintenance runs the maintenance scheduler for one tank.
func (uc *TankUseCase) PredictMaintenance(ctx context.Context, id string) (MaintenanceResult, error) {
	view, err := uc.GetTankView(id)
	if err != nil {
		return MaintenanceResult{}, err
	}
	return uc.engine.PredictMaintenance(ctx, *view), nil
}

// ForecastDemand runs the fleet demand forecast.
func (uc *TankUseCase) ForecastDemand(ctx context.Context) (DemandResult, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return DemandResult{}, err
	}
	return uc.engine.ForecastDemand(ctx, views), nil
}

// PredictRainwaterHarvesting runs the fleet harvesting estimate.
func (uc *TankUseCase) PredictRainwaterHarvesting(ctx context.Context) (RainwaterResult, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return RainwaterResult{}, err
	}
	return uc.engine.PredictRainwaterHarvesting(ctx, views), nil
}

// Recommendations produces the fleet advisory report.
func (uc *TankUseCase) Recommendations(ctx context.Context) (RecommendationResult, error) {
	views, _, err := uc.FleetOverview()
	if err != nil {
		return RecommendationResult{}, err
	}
	return GenerateRecommendations(ctx, uc.recommender, views), nil
}

// UpdateMaintenance records a completed cleaning and returns the updated
// tank with fresh derived fields.
func (uc *TankUseCase) UpdateMaintenance(tankID, cleanedDate, notes string) (*entities.TankView, error) {
	tank, err := uc.repo.UpdateMaintenance(tankID, cleanedDate, notes)
	if err != nil {
		return nil, err
	}
	view := BuildTankView(*tank, uc.now())
	return &view, nil
}

// Reload busts the document cache and re-reads the backing store.
func (uc *TankUseCase) Reload() error {
	_, err := uc.repo.Reload()
	return err
}
