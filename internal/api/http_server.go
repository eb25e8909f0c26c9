// Package api provides handlers for external APIs and interfaces
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Deepthi2006/aquasentry/internal/entities"
	"github.com/Deepthi2006/aquasentry/internal/usecases"
)

// Server exposes the monitoring engine over HTTP. The transport stays
// thin: every handler delegates to the use case and translates errors.
type Server struct {
	useCase *usecases.TankUseCase
}

// NewServer creates a new HTTP API server over the given use case.
func NewServer(useCase *usecases.TankUseCase) *Server {
	return &Server{useCase: useCase}
}

// Router builds the route table with logging and CORS middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/api/tanks", s.handleListTanks).Methods("GET")
	r.HandleFunc("/api/tanks/{id}", s.handleGetTank).Methods("GET")
	r.HandleFunc("/api/tanks/{id}/history", s.handleTankHistory).Methods("GET")
	r.HandleFunc("/api/alerts", s.handleAlerts).Methods("GET")
	r.HandleFunc("/api/map", s.handleMap).Methods("GET")
	r.HandleFunc("/api/analytics", s.handleAnalytics).Methods("GET")
	r.HandleFunc("/api/recommendations", s.handleRecommendations).Methods("POST")
	r.HandleFunc("/api/reload", s.handleReload).Methods("POST")
	r.HandleFunc("/api/maintenance/update", s.handleUpdateMaintenance).Methods("POST")

	r.HandleFunc("/api/ai/predict/{id}", s.handlePredictQuality).Methods("GET")
	r.HandleFunc("/api/ai/leakage/{id}", s.handleDetectLeakage).Methods("GET")
	r.HandleFunc("/api/ai/maintenance/{id}", s.handlePredictMaintenance).Methods("GET")
	r.HandleFunc("/api/ai/demand-forecast", s.handleForecastDemand).Methods("GET")
	r.HandleFunc("/api/ai/rainwater", s.handleRainwater).Methods("GET")

	r.HandleFunc("/api/gis/wards", s.handleWards).Methods("GET")
	r.HandleFunc("/api/gis/wards/{id}", s.handleWardDetails).Methods("GET")
	r.HandleFunc("/api/gis/heatmap", s.handleHeatmap).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.LoggingHandler(log.Writer(), cors(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTanks(w http.ResponseWriter, _ *http.Request) {
	tanks, summary, err := s.useCase.FleetOverview()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tanks":   tanks,
		"summary": summary,
	})
}

func (s *Server) handleGetTank(w http.ResponseWriter, r *http.Request) {
	detail, err := s.useCase.GetTankDetail(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleTankHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.useCase.TankHistory(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (s *Server) handleAlerts(w http.ResponseWriter, _ *http.Request) {
	alerts, summary, err := s.useCase.Alerts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts":  alerts,
		"summary": summary,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, _ *http.Request) {
	data, err := s.useCase.Map()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	analytics, err := s.useCase.Analytics()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	result, err := s.useCase.Recommendations(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if err := s.useCase.Reload(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "Data reloaded successfully"})
}

// maintenanceRequest is the POST body for a maintenance update.
type maintenanceRequest struct {
	TankID      string `json:"tank_id"`
	CleanedDate string `json:"cleaned_date"`
	Notes       string `json:"notes"`
}

func (s *Server) handleUpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
		return
	}

	tank, err := s.useCase.UpdateMaintenance(req.TankID, req.CleanedDate, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Maintenance updated for " + req.TankID,
		"tank":    tank,
	})
}

func (s *Server) handlePredictQuality(w http.ResponseWriter, r *http.Request) {
	result, err := s.useCase.PredictWaterQuality(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDetectLeakage(w http.ResponseWriter, r *http.Request) {
	result, err := s.useCase.DetectLeakage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePredictMaintenance(w http.ResponseWriter, r *http.Request) {
	result, err := s.useCase.PredictMaintenance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleForecastDemand(w http.ResponseWriter, r *http.Request) {
	result, err := s.useCase.ForecastDemand(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRainwater(w http.ResponseWriter, r *http.Request) {
	result, err := s.useCase.PredictRainwaterHarvesting(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWards(w http.ResponseWriter, _ *http.Request) {
	collection, err := s.useCase.Wards()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

func (s *Server) handleWardDetails(w http.ResponseWriter, r *http.Request) {
	ward, err := s.useCase.WardDetails(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"ward":    ward,
	})
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = usecases.MetricHealthScore
	}

	heatmap, err := s.useCase.Heatmap(metric)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, heatmap)
}

// writeError maps business errors onto HTTP statuses: not-found family to
// 404, bad input to 400, anything else (store failures) to 500. Store
// failures are fatal to the request only; a later reload may recover.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrTankNotFound),
		errors.Is(err, entities.ErrScheduleNotFound),
		errors.Is(err, entities.ErrAlertNotFound),
		errors.Is(err, entities.ErrWardNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": err.Error()})
	case errors.Is(err, entities.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": err.Error()})
	default:
		log.Printf("Request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
