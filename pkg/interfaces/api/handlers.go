package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/avelkar/supplysight/pkg/application/dto"
	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/interfaces/cli/output"
)

// summary is the lightweight overview payload for /api/summary
type summary struct {
	RunID         string            `json:"run_id"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Frequency     string            `json:"frequency"`
	Horizon       int               `json:"horizon"`
	Counts        dto.DatasetCounts `json:"counts"`
	Forecasts     int               `json:"forecasts"`
	Policies      int               `json:"policies"`
	SkippedSeries int               `json:"skipped_series"`
	HighRiskSKUs  int               `json:"high_risk_skus"`
	Timings       []dto.StageTiming `json:"timings"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	highRisk := 0
	for _, sr := range s.result.StockoutRisks {
		if sr.Level >= entities.RiskHigh {
			highRisk++
		}
	}

	s.writeJSON(w, http.StatusOK, summary{
		RunID:         s.result.RunID,
		GeneratedAt:   s.result.GeneratedAt,
		Frequency:     s.result.Frequency,
		Horizon:       s.result.Horizon,
		Counts:        s.result.Counts,
		Forecasts:     len(s.result.Forecasts),
		Policies:      len(s.result.Policies),
		SkippedSeries: len(s.result.Skipped),
		HighRiskSKUs:  highRisk,
		Timings:       s.result.Timings,
	})
}

func (s *Server) handleForecasts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.result.Forecasts)
}

func (s *Server) handleForecastBySKU(w http.ResponseWriter, r *http.Request) {
	sku := entities.SKU(r.PathValue("sku"))

	var matches []*entities.Forecast
	for _, fc := range s.result.Forecasts {
		if fc.SKU == sku {
			matches = append(matches, fc)
		}
	}
	if len(matches) == 0 {
		s.writeError(w, http.StatusNotFound, "no forecast for sku "+string(sku))
		return
	}
	s.writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handlePolicies(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.result.Policies)
}

func (s *Server) handleABC(w http.ResponseWriter, r *http.Request) {
	if s.result.ABC == nil {
		s.writeError(w, http.StatusNotFound, "no abc classification available")
		return
	}
	s.writeJSON(w, http.StatusOK, s.result.ABC)
}

func (s *Server) handleSupplierRisks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.result.SupplierRisks)
}

func (s *Server) handleStockoutRisks(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.result.StockoutRisks)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	html, err := output.RenderDashboard(s.result)
	if err != nil {
		s.logger.Error("dashboard render failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
