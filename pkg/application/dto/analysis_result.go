// Package dto defines the data transfer objects returned by the
// application services.
package dto

import (
	"time"

	"github.com/avelkar/supplysight/pkg/application/services/preprocess"
	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// StageTiming records how long one pipeline stage took
type StageTiming struct {
	Stage   string        `json:"stage"`
	Elapsed time.Duration `json:"elapsed"`
}

// SkippedSeries records a series the pipeline could not carry through a
// stage, and why. Skips never abort the run.
type SkippedSeries struct {
	SKU      entities.SKU `json:"sku"`
	Location string       `json:"location"`
	Stage    string       `json:"stage"`
	Reason   string       `json:"reason"`
}

// DatasetCounts reports the raw record counts loaded for a run
type DatasetCounts struct {
	Items     int `json:"items"`
	Sales     int `json:"sales"`
	Snapshots int `json:"snapshots"`
	Suppliers int `json:"suppliers"`
}

// AnalysisResult is the complete output of one analytics pipeline run
type AnalysisResult struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Frequency   string    `json:"frequency"`
	Horizon     int       `json:"horizon"`

	Counts          DatasetCounts                 `json:"counts"`
	CleaningReports []*preprocess.CleaningReport  `json:"cleaning_reports"`
	Forecasts       []*entities.Forecast          `json:"forecasts"`
	Policies        []*entities.InventoryPolicy   `json:"policies"`
	ABC             *entities.ABCClassification   `json:"abc,omitempty"`
	SupplierRisks   []*entities.SupplierRisk      `json:"supplier_risks"`
	StockoutRisks   []*entities.StockoutRisk      `json:"stockout_risks"`
	Skipped         []SkippedSeries               `json:"skipped,omitempty"`
	Timings         []StageTiming                 `json:"timings"`
}

// TotalElapsed sums the stage timings
func (r *AnalysisResult) TotalElapsed() time.Duration {
	var total time.Duration
	for _, t := range r.Timings {
		total += t.Elapsed
	}
	return total
}
