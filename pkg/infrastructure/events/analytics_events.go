package events

import (
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Event types published by the analytics pipeline
const (
	DatasetLoadedEvent     = "dataset.loaded"
	SeriesPreparedEvent    = "series.prepared"
	ForecastGeneratedEvent = "forecast.generated"
	PolicyComputedEvent    = "policy.computed"
	RiskFlaggedEvent       = "risk.flagged"
	PipelineCompletedEvent = "pipeline.completed"
)

// DatasetLoaded reports the record counts of one loaded dataset
type DatasetLoaded struct {
	RunID     string `json:"run_id"`
	Items     int    `json:"items"`
	Sales     int    `json:"sales"`
	Snapshots int    `json:"snapshots"`
	Suppliers int    `json:"suppliers"`
}

// SeriesPrepared reports one cleaned demand series
type SeriesPrepared struct {
	RunID    string       `json:"run_id"`
	SKU      entities.SKU `json:"sku"`
	Location string       `json:"location"`
	Periods  int          `json:"periods"`
}

// ForecastGenerated reports one finished forecast
type ForecastGenerated struct {
	RunID    string       `json:"run_id"`
	SKU      entities.SKU `json:"sku"`
	Location string       `json:"location"`
	Method   string       `json:"method"`
	MAPE     float64      `json:"mape"`
}

// PolicyComputed reports one inventory policy
type PolicyComputed struct {
	RunID        string            `json:"run_id"`
	SKU          entities.SKU      `json:"sku"`
	Location     string            `json:"location"`
	EOQ          entities.Quantity `json:"eoq"`
	ReorderPoint entities.Quantity `json:"reorder_point"`
}

// RiskFlagged reports a supplier or stockout risk at or above high
type RiskFlagged struct {
	RunID      string             `json:"run_id"`
	Kind       string             `json:"kind"` // "supplier" or "stockout"
	SupplierID string             `json:"supplier_id,omitempty"`
	SKU        entities.SKU       `json:"sku,omitempty"`
	Location   string             `json:"location,omitempty"`
	Level      entities.RiskLevel `json:"-"`
	Score      float64            `json:"score"`
}

// PipelineCompleted reports the end of a pipeline run
type PipelineCompleted struct {
	RunID     string        `json:"run_id"`
	Forecasts int           `json:"forecasts"`
	Policies  int           `json:"policies"`
	Skipped   int           `json:"skipped"`
	Elapsed   time.Duration `json:"elapsed"`
}
