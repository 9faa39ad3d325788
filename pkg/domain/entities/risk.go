package entities

import (
	"fmt"
	"time"
)

// RiskLevel represents a banded risk severity
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskModerate
	RiskHigh
	RiskCritical
)

// MarshalJSON renders the level as its name
func (l RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + l.String() + `"`), nil
}

// String method for RiskLevel enum
func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	case RiskCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// SupplierRisk represents a scored supplier risk assessment with its
// contributing factors
type SupplierRisk struct {
	SupplierID       string    `json:"supplier_id"`
	Name             string    `json:"name"`
	Score            float64   `json:"score"` // 0 (best) to 100 (worst)
	Level            RiskLevel `json:"level"`
	LeadTimeFactor   float64   `json:"lead_time_factor"`
	FillRateFactor   float64   `json:"fill_rate_factor"`
	OnTimeFactor     float64   `json:"on_time_factor"`
	DefectFactor     float64   `json:"defect_factor"`
	SoleSourceFactor float64   `json:"sole_source_factor"`
	SoleSourceSKUs   int       `json:"sole_source_skus"`
}

// StockoutRisk represents the probability of a stockout during the
// replenishment lead time for a SKU at a location
type StockoutRisk struct {
	SKU         SKU       `json:"sku"`
	Location    string    `json:"location"`
	Probability float64   `json:"probability"` // 0 to 1
	DaysOfCover float64   `json:"days_of_cover"`
	NetPosition Quantity  `json:"net_position"`
	Level       RiskLevel `json:"level"`
	AsOf        time.Time `json:"as_of"`
}

// Summary returns a one-line description of the stockout risk
func (r *StockoutRisk) Summary() string {
	return fmt.Sprintf("%s @ %s: %.1f%% stockout risk, %.1f days of cover",
		r.SKU, r.Location, r.Probability*100, r.DaysOfCover)
}
