package entities

import (
	"fmt"
	"time"
)

// ForecastPoint represents one forecast period with its prediction interval
type ForecastPoint struct {
	Period time.Time `json:"period"`
	Value  float64   `json:"value"`
	Lower  float64   `json:"lower"`
	Upper  float64   `json:"upper"`
}

// ForecastAccuracy holds backtest accuracy metrics for a fitted model
type ForecastAccuracy struct {
	MAPE         float64 `json:"mape"`
	MAE          float64 `json:"mae"`
	RMSE         float64 `json:"rmse"`
	Bias         float64 `json:"bias"`
	Observations int     `json:"observations"`
}

// Forecast represents a demand forecast for a SKU at a location
type Forecast struct {
	SKU         SKU              `json:"sku"`
	Location    string           `json:"location"`
	Method      string           `json:"method"`
	Frequency   Frequency        `json:"frequency"`
	GeneratedAt time.Time        `json:"generated_at"`
	Points      []ForecastPoint  `json:"points"`
	Accuracy    ForecastAccuracy `json:"accuracy"`
	Pattern     DemandPattern    `json:"pattern"`
}

// NewForecast creates a validated Forecast
func NewForecast(
	sku SKU,
	location, method string,
	frequency Frequency,
	points []ForecastPoint,
	accuracy ForecastAccuracy,
) (*Forecast, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if method == "" {
		return nil, fmt.Errorf("method cannot be empty")
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("forecast must contain at least one point")
	}

	return &Forecast{
		SKU:         sku,
		Location:    location,
		Method:      method,
		Frequency:   frequency,
		GeneratedAt: time.Now(),
		Points:      points,
		Accuracy:    accuracy,
	}, nil
}

// TotalDemand returns the summed forecast quantity over the horizon
func (f *Forecast) TotalDemand() float64 {
	total := 0.0
	for _, p := range f.Points {
		total += p.Value
	}
	return total
}
