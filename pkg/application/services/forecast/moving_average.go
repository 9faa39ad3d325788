package forecast

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// MovingAverage forecasts the mean of the last Window observations as a
// flat line
type MovingAverage struct {
	Window int

	fitState
	level  float64
	fitted bool
}

// NewMovingAverage creates a moving average model over the given window
func NewMovingAverage(window int) *MovingAverage {
	return &MovingAverage{Window: window}
}

// Name returns the model identifier
func (m *MovingAverage) Name() string {
	return fmt.Sprintf("moving_average(%d)", m.Window)
}

// Fit computes the trailing window mean and one-step residuals
func (m *MovingAverage) Fit(series *entities.DemandSeries) error {
	if m.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", m.Window)
	}
	values := series.Values()
	if len(values) < m.Window {
		return fmt.Errorf("need at least %d observations, got %d", m.Window, len(values))
	}

	m.record(series)

	// One-step-ahead residuals: forecast each point from the preceding window
	for i := m.Window; i < len(values); i++ {
		sum := 0.0
		for j := i - m.Window; j < i; j++ {
			sum += values[j]
		}
		m.addResidual(values[i], sum/float64(m.Window))
	}

	sum := 0.0
	for _, v := range values[len(values)-m.Window:] {
		sum += v
	}
	m.level = sum / float64(m.Window)
	m.fitted = true
	return nil
}

// Forecast returns a flat forecast at the trailing window mean
func (m *MovingAverage) Forecast(horizon int) ([]entities.ForecastPoint, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model must be fitted before forecasting")
	}
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}

	points := make([]entities.ForecastPoint, horizon)
	for i, period := range m.periods(horizon) {
		points[i] = entities.ForecastPoint{Period: period, Value: m.level}
	}
	return points, nil
}
