package forecast

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Croston forecasts intermittent demand by smoothing demand sizes and the
// intervals between demands separately. The per-period forecast is the
// smoothed size divided by the smoothed interval.
type Croston struct {
	Alpha float64

	fitState
	size     float64
	interval float64
	fitted   bool
}

// NewCroston creates a classic Croston model
func NewCroston(alpha float64) *Croston {
	return &Croston{Alpha: alpha}
}

// Name returns the model identifier
func (m *Croston) Name() string {
	return fmt.Sprintf("croston(%.2f)", m.Alpha)
}

// Fit smooths sizes and intervals over the nonzero demand occurrences.
// Both components update only when demand occurs, per the classic method.
func (m *Croston) Fit(series *entities.DemandSeries) error {
	if err := validateSmoothing("alpha", m.Alpha); err != nil {
		return err
	}
	values := series.Values()

	// Seed from the first nonzero demand
	first := -1
	for i, v := range values {
		if v > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return fmt.Errorf("series has no nonzero demand")
	}

	m.record(series)

	size := values[first]
	interval := float64(first + 1)
	periodsSince := 0

	for t := first + 1; t < len(values); t++ {
		periodsSince++
		m.addResidual(values[t], size/interval)
		if values[t] > 0 {
			size = m.Alpha*values[t] + (1-m.Alpha)*size
			interval = m.Alpha*float64(periodsSince) + (1-m.Alpha)*interval
			periodsSince = 0
		}
	}

	m.size = size
	m.interval = interval
	m.fitted = true
	return nil
}

// Forecast returns the flat demand rate: smoothed size over smoothed interval
func (m *Croston) Forecast(horizon int) ([]entities.ForecastPoint, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model must be fitted before forecasting")
	}
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}

	rate := m.size / m.interval
	points := make([]entities.ForecastPoint, horizon)
	for i, period := range m.periods(horizon) {
		points[i] = entities.ForecastPoint{Period: period, Value: rate}
	}
	return points, nil
}
