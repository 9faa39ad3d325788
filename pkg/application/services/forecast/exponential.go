package forecast

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// SES is simple exponential smoothing. The level is seeded with the first
// observation and the forecast is flat at the final level.
type SES struct {
	Alpha float64

	fitState
	level  float64
	fitted bool
}

// NewSES creates a simple exponential smoothing model
func NewSES(alpha float64) *SES {
	return &SES{Alpha: alpha}
}

// Name returns the model identifier
func (m *SES) Name() string {
	return fmt.Sprintf("ses(%.2f)", m.Alpha)
}

// Fit runs the smoothing recursion over the series
func (m *SES) Fit(series *entities.DemandSeries) error {
	if err := validateSmoothing("alpha", m.Alpha); err != nil {
		return err
	}
	values := series.Values()
	if len(values) < 2 {
		return fmt.Errorf("need at least 2 observations, got %d", len(values))
	}

	m.record(series)

	level := values[0]
	for _, v := range values[1:] {
		m.addResidual(v, level)
		level = m.Alpha*v + (1-m.Alpha)*level
	}
	m.level = level
	m.fitted = true
	return nil
}

// Forecast returns a flat forecast at the final smoothed level
func (m *SES) Forecast(horizon int) ([]entities.ForecastPoint, error) {
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

// Holt is double exponential smoothing with an additive linear trend
type Holt struct {
	Alpha float64
	Beta  float64

	fitState
	level  float64
	trend  float64
	fitted bool
}

// NewHolt creates a Holt linear trend model
func NewHolt(alpha, beta float64) *Holt {
	return &Holt{Alpha: alpha, Beta: beta}
}

// Name returns the model identifier
func (m *Holt) Name() string {
	return fmt.Sprintf("holt(%.2f,%.2f)", m.Alpha, m.Beta)
}

// Fit runs the level and trend recursions. The level is seeded with the
// first observation and the trend with the first difference.
func (m *Holt) Fit(series *entities.DemandSeries) error {
	if err := validateSmoothing("alpha", m.Alpha); err != nil {
		return err
	}
	if err := validateSmoothing("beta", m.Beta); err != nil {
		return err
	}
	values := series.Values()
	if len(values) < 3 {
		return fmt.Errorf("need at least 3 observations, got %d", len(values))
	}

	m.record(series)

	level := values[0]
	trend := values[1] - values[0]
	for _, v := range values[1:] {
		m.addResidual(v, level+trend)
		prevLevel := level
		level = m.Alpha*v + (1-m.Alpha)*(level+trend)
		trend = m.Beta*(level-prevLevel) + (1-m.Beta)*trend
	}
	m.level = level
	m.trend = trend
	m.fitted = true
	return nil
}

// Forecast extrapolates the final level along the final trend. Values are
// floored at zero since demand cannot be negative.
func (m *Holt) Forecast(horizon int) ([]entities.ForecastPoint, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model must be fitted before forecasting")
	}
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}

	points := make([]entities.ForecastPoint, horizon)
	for i, period := range m.periods(horizon) {
		value := m.level + float64(i+1)*m.trend
		if value < 0 {
			value = 0
		}
		points[i] = entities.ForecastPoint{Period: period, Value: value}
	}
	return points, nil
}
