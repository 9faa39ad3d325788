package forecast

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// HoltWinters is triple exponential smoothing with additive seasonality.
// The initial level and trend come from the first two seasons and the
// initial seasonal indices from first-season detrended means.
type HoltWinters struct {
	Alpha        float64
	Beta         float64
	Gamma        float64
	SeasonLength int

	fitState
	level    float64
	trend    float64
	seasonal []float64
	phase    int
	fitted   bool
}

// NewHoltWinters creates an additive Holt-Winters model
func NewHoltWinters(alpha, beta, gamma float64, seasonLength int) *HoltWinters {
	return &HoltWinters{Alpha: alpha, Beta: beta, Gamma: gamma, SeasonLength: seasonLength}
}

// Name returns the model identifier
func (m *HoltWinters) Name() string {
	return fmt.Sprintf("holt_winters(%.2f,%.2f,%.2f,s=%d)", m.Alpha, m.Beta, m.Gamma, m.SeasonLength)
}

// Fit initializes components from the first two seasons and runs the
// smoothing recursions over the rest of the series
func (m *HoltWinters) Fit(series *entities.DemandSeries) error {
	if err := validateSmoothing("alpha", m.Alpha); err != nil {
		return err
	}
	if err := validateSmoothing("beta", m.Beta); err != nil {
		return err
	}
	if err := validateSmoothing("gamma", m.Gamma); err != nil {
		return err
	}
	if m.SeasonLength < 2 {
		return fmt.Errorf("season length must be at least 2, got %d", m.SeasonLength)
	}
	values := series.Values()
	s := m.SeasonLength
	if len(values) < 2*s {
		return fmt.Errorf("need at least %d observations (two seasons), got %d", 2*s, len(values))
	}

	m.record(series)

	// Season means anchor the initial level and trend
	firstMean := 0.0
	secondMean := 0.0
	for i := 0; i < s; i++ {
		firstMean += values[i]
		secondMean += values[s+i]
	}
	firstMean /= float64(s)
	secondMean /= float64(s)

	level := firstMean
	trend := (secondMean - firstMean) / float64(s)

	seasonal := make([]float64, s)
	for i := 0; i < s; i++ {
		seasonal[i] = values[i] - firstMean
	}

	for t := s; t < len(values); t++ {
		idx := t % s
		m.addResidual(values[t], level+trend+seasonal[idx])

		prevLevel := level
		level = m.Alpha*(values[t]-seasonal[idx]) + (1-m.Alpha)*(level+trend)
		trend = m.Beta*(level-prevLevel) + (1-m.Beta)*trend
		seasonal[idx] = m.Gamma*(values[t]-level) + (1-m.Gamma)*seasonal[idx]
	}

	m.level = level
	m.trend = trend
	m.seasonal = seasonal
	// Seasonal indices are phased by absolute period index, so the
	// forecast must continue the cycle where the series ended.
	m.phase = len(values) % s
	m.fitted = true
	return nil
}

// Forecast extends level plus trend with the recurring seasonal component.
// Values are floored at zero.
func (m *HoltWinters) Forecast(horizon int) ([]entities.ForecastPoint, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model must be fitted before forecasting")
	}
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}

	points := make([]entities.ForecastPoint, horizon)
	for i, period := range m.periods(horizon) {
		idx := (m.phase + i) % m.SeasonLength
		value := m.level + float64(i+1)*m.trend + m.seasonal[idx]
		if value < 0 {
			value = 0
		}
		points[i] = entities.ForecastPoint{Period: period, Value: value}
	}
	return points, nil
}

// SeasonalNaive repeats the last observed season unchanged
type SeasonalNaive struct {
	SeasonLength int

	fitState
	lastSeason []float64
	fitted     bool
}

// NewSeasonalNaive creates a seasonal naive model
func NewSeasonalNaive(seasonLength int) *SeasonalNaive {
	return &SeasonalNaive{SeasonLength: seasonLength}
}

// Name returns the model identifier
func (m *SeasonalNaive) Name() string {
	return fmt.Sprintf("seasonal_naive(s=%d)", m.SeasonLength)
}

// Fit stores the final season and computes season-over-season residuals
func (m *SeasonalNaive) Fit(series *entities.DemandSeries) error {
	if m.SeasonLength < 2 {
		return fmt.Errorf("season length must be at least 2, got %d", m.SeasonLength)
	}
	values := series.Values()
	s := m.SeasonLength
	if len(values) < s+1 {
		return fmt.Errorf("need at least %d observations, got %d", s+1, len(values))
	}

	m.record(series)

	for t := s; t < len(values); t++ {
		m.addResidual(values[t], values[t-s])
	}

	m.lastSeason = append([]float64(nil), values[len(values)-s:]...)
	m.fitted = true
	return nil
}

// Forecast cycles through the stored final season
func (m *SeasonalNaive) Forecast(horizon int) ([]entities.ForecastPoint, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model must be fitted before forecasting")
	}
	if err := validateHorizon(horizon); err != nil {
		return nil, err
	}

	points := make([]entities.ForecastPoint, horizon)
	for i, period := range m.periods(horizon) {
		points[i] = entities.ForecastPoint{Period: period, Value: m.lastSeason[i%m.SeasonLength]}
	}
	return points, nil
}
