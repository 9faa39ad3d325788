package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Model is a univariate demand forecasting model. Fit must be called before
// Forecast; models are not safe for concurrent use.
type Model interface {
	Name() string
	Fit(series *entities.DemandSeries) error
	Forecast(horizon int) ([]entities.ForecastPoint, error)
}

// fitState holds what every model needs after fitting: the calendar to
// extend, and in-sample residuals for prediction intervals.
type fitState struct {
	frequency  entities.Frequency
	lastPeriod time.Time
	residuals  []float64
}

func (s *fitState) record(series *entities.DemandSeries) {
	s.frequency = series.Frequency
	s.lastPeriod = series.LastPeriod()
	s.residuals = s.residuals[:0]
}

func (s *fitState) addResidual(actual, fitted float64) {
	s.residuals = append(s.residuals, actual-fitted)
}

// ResidualStdDev returns the sample standard deviation of the in-sample
// one-step residuals. Zero when fewer than two residuals exist.
func (s *fitState) ResidualStdDev() float64 {
	n := len(s.residuals)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range s.residuals {
		mean += r
	}
	mean /= float64(n)

	sq := 0.0
	for _, r := range s.residuals {
		d := r - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// horizon builds the future periods following the fitted series
func (s *fitState) periods(horizon int) []time.Time {
	periods := make([]time.Time, horizon)
	cursor := s.lastPeriod
	for i := 0; i < horizon; i++ {
		cursor = s.frequency.Next(cursor)
		periods[i] = cursor
	}
	return periods
}

func validateHorizon(horizon int) error {
	if horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	return nil
}

func validateSmoothing(name string, value float64) error {
	if value <= 0 || value > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %g", name, value)
	}
	return nil
}

// WidenIntervals fills Lower and Upper on forecast points as a z-scaled
// residual band growing with the square root of the step ahead. Lower is
// floored at zero since demand cannot be negative.
func WidenIntervals(points []entities.ForecastPoint, residualStdDev, z float64) {
	for i := range points {
		half := z * residualStdDev * math.Sqrt(float64(i+1))
		points[i].Lower = math.Max(0, points[i].Value-half)
		points[i].Upper = points[i].Value + half
	}
}
