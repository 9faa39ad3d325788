package forecast

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Backtester scores models by rolling-origin evaluation: fit on a growing
// training window and forecast one period ahead at each fold.
type Backtester struct {
	// MinTrainWindow is the smallest training window used for the first fold
	MinTrainWindow int
}

// NewBacktester creates a backtester with the given minimum training window
func NewBacktester(minTrainWindow int) *Backtester {
	return &Backtester{MinTrainWindow: minTrainWindow}
}

// Evaluate runs the rolling-origin backtest for a factory-built model over
// the series and aggregates the one-step errors into accuracy metrics.
// The factory must return a fresh model per fold since models keep state.
func (b *Backtester) Evaluate(
	series *entities.DemandSeries,
	factory func() Model,
) (entities.ForecastAccuracy, error) {
	if b.MinTrainWindow < 2 {
		return entities.ForecastAccuracy{}, fmt.Errorf(
			"minimum training window must be at least 2, got %d", b.MinTrainWindow)
	}
	if series.Len() <= b.MinTrainWindow {
		return entities.ForecastAccuracy{}, fmt.Errorf(
			"series too short to backtest: %d observations, need more than %d",
			series.Len(), b.MinTrainWindow)
	}

	var actuals, forecasts []float64

	for origin := b.MinTrainWindow; origin < series.Len(); origin++ {
		train, err := prefixSeries(series, origin)
		if err != nil {
			return entities.ForecastAccuracy{}, err
		}

		model := factory()
		if err := model.Fit(train); err != nil {
			// Model cannot fit this window; skip the fold rather than
			// failing the whole evaluation
			continue
		}

		points, err := model.Forecast(1)
		if err != nil {
			continue
		}

		actuals = append(actuals, series.Points[origin].Quantity)
		forecasts = append(forecasts, points[0].Value)
	}

	if len(actuals) == 0 {
		return entities.ForecastAccuracy{}, fmt.Errorf("no usable backtest folds")
	}

	return ComputeAccuracy(actuals, forecasts)
}

// prefixSeries returns the first n points of a series as a new series
func prefixSeries(series *entities.DemandSeries, n int) (*entities.DemandSeries, error) {
	return entities.NewDemandSeries(series.SKU, series.Location, series.Frequency, series.Points[:n])
}
