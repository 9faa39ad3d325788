package forecast

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	domainservices "github.com/avelkar/supplysight/pkg/domain/services"
)

// Forecaster produces finished forecasts: model selection, horizon
// forecast and prediction intervals in one call
type Forecaster struct {
	selector     *Selector
	serviceLevel float64
	z            float64
}

// NewForecaster creates a forecaster whose prediction intervals cover the
// given service level
func NewForecaster(config SelectorConfig, serviceLevel float64) (*Forecaster, error) {
	z, err := domainservices.NormInv(serviceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid service level: %w", err)
	}
	return &Forecaster{
		selector:     NewSelector(config),
		serviceLevel: serviceLevel,
		z:            z,
	}, nil
}

// Generate selects the best model for the series, fits it on the full
// history and returns the horizon forecast with prediction intervals
func (f *Forecaster) Generate(
	series *entities.DemandSeries,
	pattern entities.DemandPattern,
	horizon int,
) (*entities.Forecast, error) {
	selection, err := f.selector.Select(series, pattern)
	if err != nil {
		return nil, fmt.Errorf("model selection for %s at %s: %w", series.SKU, series.Location, err)
	}

	model := selection.Factory()
	if err := model.Fit(series); err != nil {
		return nil, fmt.Errorf("fitting %s for %s: %w", selection.ModelName, series.SKU, err)
	}

	points, err := model.Forecast(horizon)
	if err != nil {
		return nil, fmt.Errorf("forecasting %s for %s: %w", selection.ModelName, series.SKU, err)
	}

	if withResiduals, ok := model.(interface{ ResidualStdDev() float64 }); ok {
		WidenIntervals(points, withResiduals.ResidualStdDev(), f.z)
	}

	result, err := entities.NewForecast(
		series.SKU, series.Location, selection.ModelName,
		series.Frequency, points, selection.Accuracy,
	)
	if err != nil {
		return nil, err
	}
	result.Pattern = pattern
	return result, nil
}
