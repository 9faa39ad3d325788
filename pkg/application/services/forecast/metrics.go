package forecast

import (
	"fmt"
	"math"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// ComputeAccuracy compares forecasts against actuals and returns accuracy
// metrics. MAPE is computed only over nonzero actuals; if every actual is
// zero it returns an error rather than a divide-by-zero artifact.
func ComputeAccuracy(actuals, forecasts []float64) (entities.ForecastAccuracy, error) {
	if len(actuals) == 0 {
		return entities.ForecastAccuracy{}, fmt.Errorf("no observations to score")
	}
	if len(actuals) != len(forecasts) {
		return entities.ForecastAccuracy{}, fmt.Errorf(
			"actuals and forecasts length mismatch: %d vs %d", len(actuals), len(forecasts))
	}

	var (
		sumAbs     float64
		sumSq      float64
		sumErr     float64
		sumAbsPct  float64
		mapeUsable int
	)

	for i, actual := range actuals {
		err := forecasts[i] - actual
		sumErr += err
		sumAbs += math.Abs(err)
		sumSq += err * err
		if actual != 0 {
			sumAbsPct += math.Abs(err / actual)
			mapeUsable++
		}
	}

	n := float64(len(actuals))
	accuracy := entities.ForecastAccuracy{
		MAE:          sumAbs / n,
		RMSE:         math.Sqrt(sumSq / n),
		Bias:         sumErr / n,
		Observations: len(actuals),
	}

	if mapeUsable == 0 {
		return entities.ForecastAccuracy{}, fmt.Errorf("all actuals are zero, MAPE undefined")
	}
	accuracy.MAPE = sumAbsPct / float64(mapeUsable) * 100

	return accuracy, nil
}
