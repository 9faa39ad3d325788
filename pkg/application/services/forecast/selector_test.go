package forecast

import (
	"math"
	"testing"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

func TestBacktester_RollingOrigin(t *testing.T) {
	series := buildSeries(t, []float64{10, 10, 10, 10, 10, 10, 10, 10})

	backtester := NewBacktester(4)
	accuracy, err := backtester.Evaluate(series, func() Model { return NewSES(0.5) })
	if err != nil {
		t.Fatalf("Expected backtest to succeed: %v", err)
	}

	// Constant series: every one-step forecast is exact
	if math.Abs(accuracy.MAE) > 1e-9 {
		t.Errorf("Expected MAE 0 on constant series, got %g", accuracy.MAE)
	}
	if accuracy.Observations != 4 {
		t.Errorf("Expected 4 folds, got %d", accuracy.Observations)
	}
}

func TestBacktester_SeriesTooShort(t *testing.T) {
	series := buildSeries(t, []float64{10, 12})

	backtester := NewBacktester(4)
	_, err := backtester.Evaluate(series, func() Model { return NewSES(0.5) })
	if err == nil {
		t.Fatal("Expected error for series shorter than training window, got nil")
	}
}

func selectorConfigForTests() SelectorConfig {
	return SelectorConfig{
		SeasonLength:    4,
		MinTrainWindow:  6,
		Metric:          "mape",
		SmoothingGrid:   []float64{0.2, 0.5, 0.8},
		MaxCacheEntries: 100,
	}
}

func TestSelector_PicksAModel(t *testing.T) {
	selector := NewSelector(selectorConfigForTests())
	series := buildSeries(t, []float64{10, 11, 10, 12, 10, 11, 10, 12, 11, 10, 11, 12})

	selection, err := selector.Select(series, entities.Smooth)
	if err != nil {
		t.Fatalf("Expected selection to succeed: %v", err)
	}
	if selection.ModelName == "" {
		t.Error("Expected a model name")
	}
	if selection.Candidates == 0 {
		t.Error("Expected at least one candidate")
	}
	if selection.Accuracy.Observations == 0 {
		t.Error("Expected backtest observations")
	}
}

func TestSelector_CrostonOnlyForIntermittent(t *testing.T) {
	selector := NewSelector(selectorConfigForTests())
	series := buildSeries(t, []float64{10, 11, 10, 12, 10, 11, 10, 12, 11, 10, 11, 12})

	smooth := selector.candidates(series, entities.Smooth)
	for _, c := range smooth {
		if len(c.name) >= 7 && c.name[:7] == "croston" {
			t.Errorf("Expected no croston candidate for smooth demand, got %s", c.name)
		}
	}

	lumpy := selector.candidates(series, entities.Lumpy)
	found := false
	for _, c := range lumpy {
		if len(c.name) >= 7 && c.name[:7] == "croston" {
			found = true
		}
	}
	if !found {
		t.Error("Expected croston candidate for lumpy demand")
	}
}

func TestSelector_GridsHoltWintersSmoothing(t *testing.T) {
	selector := NewSelector(selectorConfigForTests())
	// Twelve observations cover three seasons at length four
	series := buildSeries(t, []float64{10, 20, 15, 5, 11, 21, 14, 6, 10, 19, 16, 5})

	variants := make(map[string]bool)
	for _, c := range selector.candidates(series, entities.Smooth) {
		if len(c.name) >= 12 && c.name[:12] == "holt_winters" {
			variants[c.name] = true
		}
	}

	// Three alphas crossed with two betas and two gammas
	if len(variants) != 12 {
		t.Errorf("Expected 12 holt-winters variants, got %d", len(variants))
	}
}

func TestSelector_CachesByObservationCount(t *testing.T) {
	selector := NewSelector(selectorConfigForTests())
	series := buildSeries(t, []float64{10, 11, 10, 12, 10, 11, 10, 12, 11, 10})

	first, err := selector.Select(series, entities.Smooth)
	if err != nil {
		t.Fatalf("Expected selection to succeed: %v", err)
	}
	second, err := selector.Select(series, entities.Smooth)
	if err != nil {
		t.Fatalf("Expected cached selection to succeed: %v", err)
	}
	if first != second {
		t.Error("Expected the cached selection to be returned for an unchanged series")
	}
}

func TestForecaster_GeneratesForecastWithIntervals(t *testing.T) {
	forecaster, err := NewForecaster(selectorConfigForTests(), 0.95)
	if err != nil {
		t.Fatalf("Expected forecaster creation to succeed: %v", err)
	}

	series := buildSeries(t, []float64{10, 14, 9, 13, 11, 12, 10, 15, 9, 13, 11, 12})

	forecast, err := forecaster.Generate(series, entities.Smooth, 4)
	if err != nil {
		t.Fatalf("Expected forecast generation to succeed: %v", err)
	}

	if forecast.SKU != "SKU-1" {
		t.Errorf("Expected SKU-1, got %s", forecast.SKU)
	}
	if len(forecast.Points) != 4 {
		t.Fatalf("Expected 4 forecast points, got %d", len(forecast.Points))
	}
	for i, p := range forecast.Points {
		if p.Upper < p.Value || p.Lower > p.Value {
			t.Errorf("Expected interval to bracket value at step %d: [%g, %g] around %g",
				i+1, p.Lower, p.Upper, p.Value)
		}
	}
	if forecast.Accuracy.Observations == 0 {
		t.Error("Expected backtest accuracy on the generated forecast")
	}
}

func TestForecaster_RejectsBadServiceLevel(t *testing.T) {
	if _, err := NewForecaster(selectorConfigForTests(), 1.5); err == nil {
		t.Fatal("Expected error for service level above 1, got nil")
	}
}
