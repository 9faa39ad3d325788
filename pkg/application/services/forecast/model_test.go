package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

func buildSeries(t *testing.T, values []float64) *entities.DemandSeries {
	t.Helper()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]entities.DemandPoint, len(values))
	for i, v := range values {
		points[i] = entities.DemandPoint{Period: start.AddDate(0, 0, i), Quantity: v}
	}

	series, err := entities.NewDemandSeries("SKU-1", "DC", entities.Daily, points)
	if err != nil {
		t.Fatalf("failed to build series: %v", err)
	}
	return series
}

func TestMovingAverage_FlatForecast(t *testing.T) {
	series := buildSeries(t, []float64{5, 7, 9, 11, 13, 15})

	model := NewMovingAverage(3)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(4)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("Expected 4 points, got %d", len(points))
	}

	// Mean of {11, 13, 15} is 13
	for i, p := range points {
		if p.Value != 13 {
			t.Errorf("Expected flat forecast 13 at step %d, got %g", i+1, p.Value)
		}
	}

	// Periods continue the daily calendar
	expected := series.LastPeriod().AddDate(0, 0, 1)
	if !points[0].Period.Equal(expected) {
		t.Errorf("Expected first period %v, got %v", expected, points[0].Period)
	}
}

func TestMovingAverage_RejectsShortSeries(t *testing.T) {
	series := buildSeries(t, []float64{5, 7})

	model := NewMovingAverage(3)
	if err := model.Fit(series); err == nil {
		t.Fatal("Expected error for series shorter than window, got nil")
	}
}

func TestSES_ConstantSeriesConverges(t *testing.T) {
	series := buildSeries(t, []float64{10, 10, 10, 10, 10, 10})

	model := NewSES(0.5)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(2)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}
	for _, p := range points {
		if math.Abs(p.Value-10) > 1e-9 {
			t.Errorf("Expected forecast 10 for constant series, got %g", p.Value)
		}
	}
}

func TestSES_RejectsBadAlpha(t *testing.T) {
	series := buildSeries(t, []float64{10, 12, 9})

	for _, alpha := range []float64{0, -0.1, 1.5} {
		model := NewSES(alpha)
		if err := model.Fit(series); err == nil {
			t.Errorf("Expected error for alpha %g, got nil", alpha)
		}
	}
}

func TestHolt_LinearTrendExtrapolation(t *testing.T) {
	// Perfectly linear series: level and trend recursions track it exactly
	series := buildSeries(t, []float64{10, 12, 14, 16, 18, 20})

	model := NewHolt(0.8, 0.8)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(3)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}

	for i, p := range points {
		expected := 20 + float64(i+1)*2
		if math.Abs(p.Value-expected) > 1e-6 {
			t.Errorf("Expected %g at step %d, got %g", expected, i+1, p.Value)
		}
	}
}

func TestHolt_FloorsNegativeForecasts(t *testing.T) {
	series := buildSeries(t, []float64{10, 8, 6, 4, 2, 1})

	model := NewHolt(0.8, 0.8)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(10)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}
	for i, p := range points {
		if p.Value < 0 {
			t.Errorf("Expected non-negative forecast at step %d, got %g", i+1, p.Value)
		}
	}
}

func TestSeasonalNaive_RepeatsLastSeason(t *testing.T) {
	series := buildSeries(t, []float64{1, 2, 3, 4, 10, 20, 30, 40})

	model := NewSeasonalNaive(4)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(6)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}

	expected := []float64{10, 20, 30, 40, 10, 20}
	for i, p := range points {
		if p.Value != expected[i] {
			t.Errorf("Expected %g at step %d, got %g", expected[i], i+1, p.Value)
		}
	}
}

func TestHoltWinters_RequiresTwoSeasons(t *testing.T) {
	series := buildSeries(t, []float64{1, 2, 3, 4, 5, 6, 7})

	model := NewHoltWinters(0.3, 0.1, 0.1, 4)
	if err := model.Fit(series); err == nil {
		t.Fatal("Expected error for fewer than two seasons, got nil")
	}
}

func TestHoltWinters_TracksSeasonalPattern(t *testing.T) {
	// Three clean seasons of a repeating pattern around a flat level
	pattern := []float64{20, 10, 5, 15}
	var values []float64
	for i := 0; i < 3; i++ {
		values = append(values, pattern...)
	}
	series := buildSeries(t, values)

	model := NewHoltWinters(0.3, 0.1, 0.1, 4)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(4)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}

	// A stable repeating pattern should forecast close to itself
	for i, p := range points {
		if math.Abs(p.Value-pattern[i]) > 2.0 {
			t.Errorf("Expected roughly %g at step %d, got %g", pattern[i], i+1, p.Value)
		}
	}
}

func TestHoltWinters_ContinuesSeasonMidCycle(t *testing.T) {
	// Ten observations of a four-period cycle end halfway through the
	// third cycle, so the forecast must pick up at the third position
	values := []float64{10, 20, 30, 40, 10, 20, 30, 40, 10, 20}
	series := buildSeries(t, values)

	model := NewHoltWinters(0.3, 0.1, 0.1, 4)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(4)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}

	expected := []float64{30, 40, 10, 20}
	for i, p := range points {
		if math.Abs(p.Value-expected[i]) > 3.0 {
			t.Errorf("Expected roughly %g at step %d, got %g", expected[i], i+1, p.Value)
		}
	}
}

func TestCroston_IntermittentRate(t *testing.T) {
	// Demand of 10 every 5th period: long-run rate is 2 per period
	var values []float64
	for i := 0; i < 30; i++ {
		if i%5 == 4 {
			values = append(values, 10)
		} else {
			values = append(values, 0)
		}
	}
	series := buildSeries(t, values)

	model := NewCroston(0.2)
	if err := model.Fit(series); err != nil {
		t.Fatalf("Expected fit to succeed: %v", err)
	}

	points, err := model.Forecast(1)
	if err != nil {
		t.Fatalf("Expected forecast to succeed: %v", err)
	}
	if math.Abs(points[0].Value-2) > 0.5 {
		t.Errorf("Expected demand rate near 2, got %g", points[0].Value)
	}
}

func TestCroston_RejectsAllZeroSeries(t *testing.T) {
	series := buildSeries(t, []float64{0, 0, 0, 0})

	model := NewCroston(0.2)
	if err := model.Fit(series); err == nil {
		t.Fatal("Expected error for all-zero series, got nil")
	}
}

func TestForecastBeforeFitFails(t *testing.T) {
	models := []Model{
		NewMovingAverage(3),
		NewSES(0.3),
		NewHolt(0.3, 0.1),
		NewHoltWinters(0.3, 0.1, 0.1, 4),
		NewSeasonalNaive(4),
		NewCroston(0.2),
	}

	for _, model := range models {
		if _, err := model.Forecast(1); err == nil {
			t.Errorf("Expected %s to fail forecasting before fit", model.Name())
		}
	}
}

func TestWidenIntervals(t *testing.T) {
	points := []entities.ForecastPoint{
		{Value: 10}, {Value: 10}, {Value: 10}, {Value: 10},
	}

	WidenIntervals(points, 2, 1.64)

	// Band half-width grows with sqrt(step)
	first := points[0].Upper - points[0].Value
	fourth := points[3].Upper - points[3].Value
	if math.Abs(fourth-2*first) > 1e-9 {
		t.Errorf("Expected step 4 band twice step 1 band, got %g vs %g", fourth, first)
	}

	// Lower bound never goes negative
	WidenIntervals(points, 100, 3)
	for i, p := range points {
		if p.Lower < 0 {
			t.Errorf("Expected non-negative lower bound at step %d, got %g", i+1, p.Lower)
		}
	}
}
