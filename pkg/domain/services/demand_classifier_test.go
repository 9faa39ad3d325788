package services

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

func TestComputeFeatures_DenseSeries(t *testing.T) {
	classifier := NewDemandClassifier()
	series := buildSeries(t, []float64{10, 12, 8, 10, 10})

	features := classifier.ComputeFeatures(series)

	if features.Mean != 10 {
		t.Errorf("Expected mean 10, got %g", features.Mean)
	}
	if features.ADI != 1 {
		t.Errorf("Expected ADI 1 for dense series, got %g", features.ADI)
	}
	if features.ZeroShare != 0 {
		t.Errorf("Expected zero share 0, got %g", features.ZeroShare)
	}
	if features.NonzeroCount != 5 {
		t.Errorf("Expected 5 nonzero points, got %d", features.NonzeroCount)
	}
	// Sample std dev of {10,12,8,10,10} is sqrt(2)
	if math.Abs(features.StdDev-math.Sqrt2) > 1e-9 {
		t.Errorf("Expected std dev sqrt(2), got %g", features.StdDev)
	}
}

func TestComputeFeatures_TrendSlope(t *testing.T) {
	classifier := NewDemandClassifier()
	series := buildSeries(t, []float64{2, 4, 6, 8, 10})

	features := classifier.ComputeFeatures(series)

	if math.Abs(features.TrendSlope-2) > 1e-9 {
		t.Errorf("Expected trend slope 2, got %g", features.TrendSlope)
	}
}

func TestClassify_Quadrants(t *testing.T) {
	classifier := NewDemandClassifier()

	tests := []struct {
		name     string
		values   []float64
		expected entities.DemandPattern
	}{
		{
			name:     "smooth steady demand",
			values:   []float64{10, 11, 9, 10, 10, 11, 9, 10},
			expected: entities.Smooth,
		},
		{
			name:     "intermittent low variability",
			values:   []float64{10, 0, 0, 10, 0, 0, 10, 0},
			expected: entities.Intermittent,
		},
		{
			name:     "erratic dense but volatile",
			values:   []float64{1, 40, 2, 35, 1, 45, 2, 38},
			expected: entities.Erratic,
		},
		{
			name:     "lumpy sparse and volatile",
			values:   []float64{1, 0, 0, 50, 0, 0, 2, 0},
			expected: entities.Lumpy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := buildSeries(t, tt.values)
			features := classifier.ComputeFeatures(series)
			pattern := classifier.Classify(features)
			if pattern != tt.expected {
				t.Errorf("Expected %s (ADI %.2f, CV2 %.2f), got %s",
					tt.expected, features.ADI, features.CVSquared, pattern)
			}
		})
	}
}

func TestClassify_AllZeroSeries(t *testing.T) {
	classifier := NewDemandClassifier()
	series := buildSeries(t, []float64{0, 0, 0, 0})

	features := classifier.ComputeFeatures(series)
	if !math.IsInf(features.ADI, 1) {
		t.Errorf("Expected infinite ADI for all zero series, got %g", features.ADI)
	}
	if pattern := classifier.Classify(features); pattern != entities.Intermittent {
		t.Errorf("Expected all zero series to classify Intermittent, got %s", pattern)
	}
}
