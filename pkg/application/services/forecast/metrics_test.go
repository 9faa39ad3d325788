package forecast

import (
	"math"
	"testing"
)

func TestComputeAccuracy(t *testing.T) {
	actuals := []float64{100, 200, 50}
	forecasts := []float64{110, 180, 50}

	accuracy, err := ComputeAccuracy(actuals, forecasts)
	if err != nil {
		t.Fatalf("Expected accuracy computation to succeed: %v", err)
	}

	// Errors are +10, -20, 0
	if math.Abs(accuracy.MAE-10) > 1e-9 {
		t.Errorf("Expected MAE 10, got %g", accuracy.MAE)
	}
	expectedRMSE := math.Sqrt((100 + 400 + 0) / 3.0)
	if math.Abs(accuracy.RMSE-expectedRMSE) > 1e-9 {
		t.Errorf("Expected RMSE %g, got %g", expectedRMSE, accuracy.RMSE)
	}
	expectedBias := (10.0 - 20.0 + 0) / 3.0
	if math.Abs(accuracy.Bias-expectedBias) > 1e-9 {
		t.Errorf("Expected bias %g, got %g", expectedBias, accuracy.Bias)
	}
	// MAPE over nonzero actuals: (0.10 + 0.10 + 0) / 3 * 100
	expectedMAPE := (0.10 + 0.10 + 0.0) / 3.0 * 100
	if math.Abs(accuracy.MAPE-expectedMAPE) > 1e-9 {
		t.Errorf("Expected MAPE %g, got %g", expectedMAPE, accuracy.MAPE)
	}
	if accuracy.Observations != 3 {
		t.Errorf("Expected 3 observations, got %d", accuracy.Observations)
	}
}

func TestComputeAccuracy_SkipsZeroActualsForMAPE(t *testing.T) {
	actuals := []float64{0, 100}
	forecasts := []float64{5, 110}

	accuracy, err := ComputeAccuracy(actuals, forecasts)
	if err != nil {
		t.Fatalf("Expected accuracy computation to succeed: %v", err)
	}

	// Only the nonzero actual contributes: |10/100| * 100 = 10%
	if math.Abs(accuracy.MAPE-10) > 1e-9 {
		t.Errorf("Expected MAPE 10, got %g", accuracy.MAPE)
	}
}

func TestComputeAccuracy_AllZeroActuals(t *testing.T) {
	_, err := ComputeAccuracy([]float64{0, 0}, []float64{1, 2})
	if err == nil {
		t.Fatal("Expected error for all-zero actuals, got nil")
	}
}

func TestComputeAccuracy_LengthMismatch(t *testing.T) {
	_, err := ComputeAccuracy([]float64{1, 2}, []float64{1})
	if err == nil {
		t.Fatal("Expected error for length mismatch, got nil")
	}
}

func TestComputeAccuracy_Empty(t *testing.T) {
	_, err := ComputeAccuracy(nil, nil)
	if err == nil {
		t.Fatal("Expected error for empty input, got nil")
	}
}
