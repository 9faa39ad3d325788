package services

import (
	"math"
	"testing"
)

func TestNormInv_KnownQuantiles(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{"median", 0.5, 0},
		{"service level 90", 0.90, 1.2816},
		{"service level 95", 0.95, 1.6449},
		{"service level 97.5", 0.975, 1.9600},
		{"service level 99", 0.99, 2.3263},
		{"lower tail", 0.05, -1.6449},
		{"deep tail", 0.001, -3.0902},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z, err := NormInv(tt.p)
			if err != nil {
				t.Fatalf("NormInv(%g) failed: %v", tt.p, err)
			}
			if math.Abs(z-tt.expected) > 5e-4 {
				t.Errorf("Expected z %.4f for p %g, got %.4f", tt.expected, tt.p, z)
			}
		})
	}
}

func TestNormInv_RejectsOutOfRange(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.1} {
		if _, err := NormInv(p); err == nil {
			t.Errorf("Expected error for p=%g, got nil", p)
		}
	}
}

func TestNormCDF_RoundTrip(t *testing.T) {
	for _, p := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99} {
		z, err := NormInv(p)
		if err != nil {
			t.Fatalf("NormInv(%g) failed: %v", p, err)
		}
		back := NormCDF(z)
		if math.Abs(back-p) > 1e-6 {
			t.Errorf("Round trip mismatch for p=%g: got %g", p, back)
		}
	}
}

func TestServiceLevelZ(t *testing.T) {
	z, err := ServiceLevelZ(0.95)
	if err != nil {
		t.Fatalf("ServiceLevelZ failed: %v", err)
	}
	if math.Abs(z-1.6449) > 5e-4 {
		t.Errorf("Expected z 1.6449 for 95%% service level, got %.4f", z)
	}
}
