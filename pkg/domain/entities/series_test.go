package entities

import (
	"strings"
	"testing"
	"time"
)

func TestDemandSeries_Validation(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	points := []DemandPoint{
		{Period: start, Quantity: 10},
		{Period: start.AddDate(0, 0, 7), Quantity: 12},
		{Period: start.AddDate(0, 0, 14), Quantity: 8},
	}

	series, err := NewDemandSeries("SKU-1", "DC-EAST", Weekly, points)
	if err != nil {
		t.Fatalf("Expected valid series creation to succeed: %v", err)
	}
	if series.Len() != 3 {
		t.Errorf("Expected 3 points, got %d", series.Len())
	}
	if series.Total() != 30 {
		t.Errorf("Expected total 30, got %g", series.Total())
	}
	if !series.LastPeriod().Equal(start.AddDate(0, 0, 14)) {
		t.Errorf("Expected last period %v, got %v", start.AddDate(0, 0, 14), series.LastPeriod())
	}
}

func TestDemandSeries_RejectsGaps(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	points := []DemandPoint{
		{Period: start, Quantity: 4},
		{Period: start.AddDate(0, 0, 2), Quantity: 5}, // daily series skipping a day
	}

	_, err := NewDemandSeries("SKU-1", "DC-EAST", Daily, points)
	if err == nil {
		t.Fatal("Expected gap error, got nil")
	}
	if !strings.Contains(err.Error(), "gap at index 1") {
		t.Errorf("Expected gap error, got %q", err.Error())
	}
}

func TestDemandSeries_SinglePoint(t *testing.T) {
	points := []DemandPoint{
		{Period: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Quantity: 7},
	}

	series, err := NewDemandSeries("SKU-1", "DC-EAST", Monthly, points)
	if err != nil {
		t.Fatalf("Expected single point series to be valid: %v", err)
	}
	if series.Len() != 1 {
		t.Errorf("Expected 1 point, got %d", series.Len())
	}
}

func TestFrequency_Next(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		freq     Frequency
		expected time.Time
	}{
		{"daily", Daily, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"weekly", Weekly, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"monthly", Monthly, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.freq.Next(base)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
