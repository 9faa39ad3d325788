package entities

import (
	"fmt"
	"time"
)

// Frequency represents the bucketing interval of a demand series
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
)

// MarshalJSON renders the frequency as its name
func (f Frequency) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// String method for Frequency enum
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "Daily"
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	default:
		return "Unknown"
	}
}

// Next returns the period immediately following t at this frequency
func (f Frequency) Next(t time.Time) time.Time {
	switch f {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	case Monthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// PeriodsPerYear returns the approximate number of periods in a year
func (f Frequency) PeriodsPerYear() float64 {
	switch f {
	case Daily:
		return 365
	case Weekly:
		return 52
	case Monthly:
		return 12
	default:
		return 365
	}
}

// DemandPoint represents aggregated demand for one period
type DemandPoint struct {
	Period   time.Time
	Quantity float64
}

// DemandSeries represents a gap-free, equally spaced demand history for a
// SKU at a location
type DemandSeries struct {
	SKU       SKU
	Location  string
	Frequency Frequency
	Points    []DemandPoint
}

// NewDemandSeries creates a validated DemandSeries. Points must be strictly
// ascending and contiguous at the given frequency.
func NewDemandSeries(
	sku SKU,
	location string,
	frequency Frequency,
	points []DemandPoint,
) (*DemandSeries, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if location == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("series must contain at least one point")
	}

	for i := 1; i < len(points); i++ {
		expected := frequency.Next(points[i-1].Period)
		if !points[i].Period.Equal(expected) {
			return nil, fmt.Errorf(
				"series has a gap at index %d: expected period %s, got %s",
				i,
				expected.Format("2006-01-02"),
				points[i].Period.Format("2006-01-02"),
			)
		}
	}

	return &DemandSeries{
		SKU:       sku,
		Location:  location,
		Frequency: frequency,
		Points:    points,
	}, nil
}

// Values returns the demand quantities in period order
func (s *DemandSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Quantity
	}
	return values
}

// Len returns the number of periods in the series
func (s *DemandSeries) Len() int {
	return len(s.Points)
}

// LastPeriod returns the period of the final point
func (s *DemandSeries) LastPeriod() time.Time {
	return s.Points[len(s.Points)-1].Period
}

// Total returns the summed demand over the whole series
func (s *DemandSeries) Total() float64 {
	total := 0.0
	for _, p := range s.Points {
		total += p.Quantity
	}
	return total
}

// DemandPattern represents the Syntetos-Boylan demand classification
type DemandPattern int

const (
	Smooth DemandPattern = iota
	Erratic
	Intermittent
	Lumpy
)

// MarshalJSON renders the pattern as its name
func (p DemandPattern) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// String method for DemandPattern enum
func (p DemandPattern) String() string {
	switch p {
	case Smooth:
		return "Smooth"
	case Erratic:
		return "Erratic"
	case Intermittent:
		return "Intermittent"
	case Lumpy:
		return "Lumpy"
	default:
		return "Unknown"
	}
}

// SeriesFeatures holds summary statistics describing a demand series
type SeriesFeatures struct {
	Mean          float64
	StdDev        float64
	CVSquared     float64 // squared coefficient of variation of nonzero demand sizes
	ADI           float64 // average inter-demand interval in periods
	TrendSlope    float64 // least squares slope per period
	ZeroShare     float64 // fraction of periods with zero demand
	Min           float64
	Max           float64
	NonzeroCount  int
	Observations  int
}
