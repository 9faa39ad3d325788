package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

func benchmarkSeries(periods int) *entities.DemandSeries {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]entities.DemandPoint, periods)
	for i := range points {
		seasonal := 20 * math.Sin(2*math.Pi*float64(i%52)/52)
		points[i] = entities.DemandPoint{
			Period:   start.AddDate(0, 0, 7*i),
			Quantity: math.Max(0, 100+seasonal+float64(i)/10),
		}
	}

	series, err := entities.NewDemandSeries("BENCH-SKU", "DC", entities.Weekly, points)
	if err != nil {
		panic(err)
	}
	return series
}

func BenchmarkSelector_ThreeYearsWeekly(b *testing.B) {
	series := benchmarkSeries(156)
	pattern := entities.Smooth

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		selector := NewSelector(DefaultSelectorConfig())
		_, err := selector.Select(series, pattern)
		if err != nil {
			b.Fatalf("Select failed: %v", err)
		}
	}
}

func BenchmarkSelector_Cached(b *testing.B) {
	series := benchmarkSeries(156)
	pattern := entities.Smooth
	selector := NewSelector(DefaultSelectorConfig())
	if _, err := selector.Select(series, pattern); err != nil {
		b.Fatalf("Select failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := selector.Select(series, pattern); err != nil {
			b.Fatalf("Select failed: %v", err)
		}
	}
}

func BenchmarkHoltWinters_Fit(b *testing.B) {
	series := benchmarkSeries(156)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		model := NewHoltWinters(0.3, 0.1, 0.1, 52)
		if err := model.Fit(series); err != nil {
			b.Fatalf("Fit failed: %v", err)
		}
	}
}
