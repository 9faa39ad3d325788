package services

import (
	"math"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Syntetos-Boylan cutoffs separating the four demand quadrants
const (
	ADICutoff       = 1.32
	CVSquaredCutoff = 0.49
)

// DemandClassifier derives summary features from a demand series and
// classifies its pattern for model candidacy
type DemandClassifier struct {
	adiCutoff float64
	cv2Cutoff float64
}

// NewDemandClassifier creates a classifier with the standard cutoffs
func NewDemandClassifier() *DemandClassifier {
	return &DemandClassifier{
		adiCutoff: ADICutoff,
		cv2Cutoff: CVSquaredCutoff,
	}
}

// ComputeFeatures calculates summary statistics for a demand series
func (c *DemandClassifier) ComputeFeatures(series *entities.DemandSeries) entities.SeriesFeatures {
	values := series.Values()
	n := len(values)

	features := entities.SeriesFeatures{
		Observations: n,
		Min:          math.Inf(1),
		Max:          math.Inf(-1),
	}

	sum := 0.0
	for _, v := range values {
		sum += v
		if v < features.Min {
			features.Min = v
		}
		if v > features.Max {
			features.Max = v
		}
		if v > 0 {
			features.NonzeroCount++
		}
	}
	features.Mean = sum / float64(n)
	features.ZeroShare = float64(n-features.NonzeroCount) / float64(n)

	if n > 1 {
		sq := 0.0
		for _, v := range values {
			d := v - features.Mean
			sq += d * d
		}
		features.StdDev = math.Sqrt(sq / float64(n-1))
	}

	features.TrendSlope = trendSlope(values)
	features.ADI = averageDemandInterval(values, features.NonzeroCount)
	features.CVSquared = cvSquaredOfSizes(values, features.NonzeroCount)

	return features
}

// Classify maps series features onto the Syntetos-Boylan quadrants
func (c *DemandClassifier) Classify(features entities.SeriesFeatures) entities.DemandPattern {
	intermittent := features.ADI >= c.adiCutoff
	variable := features.CVSquared >= c.cv2Cutoff

	switch {
	case intermittent && variable:
		return entities.Lumpy
	case intermittent:
		return entities.Intermittent
	case variable:
		return entities.Erratic
	default:
		return entities.Smooth
	}
}

// trendSlope returns the least squares slope of demand per period
func trendSlope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	// x values are 0..n-1, so the sums have closed forms
	sumX := n * (n - 1) / 2
	sumXX := n * (n - 1) * (2*n - 1) / 6

	sumY := 0.0
	sumXY := 0.0
	for i, v := range values {
		sumY += v
		sumXY += float64(i) * v
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// averageDemandInterval returns the mean number of periods between
// consecutive nonzero demands. A fully dense series has ADI 1.
func averageDemandInterval(values []float64, nonzero int) float64 {
	if nonzero == 0 {
		return math.Inf(1)
	}
	return float64(len(values)) / float64(nonzero)
}

// cvSquaredOfSizes returns the squared coefficient of variation of the
// nonzero demand sizes
func cvSquaredOfSizes(values []float64, nonzero int) float64 {
	if nonzero < 2 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		if v > 0 {
			sum += v
		}
	}
	mean := sum / float64(nonzero)
	if mean == 0 {
		return 0
	}

	sq := 0.0
	for _, v := range values {
		if v > 0 {
			d := v - mean
			sq += d * d
		}
	}
	variance := sq / float64(nonzero-1)

	return variance / (mean * mean)
}
