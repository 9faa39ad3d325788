package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	domainservices "github.com/avelkar/supplysight/pkg/domain/services"
)

// DemandRate describes per-day demand behavior for one SKU at a location
type DemandRate struct {
	DailyMean   float64
	DailyStdDev float64
}

// StockoutAssessor estimates the probability of stocking out during the
// replenishment lead time, treating lead time demand as normal with
// mean d*LT and variance LT*sigma_d^2 + d^2*sigma_LT^2
type StockoutAssessor struct{}

// NewStockoutAssessor creates a stockout assessor
func NewStockoutAssessor() *StockoutAssessor {
	return &StockoutAssessor{}
}

// Assess scores one stock position against its demand rate and the item's
// lead time profile
func (a *StockoutAssessor) Assess(
	snapshot *entities.StockSnapshot,
	item *entities.Item,
	rate DemandRate,
) (*entities.StockoutRisk, error) {
	if rate.DailyMean < 0 || rate.DailyStdDev < 0 {
		return nil, fmt.Errorf("demand rate cannot be negative")
	}

	net := snapshot.NetPosition()

	lt := float64(item.LeadTimeDays)
	mu := rate.DailyMean * lt
	variance := lt*rate.DailyStdDev*rate.DailyStdDev +
		rate.DailyMean*rate.DailyMean*item.LeadTimeStdDevDays*item.LeadTimeStdDevDays
	sigma := math.Sqrt(variance)

	var probability float64
	if sigma == 0 {
		// Deterministic demand: either the position covers it or it does not
		if float64(net) < mu {
			probability = 1
		}
	} else {
		probability = 1 - domainservices.NormCDF((float64(net)-mu)/sigma)
	}

	daysOfCover := math.Inf(1)
	if rate.DailyMean > 0 {
		daysOfCover = float64(net) / rate.DailyMean
		if daysOfCover < 0 {
			daysOfCover = 0
		}
	}

	return &entities.StockoutRisk{
		SKU:         snapshot.SKU,
		Location:    snapshot.Location,
		Probability: probability,
		DaysOfCover: daysOfCover,
		NetPosition: net,
		Level:       BandScore(probability * 100),
		AsOf:        snapshot.AsOf,
	}, nil
}

// RankRegister orders stockout risks worst first: by probability, then by
// fewest days of cover, then by SKU
func RankRegister(risks []*entities.StockoutRisk) {
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Probability != risks[j].Probability {
			return risks[i].Probability > risks[j].Probability
		}
		if risks[i].DaysOfCover != risks[j].DaysOfCover {
			return risks[i].DaysOfCover < risks[j].DaysOfCover
		}
		return risks[i].SKU < risks[j].SKU
	})
}
