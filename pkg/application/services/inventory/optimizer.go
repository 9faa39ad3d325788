package inventory

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	domainservices "github.com/avelkar/supplysight/pkg/domain/services"
)

// Config holds the cost and service assumptions behind policy computation
type Config struct {
	// OrderingCost is the fixed cost per purchase order
	OrderingCost decimal.Decimal
	// HoldingRate is the annual holding cost as a fraction of unit cost
	HoldingRate float64
	// ServiceLevel is the target cycle service level in (0, 1)
	ServiceLevel float64
}

// DefaultConfig returns standard planning assumptions
func DefaultConfig() Config {
	return Config{
		OrderingCost: decimal.NewFromInt(50),
		HoldingRate:  0.25,
		ServiceLevel: 0.95,
	}
}

// DemandStats summarizes the demand a policy is computed against
type DemandStats struct {
	AnnualDemand float64
	DailyMean    float64
	DailyStdDev  float64
}

// StatsFromSeries converts a demand series into daily-denominated stats.
// Weekly and monthly series are scaled down to daily rates.
func StatsFromSeries(series *entities.DemandSeries, features entities.SeriesFeatures) DemandStats {
	periodsPerYear := series.Frequency.PeriodsPerYear()
	daysPerPeriod := 365.0 / periodsPerYear

	return DemandStats{
		AnnualDemand: features.Mean * periodsPerYear,
		DailyMean:    features.Mean / daysPerPeriod,
		// Independent daily demand: period variance scales linearly with days
		DailyStdDev: features.StdDev / math.Sqrt(daysPerPeriod),
	}
}

// Optimizer computes replenishment policies from demand statistics and
// item economics
type Optimizer struct {
	config Config
	z      float64
}

// NewOptimizer creates an optimizer, resolving the service level to its
// normal z factor once
func NewOptimizer(config Config) (*Optimizer, error) {
	if config.OrderingCost.Sign() <= 0 {
		return nil, fmt.Errorf("ordering cost must be positive, got %s", config.OrderingCost)
	}
	if config.HoldingRate <= 0 {
		return nil, fmt.Errorf("holding rate must be positive, got %g", config.HoldingRate)
	}
	z, err := domainservices.NormInv(config.ServiceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid service level: %w", err)
	}
	return &Optimizer{config: config, z: z}, nil
}

// EOQ returns the economic order quantity for an annual demand and a unit
// cost, rounded up to a whole quantity
func (o *Optimizer) EOQ(annualDemand float64, unitCost decimal.Decimal) (entities.Quantity, error) {
	if annualDemand <= 0 {
		return 0, fmt.Errorf("annual demand must be positive, got %g", annualDemand)
	}
	if unitCost.Sign() <= 0 {
		return 0, fmt.Errorf("unit cost must be positive, got %s", unitCost)
	}

	holdingCost := o.annualHoldingCostPerUnit(unitCost)
	orderingCost, _ := o.config.OrderingCost.Float64()
	eoq := math.Sqrt(2 * annualDemand * orderingCost / holdingCost)
	return entities.Quantity(math.Ceil(eoq)), nil
}

// SafetyStock returns the buffer stock covering demand and lead time
// variability at the configured service level, rounded up
func (o *Optimizer) SafetyStock(stats DemandStats, item *entities.Item) entities.Quantity {
	sigma := leadTimeDemandStdDev(stats, item)
	if sigma == 0 {
		return 0
	}
	return entities.Quantity(math.Ceil(o.z * sigma))
}

// ComputePolicy derives the full replenishment policy for one item from
// its demand statistics
func (o *Optimizer) ComputePolicy(
	item *entities.Item,
	location string,
	stats DemandStats,
) (*entities.InventoryPolicy, error) {
	eoq, err := o.EOQ(stats.AnnualDemand, item.UnitCost)
	if err != nil {
		return nil, fmt.Errorf("eoq for %s: %w", item.SKU, err)
	}

	safetyStock := o.SafetyStock(stats, item)
	reorderPoint := entities.Quantity(math.Ceil(stats.DailyMean*float64(item.LeadTimeDays))) + safetyStock

	policy, err := entities.NewInventoryPolicy(
		item.SKU, location, eoq, safetyStock, reorderPoint,
		stats.AnnualDemand, o.config.ServiceLevel,
	)
	if err != nil {
		return nil, err
	}

	policy.DemandDailyMean = stats.DailyMean
	policy.DemandDailyStdDev = stats.DailyStdDev
	policy.OrdersPerYear = stats.AnnualDemand / float64(eoq)

	// Average cycle stock plus the safety buffer carries the turnover,
	// days of supply, and holding cost figures
	avgUnits := float64(eoq)/2 + float64(safetyStock)
	policy.Turnover = stats.AnnualDemand / avgUnits
	if stats.DailyMean > 0 {
		policy.DaysOfSupply = avgUnits / stats.DailyMean
	}

	avgInventory := decimal.NewFromFloat(avgUnits)
	policy.AnnualHoldingCost = avgInventory.
		Mul(item.UnitCost).
		Mul(decimal.NewFromFloat(o.config.HoldingRate)).
		Round(2)

	return policy, nil
}

// annualHoldingCostPerUnit prices holding one unit for a year
func (o *Optimizer) annualHoldingCostPerUnit(unitCost decimal.Decimal) float64 {
	cost, _ := unitCost.Float64()
	return cost * o.config.HoldingRate
}

// leadTimeDemandStdDev combines demand variability over the lead time with
// lead time variability at the mean demand rate
func leadTimeDemandStdDev(stats DemandStats, item *entities.Item) float64 {
	lt := float64(item.LeadTimeDays)
	demandVar := lt * stats.DailyStdDev * stats.DailyStdDev
	leadVar := stats.DailyMean * stats.DailyMean * item.LeadTimeStdDevDays * item.LeadTimeStdDevDays
	return math.Sqrt(demandVar + leadVar)
}
