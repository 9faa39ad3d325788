package inventory

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

func mustItem(t *testing.T, sku string, unitCost float64, leadTimeDays int, leadTimeStdDev float64) *entities.Item {
	t.Helper()

	item, err := entities.NewItem(
		entities.SKU(sku), "test item", "components",
		decimal.NewFromFloat(unitCost), decimal.NewFromFloat(unitCost*1.5),
		"SUP-1", leadTimeDays, leadTimeStdDev, "each",
	)
	if err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return item
}

func TestOptimizer_EOQ(t *testing.T) {
	optimizer, err := NewOptimizer(Config{
		OrderingCost: decimal.NewFromInt(100),
		HoldingRate:  0.20,
		ServiceLevel: 0.95,
	})
	if err != nil {
		t.Fatalf("Expected optimizer creation to succeed: %v", err)
	}

	// D=10000, S=100, H=0.20*25=5: EOQ = sqrt(2*10000*100/5) = 632.45...
	eoq, err := optimizer.EOQ(10000, decimal.NewFromInt(25))
	if err != nil {
		t.Fatalf("Expected EOQ computation to succeed: %v", err)
	}
	if eoq != 633 {
		t.Errorf("Expected EOQ 633 (rounded up), got %d", eoq)
	}
}

func TestOptimizer_EOQRejectsBadInputs(t *testing.T) {
	optimizer, err := NewOptimizer(DefaultConfig())
	if err != nil {
		t.Fatalf("Expected optimizer creation to succeed: %v", err)
	}

	if _, err := optimizer.EOQ(0, decimal.NewFromInt(10)); err == nil {
		t.Error("Expected error for zero annual demand, got nil")
	}
	if _, err := optimizer.EOQ(1000, decimal.Zero); err == nil {
		t.Error("Expected error for zero unit cost, got nil")
	}
}

func TestOptimizer_SafetyStock(t *testing.T) {
	optimizer, err := NewOptimizer(Config{
		OrderingCost: decimal.NewFromInt(50),
		HoldingRate:  0.25,
		ServiceLevel: 0.95,
	})
	if err != nil {
		t.Fatalf("Expected optimizer creation to succeed: %v", err)
	}

	item := mustItem(t, "SKU-1", 10, 9, 2)
	stats := DemandStats{AnnualDemand: 3650, DailyMean: 10, DailyStdDev: 4}

	// sigma = sqrt(9*16 + 100*4) = sqrt(544), z(0.95) ~ 1.6449
	expected := math.Ceil(1.6448536269514722 * math.Sqrt(544))
	got := optimizer.SafetyStock(stats, item)
	if float64(got) != expected {
		t.Errorf("Expected safety stock %g, got %d", expected, got)
	}
}

func TestOptimizer_SafetyStockZeroVariability(t *testing.T) {
	optimizer, err := NewOptimizer(DefaultConfig())
	if err != nil {
		t.Fatalf("Expected optimizer creation to succeed: %v", err)
	}

	item := mustItem(t, "SKU-1", 10, 7, 0)
	stats := DemandStats{AnnualDemand: 3650, DailyMean: 10, DailyStdDev: 0}

	if got := optimizer.SafetyStock(stats, item); got != 0 {
		t.Errorf("Expected zero safety stock with zero variability, got %d", got)
	}
}

func TestOptimizer_ComputePolicy(t *testing.T) {
	optimizer, err := NewOptimizer(Config{
		OrderingCost: decimal.NewFromInt(50),
		HoldingRate:  0.25,
		ServiceLevel: 0.95,
	})
	if err != nil {
		t.Fatalf("Expected optimizer creation to succeed: %v", err)
	}

	item := mustItem(t, "SKU-1", 20, 10, 1)
	stats := DemandStats{AnnualDemand: 7300, DailyMean: 20, DailyStdDev: 5}

	policy, err := optimizer.ComputePolicy(item, "DC-EAST", stats)
	if err != nil {
		t.Fatalf("Expected policy computation to succeed: %v", err)
	}

	if policy.SKU != "SKU-1" || policy.Location != "DC-EAST" {
		t.Errorf("Expected policy for SKU-1 at DC-EAST, got %s at %s", policy.SKU, policy.Location)
	}
	if policy.EOQ <= 0 {
		t.Errorf("Expected positive EOQ, got %d", policy.EOQ)
	}
	// Reorder point covers lead time demand plus the safety buffer
	if policy.ReorderPoint < entities.Quantity(200)+policy.SafetyStock {
		t.Errorf("Expected reorder point at least %d, got %d",
			200+int(policy.SafetyStock), policy.ReorderPoint)
	}
	if policy.OrdersPerYear <= 0 {
		t.Errorf("Expected positive orders per year, got %g", policy.OrdersPerYear)
	}
	if policy.AnnualHoldingCost.Sign() <= 0 {
		t.Errorf("Expected positive annual holding cost, got %s", policy.AnnualHoldingCost)
	}

	// Turnover and days of supply derive from average inventory
	avgUnits := float64(policy.EOQ)/2 + float64(policy.SafetyStock)
	wantTurnover := stats.AnnualDemand / avgUnits
	if math.Abs(policy.Turnover-wantTurnover) > 1e-9 {
		t.Errorf("Expected turnover %g, got %g", wantTurnover, policy.Turnover)
	}
	wantDays := avgUnits / stats.DailyMean
	if math.Abs(policy.DaysOfSupply-wantDays) > 1e-9 {
		t.Errorf("Expected %g days of supply, got %g", wantDays, policy.DaysOfSupply)
	}
}

func TestStatsFromSeries_WeeklyScaling(t *testing.T) {
	start := buildWeeklySeries(t, []float64{70, 70, 70, 70})

	features := entities.SeriesFeatures{Mean: 70, StdDev: 7}
	stats := StatsFromSeries(start, features)

	if math.Abs(stats.AnnualDemand-70*52) > 1e-9 {
		t.Errorf("Expected annual demand %g, got %g", 70*52.0, stats.AnnualDemand)
	}
	expectedDaily := 70.0 / (365.0 / 52.0)
	if math.Abs(stats.DailyMean-expectedDaily) > 1e-9 {
		t.Errorf("Expected daily mean %g, got %g", expectedDaily, stats.DailyMean)
	}
	if stats.DailyStdDev >= 7 {
		t.Errorf("Expected daily std dev below the weekly value, got %g", stats.DailyStdDev)
	}
}
