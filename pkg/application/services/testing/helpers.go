// Package testing provides shared builders for application service tests.
package testing

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// MustCreateItem builds an item for tests, panicking on validation error
func MustCreateItem(
	sku, category string,
	unitCost, unitPrice float64,
	supplierID string,
	leadTimeDays int,
	leadTimeStdDev float64,
) *entities.Item {
	item, err := entities.NewItem(
		entities.SKU(sku),
		"test "+sku,
		category,
		decimal.NewFromFloat(unitCost),
		decimal.NewFromFloat(unitPrice),
		supplierID,
		leadTimeDays,
		leadTimeStdDev,
		"each",
	)
	if err != nil {
		panic(err)
	}
	return item
}

// MustCreateSupplier builds a supplier for tests, panicking on validation error
func MustCreateSupplier(
	supplierID string,
	avgLeadTimeDays, leadTimeStdDev float64,
	fillRate, onTimeRate, defectRate float64,
) *entities.Supplier {
	supplier, err := entities.NewSupplier(
		supplierID, "Supplier "+supplierID, "US",
		avgLeadTimeDays, leadTimeStdDev,
		fillRate, onTimeRate, defectRate,
	)
	if err != nil {
		panic(err)
	}
	return supplier
}

// MustCreateSnapshot builds a stock snapshot for tests
func MustCreateSnapshot(
	sku, location string,
	onHand, onOrder, allocated entities.Quantity,
) *entities.StockSnapshot {
	snapshot, err := entities.NewStockSnapshot(
		entities.SKU(sku), location, onHand, onOrder, allocated,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		panic(err)
	}
	return snapshot
}

// MustCreateSeries builds a gap-free daily demand series starting at a
// fixed date
func MustCreateSeries(sku, location string, values []float64) *entities.DemandSeries {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]entities.DemandPoint, len(values))
	for i, v := range values {
		points[i] = entities.DemandPoint{Period: start.AddDate(0, 0, i), Quantity: v}
	}

	series, err := entities.NewDemandSeries(entities.SKU(sku), location, entities.Daily, points)
	if err != nil {
		panic(err)
	}
	return series
}

// GenerateSales produces a deterministic daily sales history with level,
// weekly seasonality and noise, for pipeline and benchmark tests
func GenerateSales(
	sku, location string,
	start time.Time,
	days int,
	level float64,
	seed int64,
) []*entities.SalesRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]*entities.SalesRecord, 0, days)

	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		seasonal := 1 + 0.3*math.Sin(2*math.Pi*float64(day%7)/7)
		noise := 1 + 0.2*(rng.Float64()-0.5)
		quantity := entities.Quantity(math.Max(0, math.Round(level*seasonal*noise)))

		record, err := entities.NewSalesRecord(
			entities.SKU(sku), date, quantity, location, "web",
			decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(9.99)),
		)
		if err != nil {
			panic(err)
		}
		records = append(records, record)
	}
	return records
}
