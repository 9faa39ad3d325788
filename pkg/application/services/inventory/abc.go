package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// ABCThresholds are the cumulative value-share cutoffs separating the
// classes. A SKU is classed by the running share accumulated before it,
// so the SKU that carries the total across a cutoff keeps the upper class.
type ABCThresholds struct {
	AShare float64
	BShare float64
}

// DefaultABCThresholds returns the classic 80/95 split
func DefaultABCThresholds() ABCThresholds {
	return ABCThresholds{AShare: 0.80, BShare: 0.95}
}

// annualValue pairs a SKU with its annual consumption value
type annualValue struct {
	sku   entities.SKU
	value decimal.Decimal
}

// ClassifyABC ranks SKUs by annual consumption value (annual demand times
// unit cost) and assigns classes by cumulative value share. Ties rank by
// SKU for deterministic output.
func ClassifyABC(
	items []*entities.Item,
	annualDemand map[entities.SKU]float64,
	thresholds ABCThresholds,
) (*entities.ABCClassification, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no items to classify")
	}
	if thresholds.AShare <= 0 || thresholds.AShare >= thresholds.BShare || thresholds.BShare >= 1 {
		return nil, fmt.Errorf("thresholds must satisfy 0 < A < B < 1, got A=%g B=%g",
			thresholds.AShare, thresholds.BShare)
	}

	values := make([]annualValue, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		demand := annualDemand[item.SKU]
		value := item.UnitCost.Mul(decimal.NewFromFloat(demand))
		values = append(values, annualValue{sku: item.SKU, value: value})
		total = total.Add(value)
	}

	if total.Sign() <= 0 {
		return nil, fmt.Errorf("total annual value is zero, nothing to rank")
	}

	sort.Slice(values, func(i, j int) bool {
		cmp := values[i].value.Cmp(values[j].value)
		if cmp != 0 {
			return cmp > 0
		}
		return values[i].sku < values[j].sku
	})

	classification := &entities.ABCClassification{
		Entries:    make([]entities.ABCEntry, 0, len(values)),
		TotalValue: total,
	}

	cumulative := 0.0
	for _, v := range values {
		share, _ := v.value.Div(total).Float64()

		// Class is decided by the running share before this SKU, so the
		// SKU that carries the total across a cutoff stays in the upper
		// class. The top SKU is always A.
		var class entities.ABCClass
		switch {
		case cumulative < thresholds.AShare:
			class = entities.ClassA
		case cumulative < thresholds.BShare:
			class = entities.ClassB
		default:
			class = entities.ClassC
		}
		cumulative += share

		classification.Entries = append(classification.Entries, entities.ABCEntry{
			SKU:             v.sku,
			Class:           class,
			AnnualValue:     v.value.Round(2),
			ValueShare:      share,
			CumulativeShare: cumulative,
		})
	}

	return classification, nil
}
