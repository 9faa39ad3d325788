package entities

import (
	"fmt"
	"time"
)

// StockSnapshot represents the inventory position of a SKU at a location
// as of a point in time
type StockSnapshot struct {
	SKU       SKU
	Location  string
	OnHand    Quantity
	OnOrder   Quantity
	Allocated Quantity
	AsOf      time.Time
}

// NewStockSnapshot creates a validated StockSnapshot
func NewStockSnapshot(
	sku SKU,
	location string,
	onHand, onOrder, allocated Quantity,
	asOf time.Time,
) (*StockSnapshot, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if location == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if onHand < 0 {
		return nil, fmt.Errorf("on hand cannot be negative, got %d", onHand)
	}
	if onOrder < 0 {
		return nil, fmt.Errorf("on order cannot be negative, got %d", onOrder)
	}
	if allocated < 0 {
		return nil, fmt.Errorf("allocated cannot be negative, got %d", allocated)
	}
	if asOf.IsZero() {
		return nil, fmt.Errorf("as of date cannot be zero")
	}

	return &StockSnapshot{
		SKU:       sku,
		Location:  location,
		OnHand:    onHand,
		OnOrder:   onOrder,
		Allocated: allocated,
		AsOf:      asOf,
	}, nil
}

// NetPosition returns the projected available quantity: on hand plus on
// order minus allocations
func (s *StockSnapshot) NetPosition() Quantity {
	return s.OnHand + s.OnOrder - s.Allocated
}
