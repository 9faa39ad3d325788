package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SKU represents a unique stock keeping unit identifier
type SKU string

// Quantity represents an integer quantity value for discrete stock units
type Quantity int64

// Item represents a catalog item with its costing and sourcing properties
type Item struct {
	SKU                SKU
	Description        string
	Category           string
	UnitCost           decimal.Decimal
	UnitPrice          decimal.Decimal
	SupplierID         string
	LeadTimeDays       int
	LeadTimeStdDevDays float64
	UnitOfMeasure      string
}

// NewItem creates a validated Item
func NewItem(
	sku SKU,
	description, category string,
	unitCost, unitPrice decimal.Decimal,
	supplierID string,
	leadTimeDays int,
	leadTimeStdDevDays float64,
	unitOfMeasure string,
) (*Item, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("unit price cannot be negative, got %s", unitPrice)
	}
	if leadTimeDays <= 0 {
		return nil, fmt.Errorf("lead time must be positive, got %d", leadTimeDays)
	}
	if leadTimeStdDevDays < 0 {
		return nil, fmt.Errorf("lead time std dev cannot be negative, got %g", leadTimeStdDevDays)
	}
	if unitOfMeasure == "" {
		return nil, fmt.Errorf("unit of measure cannot be empty")
	}

	return &Item{
		SKU:                sku,
		Description:        description,
		Category:           category,
		UnitCost:           unitCost,
		UnitPrice:          unitPrice,
		SupplierID:         supplierID,
		LeadTimeDays:       leadTimeDays,
		LeadTimeStdDevDays: leadTimeStdDevDays,
		UnitOfMeasure:      unitOfMeasure,
	}, nil
}

// Margin returns the unit margin (price minus cost)
func (i *Item) Margin() decimal.Decimal {
	return i.UnitPrice.Sub(i.UnitCost)
}
