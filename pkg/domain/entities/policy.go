package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InventoryPolicy represents the computed replenishment parameters for a
// SKU at a location
type InventoryPolicy struct {
	SKU               SKU             `json:"sku"`
	Location          string          `json:"location"`
	EOQ               Quantity        `json:"eoq"`
	SafetyStock       Quantity        `json:"safety_stock"`
	ReorderPoint      Quantity        `json:"reorder_point"`
	AnnualDemand      float64         `json:"annual_demand"`
	DemandDailyMean   float64         `json:"demand_daily_mean"`
	DemandDailyStdDev float64         `json:"demand_daily_std_dev"`
	ServiceLevel      float64         `json:"service_level"`
	OrdersPerYear     float64         `json:"orders_per_year"`
	Turnover          float64         `json:"inventory_turnover"`
	DaysOfSupply      float64         `json:"days_of_supply"`
	AnnualHoldingCost decimal.Decimal `json:"annual_holding_cost"`
}

// NewInventoryPolicy creates a validated InventoryPolicy
func NewInventoryPolicy(
	sku SKU,
	location string,
	eoq, safetyStock, reorderPoint Quantity,
	annualDemand float64,
	serviceLevel float64,
) (*InventoryPolicy, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if location == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if eoq <= 0 {
		return nil, fmt.Errorf("eoq must be positive, got %d", eoq)
	}
	if safetyStock < 0 {
		return nil, fmt.Errorf("safety stock cannot be negative, got %d", safetyStock)
	}
	if reorderPoint < 0 {
		return nil, fmt.Errorf("reorder point cannot be negative, got %d", reorderPoint)
	}
	if annualDemand < 0 {
		return nil, fmt.Errorf("annual demand cannot be negative, got %g", annualDemand)
	}
	if serviceLevel <= 0 || serviceLevel >= 1 {
		return nil, fmt.Errorf("service level must be between 0 and 1 exclusive, got %g", serviceLevel)
	}

	return &InventoryPolicy{
		SKU:          sku,
		Location:     location,
		EOQ:          eoq,
		SafetyStock:  safetyStock,
		ReorderPoint: reorderPoint,
		AnnualDemand: annualDemand,
		ServiceLevel: serviceLevel,
	}, nil
}
