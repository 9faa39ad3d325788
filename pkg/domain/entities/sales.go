package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord represents a single recorded sale (or return) of a SKU
type SalesRecord struct {
	SKU      SKU
	Date     time.Time
	Quantity Quantity
	Location string
	Channel  string
	Revenue  decimal.Decimal
}

// NewSalesRecord creates a validated SalesRecord. Negative quantities are
// accepted and denote returns; the preprocessor nets them out.
func NewSalesRecord(
	sku SKU,
	date time.Time,
	quantity Quantity,
	location, channel string,
	revenue decimal.Decimal,
) (*SalesRecord, error) {
	if string(sku) == "" {
		return nil, fmt.Errorf("sku cannot be empty")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date cannot be zero")
	}
	if location == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}

	return &SalesRecord{
		SKU:      sku,
		Date:     date,
		Quantity: quantity,
		Location: location,
		Channel:  channel,
		Revenue:  revenue,
	}, nil
}

// IsReturn reports whether the record is a customer return
func (r *SalesRecord) IsReturn() bool {
	return r.Quantity < 0
}
