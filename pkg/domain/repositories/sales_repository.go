package repositories

import (
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// SalesRepository provides access to sales history
type SalesRepository interface {
	GetSales(sku entities.SKU, location string) ([]*entities.SalesRecord, error)
	GetAllSales() ([]*entities.SalesRecord, error)
	GetSalesBetween(from, to time.Time) ([]*entities.SalesRecord, error)
	LoadSales(records []*entities.SalesRecord) error
}
