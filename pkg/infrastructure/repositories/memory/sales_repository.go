package memory

import (
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// salesKey groups sales records by SKU and location
type salesKey struct {
	sku      entities.SKU
	location string
}

// SalesRepository provides in-memory sales history storage
type SalesRepository struct {
	records []entities.SalesRecord
	byPair  map[salesKey][]int
}

// NewSalesRepository creates a new in-memory sales repository
func NewSalesRepository(expectedRecords int) *SalesRepository {
	return &SalesRepository{
		records: make([]entities.SalesRecord, 0, expectedRecords),
		byPair:  make(map[salesKey][]int),
	}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

// LoadSales loads sales records into the repository
func (r *SalesRepository) LoadSales(records []*entities.SalesRecord) error {
	for _, record := range records {
		r.AddRecord(*record)
	}
	return nil
}

// AddRecord adds a single sales record
func (r *SalesRepository) AddRecord(record entities.SalesRecord) {
	key := salesKey{sku: record.SKU, location: record.Location}
	r.byPair[key] = append(r.byPair[key], len(r.records))
	r.records = append(r.records, record)
}

// GetSales returns the sales history of a SKU at a location in load order
func (r *SalesRepository) GetSales(sku entities.SKU, location string) ([]*entities.SalesRecord, error) {
	indexes := r.byPair[salesKey{sku: sku, location: location}]
	records := make([]*entities.SalesRecord, 0, len(indexes))
	for _, i := range indexes {
		records = append(records, &r.records[i])
	}
	return records, nil
}

// GetAllSales returns every sales record in load order
func (r *SalesRepository) GetAllSales() ([]*entities.SalesRecord, error) {
	records := make([]*entities.SalesRecord, 0, len(r.records))
	for i := range r.records {
		records = append(records, &r.records[i])
	}
	return records, nil
}

// GetSalesBetween returns sales dated in [from, to], in load order
func (r *SalesRepository) GetSalesBetween(from, to time.Time) ([]*entities.SalesRecord, error) {
	var records []*entities.SalesRecord
	for i := range r.records {
		date := r.records[i].Date
		if !date.Before(from) && !date.After(to) {
			records = append(records, &r.records[i])
		}
	}
	return records, nil
}
