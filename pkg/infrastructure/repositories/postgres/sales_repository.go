package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// SalesRepository persists sales history using a *sql.DB handle
type SalesRepository struct {
	db *sql.DB
}

// NewSalesRepository returns a repository backed by a pooled DB connection
func NewSalesRepository(db *sql.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

const salesColumns = `sku, sale_date, quantity, location, channel, revenue`

// GetSales returns the sales history of a SKU at a location, oldest first
func (r *SalesRepository) GetSales(sku entities.SKU, location string) ([]*entities.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales
               WHERE sku = $1 AND location = $2 ORDER BY sale_date, id`
	return r.querySales(query, string(sku), location)
}

// GetAllSales returns every sales record, oldest first
func (r *SalesRepository) GetAllSales() ([]*entities.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales ORDER BY sale_date, id`
	return r.querySales(query)
}

// GetSalesBetween returns sales dated in [from, to], oldest first
func (r *SalesRepository) GetSalesBetween(from, to time.Time) ([]*entities.SalesRecord, error) {
	query := `SELECT ` + salesColumns + ` FROM sales
               WHERE sale_date >= $1 AND sale_date <= $2 ORDER BY sale_date, id`
	return r.querySales(query, from, to)
}

func (r *SalesRepository) querySales(query string, args ...interface{}) ([]*entities.SalesRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var records []*entities.SalesRecord
	for rows.Next() {
		var (
			record  entities.SalesRecord
			sku     string
			revenue string
		)
		err := rows.Scan(&sku, &record.Date, &record.Quantity, &record.Location, &record.Channel, &revenue)
		if err != nil {
			return nil, fmt.Errorf("scan sales record: %w", err)
		}
		record.SKU = entities.SKU(sku)
		if record.Revenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("invalid revenue %q: %w", revenue, err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// LoadSales bulk-inserts sales history with COPY
func (r *SalesRepository) LoadSales(records []*entities.SalesRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin load sales: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn("sales", "sku", "sale_date", "quantity", "location", "channel", "revenue"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, record := range records {
		_, err := stmt.Exec(
			string(record.SKU), record.Date, int64(record.Quantity),
			record.Location, record.Channel, record.Revenue.String(),
		)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("copy sales record: %w", err)
		}
	}

	// Flush the COPY buffer
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}

	return tx.Commit()
}
