package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// SupplierRepository persists the supplier master using a *sql.DB handle
type SupplierRepository struct {
	db *sql.DB
}

// NewSupplierRepository returns a repository backed by a pooled DB connection
func NewSupplierRepository(db *sql.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

const supplierColumns = `supplier_id, name, country, avg_lead_time_days,
       lead_time_std_dev, fill_rate, on_time_rate, defect_rate`

// GetSupplier fetches a supplier by ID
func (r *SupplierRepository) GetSupplier(supplierID string) (*entities.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1`

	var supplier entities.Supplier
	err := r.db.QueryRow(query, supplierID).Scan(
		&supplier.SupplierID, &supplier.Name, &supplier.Country,
		&supplier.AvgLeadTimeDays, &supplier.LeadTimeStdDevDays,
		&supplier.FillRate, &supplier.OnTimeRate, &supplier.DefectRate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repositories.ErrSupplierNotFound, supplierID)
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &supplier, nil
}

// GetAllSuppliers returns the supplier master ordered by ID
func (r *SupplierRepository) GetAllSuppliers() ([]*entities.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY supplier_id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entities.Supplier
	for rows.Next() {
		var supplier entities.Supplier
		err := rows.Scan(
			&supplier.SupplierID, &supplier.Name, &supplier.Country,
			&supplier.AvgLeadTimeDays, &supplier.LeadTimeStdDevDays,
			&supplier.FillRate, &supplier.OnTimeRate, &supplier.DefectRate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, &supplier)
	}
	return suppliers, rows.Err()
}

// LoadSuppliers upserts suppliers into the supplier master
func (r *SupplierRepository) LoadSuppliers(suppliers []*entities.Supplier) error {
	const upsert = `
        INSERT INTO suppliers (supplier_id, name, country, avg_lead_time_days,
                               lead_time_std_dev, fill_rate, on_time_rate, defect_rate)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (supplier_id) DO UPDATE SET
            name = EXCLUDED.name,
            country = EXCLUDED.country,
            avg_lead_time_days = EXCLUDED.avg_lead_time_days,
            lead_time_std_dev = EXCLUDED.lead_time_std_dev,
            fill_rate = EXCLUDED.fill_rate,
            on_time_rate = EXCLUDED.on_time_rate,
            defect_rate = EXCLUDED.defect_rate
    `

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin load suppliers: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsert)
	if err != nil {
		return fmt.Errorf("prepare load suppliers: %w", err)
	}
	defer stmt.Close()

	for _, supplier := range suppliers {
		_, err := stmt.Exec(
			supplier.SupplierID, supplier.Name, supplier.Country,
			supplier.AvgLeadTimeDays, supplier.LeadTimeStdDevDays,
			supplier.FillRate, supplier.OnTimeRate, supplier.DefectRate,
		)
		if err != nil {
			return fmt.Errorf("insert supplier %s: %w", supplier.SupplierID, err)
		}
	}

	return tx.Commit()
}
