package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// ItemRepository persists the item master using a *sql.DB handle
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository returns a repository backed by a pooled DB connection
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

const itemColumns = `sku, description, category, unit_cost, unit_price,
       supplier_id, lead_time_days, lead_time_std_dev, unit_of_measure`

// GetItem fetches an item by SKU
func (r *ItemRepository) GetItem(sku entities.SKU) (*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`

	item, err := scanItem(r.db.QueryRow(query, string(sku)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repositories.ErrItemNotFound, sku)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// GetAllItems returns the full item master ordered by SKU
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY sku`
	return r.queryItems(query)
}

// GetItemsByCategory returns a category's items ordered by SKU
func (r *ItemRepository) GetItemsByCategory(category string) ([]*entities.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category = $1 ORDER BY sku`
	return r.queryItems(query, category)
}

func (r *ItemRepository) queryItems(query string, args ...interface{}) ([]*entities.Item, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*entities.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LoadItems upserts items into the item master
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	const upsert = `
        INSERT INTO items (sku, description, category, unit_cost, unit_price,
                           supplier_id, lead_time_days, lead_time_std_dev, unit_of_measure)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (sku) DO UPDATE SET
            description = EXCLUDED.description,
            category = EXCLUDED.category,
            unit_cost = EXCLUDED.unit_cost,
            unit_price = EXCLUDED.unit_price,
            supplier_id = EXCLUDED.supplier_id,
            lead_time_days = EXCLUDED.lead_time_days,
            lead_time_std_dev = EXCLUDED.lead_time_std_dev,
            unit_of_measure = EXCLUDED.unit_of_measure
    `

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin load items: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsert)
	if err != nil {
		return fmt.Errorf("prepare load items: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		_, err := stmt.Exec(
			string(item.SKU), item.Description, item.Category,
			item.UnitCost.String(), item.UnitPrice.String(),
			item.SupplierID, item.LeadTimeDays, item.LeadTimeStdDevDays, item.UnitOfMeasure,
		)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", item.SKU, err)
		}
	}

	return tx.Commit()
}

// scanner abstracts sql.Row and sql.Rows for shared scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (*entities.Item, error) {
	var (
		item      entities.Item
		sku       string
		unitCost  string
		unitPrice string
	)
	err := row.Scan(
		&sku, &item.Description, &item.Category, &unitCost, &unitPrice,
		&item.SupplierID, &item.LeadTimeDays, &item.LeadTimeStdDevDays, &item.UnitOfMeasure,
	)
	if err != nil {
		return nil, err
	}

	item.SKU = entities.SKU(sku)
	if item.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
		return nil, fmt.Errorf("invalid unit cost %q: %w", unitCost, err)
	}
	if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", unitPrice, err)
	}
	return &item, nil
}
