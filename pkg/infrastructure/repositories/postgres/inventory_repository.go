package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// InventoryRepository persists stock snapshots using a *sql.DB handle
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository returns a repository backed by a pooled DB connection
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// GetSnapshot fetches the stock position of a SKU at a location
func (r *InventoryRepository) GetSnapshot(sku entities.SKU, location string) (*entities.StockSnapshot, error) {
	const query = `
        SELECT sku, location, on_hand, on_order, allocated, as_of
          FROM stock_snapshots
         WHERE sku = $1 AND location = $2
    `

	var (
		snapshot entities.StockSnapshot
		skuCol   string
	)
	err := r.db.QueryRow(query, string(sku), location).Scan(
		&skuCol, &snapshot.Location,
		&snapshot.OnHand, &snapshot.OnOrder, &snapshot.Allocated, &snapshot.AsOf,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s at %s", repositories.ErrSnapshotNotFound, sku, location)
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	snapshot.SKU = entities.SKU(skuCol)

	return &snapshot, nil
}

// GetAllSnapshots returns every stock position ordered by SKU then location
func (r *InventoryRepository) GetAllSnapshots() ([]*entities.StockSnapshot, error) {
	const query = `
        SELECT sku, location, on_hand, on_order, allocated, as_of
          FROM stock_snapshots
         ORDER BY sku, location
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*entities.StockSnapshot
	for rows.Next() {
		var (
			snapshot entities.StockSnapshot
			sku      string
		)
		err := rows.Scan(&sku, &snapshot.Location,
			&snapshot.OnHand, &snapshot.OnOrder, &snapshot.Allocated, &snapshot.AsOf)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshot.SKU = entities.SKU(sku)
		snapshots = append(snapshots, &snapshot)
	}
	return snapshots, rows.Err()
}

// LoadSnapshots upserts stock positions on their SKU and location key
func (r *InventoryRepository) LoadSnapshots(snapshots []*entities.StockSnapshot) error {
	const upsert = `
        INSERT INTO stock_snapshots (sku, location, on_hand, on_order, allocated, as_of)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (sku, location) DO UPDATE SET
            on_hand = EXCLUDED.on_hand,
            on_order = EXCLUDED.on_order,
            allocated = EXCLUDED.allocated,
            as_of = EXCLUDED.as_of
    `

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin load snapshots: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsert)
	if err != nil {
		return fmt.Errorf("prepare load snapshots: %w", err)
	}
	defer stmt.Close()

	for _, snapshot := range snapshots {
		_, err := stmt.Exec(
			string(snapshot.SKU), snapshot.Location,
			int64(snapshot.OnHand), int64(snapshot.OnOrder), int64(snapshot.Allocated),
			snapshot.AsOf,
		)
		if err != nil {
			return fmt.Errorf("insert snapshot %s at %s: %w", snapshot.SKU, snapshot.Location, err)
		}
	}

	return tx.Commit()
}
