package memory

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// snapshotKey identifies a stock position by SKU and location
type snapshotKey struct {
	sku      entities.SKU
	location string
}

// InventoryRepository provides in-memory stock snapshot storage
type InventoryRepository struct {
	snapshots []entities.StockSnapshot
	byPair    map[snapshotKey]int
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository(expectedSnapshots int) *InventoryRepository {
	return &InventoryRepository{
		snapshots: make([]entities.StockSnapshot, 0, expectedSnapshots),
		byPair:    make(map[snapshotKey]int, expectedSnapshots),
	}
}

// Verify interface compliance
var _ repositories.InventoryRepository = (*InventoryRepository)(nil)

// LoadSnapshots loads stock snapshots into the repository
func (r *InventoryRepository) LoadSnapshots(snapshots []*entities.StockSnapshot) error {
	for _, snapshot := range snapshots {
		r.AddSnapshot(*snapshot)
	}
	return nil
}

// AddSnapshot adds a stock snapshot. A later snapshot for the same SKU and
// location replaces the earlier one.
func (r *InventoryRepository) AddSnapshot(snapshot entities.StockSnapshot) {
	key := snapshotKey{sku: snapshot.SKU, location: snapshot.Location}
	if index, exists := r.byPair[key]; exists {
		r.snapshots[index] = snapshot
		return
	}
	r.byPair[key] = len(r.snapshots)
	r.snapshots = append(r.snapshots, snapshot)
}

// GetSnapshot returns the stock position of a SKU at a location
func (r *InventoryRepository) GetSnapshot(sku entities.SKU, location string) (*entities.StockSnapshot, error) {
	index, exists := r.byPair[snapshotKey{sku: sku, location: location}]
	if !exists {
		return nil, fmt.Errorf("%w: %s at %s", repositories.ErrSnapshotNotFound, sku, location)
	}
	return &r.snapshots[index], nil
}

// GetAllSnapshots returns all snapshots in load order
func (r *InventoryRepository) GetAllSnapshots() ([]*entities.StockSnapshot, error) {
	snapshots := make([]*entities.StockSnapshot, 0, len(r.snapshots))
	for i := range r.snapshots {
		snapshots = append(snapshots, &r.snapshots[i])
	}
	return snapshots, nil
}
