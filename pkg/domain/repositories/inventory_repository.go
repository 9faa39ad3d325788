package repositories

import "github.com/avelkar/supplysight/pkg/domain/entities"

// InventoryRepository provides access to stock position snapshots
type InventoryRepository interface {
	GetSnapshot(sku entities.SKU, location string) (*entities.StockSnapshot, error)
	GetAllSnapshots() ([]*entities.StockSnapshot, error)
	LoadSnapshots(snapshots []*entities.StockSnapshot) error
}
