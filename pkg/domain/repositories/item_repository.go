package repositories

import "github.com/avelkar/supplysight/pkg/domain/entities"

// ItemRepository provides access to the item master
type ItemRepository interface {
	GetItem(sku entities.SKU) (*entities.Item, error)
	GetAllItems() ([]*entities.Item, error)
	GetItemsByCategory(category string) ([]*entities.Item, error)
	LoadItems(items []*entities.Item) error
}
