package memory

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// ItemRepository provides in-memory item master storage
type ItemRepository struct {
	items    []entities.Item
	itemsMap map[entities.SKU]int
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository(expectedItems int) *ItemRepository {
	return &ItemRepository{
		items:    make([]entities.Item, 0, expectedItems),
		itemsMap: make(map[entities.SKU]int, expectedItems),
	}
}

// Verify interface compliance
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// LoadItems loads items into the repository
func (r *ItemRepository) LoadItems(items []*entities.Item) error {
	for _, item := range items {
		r.AddItem(*item)
	}
	return nil
}

// AddItem adds an item to the repository. A duplicate SKU replaces the
// existing entry.
func (r *ItemRepository) AddItem(item entities.Item) {
	if index, exists := r.itemsMap[item.SKU]; exists {
		r.items[index] = item
		return
	}
	r.itemsMap[item.SKU] = len(r.items)
	r.items = append(r.items, item)
}

// GetItem returns item master data for a SKU
func (r *ItemRepository) GetItem(sku entities.SKU) (*entities.Item, error) {
	index, exists := r.itemsMap[sku]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrItemNotFound, sku)
	}
	return &r.items[index], nil
}

// GetAllItems returns all items in load order
func (r *ItemRepository) GetAllItems() ([]*entities.Item, error) {
	var items []*entities.Item
	for i := range r.items {
		items = append(items, &r.items[i])
	}
	return items, nil
}

// GetItemsByCategory returns the items in a category, in load order
func (r *ItemRepository) GetItemsByCategory(category string) ([]*entities.Item, error) {
	var items []*entities.Item
	for i := range r.items {
		if r.items[i].Category == category {
			items = append(items, &r.items[i])
		}
	}
	return items, nil
}
