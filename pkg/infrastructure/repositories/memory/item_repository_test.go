package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

func mustItem(t *testing.T, sku, category string) *entities.Item {
	t.Helper()

	item, err := entities.NewItem(
		entities.SKU(sku), "test item", category,
		decimal.NewFromInt(10), decimal.NewFromInt(15),
		"SUP-1", 7, 1, "each",
	)
	if err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return item
}

func TestItemRepository_LoadAndGet(t *testing.T) {
	repo := NewItemRepository(2)

	items := []*entities.Item{
		mustItem(t, "SKU-1", "widgets"),
		mustItem(t, "SKU-2", "gadgets"),
	}
	if err := repo.LoadItems(items); err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}

	item, err := repo.GetItem("SKU-1")
	if err != nil {
		t.Fatalf("Expected to find SKU-1: %v", err)
	}
	if item.Category != "widgets" {
		t.Errorf("Expected category widgets, got %s", item.Category)
	}

	if _, err := repo.GetItem("SKU-MISSING"); !errors.Is(err, repositories.ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound for missing SKU, got %v", err)
	}

	all, err := repo.GetAllItems()
	if err != nil {
		t.Fatalf("Expected GetAllItems to succeed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 items, got %d", len(all))
	}
}

func TestItemRepository_GetByCategory(t *testing.T) {
	repo := NewItemRepository(3)
	_ = repo.LoadItems([]*entities.Item{
		mustItem(t, "SKU-1", "widgets"),
		mustItem(t, "SKU-2", "gadgets"),
		mustItem(t, "SKU-3", "widgets"),
	})

	widgets, err := repo.GetItemsByCategory("widgets")
	if err != nil {
		t.Fatalf("Expected category lookup to succeed: %v", err)
	}
	if len(widgets) != 2 {
		t.Errorf("Expected 2 widgets, got %d", len(widgets))
	}
}

func TestItemRepository_DuplicateSKUReplaces(t *testing.T) {
	repo := NewItemRepository(1)

	first := mustItem(t, "SKU-1", "widgets")
	second := mustItem(t, "SKU-1", "gadgets")
	_ = repo.LoadItems([]*entities.Item{first, second})

	item, err := repo.GetItem("SKU-1")
	if err != nil {
		t.Fatalf("Expected to find SKU-1: %v", err)
	}
	if item.Category != "gadgets" {
		t.Errorf("Expected the later load to win, got category %s", item.Category)
	}

	all, _ := repo.GetAllItems()
	if len(all) != 1 {
		t.Errorf("Expected 1 item after duplicate load, got %d", len(all))
	}
}

func TestSupplierRepository_LoadAndGet(t *testing.T) {
	repo := NewSupplierRepository(1)

	supplier, err := entities.NewSupplier("SUP-1", "Acme", "US", 10, 2, 0.95, 0.9, 0.01)
	if err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}
	if err := repo.LoadSuppliers([]*entities.Supplier{supplier}); err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}

	got, err := repo.GetSupplier("SUP-1")
	if err != nil {
		t.Fatalf("Expected to find SUP-1: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("Expected name Acme, got %s", got.Name)
	}

	if _, err := repo.GetSupplier("SUP-MISSING"); !errors.Is(err, repositories.ErrSupplierNotFound) {
		t.Errorf("Expected ErrSupplierNotFound for missing supplier, got %v", err)
	}
}
