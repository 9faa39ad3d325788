package memory

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

func mustSnapshot(t *testing.T, sku, location string, onHand entities.Quantity) *entities.StockSnapshot {
	t.Helper()

	snapshot, err := entities.NewStockSnapshot(
		entities.SKU(sku), location, onHand, 0, 0,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("failed to create snapshot: %v", err)
	}
	return snapshot
}

func TestInventoryRepository_LoadAndGet(t *testing.T) {
	repo := NewInventoryRepository(2)

	snapshots := []*entities.StockSnapshot{
		mustSnapshot(t, "SKU-1", "DC-EAST", 100),
		mustSnapshot(t, "SKU-1", "DC-WEST", 40),
	}
	if err := repo.LoadSnapshots(snapshots); err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}

	east, err := repo.GetSnapshot("SKU-1", "DC-EAST")
	if err != nil {
		t.Fatalf("Expected to find the east snapshot: %v", err)
	}
	if east.OnHand != 100 {
		t.Errorf("Expected on hand 100, got %d", east.OnHand)
	}

	if _, err := repo.GetSnapshot("SKU-1", "DC-NORTH"); !errors.Is(err, repositories.ErrSnapshotNotFound) {
		t.Errorf("Expected ErrSnapshotNotFound for missing location, got %v", err)
	}

	all, err := repo.GetAllSnapshots()
	if err != nil {
		t.Fatalf("Expected GetAllSnapshots to succeed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 snapshots, got %d", len(all))
	}
}

func TestInventoryRepository_LaterSnapshotReplaces(t *testing.T) {
	repo := NewInventoryRepository(1)

	_ = repo.LoadSnapshots([]*entities.StockSnapshot{
		mustSnapshot(t, "SKU-1", "DC-EAST", 100),
		mustSnapshot(t, "SKU-1", "DC-EAST", 60),
	})

	snapshot, err := repo.GetSnapshot("SKU-1", "DC-EAST")
	if err != nil {
		t.Fatalf("Expected to find the snapshot: %v", err)
	}
	if snapshot.OnHand != 60 {
		t.Errorf("Expected the later snapshot to win, got on hand %d", snapshot.OnHand)
	}
}

func TestSalesRepository_GroupsBySKUAndLocation(t *testing.T) {
	repo := NewSalesRepository(3)

	mustSale := func(sku, location string, day int, qty entities.Quantity) *entities.SalesRecord {
		record, err := entities.NewSalesRecord(
			entities.SKU(sku),
			time.Date(2025, 5, day, 0, 0, 0, 0, time.UTC),
			qty, location, "web", decimal.NewFromInt(100),
		)
		if err != nil {
			t.Fatalf("failed to create sales record: %v", err)
		}
		return record
	}

	_ = repo.LoadSales([]*entities.SalesRecord{
		mustSale("SKU-1", "DC-EAST", 1, 5),
		mustSale("SKU-1", "DC-WEST", 2, 3),
		mustSale("SKU-1", "DC-EAST", 3, 7),
	})

	east, err := repo.GetSales("SKU-1", "DC-EAST")
	if err != nil {
		t.Fatalf("Expected sales lookup to succeed: %v", err)
	}
	if len(east) != 2 {
		t.Fatalf("Expected 2 east records, got %d", len(east))
	}
	if east[0].Quantity != 5 || east[1].Quantity != 7 {
		t.Errorf("Expected load order preserved, got %d then %d", east[0].Quantity, east[1].Quantity)
	}

	window, err := repo.GetSalesBetween(
		time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("Expected windowed lookup to succeed: %v", err)
	}
	if len(window) != 2 {
		t.Errorf("Expected 2 records in the window, got %d", len(window))
	}
}
