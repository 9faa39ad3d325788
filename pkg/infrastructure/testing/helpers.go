// Package testing provides a ready-made demo dataset backed by the
// in-memory repositories, used by integration tests and the example
// program.
package testing

import (
	"fmt"
	"time"

	apptesting "github.com/avelkar/supplysight/pkg/application/services/testing"
	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/infrastructure/repositories/memory"
)

// DemoDataset bundles populated repositories for a small retail catalog
type DemoDataset struct {
	Items     *memory.ItemRepository
	Sales     *memory.SalesRepository
	Inventory *memory.InventoryRepository
	Suppliers *memory.SupplierRepository
}

// BuildDemoDataset constructs a retail-style dataset: a handful of SKUs
// across two locations with two years of daily sales. Data is
// deterministic so tests can assert on derived results.
func BuildDemoDataset() (*DemoDataset, error) {
	items := memory.NewItemRepository(16)
	sales := memory.NewSalesRepository(8192)
	inventory := memory.NewInventoryRepository(16)
	suppliers := memory.NewSupplierRepository(4)

	supplierSpecs := []struct {
		id                   string
		leadTime, leadStdDev float64
		fill, onTime, defect float64
	}{
		{"SUP-ACME", 14, 2.5, 0.97, 0.94, 0.01},
		{"SUP-GLOBEX", 28, 7.0, 0.90, 0.82, 0.03},
		{"SUP-INITECH", 7, 1.0, 0.99, 0.98, 0.005},
	}
	for _, s := range supplierSpecs {
		supplier := apptesting.MustCreateSupplier(s.id, s.leadTime, s.leadStdDev, s.fill, s.onTime, s.defect)
		suppliers.AddSupplier(*supplier)
	}

	itemSpecs := []struct {
		sku, category string
		cost, price   float64
		supplierID    string
		leadTime      int
		leadStdDev    float64
		demandLevel   float64
	}{
		{"WIDGET-A", "widgets", 4.50, 12.99, "SUP-ACME", 14, 2.5, 40},
		{"WIDGET-B", "widgets", 6.25, 17.99, "SUP-ACME", 14, 2.5, 18},
		{"GADGET-X", "gadgets", 22.00, 59.99, "SUP-GLOBEX", 28, 7.0, 6},
		{"GADGET-Y", "gadgets", 35.00, 99.99, "SUP-GLOBEX", 28, 7.0, 2},
		{"SPARE-01", "spares", 1.10, 3.49, "SUP-INITECH", 7, 1.0, 90},
	}

	start := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	locations := []string{"DC-EAST", "DC-WEST"}
	seed := int64(1)

	for _, spec := range itemSpecs {
		item := apptesting.MustCreateItem(
			spec.sku, spec.category, spec.cost, spec.price,
			spec.supplierID, spec.leadTime, spec.leadStdDev,
		)
		items.AddItem(*item)

		for _, location := range locations {
			records := apptesting.GenerateSales(spec.sku, location, start, 730, spec.demandLevel, seed)
			seed++
			if err := sales.LoadSales(records); err != nil {
				return nil, fmt.Errorf("loading sales for %s at %s: %w", spec.sku, location, err)
			}

			onHand := entities.Quantity(spec.demandLevel * float64(spec.leadTime) * 1.5)
			snapshot := apptesting.MustCreateSnapshot(
				spec.sku, location,
				onHand, onHand/4, onHand/10,
			)
			inventory.AddSnapshot(*snapshot)
		}
	}

	return &DemoDataset{
		Items:     items,
		Sales:     sales,
		Inventory: inventory,
		Suppliers: suppliers,
	}, nil
}
