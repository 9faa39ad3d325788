package main

import (
	"context"
	"fmt"

	"github.com/avelkar/supplysight/pkg/application/services/orchestration"
	infratesting "github.com/avelkar/supplysight/pkg/infrastructure/testing"
)

func main() {
	ctx := context.Background()

	// Build the bundled demo dataset: five SKUs across two DCs with two
	// years of daily sales
	dataset, err := infratesting.BuildDemoDataset()
	if err != nil {
		fmt.Printf("Failed to build demo dataset: %v\n", err)
		return
	}

	pipeline, err := orchestration.NewAnalyticsPipeline(
		orchestration.DefaultConfig(),
		orchestration.Repositories{
			Items:     dataset.Items,
			Sales:     dataset.Sales,
			Inventory: dataset.Inventory,
			Suppliers: dataset.Suppliers,
		},
		nil, nil,
	)
	if err != nil {
		fmt.Printf("Failed to build pipeline: %v\n", err)
		return
	}

	fmt.Println("Running supply chain analysis on the demo dataset...")
	result, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		return
	}

	fmt.Printf("\nRun %s (%s buckets, %d period horizon)\n",
		result.RunID, result.Frequency, result.Horizon)
	fmt.Printf("Loaded %d items, %d sales records, %d snapshots, %d suppliers\n\n",
		result.Counts.Items, result.Counts.Sales, result.Counts.Snapshots, result.Counts.Suppliers)

	fmt.Println("Forecasts:")
	for _, fc := range result.Forecasts {
		next := 0.0
		if len(fc.Points) > 0 {
			next = fc.Points[0].Value
		}
		fmt.Printf("  %-10s @ %-8s %-18s %-12s MAPE %5.1f%%  next period %.1f\n",
			fc.SKU, fc.Location, fc.Method, fc.Pattern.String(), fc.Accuracy.MAPE, next)
	}

	fmt.Println("\nInventory policies:")
	for _, policy := range result.Policies {
		fmt.Printf("  %-10s @ %-8s EOQ %5d  safety stock %5d  reorder at %5d\n",
			policy.SKU, policy.Location, policy.EOQ, policy.SafetyStock, policy.ReorderPoint)
	}

	if result.ABC != nil {
		fmt.Println("\nABC classes:")
		for _, entry := range result.ABC.Entries {
			fmt.Printf("  %-10s %s  %5.1f%% of annual value\n",
				entry.SKU, entry.Class.String(), entry.ValueShare*100)
		}
	}

	fmt.Println("\nSupplier risk:")
	for _, sr := range result.SupplierRisks {
		fmt.Printf("  %-12s score %5.1f (%s)\n", sr.SupplierID, sr.Score, sr.Level.String())
	}

	fmt.Println("\nTop stockout risks:")
	for i, sr := range result.StockoutRisks {
		if i >= 3 {
			break
		}
		fmt.Printf("  %s\n", sr.Summary())
	}

	fmt.Printf("\nCompleted in %v\n", result.TotalElapsed())
}
