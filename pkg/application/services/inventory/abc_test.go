package inventory

import (
	"testing"
	"time"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

func buildWeeklySeries(t *testing.T, values []float64) *entities.DemandSeries {
	t.Helper()

	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	points := make([]entities.DemandPoint, len(values))
	for i, v := range values {
		points[i] = entities.DemandPoint{Period: start.AddDate(0, 0, 7*i), Quantity: v}
	}

	series, err := entities.NewDemandSeries("SKU-1", "DC", entities.Weekly, points)
	if err != nil {
		t.Fatalf("failed to build series: %v", err)
	}
	return series
}

func TestClassifyABC(t *testing.T) {
	items := []*entities.Item{
		mustItem(t, "SKU-HIGH", 100, 7, 0),
		mustItem(t, "SKU-MID", 10, 7, 0),
		mustItem(t, "SKU-LOW", 1, 7, 0),
	}
	demand := map[entities.SKU]float64{
		"SKU-HIGH": 1000, // value 100000
		"SKU-MID":  1000, // value 10000
		"SKU-LOW":  1000, // value 1000
	}

	classification, err := ClassifyABC(items, demand, DefaultABCThresholds())
	if err != nil {
		t.Fatalf("Expected classification to succeed: %v", err)
	}

	if len(classification.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(classification.Entries))
	}

	// Ranked highest value first
	if classification.Entries[0].SKU != "SKU-HIGH" {
		t.Errorf("Expected SKU-HIGH ranked first, got %s", classification.Entries[0].SKU)
	}

	// The top SKU carries 90.1% of the value on its own. It crosses the
	// A cutoff but stays A; the rest trail into B and C.
	if classification.Entries[0].Class != entities.ClassA {
		t.Errorf("Expected SKU-HIGH in class A as the top value contributor, got %s",
			classification.Entries[0].Class)
	}
	if classification.Entries[1].Class != entities.ClassB {
		t.Errorf("Expected SKU-MID in class B, got %s", classification.Entries[1].Class)
	}
	if classification.Entries[2].Class != entities.ClassC {
		t.Errorf("Expected SKU-LOW in class C, got %s", classification.Entries[2].Class)
	}
}

func TestClassifyABC_GradedShares(t *testing.T) {
	// Value shares 60/15/10/8/4/2/1 percent: the running share before
	// each SKU is 0, 60, 75, 85, 93, 97, 99
	var items []*entities.Item
	demand := make(map[entities.SKU]float64)
	values := map[string]float64{
		"S-01": 60, "S-02": 15, "S-03": 10, "S-04": 8, "S-05": 4, "S-06": 2, "S-07": 1,
	}
	for sku, v := range values {
		items = append(items, mustItem(t, sku, 1, 7, 0))
		demand[entities.SKU(sku)] = v
	}

	classification, err := ClassifyABC(items, demand, DefaultABCThresholds())
	if err != nil {
		t.Fatalf("Expected classification to succeed: %v", err)
	}

	counts := classification.CountByClass()
	if counts[entities.ClassA] != 3 {
		t.Errorf("Expected 3 SKUs in class A, got %d", counts[entities.ClassA])
	}
	if counts[entities.ClassB] != 2 {
		t.Errorf("Expected 2 SKUs in class B, got %d", counts[entities.ClassB])
	}
	if counts[entities.ClassC] != 2 {
		t.Errorf("Expected 2 SKUs in class C, got %d", counts[entities.ClassC])
	}
	if classification.Entries[0].SKU != "S-01" {
		t.Errorf("Expected S-01 ranked first, got %s", classification.Entries[0].SKU)
	}
}

func TestClassifyABC_TieBreakOnSKU(t *testing.T) {
	var items []*entities.Item
	demand := make(map[entities.SKU]float64)
	for _, sku := range []string{"S-03", "S-01", "S-02"} {
		items = append(items, mustItem(t, sku, 10, 7, 0))
		demand[entities.SKU(sku)] = 100
	}

	classification, err := ClassifyABC(items, demand, DefaultABCThresholds())
	if err != nil {
		t.Fatalf("Expected classification to succeed: %v", err)
	}

	// Equal values tie-break on SKU for deterministic order
	if classification.Entries[0].SKU != "S-01" {
		t.Errorf("Expected S-01 ranked first on tie-break, got %s", classification.Entries[0].SKU)
	}
}

func TestClassifyABC_SingleSKU(t *testing.T) {
	items := []*entities.Item{mustItem(t, "SKU-ONLY", 10, 7, 0)}
	demand := map[entities.SKU]float64{"SKU-ONLY": 500}

	classification, err := ClassifyABC(items, demand, DefaultABCThresholds())
	if err != nil {
		t.Fatalf("Expected classification to succeed: %v", err)
	}

	if classification.Entries[0].Class != entities.ClassA {
		t.Errorf("Expected the only SKU in class A, got %s", classification.Entries[0].Class)
	}
}

func TestClassifyABC_RejectsBadInputs(t *testing.T) {
	items := []*entities.Item{mustItem(t, "SKU-1", 10, 7, 0)}

	if _, err := ClassifyABC(nil, nil, DefaultABCThresholds()); err == nil {
		t.Error("Expected error for no items, got nil")
	}
	if _, err := ClassifyABC(items, map[entities.SKU]float64{}, DefaultABCThresholds()); err == nil {
		t.Error("Expected error for zero total value, got nil")
	}
	if _, err := ClassifyABC(items, map[entities.SKU]float64{"SKU-1": 100},
		ABCThresholds{AShare: 0.9, BShare: 0.8}); err == nil {
		t.Error("Expected error for inverted thresholds, got nil")
	}
}
