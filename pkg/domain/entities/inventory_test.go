package entities

import (
	"strings"
	"testing"
	"time"
)

func TestStockSnapshot_Validation(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	snapshot, err := NewStockSnapshot("SKU-1", "DC-EAST", 120, 40, 25, asOf)
	if err != nil {
		t.Fatalf("Expected valid snapshot creation to succeed: %v", err)
	}
	if snapshot.NetPosition() != 135 {
		t.Errorf("Expected net position 135, got %d", snapshot.NetPosition())
	}

	testCases := []struct {
		name        string
		sku         SKU
		location    string
		onHand      Quantity
		onOrder     Quantity
		allocated   Quantity
		asOf        time.Time
		expectError string
	}{
		{"empty sku", "", "DC", 1, 0, 0, asOf, "sku cannot be empty"},
		{"empty location", "SKU-1", "", 1, 0, 0, asOf, "location cannot be empty"},
		{"negative on hand", "SKU-1", "DC", -1, 0, 0, asOf, "on hand cannot be negative, got -1"},
		{"negative on order", "SKU-1", "DC", 1, -2, 0, asOf, "on order cannot be negative, got -2"},
		{"negative allocated", "SKU-1", "DC", 1, 0, -3, asOf, "allocated cannot be negative, got -3"},
		{"zero as of", "SKU-1", "DC", 1, 0, 0, time.Time{}, "as of date cannot be zero"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStockSnapshot(tc.sku, tc.location, tc.onHand, tc.onOrder, tc.allocated, tc.asOf)
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tc.expectError)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestSupplier_LeadTimeCV(t *testing.T) {
	supplier, err := NewSupplier("SUP-1", "Acme Components", "DE", 10, 2.5, 0.97, 0.92, 0.01)
	if err != nil {
		t.Fatalf("Expected valid supplier creation to succeed: %v", err)
	}
	if supplier.LeadTimeCV() != 0.25 {
		t.Errorf("Expected lead time CV 0.25, got %g", supplier.LeadTimeCV())
	}

	if _, err := NewSupplier("SUP-2", "Bad Rate", "US", 5, 0, 1.5, 0.9, 0); err == nil {
		t.Error("Expected fill rate validation error, got nil")
	}
	if _, err := NewSupplier("", "No ID", "US", 5, 0, 0.9, 0.9, 0); err == nil {
		t.Error("Expected supplier id validation error, got nil")
	}
}
