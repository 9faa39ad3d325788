package entities

import (
	"github.com/shopspring/decimal"
)

// ABCClass represents the value-contribution class of a SKU
type ABCClass int

const (
	ClassA ABCClass = iota
	ClassB
	ClassC
)

// MarshalJSON renders the class as its letter
func (c ABCClass) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// String method for ABCClass enum
func (c ABCClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return "Unknown"
	}
}

// ABCEntry represents one SKU's position in an ABC classification
type ABCEntry struct {
	SKU             SKU             `json:"sku"`
	Class           ABCClass        `json:"class"`
	AnnualValue     decimal.Decimal `json:"annual_value"`
	ValueShare      float64         `json:"value_share"`
	CumulativeShare float64         `json:"cumulative_share"`
}

// ABCClassification represents a complete ranking of SKUs by annual
// consumption value, highest value first
type ABCClassification struct {
	Entries    []ABCEntry      `json:"entries"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// CountByClass returns the number of entries in each class
func (c *ABCClassification) CountByClass() map[ABCClass]int {
	counts := make(map[ABCClass]int)
	for _, e := range c.Entries {
		counts[e.Class]++
	}
	return counts
}
