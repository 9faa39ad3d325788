package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/avelkar/supplysight/pkg/domain/entities"
)

// Weights control how much each factor contributes to the supplier risk
// score. They must sum to 1.
type Weights struct {
	LeadTimeVariability float64
	FillRate            float64
	OnTime              float64
	DefectRate          float64
	SoleSource          float64
}

// DefaultWeights returns the standard factor weighting
func DefaultWeights() Weights {
	return Weights{
		LeadTimeVariability: 0.25,
		FillRate:            0.20,
		OnTime:              0.20,
		DefectRate:          0.15,
		SoleSource:          0.20,
	}
}

func (w Weights) validate() error {
	for name, v := range map[string]float64{
		"lead_time_variability": w.LeadTimeVariability,
		"fill_rate":             w.FillRate,
		"on_time":               w.OnTime,
		"defect_rate":           w.DefectRate,
		"sole_source":           w.SoleSource,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s cannot be negative, got %g", name, v)
		}
	}
	sum := w.LeadTimeVariability + w.FillRate + w.OnTime + w.DefectRate + w.SoleSource
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1, got %g", sum)
	}
	return nil
}

// SupplierScorer scores suppliers on a 0 (best) to 100 (worst) scale
type SupplierScorer struct {
	weights Weights
}

// NewSupplierScorer creates a scorer after validating the weights
func NewSupplierScorer(weights Weights) (*SupplierScorer, error) {
	if err := weights.validate(); err != nil {
		return nil, err
	}
	return &SupplierScorer{weights: weights}, nil
}

// Score assesses every supplier against its delivery record and sourcing
// exposure. Items determine sole-source exposure: the share of a supplier's
// SKUs for which it is the only source. Results are ranked worst first.
func (s *SupplierScorer) Score(
	suppliers []*entities.Supplier,
	items []*entities.Item,
) ([]*entities.SupplierRisk, error) {
	if len(suppliers) == 0 {
		return nil, fmt.Errorf("no suppliers to score")
	}

	skusBySupplier := make(map[string][]entities.SKU)
	suppliersBySKU := make(map[entities.SKU]map[string]bool)
	for _, item := range items {
		skusBySupplier[item.SupplierID] = append(skusBySupplier[item.SupplierID], item.SKU)
		if suppliersBySKU[item.SKU] == nil {
			suppliersBySKU[item.SKU] = make(map[string]bool)
		}
		suppliersBySKU[item.SKU][item.SupplierID] = true
	}

	risks := make([]*entities.SupplierRisk, 0, len(suppliers))
	for _, supplier := range suppliers {
		risk := s.scoreOne(supplier, skusBySupplier[supplier.SupplierID], suppliersBySKU)
		risks = append(risks, risk)
	}

	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Score != risks[j].Score {
			return risks[i].Score > risks[j].Score
		}
		return risks[i].SupplierID < risks[j].SupplierID
	})

	return risks, nil
}

func (s *SupplierScorer) scoreOne(
	supplier *entities.Supplier,
	skus []entities.SKU,
	suppliersBySKU map[entities.SKU]map[string]bool,
) *entities.SupplierRisk {
	soleSource := 0
	for _, sku := range skus {
		if len(suppliersBySKU[sku]) == 1 {
			soleSource++
		}
	}
	soleShare := 0.0
	if len(skus) > 0 {
		soleShare = float64(soleSource) / float64(len(skus))
	}

	// Each factor is normalized to [0, 1], 1 being worst. Lead time CV is
	// capped at 1 so an extreme supplier cannot drown the other factors.
	leadTimeFactor := math.Min(supplier.LeadTimeCV(), 1)
	fillFactor := 1 - supplier.FillRate
	onTimeFactor := 1 - supplier.OnTimeRate
	defectFactor := math.Min(supplier.DefectRate*5, 1) // 20% defects saturates

	score := 100 * (s.weights.LeadTimeVariability*leadTimeFactor +
		s.weights.FillRate*fillFactor +
		s.weights.OnTime*onTimeFactor +
		s.weights.DefectRate*defectFactor +
		s.weights.SoleSource*soleShare)

	return &entities.SupplierRisk{
		SupplierID:       supplier.SupplierID,
		Name:             supplier.Name,
		Score:            score,
		Level:            BandScore(score),
		LeadTimeFactor:   leadTimeFactor,
		FillRateFactor:   fillFactor,
		OnTimeFactor:     onTimeFactor,
		DefectFactor:     defectFactor,
		SoleSourceFactor: soleShare,
		SoleSourceSKUs:   soleSource,
	}
}

// BandScore maps a 0-100 risk score onto a risk level
func BandScore(score float64) entities.RiskLevel {
	switch {
	case score < 25:
		return entities.RiskLow
	case score < 50:
		return entities.RiskModerate
	case score < 75:
		return entities.RiskHigh
	default:
		return entities.RiskCritical
	}
}
