package entities

import "fmt"

// Supplier represents a supplier with its observed delivery performance
type Supplier struct {
	SupplierID         string
	Name               string
	Country            string
	AvgLeadTimeDays    float64
	LeadTimeStdDevDays float64
	FillRate           float64
	OnTimeRate         float64
	DefectRate         float64
}

// NewSupplier creates a validated Supplier. Rates are fractions in [0, 1].
func NewSupplier(
	supplierID, name, country string,
	avgLeadTimeDays, leadTimeStdDevDays float64,
	fillRate, onTimeRate, defectRate float64,
) (*Supplier, error) {
	if supplierID == "" {
		return nil, fmt.Errorf("supplier id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if avgLeadTimeDays <= 0 {
		return nil, fmt.Errorf("average lead time must be positive, got %g", avgLeadTimeDays)
	}
	if leadTimeStdDevDays < 0 {
		return nil, fmt.Errorf("lead time std dev cannot be negative, got %g", leadTimeStdDevDays)
	}
	if fillRate < 0 || fillRate > 1 {
		return nil, fmt.Errorf("fill rate must be between 0 and 1, got %g", fillRate)
	}
	if onTimeRate < 0 || onTimeRate > 1 {
		return nil, fmt.Errorf("on time rate must be between 0 and 1, got %g", onTimeRate)
	}
	if defectRate < 0 || defectRate > 1 {
		return nil, fmt.Errorf("defect rate must be between 0 and 1, got %g", defectRate)
	}

	return &Supplier{
		SupplierID:         supplierID,
		Name:               name,
		Country:            country,
		AvgLeadTimeDays:    avgLeadTimeDays,
		LeadTimeStdDevDays: leadTimeStdDevDays,
		FillRate:           fillRate,
		OnTimeRate:         onTimeRate,
		DefectRate:         defectRate,
	}, nil
}

// LeadTimeCV returns the coefficient of variation of the supplier's lead time
func (s *Supplier) LeadTimeCV() float64 {
	if s.AvgLeadTimeDays == 0 {
		return 0
	}
	return s.LeadTimeStdDevDays / s.AvgLeadTimeDays
}
