package memory

import (
	"fmt"

	"github.com/avelkar/supplysight/pkg/domain/entities"
	"github.com/avelkar/supplysight/pkg/domain/repositories"
)

// SupplierRepository provides in-memory supplier master storage
type SupplierRepository struct {
	suppliers []entities.Supplier
	byID      map[string]int
}

// NewSupplierRepository creates a new in-memory supplier repository
func NewSupplierRepository(expectedSuppliers int) *SupplierRepository {
	return &SupplierRepository{
		suppliers: make([]entities.Supplier, 0, expectedSuppliers),
		byID:      make(map[string]int, expectedSuppliers),
	}
}

// Verify interface compliance
var _ repositories.SupplierRepository = (*SupplierRepository)(nil)

// LoadSuppliers loads suppliers into the repository
func (r *SupplierRepository) LoadSuppliers(suppliers []*entities.Supplier) error {
	for _, supplier := range suppliers {
		r.AddSupplier(*supplier)
	}
	return nil
}

// AddSupplier adds a supplier. A duplicate ID replaces the existing entry.
func (r *SupplierRepository) AddSupplier(supplier entities.Supplier) {
	if index, exists := r.byID[supplier.SupplierID]; exists {
		r.suppliers[index] = supplier
		return
	}
	r.byID[supplier.SupplierID] = len(r.suppliers)
	r.suppliers = append(r.suppliers, supplier)
}

// GetSupplier returns a supplier by ID
func (r *SupplierRepository) GetSupplier(supplierID string) (*entities.Supplier, error) {
	index, exists := r.byID[supplierID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrSupplierNotFound, supplierID)
	}
	return &r.suppliers[index], nil
}

// GetAllSuppliers returns all suppliers in load order
func (r *SupplierRepository) GetAllSuppliers() ([]*entities.Supplier, error) {
	suppliers := make([]*entities.Supplier, 0, len(r.suppliers))
	for i := range r.suppliers {
		suppliers = append(suppliers, &r.suppliers[i])
	}
	return suppliers, nil
}
