package repositories

import "github.com/avelkar/supplysight/pkg/domain/entities"

// SupplierRepository provides access to supplier master data
type SupplierRepository interface {
	GetSupplier(supplierID string) (*entities.Supplier, error)
	GetAllSuppliers() ([]*entities.Supplier, error)
	LoadSuppliers(suppliers []*entities.Supplier) error
}
