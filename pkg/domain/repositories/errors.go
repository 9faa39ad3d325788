package repositories

import "errors"

// Sentinel errors shared by repository implementations
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrSnapshotNotFound = errors.New("stock snapshot not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)
