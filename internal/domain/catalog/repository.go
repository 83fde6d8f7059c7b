package catalog

import (
	"context"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductFilter defines filtering options for product queries
type ProductFilter struct {
	shared.Filter
	Category string
	Status   *ProductStatus
}

// ProductRepository defines persistence for products
type ProductRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Product, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ProductFilter) ([]Product, int64, error)
	// ExistingIDs returns the subset of ids that exist for the store
	ExistingIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error)
	ExistsBySKU(ctx context.Context, storeID uuid.UUID, sku string) (bool, error)
	Save(ctx context.Context, product *Product) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}
