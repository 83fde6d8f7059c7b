package partner

import (
	"context"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactFilter defines filtering options for contact queries
type ContactFilter struct {
	shared.Filter
	Kind *ContactKind
}

// ContactRepository defines persistence for contacts
type ContactRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Contact, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter ContactFilter) ([]Contact, int64, error)
	Save(ctx context.Context, contact *Contact) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}
