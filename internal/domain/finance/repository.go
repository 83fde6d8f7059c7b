package finance

import (
	"context"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountFilter defines filtering options for account queries
type AccountFilter struct {
	shared.Filter
	Category   *AccountCategory
	ActiveOnly bool
}

// AccountRepository defines persistence for accounts
type AccountRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Account, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter AccountFilter) ([]Account, int64, error)
	// ListAllForStore returns every account of the store ordered by number
	ListAllForStore(ctx context.Context, storeID uuid.UUID) ([]Account, error)
	// NextNumber returns the next free account number for the store
	NextNumber(ctx context.Context, storeID uuid.UUID) (uint64, error)
	HasChildren(ctx context.Context, storeID, id uuid.UUID) (bool, error)
	Save(ctx context.Context, account *Account) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	shared.Filter
	AccountID *uuid.UUID
	Type      *TransactionType
	From      *time.Time
	To        *time.Time
}

// TransactionRepository defines persistence for transactions
type TransactionRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Transaction, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter TransactionFilter) ([]Transaction, int64, error)
	// SumByAccount returns income minus expense per account
	SumByAccount(ctx context.Context, storeID uuid.UUID) (map[uuid.UUID]int64, error)
	CountByAccount(ctx context.Context, storeID, accountID uuid.UUID) (int64, error)
	Save(ctx context.Context, txn *Transaction) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}

// DocumentFilter defines filtering options for invoice/bill queries
type DocumentFilter struct {
	shared.Filter
	Kind      DocumentKind
	Status    *DocumentStatus
	ContactID *uuid.UUID
	DueBefore *time.Time
}

// DocumentRepository defines persistence for invoices and bills
type DocumentRepository interface {
	FindByIDForStore(ctx context.Context, storeID uuid.UUID, kind DocumentKind, id uuid.UUID) (*Document, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter DocumentFilter) ([]Document, int64, error)
	// NextSequence returns the next document sequence number per store and kind
	NextSequence(ctx context.Context, storeID uuid.UUID, kind DocumentKind) (uint64, error)
	ExistsByNumber(ctx context.Context, storeID uuid.UUID, kind DocumentKind, number string) (bool, error)
	Save(ctx context.Context, doc *Document) error
	DeleteForStore(ctx context.Context, storeID uuid.UUID, kind DocumentKind, id uuid.UUID) error
	// StoresWithDueDocuments lists stores holding sent documents due before the given time
	StoresWithDueDocuments(ctx context.Context, kind DocumentKind, before time.Time) ([]uuid.UUID, error)
}
