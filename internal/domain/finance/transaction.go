package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionType is the direction of a money movement
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// IsValid checks if the type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense posted against an account
type Transaction struct {
	shared.StoreAggregateRoot
	AccountID   uuid.UUID       `json:"account_id"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	ContactID   *uuid.UUID      `json:"contact_id,omitempty"`
}

// TransactionInput carries the editable fields of a transaction
type TransactionInput struct {
	AccountID   uuid.UUID
	Type        TransactionType
	Amount      int64
	Date        time.Time
	Description string
	Reference   string
	ContactID   *uuid.UUID
}

// NewTransaction validates input and creates a transaction
func NewTransaction(storeID uuid.UUID, input TransactionInput) (*Transaction, error) {
	if err := validateTransaction(input); err != nil {
		return nil, err
	}
	t := &Transaction{StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID)}
	t.assign(input)
	return t, nil
}

// Update replaces the editable fields
func (t *Transaction) Update(input TransactionInput) error {
	if err := validateTransaction(input); err != nil {
		return err
	}
	t.assign(input)
	t.IncrementVersion()
	return nil
}

// SignedAmount is positive for income and negative for expense
func (t *Transaction) SignedAmount() int64 {
	if t.Type == TransactionExpense {
		return -t.Amount
	}
	return t.Amount
}

func (t *Transaction) assign(input TransactionInput) {
	t.AccountID = input.AccountID
	t.Type = input.Type
	t.Amount = input.Amount
	t.Date = input.Date
	t.Description = strings.TrimSpace(input.Description)
	t.Reference = strings.TrimSpace(input.Reference)
	t.ContactID = input.ContactID
}

func validateTransaction(input TransactionInput) error {
	if input.AccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if !input.Type.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", fmt.Sprintf("Unknown transaction type %q", input.Type))
	}
	if input.Amount <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if input.Date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	return nil
}

// AccountBalance is opening balance plus income minus expense
func AccountBalance(opening int64, txns []Transaction) int64 {
	balance := opening
	for i := range txns {
		balance += txns[i].SignedAmount()
	}
	return balance
}
