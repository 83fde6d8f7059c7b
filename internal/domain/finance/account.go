package finance

import (
	"fmt"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountCategory is the top-level classification of a ledger account
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "asset"
	CategoryLiability AccountCategory = "liability"
	CategoryEquity    AccountCategory = "equity"
	CategoryIncome    AccountCategory = "income"
	CategoryExpense   AccountCategory = "expense"
)

// AllCategories lists categories in chart order
var AllCategories = []AccountCategory{
	CategoryAsset,
	CategoryLiability,
	CategoryEquity,
	CategoryIncome,
	CategoryExpense,
}

// OtherPrefix is used for any category outside the enumerated five
const OtherPrefix = "O"

// IsValid checks if the category is one of the enumerated values
func (c AccountCategory) IsValid() bool {
	switch c {
	case CategoryAsset, CategoryLiability, CategoryEquity, CategoryIncome, CategoryExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountCategory
func (c AccountCategory) String() string {
	return string(c)
}

// Label returns a human readable heading for reports
func (c AccountCategory) Label() string {
	switch c {
	case CategoryAsset:
		return "Assets"
	case CategoryLiability:
		return "Liabilities"
	case CategoryEquity:
		return "Equity"
	case CategoryIncome:
		return "Income"
	case CategoryExpense:
		return "Expenses"
	}
	return "Other"
}

// Prefix returns the single-letter code prefix. Expense uses X so it does
// not collide with Equity.
func (c AccountCategory) Prefix() string {
	switch c {
	case CategoryAsset:
		return "A"
	case CategoryLiability:
		return "L"
	case CategoryEquity:
		return "E"
	case CategoryIncome:
		return "I"
	case CategoryExpense:
		return "X"
	}
	return OtherPrefix
}

// GenerateCode derives the display code for an account: the category prefix
// followed by the id zero-padded to four digits. Unknown categories use "O".
// Ids of 10000 and above widen rather than overflow.
func GenerateCode(category string, id uint64) string {
	c := AccountCategory(strings.ToLower(strings.TrimSpace(category)))
	return fmt.Sprintf("%s%04d", c.Prefix(), id)
}

// Account is a ledger account in a store's chart of accounts.
// Its code is never stored; see Code.
type Account struct {
	shared.StoreAggregateRoot
	Number         uint64          `json:"number"`
	Name           string          `json:"name"`
	Category       AccountCategory `json:"category"`
	ParentID       *uuid.UUID      `json:"parent_id,omitempty"`
	Description    string          `json:"description"`
	OpeningBalance int64           `json:"opening_balance"`
	IsActive       bool            `json:"is_active"`
}

// NewAccount creates a new account. number is the per-store sequence value
// used for the display code.
func NewAccount(storeID uuid.UUID, number uint64, name string, category AccountCategory, openingBalance int64) (*Account, error) {
	if number == 0 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number must be positive")
	}
	if err := validateAccountName(name); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown account category %q", category))
	}

	return &Account{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Number:             number,
		Name:               strings.TrimSpace(name),
		Category:           category,
		OpeningBalance:     openingBalance,
		IsActive:           true,
	}, nil
}

// Code returns the display code, e.g. A0001
func (a *Account) Code() string {
	return GenerateCode(string(a.Category), a.Number)
}

// Update changes the descriptive fields
func (a *Account) Update(name, description string) error {
	if err := validateAccountName(name); err != nil {
		return err
	}
	a.Name = strings.TrimSpace(name)
	a.Description = description
	a.IncrementVersion()
	return nil
}

// SetParent attaches the account under parent, or detaches it when parent is nil.
// The parent must belong to the same store and category.
func (a *Account) SetParent(parent *Account) error {
	if parent == nil {
		a.ParentID = nil
		a.IncrementVersion()
		return nil
	}
	if parent.ID == a.ID {
		return shared.NewDomainError("INVALID_PARENT", "Account cannot be its own parent")
	}
	if parent.StoreID != a.StoreID {
		return shared.NewDomainError("INVALID_PARENT", "Parent account belongs to another store")
	}
	if parent.Category != a.Category {
		return shared.NewDomainError("INVALID_PARENT", "Parent account must have the same category")
	}
	id := parent.ID
	a.ParentID = &id
	a.IncrementVersion()
	return nil
}

// SetOpeningBalance sets the balance carried in from before the ledger started
func (a *Account) SetOpeningBalance(cents int64) {
	a.OpeningBalance = cents
	a.IncrementVersion()
}

// Deactivate hides the account from pickers; its history is kept
func (a *Account) Deactivate() {
	a.IsActive = false
	a.IncrementVersion()
}

// Activate re-enables a deactivated account
func (a *Account) Activate() {
	a.IsActive = true
	a.IncrementVersion()
}

func validateAccountName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot exceed 100 characters")
	}
	return nil
}
