package catalog

import (
	"fmt"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is an item the store sells. Price is in cents.
type Product struct {
	shared.StoreAggregateRoot
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Price          int64           `json:"price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	ImageURL       string          `json:"image_url"`
	Status         ProductStatus   `json:"status"`
}

// ProductInput carries the editable fields of a product
type ProductInput struct {
	SKU            string
	Name           string
	Description    string
	Category       string
	Price          int64
	TaxRatePercent decimal.Decimal
	ImageURL       string
}

// NewProduct creates a new active product
func NewProduct(storeID uuid.UUID, input ProductInput) (*Product, error) {
	p := &Product{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Status:             ProductStatusActive,
	}
	if err := p.assign(input); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields
func (p *Product) Update(input ProductInput) error {
	if err := p.assign(input); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

// Activate makes the product available for new documents
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.IncrementVersion()
	return nil
}

// Deactivate hides the product from new documents
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// PriceMoney returns the price as a Money value in currency
func (p *Product) PriceMoney(currency valueobject.Currency) valueobject.Money {
	m, _ := valueobject.NewMoneyFromMinorUnits(p.Price, currency)
	return m
}

func (p *Product) assign(input ProductInput) error {
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if err := validateSKU(sku); err != nil {
		return err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if input.Price < 0 {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if input.TaxRatePercent.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	p.SKU = sku
	p.Name = name
	p.Description = input.Description
	p.Category = strings.TrimSpace(input.Category)
	p.Price = input.Price
	p.TaxRatePercent = input.TaxRatePercent
	p.ImageURL = strings.TrimSpace(input.ImageURL)
	return nil
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", fmt.Sprintf("SKU %q can only contain letters, numbers, underscores, and hyphens", sku))
		}
	}
	return nil
}
