package catalog

import (
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU            string          `json:"sku" binding:"required,min=1,max=50"`
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Description    string          `json:"description" binding:"max=2000"`
	Category       string          `json:"category" binding:"max=100"`
	Price          int64           `json:"price" binding:"min=0"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	ImageURL       string          `json:"image_url" binding:"omitempty,url,max=500"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	SKU            *string          `json:"sku" binding:"omitempty,min=1,max=50"`
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description" binding:"omitempty,max=2000"`
	Category       *string          `json:"category" binding:"omitempty,max=100"`
	Price          *int64           `json:"price" binding:"omitempty,min=0"`
	TaxRatePercent *decimal.Decimal `json:"tax_rate_percent"`
	ImageURL       *string          `json:"image_url" binding:"omitempty,max=500"`
	Active         *bool            `json:"active"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Price          int64           `json:"price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	ImageURL       string          `json:"image_url"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Price:          p.Price,
		TaxRatePercent: p.TaxRatePercent,
		ImageURL:       p.ImageURL,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
