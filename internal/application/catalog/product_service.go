package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/catalog"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, storeID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, storeID, strings.ToUpper(strings.TrimSpace(req.SKU)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(storeID, catalog.ProductInput{
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Price:          req.Price,
		TaxRatePercent: req.TaxRatePercent,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, storeID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, storeID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		Category: filter.Category,
	}
	if filter.Status != "" {
		status := catalog.ProductStatus(filter.Status)
		domainFilter.Status = &status
	}

	products, total, err := s.productRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, storeID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}

	input := catalog.ProductInput{
		SKU:            product.SKU,
		Name:           product.Name,
		Description:    product.Description,
		Category:       product.Category,
		Price:          product.Price,
		TaxRatePercent: product.TaxRatePercent,
		ImageURL:       product.ImageURL,
	}
	if req.SKU != nil && !strings.EqualFold(strings.TrimSpace(*req.SKU), product.SKU) {
		exists, err := s.productRepo.ExistsBySKU(ctx, storeID, strings.ToUpper(strings.TrimSpace(*req.SKU)))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
		input.SKU = *req.SKU
	}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.Price != nil {
		input.Price = *req.Price
	}
	if req.TaxRatePercent != nil {
		input.TaxRatePercent = *req.TaxRatePercent
	}
	if req.ImageURL != nil {
		input.ImageURL = *req.ImageURL
	}

	if err := product.Update(input); err != nil {
		return nil, err
	}
	if req.Active != nil && *req.Active != product.IsActive() {
		if *req.Active {
			err = product.Activate()
		} else {
			err = product.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, storeID, productID uuid.UUID) error {
	return s.productRepo.DeleteForStore(ctx, storeID, productID)
}

// KnownProducts returns the subset of ids that exist in the store's catalog.
// Line items referencing any other product fail with UNKNOWN_PRODUCT.
func (s *ProductService) KnownProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.productRepo.ExistingIDs(ctx, storeID, ids)
}
