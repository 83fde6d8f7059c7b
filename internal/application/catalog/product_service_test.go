package catalog

import (
	"context"
	"testing"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/catalog"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter catalog.ProductFilter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistingIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, storeID, ids)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, storeID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, storeID, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func newTestProduct(t *testing.T, storeID uuid.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(storeID, catalog.ProductInput{SKU: "MUG-01", Name: "Mug", Price: 1250})
	require.NoError(t, err)
	return p
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsBySKU", ctx, storeID, "MUG-01").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		svc := NewProductService(repo)
		resp, err := svc.Create(ctx, storeID, CreateProductRequest{
			SKU: "mug-01", Name: "Mug", Price: 1250, TaxRatePercent: decimal.NewFromInt(5),
		})

		require.NoError(t, err)
		assert.Equal(t, "MUG-01", resp.SKU)
		assert.Equal(t, int64(1250), resp.Price)
		assert.Equal(t, "active", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsBySKU", ctx, storeID, "MUG-01").Return(true, nil)

		_, err := NewProductService(repo).Create(ctx, storeID, CreateProductRequest{SKU: "MUG-01", Name: "Mug"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockProductRepository)
	product := newTestProduct(t, storeID)
	repo.On("FindByIDForStore", ctx, storeID, product.ID).Return(product, nil)
	repo.On("Save", ctx, product).Return(nil)

	price := int64(1500)
	active := false
	resp, err := NewProductService(repo).Update(ctx, storeID, product.ID, UpdateProductRequest{Price: &price, Active: &active})

	require.NoError(t, err)
	assert.Equal(t, int64(1500), resp.Price)
	assert.Equal(t, "inactive", resp.Status)
	repo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	storeID, id := uuid.New(), uuid.New()
	repo.On("FindByIDForStore", ctx, storeID, id).Return(nil, shared.ErrNotFound)

	_, err := NewProductService(repo).GetByID(ctx, storeID, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	repo := new(MockProductRepository)
	product := newTestProduct(t, storeID)
	repo.On("FindAllForStore", ctx, storeID, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		return f.OrderBy == "name" && f.Status != nil && *f.Status == catalog.ProductStatusActive
	})).Return([]catalog.Product{*product}, int64(1), nil)

	items, total, err := NewProductService(repo).List(ctx, storeID, ProductListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestProductService_KnownProducts(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	repo := new(MockProductRepository)
	svc := NewProductService(repo)

	ids, err := svc.KnownProducts(ctx, storeID, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	known := uuid.New()
	repo.On("ExistingIDs", ctx, storeID, []uuid.UUID{known, uuid.Nil}).Return([]uuid.UUID{known}, nil)
	ids, err = svc.KnownProducts(ctx, storeID, []uuid.UUID{known, uuid.Nil})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{known}, ids)
}
