package finance

import (
	"context"
	"errors"
	"testing"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryChartCache is a map-backed ChartCache
type memoryChartCache struct {
	items       map[uuid.UUID]*ChartSnapshot
	invalidated int
}

func newMemoryChartCache() *memoryChartCache {
	return &memoryChartCache{items: make(map[uuid.UUID]*ChartSnapshot)}
}

func (c *memoryChartCache) Get(_ context.Context, storeID uuid.UUID) (*ChartSnapshot, error) {
	return c.items[storeID], nil
}

func (c *memoryChartCache) Set(_ context.Context, storeID uuid.UUID, s *ChartSnapshot) error {
	c.items[storeID] = s
	return nil
}

func (c *memoryChartCache) Invalidate(_ context.Context, storeID uuid.UUID) error {
	delete(c.items, storeID)
	c.invalidated++
	return nil
}

func newAccount(t *testing.T, storeID uuid.UUID, number uint64, name string, category finance.AccountCategory) *finance.Account {
	t.Helper()
	acc, err := finance.NewAccount(storeID, number, name, category, 0)
	require.NoError(t, err)
	return acc
}

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("allocates number and derives code", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		cache := newMemoryChartCache()
		accounts.On("NextNumber", ctx, storeID).Return(uint64(12), nil)
		accounts.On("Save", ctx, mock.AnythingOfType("*finance.Account")).Return(nil)

		svc := NewAccountService(accounts, new(MockTransactionRepository), cache, nil)
		resp, err := svc.Create(ctx, storeID, CreateAccountRequest{Name: "Cash", Category: "asset", OpeningBalance: 5000})

		require.NoError(t, err)
		assert.Equal(t, "A0012", resp.Code)
		assert.Equal(t, int64(5000), resp.Balance)
		assert.Equal(t, 1, cache.invalidated)
	})

	t.Run("parent must exist", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		missing := uuid.New()
		accounts.On("NextNumber", ctx, storeID).Return(uint64(1), nil)
		accounts.On("FindByIDForStore", ctx, storeID, missing).Return(nil, shared.ErrNotFound)

		svc := NewAccountService(accounts, new(MockTransactionRepository), nil, nil)
		_, err := svc.Create(ctx, storeID, CreateAccountRequest{Name: "Petty cash", Category: "asset", ParentID: &missing})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})
}

func TestAccountService_Update_RejectsCycle(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	parent := newAccount(t, storeID, 1, "Bank", finance.CategoryAsset)
	child := newAccount(t, storeID, 2, "Checking", finance.CategoryAsset)
	require.NoError(t, child.SetParent(parent))

	accounts := new(MockAccountRepository)
	accounts.On("FindByIDForStore", ctx, storeID, parent.ID).Return(parent, nil)
	accounts.On("ListAllForStore", ctx, storeID).Return([]finance.Account{*parent, *child}, nil)

	svc := NewAccountService(accounts, new(MockTransactionRepository), nil, nil)
	_, err := svc.Update(ctx, storeID, parent.ID, UpdateAccountRequest{ParentID: &child.ID})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	acc := newAccount(t, storeID, 1, "Cash", finance.CategoryAsset)

	t.Run("in use", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		txns := new(MockTransactionRepository)
		accounts.On("FindByIDForStore", ctx, storeID, acc.ID).Return(acc, nil)
		accounts.On("HasChildren", ctx, storeID, acc.ID).Return(false, nil)
		txns.On("CountByAccount", ctx, storeID, acc.ID).Return(int64(3), nil)

		err := NewAccountService(accounts, txns, nil, nil).Delete(ctx, storeID, acc.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_IN_USE", domainErr.Code)
	})

	t.Run("has children", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		accounts.On("FindByIDForStore", ctx, storeID, acc.ID).Return(acc, nil)
		accounts.On("HasChildren", ctx, storeID, acc.ID).Return(true, nil)

		err := NewAccountService(accounts, new(MockTransactionRepository), nil, nil).Delete(ctx, storeID, acc.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_HAS_CHILDREN", domainErr.Code)
	})

	t.Run("unused", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		txns := new(MockTransactionRepository)
		cache := newMemoryChartCache()
		accounts.On("FindByIDForStore", ctx, storeID, acc.ID).Return(acc, nil)
		accounts.On("HasChildren", ctx, storeID, acc.ID).Return(false, nil)
		txns.On("CountByAccount", ctx, storeID, acc.ID).Return(int64(0), nil)
		accounts.On("DeleteForStore", ctx, storeID, acc.ID).Return(nil)

		require.NoError(t, NewAccountService(accounts, txns, cache, nil).Delete(ctx, storeID, acc.ID))
		assert.Equal(t, 1, cache.invalidated)
	})
}

func TestAccountService_Chart(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	bank := newAccount(t, storeID, 1, "Bank", finance.CategoryAsset)
	checking := newAccount(t, storeID, 2, "Checking", finance.CategoryAsset)
	require.NoError(t, checking.SetParent(bank))
	sales := newAccount(t, storeID, 3, "Sales", finance.CategoryIncome)

	accounts := new(MockAccountRepository)
	txns := new(MockTransactionRepository)
	accounts.On("ListAllForStore", ctx, storeID).Return([]finance.Account{*bank, *checking, *sales}, nil).Once()
	txns.On("SumByAccount", ctx, storeID).Return(map[uuid.UUID]int64{checking.ID: 1500, sales.ID: 1500}, nil).Once()

	cache := newMemoryChartCache()
	svc := NewAccountService(accounts, txns, cache, nil)

	collapsed, err := svc.Chart(ctx, storeID, ChartRequest{})
	require.NoError(t, err)
	for _, row := range collapsed.Rows {
		assert.Zero(t, row.Depth, "collapsed chart shows category headers only")
	}
	assert.Empty(t, collapsed.Expanded)

	// Second call is served from the cache; the mocks above allow one load only.
	expanded, err := svc.Chart(ctx, storeID, ChartRequest{Expanded: []string{finance.CategoryKey(finance.CategoryAsset), bank.ID.String()}})
	require.NoError(t, err)

	var codes []string
	for _, row := range expanded.Rows {
		if row.Category == finance.CategoryAsset {
			codes = append(codes, row.Code)
		}
	}
	assert.Contains(t, codes, "A0001")
	assert.Contains(t, codes, "A0002")
	assert.Len(t, expanded.Expanded, 2)

	accounts.AssertExpectations(t)
	txns.AssertExpectations(t)
}

func TestAccountService_Snapshot_CacheErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()
	accounts := new(MockAccountRepository)
	txns := new(MockTransactionRepository)
	accounts.On("ListAllForStore", ctx, storeID).Return([]finance.Account{}, nil)
	txns.On("SumByAccount", ctx, storeID).Return(map[uuid.UUID]int64{}, nil)

	svc := NewAccountService(accounts, txns, failingCache{}, nil)
	snapshot, err := svc.Snapshot(ctx, storeID)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Accounts)
}

type failingCache struct{}

func (failingCache) Get(context.Context, uuid.UUID) (*ChartSnapshot, error) {
	return nil, errors.New("redis down")
}

func (failingCache) Set(context.Context, uuid.UUID, *ChartSnapshot) error {
	return errors.New("redis down")
}

func (failingCache) Invalidate(context.Context, uuid.UUID) error {
	return errors.New("redis down")
}

func TestAccountService_Code(t *testing.T) {
	svc := NewAccountService(nil, nil, nil, nil)
	assert.Equal(t, "X0042", svc.Code("expense", 42).Code)
	assert.Equal(t, "O0007", svc.Code("misc", 7).Code)
}
