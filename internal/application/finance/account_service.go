package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChartSnapshot is everything the chart of accounts is built from
type ChartSnapshot struct {
	Accounts []finance.Account   `json:"accounts"`
	Balances map[uuid.UUID]int64 `json:"balances"`
}

// ChartCache caches chart snapshots per store. Get returns nil on a miss.
type ChartCache interface {
	Get(ctx context.Context, storeID uuid.UUID) (*ChartSnapshot, error)
	Set(ctx context.Context, storeID uuid.UUID, snapshot *ChartSnapshot) error
	Invalidate(ctx context.Context, storeID uuid.UUID) error
}

// AccountService manages the chart of accounts
type AccountService struct {
	accountRepo finance.AccountRepository
	txnRepo     finance.TransactionRepository
	cache       ChartCache
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService. cache may be nil.
func NewAccountService(
	accountRepo finance.AccountRepository,
	txnRepo finance.TransactionRepository,
	cache ChartCache,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Create creates an account with the next free number
func (s *AccountService) Create(ctx context.Context, storeID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	category := finance.AccountCategory(req.Category)
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", fmt.Sprintf("Unknown account category %q", req.Category))
	}

	number, err := s.accountRepo.NextNumber(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate account number: %w", err)
	}
	account, err := finance.NewAccount(storeID, number, req.Name, category, req.OpeningBalance)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := account.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.ParentID != nil {
		parent, err := s.findParent(ctx, storeID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if err := account.SetParent(parent); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.invalidate(ctx, storeID)

	s.logger.Info("account created",
		zap.String("store_id", storeID.String()),
		zap.String("code", account.Code()))

	response := ToAccountResponse(account, account.OpeningBalance)
	return &response, nil
}

// GetByID retrieves an account with its current balance
func (s *AccountService) GetByID(ctx context.Context, storeID, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForStore(ctx, storeID, accountID)
	if err != nil {
		return nil, err
	}
	sums, err := s.txnRepo.SumByAccount(ctx, storeID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account, account.OpeningBalance+sums[account.ID])
	return &response, nil
}

// List retrieves accounts with their balances
func (s *AccountService) List(ctx context.Context, storeID uuid.UUID, filter AccountListFilter) ([]AccountResponse, int64, error) {
	domainFilter := finance.AccountFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "number",
			OrderDir: "asc",
			Search:   filter.Search,
		},
		ActiveOnly: filter.ActiveOnly,
	}
	if filter.Category != "" {
		category := finance.AccountCategory(filter.Category)
		domainFilter.Category = &category
	}

	accounts, total, err := s.accountRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	sums, err := s.txnRepo.SumByAccount(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i], accounts[i].OpeningBalance+sums[accounts[i].ID])
	}
	return responses, total, nil
}

// Update changes an account
func (s *AccountService) Update(ctx context.Context, storeID, accountID uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForStore(ctx, storeID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name, description := account.Name, account.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := account.Update(name, description); err != nil {
			return nil, err
		}
	}

	switch {
	case req.ClearParent:
		if err := account.SetParent(nil); err != nil {
			return nil, err
		}
	case req.ParentID != nil:
		if err := s.checkNoCycle(ctx, storeID, account.ID, *req.ParentID); err != nil {
			return nil, err
		}
		parent, err := s.findParent(ctx, storeID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if err := account.SetParent(parent); err != nil {
			return nil, err
		}
	}

	if req.OpeningBalance != nil {
		account.SetOpeningBalance(*req.OpeningBalance)
	}
	if req.Active != nil && *req.Active != account.IsActive {
		if *req.Active {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.invalidate(ctx, storeID)

	sums, err := s.txnRepo.SumByAccount(ctx, storeID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account, account.OpeningBalance+sums[account.ID])
	return &response, nil
}

// Delete removes an account that has no sub-accounts and no transactions
func (s *AccountService) Delete(ctx context.Context, storeID, accountID uuid.UUID) error {
	if _, err := s.accountRepo.FindByIDForStore(ctx, storeID, accountID); err != nil {
		return err
	}
	hasChildren, err := s.accountRepo.HasChildren(ctx, storeID, accountID)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("ACCOUNT_HAS_CHILDREN", "Account has sub-accounts; move or delete them first")
	}
	count, err := s.txnRepo.CountByAccount(ctx, storeID, accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ACCOUNT_IN_USE", fmt.Sprintf("Account has %d transactions; deactivate it instead", count))
	}
	if err := s.accountRepo.DeleteForStore(ctx, storeID, accountID); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}

// Chart returns the visible rows of the chart of accounts
func (s *AccountService) Chart(ctx context.Context, storeID uuid.UUID, req ChartRequest) (*ChartResponse, error) {
	chart, err := s.BuildChart(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if req.ExpandAll {
		chart.ExpandAll()
	} else {
		for _, key := range req.Expanded {
			chart.Expand(key)
		}
	}

	rows := chart.VisibleRows()
	expanded := make([]string, 0)
	for _, row := range chart.AllRows() {
		if row.Expanded {
			expanded = append(expanded, row.Key)
		}
	}
	return &ChartResponse{Rows: rows, Expanded: expanded}, nil
}

// BuildChart builds the full chart of accounts, collapsed
func (s *AccountService) BuildChart(ctx context.Context, storeID uuid.UUID) (*finance.ChartOfAccounts, error) {
	snapshot, err := s.Snapshot(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return finance.NewChartOfAccounts(snapshot.Accounts, snapshot.Balances), nil
}

// Snapshot loads accounts and balances, from the cache when possible
func (s *AccountService) Snapshot(ctx context.Context, storeID uuid.UUID) (*ChartSnapshot, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, storeID)
		if err != nil {
			s.logger.Warn("chart cache read failed", zap.String("store_id", storeID.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	accounts, err := s.accountRepo.ListAllForStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	sums, err := s.txnRepo.SumByAccount(ctx, storeID)
	if err != nil {
		return nil, err
	}
	balances := make(map[uuid.UUID]int64, len(accounts))
	for _, acc := range accounts {
		balances[acc.ID] = acc.OpeningBalance + sums[acc.ID]
	}
	snapshot := &ChartSnapshot{Accounts: accounts, Balances: balances}

	if s.cache != nil {
		if err := s.cache.Set(ctx, storeID, snapshot); err != nil {
			s.logger.Warn("chart cache write failed", zap.String("store_id", storeID.String()), zap.Error(err))
		}
	}
	return snapshot, nil
}

// Code previews the display code for a category and number
func (s *AccountService) Code(category string, id uint64) AccountCodeResponse {
	return AccountCodeResponse{
		Category: category,
		ID:       id,
		Code:     finance.GenerateCode(category, id),
	}
}

// InvalidateChart drops the cached chart after ledger changes
func (s *AccountService) InvalidateChart(ctx context.Context, storeID uuid.UUID) {
	s.invalidate(ctx, storeID)
}

func (s *AccountService) invalidate(ctx context.Context, storeID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, storeID); err != nil {
		s.logger.Warn("chart cache invalidation failed", zap.String("store_id", storeID.String()), zap.Error(err))
	}
}

func (s *AccountService) findParent(ctx context.Context, storeID, parentID uuid.UUID) (*finance.Account, error) {
	parent, err := s.accountRepo.FindByIDForStore(ctx, storeID, parentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PARENT", "Parent account not found")
		}
		return nil, err
	}
	return parent, nil
}

// checkNoCycle rejects a parent that is the account itself or one of its descendants
func (s *AccountService) checkNoCycle(ctx context.Context, storeID, accountID, parentID uuid.UUID) error {
	accounts, err := s.accountRepo.ListAllForStore(ctx, storeID)
	if err != nil {
		return err
	}
	parents := make(map[uuid.UUID]*uuid.UUID, len(accounts))
	for _, acc := range accounts {
		parents[acc.ID] = acc.ParentID
	}
	seen := make(map[uuid.UUID]bool)
	for cur := &parentID; cur != nil && !seen[*cur]; cur = parents[*cur] {
		if *cur == accountID {
			return shared.NewDomainError("INVALID_PARENT", "Parent account cannot be a sub-account of this account")
		}
		seen[*cur] = true
	}
	return nil
}
