package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// ChartInvalidator drops cached chart data when balances change
type ChartInvalidator interface {
	InvalidateChart(ctx context.Context, storeID uuid.UUID)
}

// TransactionService records income and expense against accounts
type TransactionService struct {
	txnRepo     finance.TransactionRepository
	accountRepo finance.AccountRepository
	chart       ChartInvalidator
}

// NewTransactionService creates a new TransactionService. chart may be nil.
func NewTransactionService(
	txnRepo finance.TransactionRepository,
	accountRepo finance.AccountRepository,
	chart ChartInvalidator,
) *TransactionService {
	return &TransactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		chart:       chart,
	}
}

// Create records a transaction
func (s *TransactionService) Create(ctx context.Context, storeID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	if err := s.checkAccount(ctx, storeID, req.AccountID); err != nil {
		return nil, err
	}
	txn, err := finance.NewTransaction(storeID, finance.TransactionInput{
		AccountID:   req.AccountID,
		Type:        finance.TransactionType(req.Type),
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
		Reference:   req.Reference,
		ContactID:   req.ContactID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.invalidate(ctx, storeID)

	response := ToTransactionResponse(txn)
	return &response, nil
}

// GetByID retrieves a transaction
func (s *TransactionService) GetByID(ctx context.Context, storeID, txnID uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByIDForStore(ctx, storeID, txnID)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(txn)
	return &response, nil
}

// List retrieves transactions, newest first by default
func (s *TransactionService) List(ctx context.Context, storeID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
	domainFilter := finance.TransactionFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "date",
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		AccountID: filter.AccountID,
		From:      filter.From,
		To:        filter.To,
	}
	if filter.Type != "" {
		t := finance.TransactionType(filter.Type)
		domainFilter.Type = &t
	}

	txns, total, err := s.txnRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses, total, nil
}

// Update changes a transaction
func (s *TransactionService) Update(ctx context.Context, storeID, txnID uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByIDForStore(ctx, storeID, txnID)
	if err != nil {
		return nil, err
	}

	input := finance.TransactionInput{
		AccountID:   txn.AccountID,
		Type:        txn.Type,
		Amount:      txn.Amount,
		Date:        txn.Date,
		Description: txn.Description,
		Reference:   txn.Reference,
		ContactID:   txn.ContactID,
	}
	if req.AccountID != nil && *req.AccountID != txn.AccountID {
		if err := s.checkAccount(ctx, storeID, *req.AccountID); err != nil {
			return nil, err
		}
		input.AccountID = *req.AccountID
	}
	if req.Type != nil {
		input.Type = finance.TransactionType(*req.Type)
	}
	if req.Amount != nil {
		input.Amount = *req.Amount
	}
	if req.Date != nil {
		input.Date = *req.Date
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Reference != nil {
		input.Reference = *req.Reference
	}
	if req.ContactID != nil {
		input.ContactID = req.ContactID
	}

	if err := txn.Update(input); err != nil {
		return nil, err
	}
	if err := s.txnRepo.Save(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.invalidate(ctx, storeID)

	response := ToTransactionResponse(txn)
	return &response, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, storeID, txnID uuid.UUID) error {
	if err := s.txnRepo.DeleteForStore(ctx, storeID, txnID); err != nil {
		return err
	}
	s.invalidate(ctx, storeID)
	return nil
}

func (s *TransactionService) checkAccount(ctx context.Context, storeID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByIDForStore(ctx, storeID, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_ACCOUNT", "Account not found")
		}
		return err
	}
	if !account.IsActive {
		return shared.NewDomainError("INVALID_ACCOUNT", "Account is inactive")
	}
	return nil
}

func (s *TransactionService) invalidate(ctx context.Context, storeID uuid.UUID) {
	if s.chart != nil {
		s.chart.InvalidateChart(ctx, storeID)
	}
}
