package persistence

import (
	"context"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByIDForStore finds a transaction by ID within a store
func (r *GormTransactionRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*finance.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForStore lists transactions of a store with the total match count
func (r *GormTransactionRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter finance.TransactionFilter) ([]finance.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{}).Where("store_id = ?", storeID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(description) LIKE ? OR LOWER(reference) LIKE ?", pattern, pattern)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TransactionModel
	if err := paginate(query, filter.Filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, TransactionSortFields, "date")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	txns := make([]finance.Transaction, len(rows))
	for i := range rows {
		txns[i] = *rows[i].ToDomain()
	}
	return txns, total, nil
}

type accountSum struct {
	AccountID uuid.UUID
	Net       int64
}

// SumByAccount returns income minus expense per account
func (r *GormTransactionRepository) SumByAccount(ctx context.Context, storeID uuid.UUID) (map[uuid.UUID]int64, error) {
	var sums []accountSum
	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Select("account_id, SUM(CASE WHEN type = ? THEN amount ELSE -amount END) AS net", finance.TransactionIncome).
		Where("store_id = ?", storeID).
		Group("account_id").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(sums))
	for _, s := range sums {
		out[s.AccountID] = s.Net
	}
	return out, nil
}

// CountByAccount counts the transactions posted against an account
func (r *GormTransactionRepository) CountByAccount(ctx context.Context, storeID, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TransactionModel{}).
		Where("store_id = ? AND account_id = ?", storeID, accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, txn *finance.Transaction) error {
	return translateError(r.db.WithContext(ctx).Save(models.TransactionModelFromDomain(txn)).Error)
}

// DeleteForStore deletes a transaction within a store
func (r *GormTransactionRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.TransactionModel{}, storeID, id)
}

var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
