package persistence

import (
	"context"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const accountSequence = "account"

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByIDForStore finds an account by ID within a store
func (r *GormAccountRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*finance.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForStore lists accounts of a store with the total match count
func (r *GormAccountRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter finance.AccountFilter) ([]finance.Account, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("store_id = ?", storeID)
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AccountModel
	if err := paginate(query, filter.Filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, AccountSortFields, "number")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return accountsFromModels(rows), total, nil
}

// ListAllForStore returns every account of the store ordered by number
func (r *GormAccountRepository) ListAllForStore(ctx context.Context, storeID uuid.UUID) ([]finance.Account, error) {
	var rows []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return accountsFromModels(rows), nil
}

// NextNumber returns the next free account number for the store
func (r *GormAccountRepository) NextNumber(ctx context.Context, storeID uuid.UUID) (uint64, error) {
	return nextSequence(ctx, r.db, storeID, accountSequence)
}

// HasChildren reports whether any account names id as its parent
func (r *GormAccountRepository) HasChildren(ctx context.Context, storeID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("store_id = ? AND parent_id = ?", storeID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *finance.Account) error {
	return translateError(r.db.WithContext(ctx).Save(models.AccountModelFromDomain(account)).Error)
}

// DeleteForStore deletes an account within a store
func (r *GormAccountRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.AccountModel{}, storeID, id)
}

func accountsFromModels(rows []models.AccountModel) []finance.Account {
	accounts := make([]finance.Account, len(rows))
	for i := range rows {
		accounts[i] = *rows[i].ToDomain()
	}
	return accounts
}

var _ finance.AccountRepository = (*GormAccountRepository)(nil)
