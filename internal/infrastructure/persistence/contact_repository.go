package persistence

import (
	"context"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByIDForStore finds a contact by ID within a store
func (r *GormContactRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Contact, error) {
	var model models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForStore lists contacts of a store with the total match count
func (r *GormContactRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter partner.ContactFilter) ([]partner.Contact, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("store_id = ?", storeID)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ContactModel
	if err := paginate(query, filter.Filter).
		Order(orderClause(filter.OrderBy, filter.OrderDir, ContactSortFields, "name")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	contacts := make([]partner.Contact, len(rows))
	for i := range rows {
		contacts[i] = *rows[i].ToDomain()
	}
	return contacts, total, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *partner.Contact) error {
	return translateError(r.db.WithContext(ctx).Save(models.ContactModelFromDomain(contact)).Error)
}

// DeleteForStore deletes a contact within a store
func (r *GormContactRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.ContactModel{}, storeID, id)
}

var _ partner.ContactRepository = (*GormContactRepository)(nil)
