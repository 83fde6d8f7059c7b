package persistence

import (
	"context"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettingsRepository stores one settings row per store
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByStore returns shared.ErrNotFound when the store has no saved settings
func (r *GormSettingsRepository) FindByStore(ctx context.Context, storeID uuid.UUID) (*settings.StoreSettings, error) {
	var model models.StoreSettingsModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates the store's settings
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.StoreSettings) error {
	return translateError(r.db.WithContext(ctx).Save(models.StoreSettingsModelFromDomain(s)).Error)
}

var _ settings.SettingsRepository = (*GormSettingsRepository)(nil)
