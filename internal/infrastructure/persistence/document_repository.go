package persistence

import (
	"context"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM.
// Invoices and bills share the documents table and are told apart by kind.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByIDForStore loads a document with its items
func (r *GormDocumentRepository) FindByIDForStore(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) (*finance.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("store_id = ? AND kind = ? AND id = ?", storeID, kind, id).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAllForStore lists documents of one kind with the total match count
func (r *GormDocumentRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter finance.DocumentFilter) ([]finance.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("store_id = ? AND kind = ?", storeID, filter.Kind)
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(number) LIKE ? OR LOWER(notes) LIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ContactID != nil {
		query = query.Where("contact_id = ?", *filter.ContactID)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL AND due_date < ?", *filter.DueBefore)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.DocumentModel
	if err := paginate(query, filter.Filter).
		Preload("Items", orderedItems).
		Order(orderClause(filter.OrderBy, filter.OrderDir, DocumentSortFields, "created_at")).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]finance.Document, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, total, nil
}

// NextSequence returns the next document sequence number per store and kind
func (r *GormDocumentRepository) NextSequence(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind) (uint64, error) {
	return nextSequence(ctx, r.db, storeID, string(kind))
}

// ExistsByNumber checks whether a number is already used by the store for the kind
func (r *GormDocumentRepository) ExistsByNumber(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("store_id = ? AND kind = ? AND number = ?", storeID, kind, number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save writes the document row and replaces its items. Documents loaded from
// storage are updated only while the stored version still matches the one
// they were read at; otherwise shared.ErrConcurrencyConflict is returned.
func (r *GormDocumentRepository) Save(ctx context.Context, doc *finance.Document) error {
	model := models.DocumentModelFromDomain(doc)
	err := translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDocumentRow(tx, model, doc.PersistedVersion()); err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.DocumentItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	}))
	if err != nil {
		return err
	}
	doc.MarkPersisted()
	return nil
}

func saveDocumentRow(tx *gorm.DB, model *models.DocumentModel, persistedVersion int) error {
	if persistedVersion == 0 {
		return tx.Omit("Items").Create(model).Error
	}
	result := tx.Model(model).
		Where("store_id = ? AND version = ?", model.StoreID, persistedVersion).
		Select("*").
		Omit("Items").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForStore deletes a document and its items
func (r *GormDocumentRepository) DeleteForStore(ctx context.Context, storeID uuid.UUID, kind finance.DocumentKind, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.DocumentModel{}, "store_id = ? AND kind = ? AND id = ?", storeID, kind, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Where("document_id = ?", id).Delete(&models.DocumentItemModel{}).Error
	})
}

// StoresWithDueDocuments lists stores holding sent documents due before the given time
func (r *GormDocumentRepository) StoresWithDueDocuments(ctx context.Context, kind finance.DocumentKind, before time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Distinct("store_id").
		Where("kind = ? AND status = ? AND due_date IS NOT NULL AND due_date < ?", kind, finance.StatusSent, before).
		Pluck("store_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

var _ finance.DocumentRepository = (*GormDocumentRepository)(nil)
