package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translateError maps GORM errors onto domain sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}

// paginate applies offset and limit from the shared filter
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// likePattern builds a case-insensitive LIKE pattern; callers compare
// against LOWER(column)
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// deleteScoped deletes one store-scoped row and reports ErrNotFound when
// nothing matched
func deleteScoped(ctx context.Context, db *gorm.DB, model any, storeID, id uuid.UUID) error {
	result := db.WithContext(ctx).Delete(model, "store_id = ? AND id = ?", storeID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// nextSequence increments and returns a per-store named counter. The first
// call for a name returns 1.
func nextSequence(ctx context.Context, db *gorm.DB, storeID uuid.UUID, name string) (uint64, error) {
	var seq models.SequenceModel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.SequenceModel{StoreID: storeID, Name: name, LastValue: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "store_id"}, {Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_value": gorm.Expr("store_sequences.last_value + 1"),
			}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("store_id = ? AND name = ?", storeID, name).First(&seq).Error
	})
	if err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}
