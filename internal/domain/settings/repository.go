package settings

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository persists one StoreSettings row per store
type SettingsRepository interface {
	// FindByStore returns shared.ErrNotFound when the store has not saved settings yet
	FindByStore(ctx context.Context, storeID uuid.UUID) (*StoreSettings, error)
	Save(ctx context.Context, settings *StoreSettings) error
}
