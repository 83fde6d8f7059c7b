package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBusinessName names stores that have not saved settings yet
const DefaultBusinessName = "My Store"

// SettingsService reads and updates per-store settings
type SettingsService struct {
	repo     settings.SettingsRepository
	logger   *zap.Logger
	currency valueobject.Currency
}

// SettingsOption configures a SettingsService
type SettingsOption func(*SettingsService)

// WithDefaultCurrency sets the currency of stores that have not saved settings
func WithDefaultCurrency(currency valueobject.Currency) SettingsOption {
	return func(s *SettingsService) {
		if currency.IsValid() {
			s.currency = currency
		}
	}
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo settings.SettingsRepository, logger *zap.Logger, opts ...SettingsOption) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SettingsService{repo: repo, logger: logger, currency: valueobject.DefaultCurrency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the stored settings or the defaults when none were saved
func (s *SettingsService) Current(ctx context.Context, storeID uuid.UUID) (*settings.StoreSettings, error) {
	current, err := s.repo.FindByStore(ctx, storeID)
	if errors.Is(err, shared.ErrNotFound) {
		defaults := settings.Default(storeID, DefaultBusinessName)
		defaults.Currency = s.currency
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Get returns the settings for the store
func (s *SettingsService) Get(ctx context.Context, storeID uuid.UUID) (*SettingsResponse, error) {
	current, err := s.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	response := ToSettingsResponse(current)
	return &response, nil
}

// Update validates and saves the settings
func (s *SettingsService) Update(ctx context.Context, storeID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	current, err := s.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := current.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Info("store settings updated",
		zap.String("store_id", storeID.String()),
		zap.String("currency", string(current.Currency)),
		zap.Bool("pwa_enabled", current.PWA.Enabled))

	response := ToSettingsResponse(current)
	return &response, nil
}

// Manifest returns the PWA web manifest for the store
func (s *SettingsService) Manifest(ctx context.Context, storeID uuid.UUID) (*settings.Manifest, error) {
	current, err := s.Current(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !current.PWA.Enabled {
		return nil, shared.NewDomainError("NOT_FOUND", "PWA is not enabled for this store")
	}
	manifest := current.Manifest()
	return &manifest, nil
}
