package settings

import (
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// IconDTO is a PWA icon
type IconDTO struct {
	Src     string `json:"src" binding:"required,max=500"`
	Sizes   string `json:"sizes" binding:"required,max=50"`
	Type    string `json:"type" binding:"max=50"`
	Purpose string `json:"purpose" binding:"max=50"`
}

// PWAConfigDTO is the PWA configuration block
type PWAConfigDTO struct {
	Enabled         bool      `json:"enabled"`
	Name            string    `json:"name" binding:"max=100"`
	ShortName       string    `json:"short_name" binding:"max=12"`
	Description     string    `json:"description" binding:"max=500"`
	StartURL        string    `json:"start_url" binding:"max=200"`
	ThemeColor      string    `json:"theme_color" binding:"max=7"`
	BackgroundColor string    `json:"background_color" binding:"max=7"`
	Display         string    `json:"display" binding:"omitempty,oneof=standalone fullscreen minimal-ui browser"`
	Icons           []IconDTO `json:"icons" binding:"dive"`
}

// UpdateSettingsRequest replaces the store settings
type UpdateSettingsRequest struct {
	BusinessName   string          `json:"business_name" binding:"required,min=1,max=200"`
	Currency       string          `json:"currency" binding:"omitempty,len=3,uppercase"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	InvoicePrefix  string          `json:"invoice_prefix" binding:"required,max=10"`
	BillPrefix     string          `json:"bill_prefix" binding:"required,max=10"`
	PWA            PWAConfigDTO    `json:"pwa"`
}

// SettingsResponse represents store settings in API responses
type SettingsResponse struct {
	BusinessName   string          `json:"business_name"`
	Currency       string          `json:"currency"`
	DefaultTaxRate decimal.Decimal `json:"default_tax_rate"`
	InvoicePrefix  string          `json:"invoice_prefix"`
	BillPrefix     string          `json:"bill_prefix"`
	PWA            PWAConfigDTO    `json:"pwa"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToSettingsResponse converts domain settings to the response shape
func ToSettingsResponse(s *settings.StoreSettings) SettingsResponse {
	icons := make([]IconDTO, len(s.PWA.Icons))
	for i, icon := range s.PWA.Icons {
		icons[i] = IconDTO(icon)
	}
	return SettingsResponse{
		BusinessName:   s.BusinessName,
		Currency:       string(s.Currency),
		DefaultTaxRate: s.DefaultTaxRate,
		InvoicePrefix:  s.InvoicePrefix,
		BillPrefix:     s.BillPrefix,
		PWA: PWAConfigDTO{
			Enabled:         s.PWA.Enabled,
			Name:            s.PWA.Name,
			ShortName:       s.PWA.ShortName,
			Description:     s.PWA.Description,
			StartURL:        s.PWA.StartURL,
			ThemeColor:      s.PWA.ThemeColor,
			BackgroundColor: s.PWA.BackgroundColor,
			Display:         string(s.PWA.Display),
			Icons:           icons,
		},
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

func (r UpdateSettingsRequest) toInput() settings.SettingsInput {
	icons := make([]settings.Icon, len(r.PWA.Icons))
	for i, icon := range r.PWA.Icons {
		icons[i] = settings.Icon(icon)
	}
	return settings.SettingsInput{
		BusinessName:   r.BusinessName,
		Currency:       valueobject.Currency(r.Currency),
		DefaultTaxRate: r.DefaultTaxRate,
		InvoicePrefix:  r.InvoicePrefix,
		BillPrefix:     r.BillPrefix,
		PWA: settings.PWAConfig{
			Enabled:         r.PWA.Enabled,
			Name:            r.PWA.Name,
			ShortName:       r.PWA.ShortName,
			Description:     r.PWA.Description,
			StartURL:        r.PWA.StartURL,
			ThemeColor:      r.PWA.ThemeColor,
			BackgroundColor: r.PWA.BackgroundColor,
			Display:         settings.DisplayMode(r.PWA.Display),
			Icons:           icons,
		},
	}
}
