package settings

import (
	"regexp"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DisplayMode is the PWA display mode
type DisplayMode string

const (
	DisplayStandalone DisplayMode = "standalone"
	DisplayFullscreen DisplayMode = "fullscreen"
	DisplayMinimalUI  DisplayMode = "minimal-ui"
	DisplayBrowser    DisplayMode = "browser"
)

// IsValid checks if the display mode is valid
func (d DisplayMode) IsValid() bool {
	switch d {
	case DisplayStandalone, DisplayFullscreen, DisplayMinimalUI, DisplayBrowser:
		return true
	}
	return false
}

// Icon is a PWA manifest icon
type Icon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// PWAConfig configures the installable storefront app
type PWAConfig struct {
	Enabled         bool        `json:"enabled"`
	Name            string      `json:"name"`
	ShortName       string      `json:"short_name"`
	Description     string      `json:"description"`
	StartURL        string      `json:"start_url"`
	ThemeColor      string      `json:"theme_color"`
	BackgroundColor string      `json:"background_color"`
	Display         DisplayMode `json:"display"`
	Icons           []Icon      `json:"icons"`
}

// StoreSettings holds per-store business preferences
type StoreSettings struct {
	shared.StoreAggregateRoot
	BusinessName   string               `json:"business_name"`
	Currency       valueobject.Currency `json:"currency"`
	DefaultTaxRate decimal.Decimal      `json:"default_tax_rate"`
	InvoicePrefix  string               `json:"invoice_prefix"`
	BillPrefix     string               `json:"bill_prefix"`
	PWA            PWAConfig            `json:"pwa"`
}

// SettingsInput carries the editable settings
type SettingsInput struct {
	BusinessName   string
	Currency       valueobject.Currency
	DefaultTaxRate decimal.Decimal
	InvoicePrefix  string
	BillPrefix     string
	PWA            PWAConfig
}

const (
	DefaultInvoicePrefix = "INV-"
	DefaultBillPrefix    = "BILL-"
	defaultThemeColor    = "#000000"
	defaultBgColor       = "#ffffff"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Default returns the settings a store starts with before anything is saved
func Default(storeID uuid.UUID, businessName string) *StoreSettings {
	return &StoreSettings{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		BusinessName:       businessName,
		Currency:           valueobject.DefaultCurrency,
		DefaultTaxRate:     decimal.Zero,
		InvoicePrefix:      DefaultInvoicePrefix,
		BillPrefix:         DefaultBillPrefix,
		PWA: PWAConfig{
			Name:            businessName,
			ShortName:       businessName,
			StartURL:        "/",
			ThemeColor:      defaultThemeColor,
			BackgroundColor: defaultBgColor,
			Display:         DisplayStandalone,
		},
	}
}

// Update validates and replaces the settings
func (s *StoreSettings) Update(input SettingsInput) error {
	name := strings.TrimSpace(input.BusinessName)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	currency := input.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three letter ISO code")
	}
	if input.DefaultTaxRate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Default tax rate cannot be negative")
	}
	if err := validatePrefix(input.InvoicePrefix); err != nil {
		return err
	}
	if err := validatePrefix(input.BillPrefix); err != nil {
		return err
	}
	pwa, err := normalizePWA(input.PWA, name)
	if err != nil {
		return err
	}

	s.BusinessName = name
	s.Currency = currency
	s.DefaultTaxRate = input.DefaultTaxRate
	s.InvoicePrefix = input.InvoicePrefix
	s.BillPrefix = input.BillPrefix
	s.PWA = pwa
	s.IncrementVersion()
	return nil
}

// PrefixFor returns the numbering prefix for a document kind
func (s *StoreSettings) PrefixFor(kind string) string {
	if kind == "bill" {
		return s.BillPrefix
	}
	return s.InvoicePrefix
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return shared.NewDomainError("INVALID_PREFIX", "Document prefix cannot be empty")
	}
	if len(prefix) > 10 || strings.ContainsAny(prefix, " \t\n/") {
		return shared.NewDomainError("INVALID_PREFIX", "Document prefix must be at most 10 characters without spaces or slashes")
	}
	return nil
}

func normalizePWA(cfg PWAConfig, businessName string) (PWAConfig, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = businessName
	}
	if strings.TrimSpace(cfg.ShortName) == "" {
		cfg.ShortName = cfg.Name
	}
	if len(cfg.ShortName) > 12 {
		return cfg, shared.NewDomainError("INVALID_PWA", "PWA short name cannot exceed 12 characters")
	}
	if cfg.StartURL == "" {
		cfg.StartURL = "/"
	}
	if cfg.Display == "" {
		cfg.Display = DisplayStandalone
	}
	if !cfg.Display.IsValid() {
		return cfg, shared.NewDomainError("INVALID_PWA", "Unknown PWA display mode")
	}
	if cfg.ThemeColor == "" {
		cfg.ThemeColor = defaultThemeColor
	}
	if cfg.BackgroundColor == "" {
		cfg.BackgroundColor = defaultBgColor
	}
	if !hexColor.MatchString(cfg.ThemeColor) || !hexColor.MatchString(cfg.BackgroundColor) {
		return cfg, shared.NewDomainError("INVALID_PWA", "PWA colors must be hex values like #1a2b3c")
	}
	for _, icon := range cfg.Icons {
		if icon.Src == "" || icon.Sizes == "" {
			return cfg, shared.NewDomainError("INVALID_PWA", "PWA icons need a source and sizes")
		}
	}
	return cfg, nil
}
