package settings

import (
	"encoding/json"
	"testing"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettingsInput() SettingsInput {
	return SettingsInput{
		BusinessName:   "Corner Shop",
		Currency:       valueobject.EUR,
		DefaultTaxRate: decimal.NewFromInt(20),
		InvoicePrefix:  "CS-",
		BillPrefix:     "PO-",
		PWA:            PWAConfig{Enabled: true, ShortName: "Corner", ThemeColor: "#1a2b3c"},
	}
}

func TestDefault(t *testing.T) {
	s := Default(uuid.New(), "Corner Shop")
	assert.Equal(t, valueobject.USD, s.Currency)
	assert.Equal(t, "INV-", s.PrefixFor("invoice"))
	assert.Equal(t, "BILL-", s.PrefixFor("bill"))
	assert.Equal(t, DisplayStandalone, s.PWA.Display)
}

func TestStoreSettings_Update(t *testing.T) {
	t.Run("fills PWA defaults", func(t *testing.T) {
		s := Default(uuid.New(), "x")
		require.NoError(t, s.Update(validSettingsInput()))
		assert.Equal(t, "Corner Shop", s.PWA.Name)
		assert.Equal(t, "Corner", s.PWA.ShortName)
		assert.Equal(t, "#ffffff", s.PWA.BackgroundColor)
		assert.Equal(t, "PO-", s.PrefixFor("bill"))
		assert.Equal(t, 2, s.Version)
	})

	cases := map[string]func(in *SettingsInput){
		"empty name":      func(in *SettingsInput) { in.BusinessName = "" },
		"bad currency":    func(in *SettingsInput) { in.Currency = "euro" },
		"negative tax":    func(in *SettingsInput) { in.DefaultTaxRate = decimal.NewFromInt(-5) },
		"empty prefix":    func(in *SettingsInput) { in.InvoicePrefix = "" },
		"prefix slash":    func(in *SettingsInput) { in.BillPrefix = "A/B" },
		"bad color":       func(in *SettingsInput) { in.PWA.ThemeColor = "blue" },
		"bad display":     func(in *SettingsInput) { in.PWA.Display = "window" },
		"long short name": func(in *SettingsInput) { in.PWA.ShortName = "A very long name" },
		"icon no sizes":   func(in *SettingsInput) { in.PWA.Icons = []Icon{{Src: "/i.png"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := Default(uuid.New(), "x")
			in := validSettingsInput()
			mutate(&in)
			assert.Error(t, s.Update(in))
			assert.Equal(t, "x", s.BusinessName)
		})
	}
}

func TestStoreSettings_Manifest(t *testing.T) {
	s := Default(uuid.New(), "Corner Shop")
	raw, err := s.ManifestJSON()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Corner Shop", got["name"])
	assert.Equal(t, "standalone", got["display"])
	assert.Equal(t, "/", got["start_url"])
	assert.Equal(t, []any{}, got["icons"])
	assert.NotContains(t, got, "description")
}
