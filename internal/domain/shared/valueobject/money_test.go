package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.RequireFromString("100.50"), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.Equal(t, int64(10050), m.MinorUnits())
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromMinorUnits(t *testing.T) {
	m, err := NewMoneyFromMinorUnits(3409, USD)
	require.NoError(t, err)
	assert.Equal(t, "34.09 USD", m.String())
	assert.Equal(t, int64(3409), m.MinorUnits())
}

func TestMoney_Arithmetic(t *testing.T) {
	a, _ := NewMoneyFromMinorUnits(1000, USD)
	b, _ := NewMoneyFromMinorUnits(250, USD)
	eur, _ := NewMoneyFromMinorUnits(250, EUR)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(1250), sum.MinorUnits())
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.Equal(t, int64(750), diff.MinorUnits())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := a.Add(eur)
		assert.Error(t, err)
		_, err = a.Subtract(eur)
		assert.Error(t, err)
	})

	t.Run("discount and percentage", func(t *testing.T) {
		assert.Equal(t, int64(900), a.ApplyDiscount(decimal.NewFromInt(10)).MinorUnits())
		assert.Equal(t, int64(50), a.CalculatePercentage(decimal.NewFromInt(5)).MinorUnits())
	})

	t.Run("round is half away from zero", func(t *testing.T) {
		m, _ := NewMoney(decimal.RequireFromString("2.345"), USD)
		assert.True(t, m.Round(2).Amount().Equal(decimal.RequireFromString("2.35")))
		neg, _ := NewMoney(decimal.RequireFromString("-2.345"), USD)
		assert.True(t, neg.Round(2).Amount().Equal(decimal.RequireFromString("-2.35")))
	})
}

func TestMoney_JSON(t *testing.T) {
	m, _ := NewMoneyFromMinorUnits(1999, USD)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"19.99","cents":1999,"currency":"USD"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))

	var fromAmount Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"5.5"}`), &fromAmount))
	assert.Equal(t, int64(550), fromAmount.MinorUnits())
	assert.Equal(t, DefaultCurrency, fromAmount.Currency())
}

func TestMoney_ValueScan(t *testing.T) {
	m, _ := NewMoneyFromMinorUnits(-725, USD)
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(-725), v)

	var scanned Money
	require.NoError(t, scanned.Scan(int64(-725)))
	assert.True(t, m.Equals(scanned))

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(3.14))
}

func TestCurrency_IsValid(t *testing.T) {
	assert.True(t, USD.IsValid())
	assert.True(t, Currency("NZD").IsValid())
	assert.False(t, Currency("usd").IsValid())
	assert.False(t, Currency("DOLLAR").IsValid())
}
