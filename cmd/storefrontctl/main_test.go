package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTotals(t *testing.T) {
	lines := `[
		{"description": "Espresso beans", "quantity": "2", "unit_price": 1250, "tax_rate_percent": "10"},
		{"description": "Grinder cleaning", "quantity": 1, "unit_price": 500}
	]`
	out, err := execute(t, lines, "totals", "-", "--adjustment", "500")
	require.NoError(t, err)

	var totals map[string]int64
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	assert.Equal(t, int64(3000), totals["subtotal"])
	assert.Equal(t, int64(250), totals["tax_amount"])
	assert.Equal(t, int64(500), totals["adjustment"])
	assert.Equal(t, int64(3750), totals["total_amount"])
}

func TestTotals_InvalidLine(t *testing.T) {
	_, err := execute(t, `[{"description": "Nothing", "quantity": "0", "unit_price": 100}]`, "totals", "-")
	assert.ErrorContains(t, err, "line 1")
}

func TestAccountCode(t *testing.T) {
	out, err := execute(t, "", "account-code", "expense", "12")
	require.NoError(t, err)
	assert.Equal(t, "X0012\n", out)

	_, err = execute(t, "", "account-code", "asset", "twelve")
	assert.ErrorContains(t, err, "invalid account number")
}

func TestConvert(t *testing.T) {
	out, err := execute(t, "", "convert", "12.5")
	require.NoError(t, err)

	var resp struct {
		Valid      bool   `json:"valid"`
		MinorUnits int64  `json:"minor_units"`
		Decimal    string `json:"decimal"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, int64(1250), resp.MinorUnits)
	assert.Equal(t, "12.50", resp.Decimal)

	_, err = execute(t, "", "convert", "1", "--currency", "dollars")
	assert.ErrorContains(t, err, "invalid currency")
}
