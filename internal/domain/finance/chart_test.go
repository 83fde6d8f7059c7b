package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChart(t *testing.T) (*ChartOfAccounts, map[string]*Account) {
	t.Helper()
	storeID := uuid.New()
	mk := func(number uint64, name string, category AccountCategory, opening int64) *Account {
		acc, err := NewAccount(storeID, number, name, category, opening)
		require.NoError(t, err)
		return acc
	}
	current := mk(1, "Current assets", CategoryAsset, 0)
	bank := mk(3, "Bank", CategoryAsset, 20000)
	cash := mk(2, "Cash", CategoryAsset, 5000)
	loan := mk(4, "Loan", CategoryLiability, 100000)
	rent := mk(5, "Rent", CategoryExpense, 0)
	require.NoError(t, cash.SetParent(current))
	require.NoError(t, bank.SetParent(current))

	accounts := []Account{*current, *bank, *cash, *loan, *rent}
	balances := map[uuid.UUID]int64{cash.ID: 7500, rent.ID: 1200}
	return NewChartOfAccounts(accounts, balances), map[string]*Account{
		"current": current, "bank": bank, "cash": cash, "loan": loan, "rent": rent,
	}
}

func names(rows []ChartRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestChartOfAccounts_Collapsed(t *testing.T) {
	chart, _ := buildChart(t)
	rows := chart.VisibleRows()
	assert.Equal(t, []string{"Assets", "Liabilities", "Equity", "Income", "Expenses"}, names(rows))
	assert.Equal(t, int64(27500), rows[0].Balance)
	assert.True(t, rows[0].HasChildren)
	assert.False(t, rows[2].HasChildren)
}

func TestChartOfAccounts_ExpandCollapse(t *testing.T) {
	chart, accs := buildChart(t)

	chart.Expand(CategoryKey(CategoryAsset))
	rows := chart.VisibleRows()
	assert.Equal(t, []string{"Assets", "Current assets", "Liabilities", "Equity", "Income", "Expenses"}, names(rows))

	chart.Expand(accs["current"].ID.String())
	rows = chart.VisibleRows()
	require.Len(t, rows, 8)
	assert.Equal(t, "Cash", rows[2].Name, "children sorted by number")
	assert.Equal(t, "A0002", rows[2].Code)
	assert.Equal(t, 2, rows[2].Depth)
	assert.Equal(t, int64(7500), rows[2].Balance)
	assert.Equal(t, int64(20000), rows[3].Balance, "falls back to opening balance")

	chart.Collapse(CategoryKey(CategoryAsset))
	assert.Len(t, chart.VisibleRows(), 5)
	assert.True(t, chart.IsExpanded(accs["current"].ID.String()), "descendant state is kept")

	chart.Toggle(CategoryKey(CategoryAsset))
	assert.Len(t, chart.VisibleRows(), 8)

	chart.Expand("no-such-row")
	assert.False(t, chart.IsExpanded("no-such-row"))
}

func TestChartOfAccounts_ExpandAllCollapseAll(t *testing.T) {
	chart, _ := buildChart(t)
	chart.ExpandAll()
	assert.Len(t, chart.VisibleRows(), 10)
	assert.Equal(t, chart.AllRows(), chart.VisibleRows())

	chart.CollapseAll()
	assert.Len(t, chart.VisibleRows(), 5)
	assert.Len(t, chart.AllRows(), 10)
}

func TestChartOfAccounts_OrphansAndCycles(t *testing.T) {
	storeID := uuid.New()
	a, _ := NewAccount(storeID, 1, "A", CategoryAsset, 0)
	b, _ := NewAccount(storeID, 2, "B", CategoryAsset, 0)
	orphan, _ := NewAccount(storeID, 3, "Orphan", CategoryAsset, 0)
	missing := uuid.New()
	aID, bID := a.ID, b.ID
	a.ParentID = &bID
	b.ParentID = &aID
	orphan.ParentID = &missing

	chart := NewChartOfAccounts([]Account{*a, *b, *orphan}, nil)
	chart.ExpandAll()
	rows := chart.VisibleRows()
	assert.Equal(t, []string{"Assets", "A", "B", "Orphan", "Liabilities", "Equity", "Income", "Expenses"}, names(rows))
}
