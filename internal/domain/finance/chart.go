package finance

import (
	"sort"

	"github.com/google/uuid"
)

// ChartRow is one visible line of the chart of accounts
type ChartRow struct {
	Key         string          `json:"key"`
	Depth       int             `json:"depth"`
	Category    AccountCategory `json:"category"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Balance     int64           `json:"balance"`
	IsActive    bool            `json:"is_active"`
	HasChildren bool            `json:"has_children"`
	Expanded    bool            `json:"expanded"`
}

type chartNode struct {
	key      string
	category AccountCategory
	account  *Account
	balance  int64
	children []*chartNode
}

// ChartOfAccounts is a category > account > sub-account tree with
// expand/collapse state. Category headers carry the sum of their accounts.
type ChartOfAccounts struct {
	roots    []*chartNode
	index    map[string]*chartNode
	expanded map[string]bool
}

// CategoryKey is the row key of a category header
func CategoryKey(c AccountCategory) string {
	return "category:" + string(c)
}

// NewChartOfAccounts builds the tree. balances maps account IDs to their
// current balance; missing entries fall back to the opening balance.
// Accounts whose parent is unknown, or that sit in a parent cycle, are
// attached directly under their category. Everything starts collapsed.
func NewChartOfAccounts(accounts []Account, balances map[uuid.UUID]int64) *ChartOfAccounts {
	chart := &ChartOfAccounts{
		index:    make(map[string]*chartNode),
		expanded: make(map[string]bool),
	}

	byID := make(map[uuid.UUID]*chartNode, len(accounts))
	for i := range accounts {
		acc := &accounts[i]
		balance, ok := balances[acc.ID]
		if !ok {
			balance = acc.OpeningBalance
		}
		node := &chartNode{key: acc.ID.String(), category: acc.Category, account: acc, balance: balance}
		byID[acc.ID] = node
		chart.index[node.key] = node
	}

	categories := make(map[AccountCategory]*chartNode)
	categoryNode := func(c AccountCategory) *chartNode {
		if n, ok := categories[c]; ok {
			return n
		}
		n := &chartNode{key: CategoryKey(c), category: c}
		categories[c] = n
		chart.index[n.key] = n
		return n
	}
	for _, c := range AllCategories {
		categoryNode(c)
	}

	attached := make(map[uuid.UUID]bool, len(accounts))
	for i := range accounts {
		acc := &accounts[i]
		parent := acc.ParentID
		if parent == nil || byID[*parent] == nil || hasParentCycle(acc.ID, byID) {
			continue
		}
		byID[*parent].children = append(byID[*parent].children, byID[acc.ID])
		attached[acc.ID] = true
	}
	for i := range accounts {
		acc := &accounts[i]
		if !attached[acc.ID] {
			cat := categoryNode(acc.Category)
			cat.children = append(cat.children, byID[acc.ID])
		}
	}

	for _, c := range AllCategories {
		chart.roots = append(chart.roots, categories[c])
	}
	var extra []AccountCategory
	for c := range categories {
		if !c.IsValid() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		chart.roots = append(chart.roots, categories[c])
	}

	for _, root := range chart.roots {
		sortChildren(root)
		root.balance = childrenBalance(root)
	}
	return chart
}

func hasParentCycle(id uuid.UUID, byID map[uuid.UUID]*chartNode) bool {
	seen := map[uuid.UUID]bool{id: true}
	current := byID[id]
	for current != nil && current.account.ParentID != nil {
		next := *current.account.ParentID
		if seen[next] {
			return true
		}
		seen[next] = true
		current = byID[next]
	}
	return false
}

func sortChildren(n *chartNode) {
	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].account.Number < n.children[j].account.Number
	})
	for _, c := range n.children {
		sortChildren(c)
	}
}

func childrenBalance(n *chartNode) int64 {
	var sum int64
	for _, c := range n.children {
		sum += c.balance + childrenBalance(c)
	}
	return sum
}

// Expand opens a row; unknown keys are ignored
func (c *ChartOfAccounts) Expand(key string) {
	if _, ok := c.index[key]; ok {
		c.expanded[key] = true
	}
}

// Collapse closes a row; descendants keep their own state
func (c *ChartOfAccounts) Collapse(key string) {
	delete(c.expanded, key)
}

// Toggle flips a row's state
func (c *ChartOfAccounts) Toggle(key string) {
	if c.expanded[key] {
		c.Collapse(key)
		return
	}
	c.Expand(key)
}

// ExpandAll opens every row that has children
func (c *ChartOfAccounts) ExpandAll() {
	for key, n := range c.index {
		if len(n.children) > 0 {
			c.expanded[key] = true
		}
	}
}

// CollapseAll closes every row
func (c *ChartOfAccounts) CollapseAll() {
	c.expanded = make(map[string]bool)
}

// IsExpanded reports whether a row is open
func (c *ChartOfAccounts) IsExpanded(key string) bool {
	return c.expanded[key]
}

// VisibleRows returns the rows a reader sees: category headers always,
// children only beneath expanded rows
func (c *ChartOfAccounts) VisibleRows() []ChartRow {
	var rows []ChartRow
	for _, root := range c.roots {
		rows = c.appendRows(rows, root, 0, false)
	}
	return rows
}

// AllRows returns every row regardless of expand state, for printing
func (c *ChartOfAccounts) AllRows() []ChartRow {
	var rows []ChartRow
	for _, root := range c.roots {
		rows = c.appendRows(rows, root, 0, true)
	}
	return rows
}

func (c *ChartOfAccounts) appendRows(rows []ChartRow, n *chartNode, depth int, all bool) []ChartRow {
	rows = append(rows, c.row(n, depth))
	if !all && !c.expanded[n.key] {
		return rows
	}
	for _, child := range n.children {
		rows = c.appendRows(rows, child, depth+1, all)
	}
	return rows
}

func (c *ChartOfAccounts) row(n *chartNode, depth int) ChartRow {
	row := ChartRow{
		Key:         n.key,
		Depth:       depth,
		Category:    n.category,
		Balance:     n.balance,
		HasChildren: len(n.children) > 0,
		Expanded:    c.expanded[n.key],
		IsActive:    true,
	}
	if n.account == nil {
		row.Name = n.category.Label()
		return row
	}
	id := n.account.ID
	row.AccountID = &id
	row.Code = n.account.Code()
	row.Name = n.account.Name
	row.IsActive = n.account.IsActive
	return row
}
