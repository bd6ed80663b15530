package domain

import (
	"github.com/shopspring/decimal"
)

// PeriodSummary totals one competence period for the dashboard.
type PeriodSummary struct {
	Competence string          `json:"competence"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Balance    decimal.Decimal `json:"balance"` // Income - Expense
}

// UncategorizedBucket is the synthetic category name movements without a
// category are grouped under when aggregating expenses.
const UncategorizedBucket = "Uncategorized"

// CategoryExpense is one row of the expense-by-category breakdown, ordered
// by total descending with category name as the tie-break.
type CategoryExpense struct {
	CategoryID   string          `json:"categoryID,omitempty"` // Empty for the uncategorized bucket
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// RecentMovement is a dashboard-facing projection of a movement with its
// account and category names resolved.
type RecentMovement struct {
	Movement
	AccountName  string `json:"accountName"`
	CategoryName string `json:"categoryName,omitempty"`
}
