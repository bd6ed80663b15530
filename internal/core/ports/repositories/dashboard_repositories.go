package repositories

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardRepository defines the read-only aggregation queries backing the
// dashboard. All methods are side-effect free and may be served from a
// read replica.
type DashboardRepository interface {
	// GetPeriodTotals sums movement amounts of one competence period,
	// partitioned by kind. Empty periods yield zero totals, not an error.
	GetPeriodTotals(ctx context.Context, ownerID string, competence string) (income decimal.Decimal, expense decimal.Decimal, err error)

	// GetExpensesByCategory groups one period's expenses by category,
	// ordered by total descending then category name ascending. Movements
	// without a category land in the synthetic uncategorized bucket.
	GetExpensesByCategory(ctx context.Context, ownerID string, competence string) ([]domain.CategoryExpense, error)

	// ListRecentMovements retrieves the owner's most recent movements by
	// occurrence date descending, with account and category names resolved.
	ListRecentMovements(ctx context.Context, ownerID string, limit int) ([]domain.RecentMovement, error)
}
