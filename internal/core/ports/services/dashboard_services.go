package services

import (
	"context"

	"github.com/granaapp/grana_backend/internal/core/domain"
)

// DashboardSvcFacade defines the read-only period aggregations consumed by
// the dashboard.
type DashboardSvcFacade interface {
	// GetSummary totals one competence period. Empty periods return
	// all-zero totals, not an error.
	GetSummary(ctx context.Context, ownerID string, competence string) (*domain.PeriodSummary, error)

	// GetExpensesByCategory breaks one period's expenses down by category,
	// ordered by total descending then name ascending.
	GetExpensesByCategory(ctx context.Context, ownerID string, competence string) ([]domain.CategoryExpense, error)

	// GetRecentMovements lists the owner's most recent movements. The
	// limit is clamped to the configured maximum; zero selects the default.
	GetRecentMovements(ctx context.Context, ownerID string, limit int) ([]domain.RecentMovement, error)
}
