package services

import (
	"context"
	"fmt"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	portsrepo "github.com/granaapp/grana_backend/internal/core/ports/repositories"
	portssvc "github.com/granaapp/grana_backend/internal/core/ports/services"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 50
)

// DashboardService serves the read-only period aggregations behind the
// dashboard.
type DashboardService struct {
	BaseService
	dashboardRepo portsrepo.DashboardRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(dashboardRepo portsrepo.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

var _ portssvc.DashboardSvcFacade = (*DashboardService)(nil)

// GetSummary totals one competence period. An empty period is a valid
// all-zero summary, not an error.
func (s *DashboardService) GetSummary(ctx context.Context, ownerID string, competence string) (*domain.PeriodSummary, error) {
	if !domain.ValidCompetence(competence) {
		return nil, fmt.Errorf("%w: competence must be YYYY-MM", apperrors.ErrValidation)
	}

	income, expense, err := s.dashboardRepo.GetPeriodTotals(ctx, ownerID, competence)
	if err != nil {
		s.LogError(ctx, err, "Failed to get period totals", "competence", competence)
		return nil, err
	}

	return &domain.PeriodSummary{
		Competence: competence,
		Income:     income,
		Expense:    expense,
		Balance:    income.Sub(expense),
	}, nil
}

// GetExpensesByCategory breaks one period's expenses down by category,
// ordered by total descending then name ascending.
func (s *DashboardService) GetExpensesByCategory(ctx context.Context, ownerID string, competence string) ([]domain.CategoryExpense, error) {
	if !domain.ValidCompetence(competence) {
		return nil, fmt.Errorf("%w: competence must be YYYY-MM", apperrors.ErrValidation)
	}

	rows, err := s.dashboardRepo.GetExpensesByCategory(ctx, ownerID, competence)
	if err != nil {
		s.LogError(ctx, err, "Failed to get expenses by category", "competence", competence)
		return nil, err
	}
	return rows, nil
}

// GetRecentMovements lists the owner's most recent movements. A zero limit
// selects the default; anything above the maximum is clamped.
func (s *DashboardService) GetRecentMovements(ctx context.Context, ownerID string, limit int) ([]domain.RecentMovement, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	rows, err := s.dashboardRepo.ListRecentMovements(ctx, ownerID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent movements", "owner_id", ownerID)
		return nil, err
	}
	return rows, nil
}
