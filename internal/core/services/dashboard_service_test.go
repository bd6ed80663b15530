package services_test

import (
	"context"
	"testing"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	mockDashboardRepo *MockDashboardRepository
	service           *services.DashboardService
	ownerID           string
}

func (s *DashboardServiceTestSuite) SetupTest() {
	s.mockDashboardRepo = new(MockDashboardRepository)
	s.service = services.NewDashboardService(s.mockDashboardRepo)
	s.ownerID = uuid.NewString()
}

func (s *DashboardServiceTestSuite) TestGetSummary() {
	ctx := context.Background()
	s.mockDashboardRepo.On("GetPeriodTotals", ctx, s.ownerID, "2025-03").
		Return(decimal.NewFromInt(5000), decimal.NewFromInt(3200), nil).Once()

	summary, err := s.service.GetSummary(ctx, s.ownerID, "2025-03")

	s.Require().NoError(err)
	s.Equal("2025-03", summary.Competence)
	s.True(summary.Income.Equal(decimal.NewFromInt(5000)))
	s.True(summary.Expense.Equal(decimal.NewFromInt(3200)))
	s.True(summary.Balance.Equal(decimal.NewFromInt(1800)))
}

func (s *DashboardServiceTestSuite) TestGetSummary_EmptyPeriodIsZero() {
	ctx := context.Background()
	s.mockDashboardRepo.On("GetPeriodTotals", ctx, s.ownerID, "2030-01").
		Return(decimal.Zero, decimal.Zero, nil).Once()

	summary, err := s.service.GetSummary(ctx, s.ownerID, "2030-01")

	s.Require().NoError(err)
	s.True(summary.Income.IsZero())
	s.True(summary.Expense.IsZero())
	s.True(summary.Balance.IsZero())
}

func (s *DashboardServiceTestSuite) TestGetSummary_InvalidCompetence() {
	ctx := context.Background()

	_, err := s.service.GetSummary(ctx, s.ownerID, "March 2025")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockDashboardRepo.AssertNotCalled(s.T(), "GetPeriodTotals")
}

func (s *DashboardServiceTestSuite) TestGetExpensesByCategory_Ordering() {
	ctx := context.Background()
	rows := []domain.CategoryExpense{
		{CategoryID: uuid.NewString(), CategoryName: "Food", Total: decimal.NewFromInt(80)},
		{CategoryID: uuid.NewString(), CategoryName: "Transport", Total: decimal.NewFromInt(20)},
		{CategoryName: domain.UncategorizedBucket, Total: decimal.NewFromInt(5)},
	}
	s.mockDashboardRepo.On("GetExpensesByCategory", ctx, s.ownerID, "2025-03").Return(rows, nil).Once()

	got, err := s.service.GetExpensesByCategory(ctx, s.ownerID, "2025-03")

	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("Food", got[0].CategoryName)
	s.Equal("Transport", got[1].CategoryName)
	s.Equal(domain.UncategorizedBucket, got[2].CategoryName)
	s.Empty(got[2].CategoryID)
}

func (s *DashboardServiceTestSuite) TestGetRecentMovements_DefaultLimit() {
	ctx := context.Background()
	s.mockDashboardRepo.On("ListRecentMovements", ctx, s.ownerID, 5).
		Return([]domain.RecentMovement{}, nil).Once()

	_, err := s.service.GetRecentMovements(ctx, s.ownerID, 0)

	s.Require().NoError(err)
	s.mockDashboardRepo.AssertExpectations(s.T())
}

func (s *DashboardServiceTestSuite) TestGetRecentMovements_ClampsLimit() {
	ctx := context.Background()
	s.mockDashboardRepo.On("ListRecentMovements", ctx, s.ownerID, 50).
		Return([]domain.RecentMovement{}, nil).Once()

	_, err := s.service.GetRecentMovements(ctx, s.ownerID, 500)

	s.Require().NoError(err)
	s.mockDashboardRepo.AssertExpectations(s.T())
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
