package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/granaapp/grana_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MovementServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	mockRuleRepo     *MockCategoryRuleRepository
	service          *services.MovementService
	ownerID          string
	accountID        string
}

func (s *MovementServiceTestSuite) SetupTest() {
	s.mockMovementRepo = new(MockMovementRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.mockRuleRepo = new(MockCategoryRuleRepository)
	matcher := services.NewCategoryRuleService(s.mockRuleRepo, s.mockCategoryRepo)
	s.service = services.NewMovementService(s.mockMovementRepo, s.mockAccountRepo, s.mockCategoryRepo, matcher)
	s.ownerID = uuid.NewString()
	s.accountID = uuid.NewString()
}

func (s *MovementServiceTestSuite) ownAccount() *domain.Account {
	return &domain.Account{AccountID: s.accountID, OwnerID: s.ownerID, Kind: domain.Checking}
}

func (s *MovementServiceTestSuite) createReq() dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		AccountID:   s.accountID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(120),
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.Expense,
	}
}

// --- CreateMovement ---

func (s *MovementServiceTestSuite) TestCreateMovement_DerivesCompetence() {
	ctx := context.Background()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.Competence == "2025-03" && m.Origin == domain.OriginManual
	})).Return(nil).Once()

	movement, err := s.service.CreateMovement(ctx, s.ownerID, s.createReq())

	s.Require().NoError(err)
	s.Equal("2025-03", movement.Competence)
	s.False(movement.AutoCategorized)
	s.mockMovementRepo.AssertExpectations(s.T())
}

func (s *MovementServiceTestSuite) TestCreateMovement_NonPositiveAmount() {
	ctx := context.Background()
	req := s.createReq()
	req.Amount = decimal.Zero
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Maybe()

	_, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockMovementRepo.AssertNotCalled(s.T(), "SaveMovement")
}

func (s *MovementServiceTestSuite) TestCreateMovement_ForeignAccount() {
	ctx := context.Background()
	foreign := &domain.Account{AccountID: s.accountID, OwnerID: uuid.NewString()}
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(foreign, nil).Once()

	_, err := s.service.CreateMovement(ctx, s.ownerID, s.createReq())

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *MovementServiceTestSuite) TestCreateMovement_CategoryKindMismatch() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := s.createReq()
	req.CategoryID = &categoryID

	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&domain.Category{
		CategoryID: categoryID, OwnerID: s.ownerID, Kind: domain.Income,
	}, nil).Once()

	_, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *MovementServiceTestSuite) TestCreateMovement_AutoCategorize() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := s.createReq()
	req.Description = "Uber trip home"
	req.AutoCategorize = true

	rules := []domain.CategoryRule{{
		RuleID:      uuid.NewString(),
		OwnerID:     s.ownerID,
		Keyword:     "uber",
		CategoryID:  categoryID,
		Priority:    10,
		AuditFields: audit(time.Now(), s.ownerID),
	}}
	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return(rules, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&domain.Category{
		CategoryID: categoryID, OwnerID: s.ownerID, Kind: domain.Expense,
	}, nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.CategoryID == categoryID && m.AutoCategorized && m.Confidence > 0 && m.Confidence <= 1
	})).Return(nil).Once()

	movement, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.True(movement.AutoCategorized)
	s.Equal(categoryID, movement.CategoryID)
}

func (s *MovementServiceTestSuite) TestCreateMovement_AutoCategorizeNoMatchStaysUncategorized() {
	ctx := context.Background()
	req := s.createReq()
	req.AutoCategorize = true

	s.mockRuleRepo.On("ListRulesByOwner", ctx, s.ownerID).Return([]domain.CategoryRule{}, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.CategoryID == "" && !m.AutoCategorized
	})).Return(nil).Once()

	movement, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.Empty(movement.CategoryID)
	s.False(movement.AutoCategorized)
}

func (s *MovementServiceTestSuite) TestCreateMovement_RecurringWithoutKind() {
	ctx := context.Background()
	req := s.createReq()
	req.IsRecurring = true
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()

	_, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *MovementServiceTestSuite) TestCreateMovement_NonRecurringClearsRecurrenceFields() {
	ctx := context.Background()
	kind := domain.Monthly
	interval := 2
	req := s.createReq()
	// Recurrence data without the flag must not survive the write
	req.RecurrenceKind = &kind
	req.RecurrenceInterval = &interval

	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return !m.IsRecurring && m.RecurrenceKind == "" && m.RecurrenceInterval == 0 && m.RecurrenceEndDate == nil
	})).Return(nil).Once()

	movement, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().NoError(err)
	s.False(movement.IsRecurring)
}

func (s *MovementServiceTestSuite) TestCreateMovement_DuplicateExternalID() {
	ctx := context.Background()
	externalID := "stmt-42"
	req := s.createReq()
	req.ExternalID = &externalID

	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.Anything).Return(apperrors.ErrConflict).Once()

	_, err := s.service.CreateMovement(ctx, s.ownerID, req)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

// --- GetMovementByID ---

func (s *MovementServiceTestSuite) TestGetMovementByID_ForeignOwnerLooksMissing() {
	ctx := context.Background()
	movementID := uuid.NewString()
	foreign := &domain.Movement{MovementID: movementID, OwnerID: uuid.NewString()}
	s.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(foreign, nil).Once()

	_, err := s.service.GetMovementByID(ctx, s.ownerID, movementID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

// --- UpdateMovement ---

func (s *MovementServiceTestSuite) existingMovement() *domain.Movement {
	return &domain.Movement{
		MovementID:  uuid.NewString(),
		OwnerID:     s.ownerID,
		AccountID:   s.accountID,
		Description: "Gym",
		Amount:      decimal.NewFromInt(90),
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:        domain.Expense,
		Origin:      domain.OriginManual,
		Competence:  "2025-03",
		AuditFields: audit(time.Now(), s.ownerID),
	}
}

func (s *MovementServiceTestSuite) TestUpdateMovement_DateChangeRederivesCompetence() {
	ctx := context.Background()
	existing := s.existingMovement()
	newDate := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	s.mockMovementRepo.On("FindMovementByID", ctx, existing.MovementID).Return(existing, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockMovementRepo.On("UpdateMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.Competence == "2025-04"
	})).Return(nil).Once()

	movement, err := s.service.UpdateMovement(ctx, s.ownerID, existing.MovementID, dto.UpdateMovementRequest{
		Date: &newDate,
	})

	s.Require().NoError(err)
	s.Equal("2025-04", movement.Competence)
}

func (s *MovementServiceTestSuite) TestUpdateMovement_ToggleRecurringOffClearsFields() {
	ctx := context.Background()
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := s.existingMovement()
	existing.IsRecurring = true
	existing.RecurrenceKind = domain.Monthly
	existing.RecurrenceInterval = 1
	existing.RecurrenceEndDate = &end
	off := false

	s.mockMovementRepo.On("FindMovementByID", ctx, existing.MovementID).Return(existing, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockMovementRepo.On("UpdateMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return !m.IsRecurring && m.RecurrenceKind == "" && m.RecurrenceInterval == 0 && m.RecurrenceEndDate == nil
	})).Return(nil).Once()

	movement, err := s.service.UpdateMovement(ctx, s.ownerID, existing.MovementID, dto.UpdateMovementRequest{
		IsRecurring: &off,
	})

	s.Require().NoError(err)
	s.False(movement.IsRecurring)
	s.Nil(movement.RecurrenceEndDate)
}

func (s *MovementServiceTestSuite) TestUpdateMovement_ManualCategoryClearsAutoFlag() {
	ctx := context.Background()
	existing := s.existingMovement()
	existing.CategoryID = uuid.NewString()
	existing.AutoCategorized = true
	existing.Confidence = 0.7
	newCategoryID := uuid.NewString()

	s.mockMovementRepo.On("FindMovementByID", ctx, existing.MovementID).Return(existing, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.accountID).Return(s.ownAccount(), nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, newCategoryID).Return(&domain.Category{
		CategoryID: newCategoryID, OwnerID: s.ownerID, Kind: domain.Expense,
	}, nil).Once()
	s.mockMovementRepo.On("UpdateMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.CategoryID == newCategoryID && !m.AutoCategorized && m.Confidence == 0
	})).Return(nil).Once()

	movement, err := s.service.UpdateMovement(ctx, s.ownerID, existing.MovementID, dto.UpdateMovementRequest{
		CategoryID: &newCategoryID,
	})

	s.Require().NoError(err)
	s.False(movement.AutoCategorized)
}

// --- DeleteMovement ---

func (s *MovementServiceTestSuite) TestDeleteMovement_ForeignOwnerLooksMissing() {
	ctx := context.Background()
	movementID := uuid.NewString()
	foreign := &domain.Movement{MovementID: movementID, OwnerID: uuid.NewString()}
	s.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(foreign, nil).Once()

	err := s.service.DeleteMovement(ctx, s.ownerID, movementID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.mockMovementRepo.AssertNotCalled(s.T(), "DeleteMovement")
}

// --- ListMovements ---

func (s *MovementServiceTestSuite) TestListMovements_InvalidCompetence() {
	ctx := context.Background()

	_, _, err := s.service.ListMovements(ctx, s.ownerID, dto.ListMovementsParams{Competence: "2025-13"})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestMovementService(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
