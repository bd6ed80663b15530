package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/granaapp/grana_backend/internal/apperrors"
	"github.com/granaapp/grana_backend/internal/core/domain"
	"github.com/granaapp/grana_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecurrenceServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	service          *services.RecurrenceService
	ownerID          string
}

func (s *RecurrenceServiceTestSuite) SetupTest() {
	s.mockMovementRepo = new(MockMovementRepository)
	s.service = services.NewRecurrenceService(s.mockMovementRepo, 1)
	s.ownerID = uuid.NewString()
}

func (s *RecurrenceServiceTestSuite) template(date time.Time, kind domain.RecurrenceKind, interval int, end *time.Time) *domain.Movement {
	return &domain.Movement{
		MovementID:         uuid.NewString(),
		OwnerID:            s.ownerID,
		AccountID:          uuid.NewString(),
		Description:        "Rent",
		Amount:             decimal.NewFromInt(1500),
		Date:               date,
		Kind:               domain.Expense,
		Origin:             domain.OriginManual,
		Competence:         domain.CompetenceFromDate(date),
		IsRecurring:        true,
		RecurrenceKind:     kind,
		RecurrenceInterval: interval,
		RecurrenceEndDate:  end,
		AuditFields:        audit(time.Now(), s.ownerID),
	}
}

func (s *RecurrenceServiceTestSuite) TestExpandMovement_GeneratesUpToHorizon() {
	ctx := context.Background()
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	template := s.template(start, domain.Monthly, 1, nil)
	horizon := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

	s.mockMovementRepo.On("FindMovementByID", ctx, template.MovementID).Return(template, nil).Once()

	var saved []domain.Movement
	s.mockMovementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.Movement")).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(domain.Movement))
		}).Return(nil)

	result, err := s.service.ExpandMovement(ctx, s.ownerID, template.MovementID, horizon)

	s.Require().NoError(err)
	s.Equal(2, result.Generated)
	s.Equal(0, result.Skipped)
	s.Require().Len(saved, 2)

	// Month-end clamping: Jan 31 -> Feb 28 -> Mar 31
	s.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), saved[0].Date)
	s.Equal(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), saved[1].Date)

	s.Equal("2025-02", saved[0].Competence)
	s.Equal(template.MovementID+"#1", saved[0].ExternalID)
	s.Equal(template.MovementID+"#2", saved[1].ExternalID)

	for _, occurrence := range saved {
		s.False(occurrence.IsRecurring)
		s.Empty(occurrence.RecurrenceKind)
		s.Nil(occurrence.RecurrenceEndDate)
		s.NotEqual(template.MovementID, occurrence.MovementID)
		s.Equal(template.AccountID, occurrence.AccountID)
		s.True(template.Amount.Equal(occurrence.Amount))
	}
}

func (s *RecurrenceServiceTestSuite) TestExpandMovement_RerunSkipsExisting() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	template := s.template(start, domain.Weekly, 1, nil)
	horizon := start.AddDate(0, 0, 22) // three weekly occurrences past the start

	s.mockMovementRepo.On("FindMovementByID", ctx, template.MovementID).Return(template, nil).Once()
	// First occurrence already materialized by a previous run
	s.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		return m.ExternalID == template.MovementID+"#1"
	})).Return(apperrors.ErrConflict).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.Movement")).Return(nil)

	result, err := s.service.ExpandMovement(ctx, s.ownerID, template.MovementID, horizon)

	s.Require().NoError(err)
	s.Equal(1, result.Skipped)
	s.Equal(2, result.Generated)
}

func (s *RecurrenceServiceTestSuite) TestExpandMovement_EndDateExclusive() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	template := s.template(start, domain.Monthly, 1, &end)
	horizon := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.mockMovementRepo.On("FindMovementByID", ctx, template.MovementID).Return(template, nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.Movement) bool {
		// Only Feb 1 qualifies: Mar 1 equals the end date and is excluded
		return m.Date.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	result, err := s.service.ExpandMovement(ctx, s.ownerID, template.MovementID, horizon)

	s.Require().NoError(err)
	s.Equal(1, result.Generated)
	s.mockMovementRepo.AssertExpectations(s.T())
}

func (s *RecurrenceServiceTestSuite) TestExpandMovement_NotRecurring() {
	ctx := context.Background()
	template := s.template(time.Now(), domain.Monthly, 1, nil)
	template.IsRecurring = false
	template.RecurrenceKind = ""

	s.mockMovementRepo.On("FindMovementByID", ctx, template.MovementID).Return(template, nil).Once()

	_, err := s.service.ExpandMovement(ctx, s.ownerID, template.MovementID, time.Now().AddDate(1, 0, 0))

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *RecurrenceServiceTestSuite) TestExpandMovement_ForeignOwnerLooksMissing() {
	ctx := context.Background()
	template := s.template(time.Now(), domain.Monthly, 1, nil)
	template.OwnerID = uuid.NewString()

	s.mockMovementRepo.On("FindMovementByID", ctx, template.MovementID).Return(template, nil).Once()

	_, err := s.service.ExpandMovement(ctx, s.ownerID, template.MovementID, time.Now().AddDate(1, 0, 0))

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RecurrenceServiceTestSuite) TestExpandDue_ContinuesPastBrokenTemplate() {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	horizon := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	broken := s.template(start, "", 1, nil) // missing recurrence kind
	healthy := s.template(start, domain.Monthly, 1, nil)

	s.mockMovementRepo.On("ListRecurringTemplates", ctx).Return([]domain.Movement{*broken, *healthy}, nil).Once()
	s.mockMovementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.Movement")).Return(nil)

	result, err := s.service.ExpandDue(ctx, horizon)

	s.Require().NoError(err)
	s.Equal(1, result.Generated) // Feb 1 from the healthy template only
}

func TestRecurrenceService(t *testing.T) {
	suite.Run(t, new(RecurrenceServiceTestSuite))
}
